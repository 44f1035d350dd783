package daemon_test

import (
	"context"
	"errors"
	"testing"

	"bingelog/internal/catalog"
	"bingelog/internal/daemon"
	"bingelog/internal/logging"
	"bingelog/internal/testsupport"
	"bingelog/internal/userlist"
)

func newDaemon(t *testing.T) *daemon.Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	d, err := daemon.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestStartStopLifecycle(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("second Start should fail while running")
	}
	if status := d.Status(ctx); !status.Running {
		t.Fatalf("status should report running: %+v", status)
	}

	d.Stop()
	if status := d.Status(ctx); status.Running {
		t.Fatalf("status should report stopped: %+v", status)
	}
	// Stop when already stopped is a no-op.
	d.Stop()
}

func TestLockPreventsSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	first, err := daemon.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	defer first.Close()
	if err := first.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	second, err := daemon.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New (second): %v", err)
	}
	defer second.Close()
	if err := second.Start(ctx); err == nil {
		t.Fatal("second instance acquired the lock")
	}

	first.Stop()
	if err := second.Start(ctx); err != nil {
		t.Fatalf("lock should be free after Stop: %v", err)
	}
}

func TestAddShowAssignsID(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	show, err := d.AddShow(ctx, catalog.KindAnime, "  Demo Show  ", " https://img.example/d.png ", 12)
	if err != nil {
		t.Fatalf("AddShow: %v", err)
	}
	if show.ID == "" {
		t.Fatal("AddShow must assign an ID")
	}
	if show.Title != "Demo Show" || show.ImageURL != "https://img.example/d.png" {
		t.Fatalf("fields should be trimmed: %+v", show)
	}

	got, err := d.GetShow(ctx, catalog.KindAnime, show.ID)
	if err != nil {
		t.Fatalf("GetShow: %v", err)
	}
	if got != show {
		t.Fatalf("GetShow = %+v, want %+v", got, show)
	}
}

func TestGetShowNotFound(t *testing.T) {
	d := newDaemon(t)
	if _, err := d.GetShow(context.Background(), catalog.KindManga, "nope"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected catalog.ErrNotFound, got %v", err)
	}
}

func TestTrackingThroughDaemon(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	if created, err := d.CreateUser(ctx, "alice"); err != nil || !created {
		t.Fatalf("CreateUser = (%v, %v)", created, err)
	}
	if !d.UserExists("alice") {
		t.Fatal("alice should exist")
	}

	show, err := d.AddShow(ctx, catalog.KindAnime, "Demo Show", "", 12)
	if err != nil {
		t.Fatalf("AddShow: %v", err)
	}

	entry := userlist.Entry{
		Kind:     catalog.KindAnime,
		ShowID:   show.ID,
		Status:   userlist.StatusWatching,
		Progress: 0,
		Rating:   userlist.UnratedSentinel,
	}
	if added, err := d.AddEntry(ctx, "alice", entry); err != nil || !added {
		t.Fatalf("AddEntry = (%v, %v)", added, err)
	}
	if added, _ := d.AddEntry(ctx, "alice", entry); added {
		t.Fatal("duplicate AddEntry should report false")
	}

	if err := d.UpdateEntry(ctx, "alice", show.ID, catalog.KindAnime, userlist.StatusCompleted, 12, 9); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	got, err := d.GetEntry(ctx, "alice", show.ID, catalog.KindAnime)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got.Status != userlist.StatusCompleted || got.Progress != 12 || got.Rating != 9 {
		t.Fatalf("unexpected entry after update: %+v", got)
	}

	buckets, err := d.ListByStatus(ctx, catalog.KindAnime, "alice")
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if completed := buckets[userlist.StatusCompleted]; len(completed) != 1 {
		t.Fatalf("expected one completed entry, got %v", buckets)
	}

	if err := d.RemoveEntry(ctx, "alice", show.ID, catalog.KindAnime); err != nil {
		t.Fatalf("RemoveEntry: %v", err)
	}
	if _, err := d.GetEntry(ctx, "alice", show.ID, catalog.KindAnime); !errors.Is(err, userlist.ErrNotFound) {
		t.Fatalf("expected userlist.ErrNotFound after removal, got %v", err)
	}
}

func TestStatusCountsShows(t *testing.T) {
	d := newDaemon(t)
	ctx := context.Background()

	if _, err := d.AddShow(ctx, catalog.KindAnime, "A1", "", 12); err != nil {
		t.Fatalf("AddShow: %v", err)
	}
	if _, err := d.AddShow(ctx, catalog.KindAnime, "A2", "", 24); err != nil {
		t.Fatalf("AddShow: %v", err)
	}
	if _, err := d.AddShow(ctx, catalog.KindManga, "M1", "", 100); err != nil {
		t.Fatalf("AddShow: %v", err)
	}

	status := d.Status(ctx)
	if status.AnimeShows != 2 || status.MangaShows != 1 {
		t.Fatalf("unexpected show counts: %+v", status)
	}
	if status.PID <= 0 {
		t.Fatalf("status should carry the PID: %+v", status)
	}
	if status.SessionID == "" {
		t.Fatalf("status should carry a session id: %+v", status)
	}
}
