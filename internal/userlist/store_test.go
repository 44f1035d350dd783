package userlist_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bingelog/internal/catalog"
	"bingelog/internal/testsupport"
	"bingelog/internal/userlist"
)

func TestCreateUserAndExists(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lists := testsupport.MustOpenLists(t, cfg, testsupport.MustOpenCatalog(t, cfg))
	ctx := context.Background()

	if lists.UserExists("alice") {
		t.Fatal("alice should not exist yet")
	}
	created, err := lists.CreateUser(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !created {
		t.Fatal("expected first CreateUser to succeed")
	}
	if !lists.UserExists("alice") {
		t.Fatal("alice should exist after creation")
	}

	created, err = lists.CreateUser(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateUser (second): %v", err)
	}
	if created {
		t.Fatal("expected duplicate CreateUser to return false")
	}
}

func TestCreateUserRejectsUnsafeNames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lists := testsupport.MustOpenLists(t, cfg, testsupport.MustOpenCatalog(t, cfg))
	ctx := context.Background()

	for _, name := range []string{"", "  ", "..", "a/b", `a\b`} {
		if _, err := lists.CreateUser(ctx, name); err == nil {
			t.Errorf("expected error for username %q", name)
		}
	}
}

func TestLenientKindSpellingMatchesSameKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lists := testsupport.MustOpenLists(t, cfg, testsupport.MustOpenCatalog(t, cfg))
	ctx := context.Background()

	// A hand-edited file may carry off-canonical kind spellings; the same
	// key that parses the line must also find it.
	testsupport.WriteUserFile(t, cfg, "alice",
		"anime|a1|Watching|3|7",
		"MANGA|m1|Reading|10|-1",
	)

	got, err := lists.Get(ctx, "alice", "a1", catalog.KindAnime)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Progress != 3 || got.Rating != 7 {
		t.Fatalf("unexpected entry: %+v", got)
	}

	if err := lists.Update(ctx, "alice", "a1", catalog.KindAnime, userlist.StatusCompleted, 12, 9); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := lists.Remove(ctx, "alice", "a1", catalog.KindAnime); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	content := testsupport.ReadUserFile(t, cfg, "alice")
	if strings.Contains(content, "a1") || !strings.Contains(content, "m1") {
		t.Fatalf("unexpected file after remove: %q", content)
	}
}

func TestAddThenGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lists := testsupport.MustOpenLists(t, cfg, testsupport.MustOpenCatalog(t, cfg))
	ctx := context.Background()

	entry := userlist.Entry{
		Kind:     catalog.KindAnime,
		ShowID:   "a1",
		Status:   userlist.StatusWatching,
		Progress: 3,
		Rating:   userlist.UnratedSentinel,
	}
	added, err := lists.Add(ctx, "alice", entry)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added {
		t.Fatal("expected Add to report true")
	}

	got, err := lists.Get(ctx, "alice", "a1", catalog.KindAnime)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != entry {
		t.Fatalf("Get mismatch: %+v != %+v", got, entry)
	}
}

func TestAddDuplicateIsRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lists := testsupport.MustOpenLists(t, cfg, testsupport.MustOpenCatalog(t, cfg))
	ctx := context.Background()

	entry := userlist.Entry{Kind: catalog.KindAnime, ShowID: "a1", Status: userlist.StatusWatching, Rating: -1}
	if added, err := lists.Add(ctx, "alice", entry); err != nil || !added {
		t.Fatalf("first Add = (%v, %v), want (true, nil)", added, err)
	}

	// Same key with different payload still counts as a duplicate.
	entry.Status = userlist.StatusCompleted
	entry.Progress = 12
	added, err := lists.Add(ctx, "alice", entry)
	if err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if added {
		t.Fatal("expected duplicate Add to report false")
	}

	content := testsupport.ReadUserFile(t, cfg, "alice")
	if strings.Count(content, "ANIME|a1|") != 1 {
		t.Fatalf("expected exactly one matching line, file:\n%s", content)
	}
	if !strings.Contains(content, "|Watching|") {
		t.Fatalf("duplicate add must not mutate the original line, file:\n%s", content)
	}
}

func TestSameShowDifferentKindsAreDistinct(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lists := testsupport.MustOpenLists(t, cfg, testsupport.MustOpenCatalog(t, cfg))
	ctx := context.Background()

	if added, _ := lists.Add(ctx, "alice", userlist.Entry{Kind: catalog.KindAnime, ShowID: "x1", Status: userlist.StatusWatching, Rating: -1}); !added {
		t.Fatal("anime add failed")
	}
	added, err := lists.Add(ctx, "alice", userlist.Entry{Kind: catalog.KindManga, ShowID: "x1", Status: userlist.StatusReading, Rating: -1})
	if err != nil {
		t.Fatalf("manga Add: %v", err)
	}
	if !added {
		t.Fatal("same show id under a different kind must not be a duplicate")
	}
}

func TestUpdateChangesOnlyTargetLine(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	catalogStore := testsupport.MustOpenCatalog(t, cfg)
	lists := testsupport.MustOpenLists(t, cfg, catalogStore)
	ctx := context.Background()

	entries := []userlist.Entry{
		{Kind: catalog.KindAnime, ShowID: "a1", Status: userlist.StatusWatching, Progress: 1, Rating: -1},
		{Kind: catalog.KindAnime, ShowID: "a2", Status: userlist.StatusDropped, Progress: 2, Rating: 4},
		{Kind: catalog.KindManga, ShowID: "m1", Status: userlist.StatusReading, Progress: 9, Rating: -1},
	}
	for _, e := range entries {
		if added, err := lists.Add(ctx, "alice", e); err != nil || !added {
			t.Fatalf("Add(%+v) = (%v, %v)", e, added, err)
		}
	}
	before := strings.Split(testsupport.ReadUserFile(t, cfg, "alice"), "\n")

	if err := lists.Update(ctx, "alice", "a2", catalog.KindAnime, userlist.StatusCompleted, 12, 9); err != nil {
		t.Fatalf("Update: %v", err)
	}

	after := strings.Split(testsupport.ReadUserFile(t, cfg, "alice"), "\n")
	if len(after) != len(before) {
		t.Fatalf("line count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if strings.HasPrefix(before[i], "ANIME|a2|") {
			if after[i] != "ANIME|a2|Completed|12|9" {
				t.Fatalf("unexpected rewritten line: %q", after[i])
			}
			continue
		}
		if after[i] != before[i] {
			t.Fatalf("untouched line %d changed: %q -> %q", i, before[i], after[i])
		}
	}
}

func TestUpdateMissingEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lists := testsupport.MustOpenLists(t, cfg, testsupport.MustOpenCatalog(t, cfg))
	ctx := context.Background()

	err := lists.Update(ctx, "alice", "ghost", catalog.KindAnime, userlist.StatusCompleted, 1, -1)
	if !errors.Is(err, userlist.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lists := testsupport.MustOpenLists(t, cfg, testsupport.MustOpenCatalog(t, cfg))
	ctx := context.Background()

	for _, id := range []string{"a1", "a2", "a3"} {
		if added, err := lists.Add(ctx, "alice", userlist.Entry{Kind: catalog.KindAnime, ShowID: id, Status: userlist.StatusWatching, Rating: -1}); err != nil || !added {
			t.Fatalf("Add(%s) = (%v, %v)", id, added, err)
		}
	}

	if err := lists.Remove(ctx, "alice", "a2", catalog.KindAnime); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if _, err := lists.Get(ctx, "alice", "a2", catalog.KindAnime); !errors.Is(err, userlist.ErrNotFound) {
		t.Fatalf("expected removed entry to be gone, got %v", err)
	}
	for _, id := range []string{"a1", "a3"} {
		if _, err := lists.Get(ctx, "alice", id, catalog.KindAnime); err != nil {
			t.Fatalf("entry %s should survive removal: %v", id, err)
		}
	}

	if err := lists.Remove(ctx, "alice", "a2", catalog.KindAnime); !errors.Is(err, userlist.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double remove, got %v", err)
	}
}

func TestGetMissingUserReadsAsNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lists := testsupport.MustOpenLists(t, cfg, testsupport.MustOpenCatalog(t, cfg))

	_, err := lists.Get(context.Background(), "nobody", "a1", catalog.KindAnime)
	if !errors.Is(err, userlist.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTrackingScenario(t *testing.T) {
	// Catalog has one anime; alice adds it, watches it through, rates it.
	cfg := testsupport.NewConfig(t)
	catalogStore := testsupport.MustOpenCatalog(t, cfg)
	lists := testsupport.MustOpenLists(t, cfg, catalogStore)
	ctx := context.Background()

	if err := catalogStore.Add(ctx, catalog.Show{ID: "a1", Title: "Demo Show", TotalUnits: 12, Kind: catalog.KindAnime}); err != nil {
		t.Fatalf("catalog.Add: %v", err)
	}

	added, err := lists.Add(ctx, "alice", userlist.Entry{
		Kind: catalog.KindAnime, ShowID: "a1", Status: userlist.StatusWatching, Progress: 0, Rating: -1,
	})
	if err != nil || !added {
		t.Fatalf("Add = (%v, %v), want (true, nil)", added, err)
	}

	if err := lists.Update(ctx, "alice", "a1", catalog.KindAnime, userlist.StatusCompleted, 12, 9); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := lists.Get(ctx, "alice", "a1", catalog.KindAnime)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != userlist.StatusCompleted || got.Progress != 12 || got.Rating != 9 {
		t.Fatalf("unexpected entry after update: %+v", got)
	}
}

func TestProgressMayReachTotalWithoutCompletion(t *testing.T) {
	// The "mark completed" prompt is a UI concern; the store accepts
	// progress == total with any status.
	cfg := testsupport.NewConfig(t)
	catalogStore := testsupport.MustOpenCatalog(t, cfg)
	lists := testsupport.MustOpenLists(t, cfg, catalogStore)
	ctx := context.Background()

	testsupport.SeedShow(t, catalogStore, catalog.KindAnime, "Short", 1)
	if added, err := lists.Add(ctx, "alice", userlist.Entry{Kind: catalog.KindAnime, ShowID: "s1", Status: userlist.StatusWatching, Progress: 1, Rating: -1}); err != nil || !added {
		t.Fatalf("Add = (%v, %v)", added, err)
	}
	got, err := lists.Get(ctx, "alice", "s1", catalog.KindAnime)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != userlist.StatusWatching || got.Progress != 1 {
		t.Fatalf("unexpected entry: %+v", got)
	}
}
