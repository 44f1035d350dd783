package testsupport

import (
	"context"
	"testing"

	"bingelog/internal/catalog"
	"bingelog/internal/config"
	"bingelog/internal/logging"
	"bingelog/internal/userlist"
)

// MustOpenCatalog opens a catalog store for tests.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.NewStore(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("catalog.NewStore: %v", err)
	}
	return store
}

// MustOpenLists opens a user-list store for tests, wiring it to the given
// catalog for reference repair.
func MustOpenLists(t testing.TB, cfg *config.Config, shows *catalog.Store) *userlist.Store {
	t.Helper()

	store, err := userlist.NewStore(cfg, shows, logging.NewNop())
	if err != nil {
		t.Fatalf("userlist.NewStore: %v", err)
	}
	return store
}

// SeedShow appends a show with a generated ID and returns the stored record.
func SeedShow(t testing.TB, store *catalog.Store, kind catalog.Kind, title string, totalUnits int) catalog.Show {
	t.Helper()

	show := catalog.Show{
		ID:         store.GenerateID(),
		Title:      title,
		TotalUnits: totalUnits,
		Kind:       kind,
	}
	if err := store.Add(context.Background(), show); err != nil {
		t.Fatalf("catalog.Add(%q): %v", title, err)
	}
	return show
}
