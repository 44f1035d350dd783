package api

import (
	"bingelog/internal/catalog"
	"bingelog/internal/userlist"
)

// FromShow converts a catalog record to its API representation.
func FromShow(show catalog.Show) ShowView {
	return ShowView{
		ID:         show.ID,
		Kind:       string(show.Kind),
		Title:      show.Title,
		ImageURL:   show.ImageURL,
		TotalUnits: show.TotalUnits,
	}
}

// FromShows converts a slice of catalog records into API DTOs.
func FromShows(shows []catalog.Show) []ShowView {
	if len(shows) == 0 {
		return nil
	}
	out := make([]ShowView, 0, len(shows))
	for _, show := range shows {
		out = append(out, FromShow(show))
	}
	return out
}

// FromEntry converts a list entry, attaching the catalog show when the
// index resolves its reference.
func FromEntry(entry userlist.Entry, shows map[string]catalog.Show) EntryView {
	view := EntryView{
		Kind:     string(entry.Kind),
		ShowID:   entry.ShowID,
		Status:   entry.Status,
		Progress: entry.Progress,
		Rating:   entry.Rating,
	}
	if show, ok := shows[entry.ShowID]; ok {
		s := FromShow(show)
		view.Show = &s
	}
	return view
}

// IndexShows builds an ID lookup over catalog records.
func IndexShows(shows []catalog.Show) map[string]catalog.Show {
	if len(shows) == 0 {
		return nil
	}
	index := make(map[string]catalog.Show, len(shows))
	for _, show := range shows {
		index[show.ID] = show
	}
	return index
}

// GroupsFromBuckets flattens status buckets into the canonical status
// order for the kind. Every status appears, even with no entries.
func GroupsFromBuckets(kind catalog.Kind, buckets map[string][]userlist.Entry, shows map[string]catalog.Show) []StatusGroup {
	statuses := userlist.StatusesFor(kind)
	groups := make([]StatusGroup, 0, len(statuses))
	for _, status := range statuses {
		entries := buckets[status]
		views := make([]EntryView, 0, len(entries))
		for _, entry := range entries {
			views = append(views, FromEntry(entry, shows))
		}
		groups = append(groups, StatusGroup{Status: status, Entries: views})
	}
	return groups
}
