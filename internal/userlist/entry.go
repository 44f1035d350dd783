package userlist

import (
	"fmt"
	"strconv"
	"strings"

	"bingelog/internal/catalog"
)

// Status values for anime entries.
const (
	StatusWatching    = "Watching"
	StatusCompleted   = "Completed"
	StatusPlanToWatch = "Plan to Watch"
	StatusDropped     = "Dropped"
)

// Status values specific to manga entries.
const (
	StatusReading    = "Reading"
	StatusPlanToRead = "Plan to Read"
)

// UnratedSentinel marks an entry the user has not rated.
const UnratedSentinel = -1

var (
	animeStatuses = []string{StatusWatching, StatusCompleted, StatusPlanToWatch, StatusDropped}
	mangaStatuses = []string{StatusReading, StatusCompleted, StatusPlanToRead, StatusDropped}
)

// StatusesFor returns the closed status vocabulary for the kind, in
// display order.
func StatusesFor(kind catalog.Kind) []string {
	if kind == catalog.KindManga {
		return append([]string(nil), mangaStatuses...)
	}
	return append([]string(nil), animeStatuses...)
}

// ValidStatus reports whether status belongs to the kind's vocabulary.
func ValidStatus(kind catalog.Kind, status string) bool {
	for _, known := range StatusesFor(kind) {
		if known == status {
			return true
		}
	}
	return false
}

// Entry is one user's tracking record for one catalog show.
type Entry struct {
	Kind   catalog.Kind
	ShowID string
	Status string
	// Progress counts consumed units; calling code keeps it within
	// [0, TotalUnits] of the referenced show, the store does not.
	Progress int
	// Rating is 0-10, or UnratedSentinel when the user has not rated.
	Rating int
}

// Record serializes the entry into its on-disk line form:
//
//	KIND|showId|status|progress|rating
func (e Entry) Record() string {
	return strings.Join([]string{
		string(e.Kind),
		e.ShowID,
		e.Status,
		strconv.Itoa(e.Progress),
		strconv.Itoa(e.Rating),
	}, "|")
}

// ParseEntry decodes one user-list line. The legacy four-field form without
// a rating is accepted, defaulting to UnratedSentinel. Numeric fields are
// read leniently: a bad progress reads as 0, a bad rating as unrated.
func ParseEntry(line string) (Entry, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 4 {
		return Entry{}, fmt.Errorf("user-list line has %d fields, want at least 4", len(parts))
	}
	kind, err := catalog.ParseKind(parts[0])
	if err != nil {
		return Entry{}, fmt.Errorf("user-list line: %w", err)
	}

	progress, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		progress = 0
	}
	rating := UnratedSentinel
	if len(parts) >= 5 {
		if parsed, err := strconv.Atoi(strings.TrimSpace(parts[4])); err == nil {
			rating = parsed
		}
	}

	return Entry{
		Kind:     kind,
		ShowID:   parts[1],
		Status:   parts[2],
		Progress: progress,
		Rating:   rating,
	}, nil
}
