package userlist

import (
	"strings"

	"golang.org/x/text/cases"

	"bingelog/internal/catalog"
)

// resolution is the outcome of the pure repair pass over a user file.
type resolution struct {
	// entries holds every parseable entry of the requested kind, with
	// repaired show IDs substituted. Entries with statuses outside the
	// kind's vocabulary are included; bucketing drops them later.
	entries []Entry
	// lines is the full rewritten file content, lines of other kinds and
	// unparseable lines passed through byte-identical.
	lines []string
	// dirty reports whether any reference was rewritten.
	dirty bool
}

// resolveEntries walks the non-blank lines of a user file and repairs
// entries of the requested kind whose stored reference matches no catalog
// ID. Old schema versions stored a display title in the reference field;
// the repair resolves it against the catalog by fuzzy title match so old
// files stay usable without an explicit migration.
//
// The function is pure: it never touches the filesystem.
func resolveEntries(lines []string, kind catalog.Kind, shows []catalog.Show) resolution {
	ids := make(map[string]struct{}, len(shows))
	for _, show := range shows {
		ids[show.ID] = struct{}{}
	}

	result := resolution{lines: make([]string, 0, len(lines))}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := ParseEntry(line)
		if err != nil || entry.Kind != kind {
			result.lines = append(result.lines, line)
			continue
		}

		if _, known := ids[entry.ShowID]; !known {
			if resolved, ok := resolveTitle(entry.ShowID, shows); ok {
				entry.ShowID = resolved
			}
		}

		result.entries = append(result.entries, entry)
		repaired := entry.Record()
		if repaired != line && entryChanged(line, entry) {
			result.lines = append(result.lines, repaired)
			result.dirty = true
		} else {
			result.lines = append(result.lines, line)
		}
	}
	return result
}

// entryChanged reports whether the entry's reference differs from the one
// stored on the line. Lines that merely parse leniently (legacy four-field
// form, unparseable numerics) are left untouched unless the reference was
// repaired.
func entryChanged(line string, entry Entry) bool {
	parts := strings.Split(line, "|")
	return len(parts) >= 2 && parts[1] != entry.ShowID
}

// resolveTitle attempts to interpret a stale reference as a show title.
// Tested in order: exact caseless match, caseless match with a leading
// "The " prefix, caseless substring containment in a catalog title. The
// first hit wins.
func resolveTitle(reference string, shows []catalog.Show) (string, bool) {
	candidate := fold(strings.TrimSpace(reference))
	if candidate == "" {
		return "", false
	}
	withThe := fold("The ") + candidate

	for _, show := range shows {
		title := fold(strings.TrimSpace(show.Title))
		if title == candidate || title == withThe || strings.Contains(title, candidate) {
			return show.ID, true
		}
	}
	return "", false
}

// fold normalizes a string for caseless comparison using Unicode case
// folding, which handles titles beyond ASCII better than ToLower.
func fold(s string) string {
	return cases.Fold().String(s)
}
