package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates anime from manga records. The two share structure but
// have distinct status vocabularies and progress units (episodes vs
// chapters).
type Kind string

const (
	KindAnime Kind = "ANIME"
	KindManga Kind = "MANGA"
)

// Kinds lists all known record kinds.
func Kinds() []Kind {
	return []Kind{KindAnime, KindManga}
}

// ParseKind normalizes a kind string. It accepts any casing.
func ParseKind(value string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(KindAnime), "A":
		return KindAnime, nil
	case string(KindManga), "M":
		return KindManga, nil
	default:
		return "", fmt.Errorf("unknown kind %q", value)
	}
}

// Units returns the progress noun for the kind.
func (k Kind) Units() string {
	if k == KindManga {
		return "chapters"
	}
	return "episodes"
}

// Show is one immutable catalog record.
type Show struct {
	ID       string
	Title    string
	ImageURL string
	// TotalUnits is the episode or chapter count and the upper bound for a
	// user's progress against this show.
	TotalUnits int
	Kind       Kind
}

const showFieldCount = 4

// Record serializes the show into its on-disk line form:
//
//	id|title|imageUrl|totalUnits
func (s Show) Record() string {
	return strings.Join([]string{
		s.ID,
		s.Title,
		s.ImageURL,
		strconv.Itoa(s.TotalUnits),
	}, "|")
}

// ParseShow decodes one catalog line. Wrong field counts and non-numeric
// unit counts are parse errors; the store decides whether to surface or
// skip them.
func ParseShow(kind Kind, line string) (Show, error) {
	parts := strings.Split(line, "|")
	if len(parts) != showFieldCount {
		return Show{}, fmt.Errorf("catalog line has %d fields, want %d", len(parts), showFieldCount)
	}
	total, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return Show{}, fmt.Errorf("catalog line has non-numeric unit count %q", parts[3])
	}
	if total < 0 {
		return Show{}, fmt.Errorf("catalog line has negative unit count %d", total)
	}
	return Show{
		ID:         parts[0],
		Title:      parts[1],
		ImageURL:   parts[2],
		TotalUnits: total,
		Kind:       kind,
	}, nil
}
