package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/google/uuid"

	"bingelog/internal/config"
	"bingelog/internal/fileutil"
	"bingelog/internal/logging"
)

// ErrNotFound is returned by FindByID when no catalog record matches.
var ErrNotFound = errors.New("catalog: show not found")

// Store provides durable, append-only persistence of shows per kind.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore builds a catalog store rooted at the configured data directory.
func NewStore(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("catalog: store requires config")
	}
	dir := strings.TrimSpace(cfg.Paths.DataDir)
	if dir == "" {
		return nil, errors.New("catalog: data directory not configured")
	}
	return &Store{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}, nil
}

// GenerateID produces a statistically unique identifier for a new show.
// There is no collision check against existing records; the UUID space
// makes that an accepted risk.
func (s *Store) GenerateID() string {
	return uuid.NewString()
}

// Path returns the flat file backing the given kind.
func (s *Store) Path(kind Kind) string {
	if kind == KindManga {
		return filepath.Join(s.dir, "manga_catalog.txt")
	}
	return filepath.Join(s.dir, "anime_catalog.txt")
}

// Add validates and appends one show record. Partial writes are not rolled
// back; the catalog file is append-only and a torn trailing line surfaces
// as a skipped parse on the next read.
func (s *Store) Add(ctx context.Context, show Show) error {
	if strings.TrimSpace(show.ID) == "" {
		return errors.New("catalog: show id must not be empty")
	}
	if strings.TrimSpace(show.Title) == "" {
		return errors.New("catalog: title must not be empty")
	}
	if show.TotalUnits < 0 {
		return fmt.Errorf("catalog: total units must not be negative, got %d", show.TotalUnits)
	}
	if strings.ContainsRune(show.Title, '|') || strings.ContainsRune(show.ImageURL, '|') {
		return errors.New("catalog: fields must not contain the field separator")
	}

	if err := fileutil.AppendLine(s.Path(show.Kind), show.Record()); err != nil {
		return fmt.Errorf("catalog: append show: %w", err)
	}
	s.logger.InfoContext(ctx, "added show",
		logging.String(logging.FieldKind, string(show.Kind)),
		logging.String(logging.FieldShowID, show.ID),
		logging.String("title", show.Title),
	)
	return nil
}

// All reads every record of the kind, top to bottom. Blank lines are
// ignored and malformed lines are skipped with a warning; a missing file
// reads as an empty catalog.
func (s *Store) All(ctx context.Context, kind Kind) ([]Show, error) {
	path := s.Path(kind)
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s catalog: %w", kind, err)
	}

	shows := make([]Show, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		show, err := ParseShow(kind, line)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping malformed catalog line",
				logging.String(logging.FieldPath, path),
				logging.Int("line", i+1),
				logging.Error(err),
			)
			continue
		}
		shows = append(shows, show)
	}
	return shows, nil
}

// FindByID scans the kind's catalog for the given identifier.
func (s *Store) FindByID(ctx context.Context, kind Kind, id string) (Show, error) {
	shows, err := s.All(ctx, kind)
	if err != nil {
		return Show{}, err
	}
	for _, show := range shows {
		if show.ID == id {
			return show, nil
		}
	}
	return Show{}, fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}
