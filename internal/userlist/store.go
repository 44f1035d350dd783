package userlist

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"log/slog"

	"bingelog/internal/catalog"
	"bingelog/internal/config"
	"bingelog/internal/fileutil"
	"bingelog/internal/logging"
)

// ErrNotFound is returned when a membership entry (or the user file backing
// it) does not exist.
var ErrNotFound = errors.New("userlist: entry not found")

// Store provides per-user membership persistence, one flat file per user.
//
// The store performs synchronous, blocking file IO with no internal
// locking: the daemon is the single writer by design, guarded by its
// instance lock. Concurrent external writers can corrupt user files; that
// is an accepted constraint, not something the store defends against.
type Store struct {
	dir     string
	catalog *catalog.Store
	logger  *slog.Logger
}

// NewStore builds a user-list store rooted at the configured users
// directory. The catalog store is required for reference repair.
func NewStore(cfg *config.Config, shows *catalog.Store, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("userlist: store requires config")
	}
	if shows == nil {
		return nil, errors.New("userlist: store requires catalog store")
	}
	dir := strings.TrimSpace(cfg.Paths.UsersDir)
	if dir == "" {
		return nil, errors.New("userlist: users directory not configured")
	}
	return &Store{
		dir:     dir,
		catalog: shows,
		logger:  logging.NewComponentLogger(logger, "userlist"),
	}, nil
}

// userPath maps a username to its backing file, rejecting names that would
// escape the users directory.
func (s *Store) userPath(username string) (string, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return "", errors.New("userlist: username must not be empty")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("userlist: invalid username %q", username)
	}
	return filepath.Join(s.dir, name+".txt"), nil
}

// UserExists reports whether the user has a backing file. An empty file is
// a valid, empty list.
func (s *Store) UserExists(username string) bool {
	path, err := s.userPath(username)
	if err != nil {
		return false
	}
	return fileutil.Exists(path)
}

// CreateUser creates an empty list file for the user. It returns false
// without touching anything when the user already exists; file presence is
// the sole uniqueness guarantee for usernames.
func (s *Store) CreateUser(ctx context.Context, username string) (bool, error) {
	path, err := s.userPath(username)
	if err != nil {
		return false, err
	}
	created, err := fileutil.Touch(path)
	if err != nil {
		return false, fmt.Errorf("userlist: create user: %w", err)
	}
	if created {
		s.logger.InfoContext(ctx, "created user", logging.String(logging.FieldUser, username))
	}
	return created, nil
}

// Add appends the entry unless the user already tracks (kind, showID).
// It returns false for duplicates, leaving the file untouched. The file is
// created first if missing.
//
// The duplicate check and the append are two steps, not one atomic
// operation. That is acceptable under the single-writer daemon; it is not
// safe against concurrent external writers.
func (s *Store) Add(ctx context.Context, username string, entry Entry) (bool, error) {
	path, err := s.userPath(username)
	if err != nil {
		return false, err
	}
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return false, fmt.Errorf("userlist: read user file: %w", err)
	}
	if findEntryLine(lines, entry.Kind, entry.ShowID) >= 0 {
		return false, nil
	}
	if err := fileutil.AppendLine(path, entry.Record()); err != nil {
		return false, fmt.Errorf("userlist: append entry: %w", err)
	}
	s.logger.InfoContext(ctx, "added entry",
		logging.String(logging.FieldUser, username),
		logging.String(logging.FieldKind, string(entry.Kind)),
		logging.String(logging.FieldShowID, entry.ShowID),
		logging.String("status", entry.Status),
	)
	return true, nil
}

// Update rewrites the user file, replacing the one line matching
// (kind, showID) with the new serialization and leaving every other line
// byte-identical. The rewrite goes through a temp file and rename so the
// original survives a failure mid-write.
func (s *Store) Update(ctx context.Context, username, showID string, kind catalog.Kind, status string, progress, rating int) error {
	path, err := s.userPath(username)
	if err != nil {
		return err
	}
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return fmt.Errorf("userlist: read user file: %w", err)
	}
	index := findEntryLine(lines, kind, showID)
	if index < 0 {
		return fmt.Errorf("%w: %s %s for %s", ErrNotFound, kind, showID, username)
	}

	updated := Entry{Kind: kind, ShowID: showID, Status: status, Progress: progress, Rating: rating}
	lines[index] = updated.Record()
	if err := fileutil.WriteLinesAtomic(path, lines); err != nil {
		return fmt.Errorf("userlist: rewrite user file: %w", err)
	}
	s.logger.InfoContext(ctx, "updated entry",
		logging.String(logging.FieldUser, username),
		logging.String(logging.FieldKind, string(kind)),
		logging.String(logging.FieldShowID, showID),
		logging.String("status", status),
	)
	return nil
}

// Remove rewrites the user file omitting the one line matching
// (kind, showID), preserving the relative order of everything else.
func (s *Store) Remove(ctx context.Context, username, showID string, kind catalog.Kind) error {
	path, err := s.userPath(username)
	if err != nil {
		return err
	}
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return fmt.Errorf("userlist: read user file: %w", err)
	}
	index := findEntryLine(lines, kind, showID)
	if index < 0 {
		return fmt.Errorf("%w: %s %s for %s", ErrNotFound, kind, showID, username)
	}

	remaining := append(append([]string(nil), lines[:index]...), lines[index+1:]...)
	if err := fileutil.WriteLinesAtomic(path, remaining); err != nil {
		return fmt.Errorf("userlist: rewrite user file: %w", err)
	}
	s.logger.InfoContext(ctx, "removed entry",
		logging.String(logging.FieldUser, username),
		logging.String(logging.FieldKind, string(kind)),
		logging.String(logging.FieldShowID, showID),
	)
	return nil
}

// Get returns the first entry matching (kind, showID) via linear scan, or
// ErrNotFound. A missing user file reads as not found, not as an IO error.
func (s *Store) Get(ctx context.Context, username, showID string, kind catalog.Kind) (Entry, error) {
	path, err := s.userPath(username)
	if err != nil {
		return Entry{}, err
	}
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return Entry{}, fmt.Errorf("userlist: read user file: %w", err)
	}
	if index := findEntryLine(lines, kind, showID); index >= 0 {
		entry, err := ParseEntry(lines[index])
		if err != nil {
			return Entry{}, fmt.Errorf("userlist: parse entry: %w", err)
		}
		return entry, nil
	}
	return Entry{}, fmt.Errorf("%w: %s %s for %s", ErrNotFound, kind, showID, username)
}

// ListByStatus returns the user's entries of the kind, grouped by status.
// Every status in the kind's vocabulary is present as a key, possibly with
// an empty bucket; entries carrying a status outside the vocabulary are
// omitted from the result but preserved on disk.
//
// Entries whose stored reference is not a current catalog ID are repaired
// by fuzzy title resolution, and a repaired file is persisted best-effort:
// a persistence failure is logged and the corrected in-memory result is
// returned regardless.
func (s *Store) ListByStatus(ctx context.Context, kind catalog.Kind, username string) (map[string][]Entry, error) {
	buckets := make(map[string][]Entry, 4)
	for _, status := range StatusesFor(kind) {
		buckets[status] = []Entry{}
	}

	path, err := s.userPath(username)
	if err != nil {
		return nil, err
	}
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("userlist: read user file: %w", err)
	}
	if lines == nil {
		return buckets, nil
	}

	shows, err := s.catalog.All(ctx, kind)
	if err != nil {
		return nil, err
	}

	result := resolveEntries(lines, kind, shows)
	for _, entry := range result.entries {
		if _, known := buckets[entry.Status]; !known {
			s.logger.DebugContext(ctx, "dropping entry with unrecognized status",
				logging.String(logging.FieldUser, username),
				logging.String(logging.FieldShowID, entry.ShowID),
				logging.String("status", entry.Status),
			)
			continue
		}
		buckets[entry.Status] = append(buckets[entry.Status], entry)
	}

	if result.dirty {
		if err := fileutil.WriteLinesAtomic(path, result.lines); err != nil {
			s.logger.WarnContext(ctx, "failed to persist repaired references",
				logging.String(logging.FieldUser, username),
				logging.Error(err),
			)
		} else {
			s.logger.InfoContext(ctx, "repaired stale references",
				logging.String(logging.FieldUser, username),
				logging.String(logging.FieldKind, string(kind)),
			)
		}
	}
	return buckets, nil
}

// findEntryLine locates the first line keyed by (kind, showID). Only the
// first two fields participate in the match; they are the entry's
// identity. The kind field is compared after parsing, so a line with an
// off-canonical kind spelling is found by the same key that buckets it.
func findEntryLine(lines []string, kind catalog.Kind, showID string) int {
	for i, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) < 2 || parts[1] != showID {
			continue
		}
		lineKind, err := catalog.ParseKind(parts[0])
		if err != nil || lineKind != kind {
			continue
		}
		return i
	}
	return -1
}
