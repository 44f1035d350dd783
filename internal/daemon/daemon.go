package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"bingelog/internal/catalog"
	"bingelog/internal/config"
	"bingelog/internal/imagecache"
	"bingelog/internal/logging"
	"bingelog/internal/userlist"
)

// Daemon owns the stores and the image cache and enforces
// single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger

	catalog *catalog.Store
	lists   *userlist.Store
	images  *imagecache.Cache

	lockPath  string
	lock      *flock.Flock
	sessionID string

	running atomic.Bool
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	SessionID    string
	DataDir      string
	UsersDir     string
	LockFilePath string
	AnimeShows   int
	MangaShows   int
}

// New constructs a daemon with initialized stores and image cache.
func New(cfg *config.Config, logger *slog.Logger, cacheOpts ...imagecache.Option) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	shows, err := catalog.NewStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open catalog store: %w", err)
	}
	lists, err := userlist.NewStore(cfg, shows, logger)
	if err != nil {
		return nil, fmt.Errorf("open user list store: %w", err)
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "daemon"),
		catalog:   shows,
		lists:     lists,
		images:    imagecache.New(cfg, logger, cacheOpts...),
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
		sessionID: uuid.NewString(),
	}, nil
}

// Start acquires the daemon lock. The lock is what guarantees the
// single-writer assumption the flat-file stores rely on.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another bingelog daemon instance is already running")
	}

	d.running.Store(true)
	d.logger.InfoContext(ctx, "bingelog daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("bingelog daemon stopped")
}

// Close stops the daemon and shuts down the image cache workers.
func (d *Daemon) Close() error {
	d.Stop()
	if d.images != nil {
		d.images.Close()
	}
	return nil
}

// Images exposes the cover art cache.
func (d *Daemon) Images() *imagecache.Cache {
	return d.images
}

// CreateUser registers a new user. It reports false when the username is
// already taken.
func (d *Daemon) CreateUser(ctx context.Context, username string) (bool, error) {
	return d.lists.CreateUser(ctx, username)
}

// UserExists reports whether the user is registered.
func (d *Daemon) UserExists(username string) bool {
	return d.lists.UserExists(username)
}

// AddShow assigns a fresh ID and appends the show to the catalog.
func (d *Daemon) AddShow(ctx context.Context, kind catalog.Kind, title, imageURL string, totalUnits int) (catalog.Show, error) {
	show := catalog.Show{
		ID:         d.catalog.GenerateID(),
		Kind:       kind,
		Title:      strings.TrimSpace(title),
		ImageURL:   strings.TrimSpace(imageURL),
		TotalUnits: totalUnits,
	}
	if err := d.catalog.Add(ctx, show); err != nil {
		return catalog.Show{}, err
	}
	return show, nil
}

// ListShows returns every catalog show of the kind.
func (d *Daemon) ListShows(ctx context.Context, kind catalog.Kind) ([]catalog.Show, error) {
	return d.catalog.All(ctx, kind)
}

// GetShow looks up one catalog show by ID.
func (d *Daemon) GetShow(ctx context.Context, kind catalog.Kind, id string) (catalog.Show, error) {
	return d.catalog.FindByID(ctx, kind, id)
}

// AddEntry adds a show to the user's list, reporting false on duplicates.
func (d *Daemon) AddEntry(ctx context.Context, username string, entry userlist.Entry) (bool, error) {
	return d.lists.Add(ctx, username, entry)
}

// UpdateEntry replaces the tracked state of one list entry.
func (d *Daemon) UpdateEntry(ctx context.Context, username, showID string, kind catalog.Kind, status string, progress, rating int) error {
	return d.lists.Update(ctx, username, showID, kind, status, progress, rating)
}

// RemoveEntry deletes one entry from the user's list.
func (d *Daemon) RemoveEntry(ctx context.Context, username, showID string, kind catalog.Kind) error {
	return d.lists.Remove(ctx, username, showID, kind)
}

// GetEntry returns one entry from the user's list.
func (d *Daemon) GetEntry(ctx context.Context, username, showID string, kind catalog.Kind) (userlist.Entry, error) {
	return d.lists.Get(ctx, username, showID, kind)
}

// ListByStatus returns the user's entries of the kind grouped by status,
// repairing stale show references along the way.
func (d *Daemon) ListByStatus(ctx context.Context, kind catalog.Kind, username string) (map[string][]userlist.Entry, error) {
	return d.lists.ListByStatus(ctx, kind, username)
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		SessionID:    d.sessionID,
		DataDir:      d.cfg.Paths.DataDir,
		UsersDir:     d.cfg.Paths.UsersDir,
		LockFilePath: d.lockPath,
	}
	if shows, err := d.catalog.All(ctx, catalog.KindAnime); err == nil {
		status.AnimeShows = len(shows)
	}
	if shows, err := d.catalog.All(ctx, catalog.KindManga); err == nil {
		status.MangaShows = len(shows)
	}
	return status
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.cfg.LogFilePath()
}
