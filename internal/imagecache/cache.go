package imagecache

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"bingelog/internal/config"
	"bingelog/internal/logging"
)

// FetchFunc retrieves the raw bytes behind an image URL.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// Dispatcher runs delivery callbacks. A GUI front end supplies one that
// marshals onto its event thread; the default runs the callback inline
// on the worker goroutine.
type Dispatcher func(fn func())

type job struct {
	url    string
	width  int
	height int
}

// Cache is a concurrent image cache backed by a fixed worker pool.
type Cache struct {
	logger   *slog.Logger
	fetch    FetchFunc
	dispatch Dispatcher
	timeout  time.Duration

	mu     sync.RWMutex
	images map[string]image.Image
	// waiters holds the deliver callbacks of every Get that arrived while
	// the URL's download is in flight. Presence of a key marks the URL as
	// in flight even when no caller asked to be notified.
	waiters map[string][]func(image.Image)
	closed  bool

	jobs chan job
	wg   sync.WaitGroup
}

// Option adjusts Cache construction.
type Option func(*Cache)

// WithFetchFunc replaces the HTTP fetcher.
func WithFetchFunc(fn FetchFunc) Option {
	return func(c *Cache) {
		c.fetch = fn
	}
}

// WithDispatcher replaces the delivery dispatcher.
func WithDispatcher(fn Dispatcher) Option {
	return func(c *Cache) {
		c.dispatch = fn
	}
}

// New builds a cache and starts its worker pool.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Cache {
	workers := cfg.ImageCache.Workers
	if workers < 1 {
		workers = 1
	}
	c := &Cache{
		logger:   logging.NewComponentLogger(logger, "imagecache"),
		timeout:  time.Duration(cfg.ImageCache.FetchTimeoutSeconds) * time.Second,
		images:   make(map[string]image.Image),
		waiters:  make(map[string][]func(image.Image)),
		jobs:     make(chan job, workers*4),
		dispatch: func(fn func()) { fn() },
	}
	c.fetch = c.httpFetch
	for _, opt := range opts {
		opt(c)
	}
	for i := 0; i < workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
	return c
}

// Get returns the cached image for url scaled to fit width×height, or a
// placeholder when the image is not cached yet. On a miss the download
// is scheduled once; callers that miss while it is in flight join the
// same download. When it completes, every deliver (if non-nil) receives
// the result through the dispatcher. A blank url always yields the
// placeholder and is never fetched.
func (c *Cache) Get(url string, width, height int, deliver func(image.Image)) image.Image {
	if url == "" {
		return Placeholder(width, height)
	}

	c.mu.RLock()
	img, ok := c.images[url]
	c.mu.RUnlock()
	if ok {
		// The cache keys by URL alone and stores the image at the size
		// it was first requested at; later requests at other sizes get
		// that same image back.
		return img
	}

	c.schedule(url, width, height, deliver)
	return Placeholder(width, height)
}

// Cached reports whether url has a decoded image in the cache.
func (c *Cache) Cached(url string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.images[url]
	return ok
}

// Close stops the worker pool and waits for in-flight downloads.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	close(c.jobs)
	c.wg.Wait()
}

// schedule queues a download for url, or joins the waiter list of the
// download already in flight. Every non-nil deliver that is accepted
// here runs exactly once when the download settles.
func (c *Cache) schedule(url string, width, height int, deliver func(image.Image)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if deliver != nil {
			c.dispatch(func() { deliver(Placeholder(width, height)) })
		}
		return
	}
	if list, inflight := c.waiters[url]; inflight {
		if deliver != nil {
			c.waiters[url] = append(list, deliver)
		}
		c.mu.Unlock()
		return
	}

	var list []func(image.Image)
	if deliver != nil {
		list = append(list, deliver)
	}
	c.waiters[url] = list

	// The send happens under the lock so Close cannot close the channel
	// between the closed check and the send.
	select {
	case c.jobs <- job{url: url, width: width, height: height}:
		c.mu.Unlock()
	default:
		// Queue full; drop the request so lookups stay non-blocking.
		// The next cache miss for this URL schedules it again.
		delete(c.waiters, url)
		c.mu.Unlock()
		c.logger.Warn("image queue full, dropping request", logging.String(logging.FieldURL, url))
	}
}

func (c *Cache) worker() {
	defer c.wg.Done()
	for j := range c.jobs {
		img, err := c.load(j.url)

		var result image.Image
		if err == nil {
			result = scale(img, j.width, j.height)
		}

		c.mu.Lock()
		waiters := c.waiters[j.url]
		delete(c.waiters, j.url)
		if err == nil {
			c.images[j.url] = result
		}
		c.mu.Unlock()

		if err != nil {
			c.logger.Warn("image load failed", logging.String(logging.FieldURL, j.url), logging.Error(err))
			result = Placeholder(j.width, j.height)
		}
		for _, deliver := range waiters {
			deliver := deliver
			c.dispatch(func() { deliver(result) })
		}
	}
}

func (c *Cache) load(url string) (image.Image, error) {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	data, err := c.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	img, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, nil
}

func (c *Cache) httpFetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
