// Package assets loads optional scene assets in the background and caches
// their bytes.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/procterrain/internal/engine/workers"
	"github.com/Faultbox/procterrain/internal/logger"
)

// ErrNotFound is returned when no root contains the requested file.
var ErrNotFound = errors.New("asset not found")

// Asset is a loaded file.
type Asset struct {
	Name string
	Path string // resolved path
	Data []byte
}

// Callbacks receive load events. They run on loader goroutines, never on the
// caller's; receivers must synchronize. Nil callbacks are skipped.
type Callbacks struct {
	OnProgress func(done, total int)
	OnLoad     func(Asset)
	OnError    func(name string, err error)
}

// Loader resolves relative paths against a list of roots and reads files on
// a worker pool. Roots are searched in reverse order (last added = highest
// priority).
type Loader struct {
	pool  *workers.Pool
	cache *Cache
	cb    Callbacks
	log   *zap.Logger

	mu    sync.RWMutex
	roots []string

	progress sync.Mutex
	done     int
	total    int

	wg sync.WaitGroup
}

// NewLoader creates a loader. A nil pool starts one goroutine per load.
func NewLoader(pool *workers.Pool, cb Callbacks, roots ...string) *Loader {
	return &Loader{
		pool:  pool,
		cache: NewCache(),
		cb:    cb,
		log:   logger.Named("assets"),
		roots: append([]string(nil), roots...),
	}
}

// AddRoot adds a search directory with the highest priority.
func (l *Loader) AddRoot(dir string) {
	l.mu.Lock()
	l.roots = append(l.roots, dir)
	l.mu.Unlock()
}

// Resolve finds path on disk. Absolute paths are used as is.
func (l *Loader) Resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotFound)
	}
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return path, nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.roots) - 1; i >= 0; i-- {
		candidate := filepath.Join(l.roots[i], path)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Read loads a file synchronously, serving repeated reads from the cache.
func (l *Loader) Read(path string) ([]byte, error) {
	e, err := l.read(path)
	return e.Data, err
}

func (l *Loader) read(path string) (Entry, error) {
	if e, ok := l.cache.Get(path); ok {
		return e, nil
	}

	resolved, err := l.Resolve(path)
	if err != nil {
		return Entry{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Entry{}, fmt.Errorf("reading %s: %w", resolved, err)
	}

	e := Entry{Path: resolved, Data: data}
	l.cache.Set(path, e)
	return e, nil
}

// Load reads path in the background and reports the outcome through the
// callbacks. Failures are logged and never returned.
func (l *Loader) Load(name, path string) {
	l.progress.Lock()
	l.total++
	l.progress.Unlock()

	l.wg.Add(1)
	job := func() {
		defer l.wg.Done()
		l.load(name, path)
	}
	if l.pool != nil {
		l.pool.Go(job)
	} else {
		go job()
	}
}

func (l *Loader) load(name, path string) {
	e, err := l.read(path)
	if err != nil {
		l.log.Warn("asset load failed", zap.String("name", name), zap.String("path", path), zap.Error(err))
		if l.cb.OnError != nil {
			l.cb.OnError(name, err)
		}
	} else {
		l.log.Debug("asset loaded", zap.String("name", name), zap.String("path", e.Path), zap.Int("bytes", len(e.Data)))
		if l.cb.OnLoad != nil {
			l.cb.OnLoad(Asset{Name: name, Path: e.Path, Data: e.Data})
		}
	}

	l.progress.Lock()
	l.done++
	done, total := l.done, l.total
	l.progress.Unlock()

	if l.cb.OnProgress != nil {
		l.cb.OnProgress(done, total)
	}
}

// Wait blocks until every queued load has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Progress returns finished (loaded or failed) and requested counts.
func (l *Loader) Progress() (done, total int) {
	l.progress.Lock()
	defer l.progress.Unlock()
	return l.done, l.total
}

// Cache returns the loader's byte cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Entry is a cached file and the path it was read from.
type Entry struct {
	Path string
	Data []byte
}

// Cache is a simple in-memory cache for loaded assets, keyed by the requested
// path.
type Cache struct {
	data map[string]Entry
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]Entry),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return e, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = e
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]Entry)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
