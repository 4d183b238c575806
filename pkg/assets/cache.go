package assets

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes manifests per (folder, extension, allow list). Static assets
// do not change in production, so one walk per key is enough; development
// servers can call Watch to drop entries when files change.
type Cache struct {
	resolver *Resolver
	logger   zerolog.Logger

	mu      sync.RWMutex
	entries map[string]Manifest
	gen     uint64
	group   singleflight.Group

	watchMu sync.Mutex
	active  *watch
}

// watch is one running fsnotify loop. closeErr is written before done is
// closed.
type watch struct {
	watcher  *fsnotify.Watcher
	stop     chan struct{}
	done     chan struct{}
	closeErr error
}

// NewCache wraps resolver with a manifest cache.
func NewCache(resolver *Resolver) *Cache {
	logger := zerolog.Nop()
	if resolver != nil {
		logger = resolver.logger
	}
	return &Cache{
		resolver: resolver,
		logger:   logger,
		entries:  make(map[string]Manifest),
	}
}

// Resolve returns the cached manifest for the arguments, walking the
// filesystem once per distinct key. Concurrent misses share one walk.
func (c *Cache) Resolve(folder, extension string, allow ...string) Manifest {
	key := cacheKey(folder, extension, allow)

	c.mu.RLock()
	manifest, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return slices.Clone(manifest)
	}

	value, _, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		gen := c.gen
		c.mu.RUnlock()

		resolved := c.resolver.Resolve(folder, extension, allow...)

		c.mu.Lock()
		// an invalidation during the walk makes this result stale
		if c.gen == gen {
			c.entries[key] = resolved
		}
		c.mu.Unlock()
		return resolved, nil
	})
	return slices.Clone(value.(Manifest))
}

// Scripts mirrors Resolver.Scripts through the cache.
func (c *Cache) Scripts(names ...string) Manifest {
	return c.Resolve(c.resolver.scriptsDir, ".js", names...)
}

// Stylesheets mirrors Resolver.Stylesheets through the cache.
func (c *Cache) Stylesheets(names ...string) Manifest {
	return c.Resolve(c.resolver.stylesDir, ".css", names...)
}

// Len reports the number of cached manifests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Invalidate drops every cached manifest.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]Manifest)
	c.gen++
	c.mu.Unlock()
}

// Watch invalidates the cache whenever something changes below dir, which
// must be the on-disk static directory the resolver reads. It returns once the
// watcher is installed; the event loop stops when ctx is done or Close is
// called, and either way the watcher is released so Watch can be called again.
func (c *Cache) Watch(ctx context.Context, dir string) error {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()
	if c.active != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := addTree(watcher, dir); err != nil {
		_ = watcher.Close()
		return err
	}

	w := &watch{
		watcher: watcher,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	c.active = w
	go c.run(ctx, w)

	c.logger.Debug().Str("dir", dir).Msg("watching static assets")
	return nil
}

// Close stops a running watcher and waits for its loop to exit.
func (c *Cache) Close() error {
	c.watchMu.Lock()
	w := c.active
	c.active = nil
	c.watchMu.Unlock()
	if w == nil {
		return nil
	}

	close(w.stop)
	<-w.done
	return w.closeErr
}

func (c *Cache) watching() bool {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()
	return c.active != nil
}

func (c *Cache) run(ctx context.Context, w *watch) {
	defer func() {
		c.watchMu.Lock()
		if c.active == w {
			c.active = nil
		}
		c.watchMu.Unlock()
		w.closeErr = w.watcher.Close()
		close(w.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Chmod == event.Op {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				// new directories need their own watch
				_ = addTree(w.watcher, event.Name)
			}
			c.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("static assets changed")
			c.Invalidate()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warn().Err(err).Msg("asset watcher error")
		}
	}
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p != root {
				return nil
			}
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		return watcher.Add(p)
	})
}

func cacheKey(folder, extension string, allow []string) string {
	names := slices.Clone(allow)
	slices.Sort(names)
	return strings.Trim(folder, "/") + "\x00" + extension + "\x00" + strings.Join(names, "\x00")
}
