package filestore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"portfolio/application/ports"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher invalidates cache tags when data files are edited on disk
// outside the API.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	files    map[string][]string
	cache    ports.Cache
	logger   *zap.Logger
	debounce time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher watches dir. files maps a file base name (e.g. "projects.json")
// to the cache tags it feeds.
func NewWatcher(dir string, files map[string][]string, cache ports.Cache, logger *zap.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory rather than the files; atomic saves replace the inode
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch data dir: %w", err)
	}

	return &Watcher{
		watcher:  watcher,
		dir:      dir,
		files:    files,
		cache:    cache,
		logger:   logger,
		debounce: 100 * time.Millisecond,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching for changes
func (w *Watcher) Start() {
	go w.watchLoop()
	w.logger.Info("Data file watcher started", zap.String("dir", w.dir))
}

// Stop stops watching for changes
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
		w.logger.Info("Data file watcher stopped")
	})
}

// Done is closed once a started watcher's loop has exited
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) watchLoop() {
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
		close(w.done)
	}()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			base := filepath.Base(event.Name)
			tags, watched := w.files[base]
			if !watched {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			if t, exists := timers[base]; exists {
				t.Stop()
			}
			timers[base] = time.AfterFunc(w.debounce, func() {
				w.logger.Info("Data file changed, invalidating cache",
					zap.String("file", base),
					zap.Strings("tags", tags),
				)
				w.cache.Invalidate(context.Background(), tags...)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}
