package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/jslint/pkg/parser"
)

// DebounceInterval is how long Watch waits for more events before re-running.
const DebounceInterval = 100 * time.Millisecond

// Watch runs once, then again whenever a source file under paths is written
// or created, calling fn with every report. It returns when ctx is done.
func (r *Runner) Watch(ctx context.Context, paths []string, fn func(*Report, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, p := range paths {
		if err := r.watchPath(watcher, p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	var mu sync.Mutex
	run := func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		fn(r.Run(ctx, paths))
	}
	run()

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := r.watchPath(watcher, event.Name); err != nil {
						r.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}

			// Only handle write/create events for source files
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !parser.IsSupported(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(DebounceInterval, func() {
				r.logger.Info("change detected", "file", filepath.Base(name))
				run()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watcher error", "error", err)
		}
	}
}

// watchPath adds path, or every directory under it, to the watcher.
func (r *Runner) watchPath(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(path, p); err == nil && rel != "." && excluded(filepath.ToSlash(rel), r.files.Exclude) {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}
