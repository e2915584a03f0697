package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"causalflow/logging"
)

// settleDelay collapses the burst of events editors produce when saving.
const settleDelay = 100 * time.Millisecond

// Watch reloads the model file whenever it changes and reports the result
// to fn until ctx is done. The parent directory is watched so that editors
// that save by renaming a temporary file are noticed. fn runs on the
// watcher goroutine.
func Watch(ctx context.Context, path string, fn func(*File, error)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	const changeOps = fsnotify.Create | fsnotify.Write | fsnotify.Rename

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != absPath || ev.Op&changeOps == 0 {
				continue
			}
			logging.Debugf("model file event %s", ev.Op)
			settle = time.After(settleDelay)

		case <-settle:
			settle = nil
			f, err := Load(absPath)
			if err != nil {
				logging.Warnf("reloading %s: %v", absPath, err)
			}
			fn(f, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("watching %s: %w", absPath, err))
		}
	}
}
