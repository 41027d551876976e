package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/banksim/logger"
)

// Editors often write a file in several steps.
const debounceDelay = 100 * time.Millisecond

// fileWatcher reports changes to a single file. It watches the parent
// directory so that editors replacing the file by rename are still seen.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	target  string
	delay   time.Duration
}

func newFileWatcher(filename string) (*fileWatcher, error) {
	target, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filename, err)
	}

	return &fileWatcher{
		watcher: watcher,
		target:  target,
		delay:   debounceDelay,
	}, nil
}

// Run calls onChange after every burst of changes to the file, until ctx is
// done. onChange runs on the calling goroutine, so replays never overlap.
func (w *fileWatcher) Run(ctx context.Context, onChange func()) error {
	defer func() {
		_ = w.watcher.Close()
	}()

	log := logger.FromContext(ctx)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug().Str("file", event.Name).Stringer("op", event.Op).Msg("file changed")
			debounce = time.After(w.delay)

		case <-debounce:
			debounce = nil
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}
