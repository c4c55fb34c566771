// Package watcher reports rewrites of the skin store file.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/skinstore/internal/log"
)

// defaultQuietPeriod is how long the store must stay untouched before a
// change is reported.
const defaultQuietPeriod = 250 * time.Millisecond

// Config selects the store file and the quiet period.
type Config struct {
	Path        string
	QuietPeriod time.Duration
}

type storeWatcher struct {
	fs      *fsnotify.Watcher
	name    string
	quiet   time.Duration
	changes chan struct{}
}

// Watch reports on the returned channel each time the store file settles
// after being written, replaced or removed. A burst of events within the
// quiet period yields one report, and a report is dropped while the
// previous one is unread. The channel is closed once ctx is done.
//
// The store's directory is watched rather than the file, because a flush
// swaps in a new file by rename.
func Watch(ctx context.Context, cfg Config) (<-chan struct{}, error) {
	if cfg.QuietPeriod <= 0 {
		cfg.QuietPeriod = defaultQuietPeriod
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(cfg.Path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	w := &storeWatcher{
		fs:      fsw,
		name:    filepath.Base(cfg.Path),
		quiet:   cfg.QuietPeriod,
		changes: make(chan struct{}, 1),
	}
	go w.run(ctx)
	return w.changes, nil
}

func (w *storeWatcher) run(ctx context.Context) {
	defer close(w.changes)
	defer func() { _ = w.fs.Close() }()

	// nil until a store event arrives; each new event restarts the wait.
	var settled <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if w.touchesStore(ev) {
				settled = time.After(w.quiet)
			}

		case <-settled:
			settled = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatStore, "Store watch error", err, "store", w.name)
		}
	}
}

func (w *storeWatcher) touchesStore(ev fsnotify.Event) bool {
	return filepath.Base(ev.Name) == w.name &&
		ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0
}
