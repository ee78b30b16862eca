package tuning

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a tuning file when it changes on disk. Only successfully
// parsed tables are published; a bad edit is logged and the consumer keeps
// whatever it applied last.
//
// The watch goroutine never touches render state. The consumer drains
// Updates on its own thread.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Table
	done    chan struct{}
	log     *slog.Logger
}

// Watch starts watching path. The parent directory is watched so editors
// that save by rename are still seen.
func Watch(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve tuning path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan *Table, 1),
		done:    make(chan struct{}),
		log:     logger.With("file", abs),
	}
	go w.loop()
	return w, nil
}

// Updates delivers reloaded tables. Only the latest pending table is kept.
func (w *Watcher) Updates() <-chan *Table { return w.updates }

// Close stops the watcher.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("tuning watch error", "err", err)
		}
	}
}

func (w *Watcher) reload() {
	t, err := Load(w.path)
	if err != nil {
		w.log.Warn("tuning reload rejected, keeping previous table", "err", err)
		return
	}
	w.log.Info("tuning reloaded", "modes", len(t.Modes), "never_cache", t.NeverCache)

	// Latest wins: drop a table the consumer has not picked up yet.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- t:
	case <-w.done:
	}
}
