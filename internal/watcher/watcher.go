// Package watcher monitors the open document for external changes.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/encre/internal/pubsub"
)

// EventKind classifies watcher notifications.
type EventKind int

const (
	// FileChanged means the watched document was written or replaced.
	FileChanged EventKind = iota
	// FileRemoved means the watched document was deleted.
	FileRemoved
	// WatchError carries an fsnotify error.
	WatchError
)

// Event is the payload published on the watcher's broker.
type Event struct {
	Kind EventKind
	Path string
	Err  error
}

// Config holds watcher configuration options.
type Config struct {
	// Path is the document file to watch.
	Path string
	// Debounce collapses bursts of writes into one notification.
	Debounce time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(path string) Config {
	return Config{
		Path:     path,
		Debounce: 200 * time.Millisecond,
	}
}

// Watcher watches one document file and publishes debounced change events.
// Watching happens at the directory level because editors typically save
// via rename, which replaces the watched inode.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	broker    *pubsub.Broker[Event]
	done      chan struct{}
}

// New creates a document watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(cfg.Path),
		debounce:  cfg.Debounce,
		broker:    pubsub.NewBroker[Event](),
		done:      make(chan struct{}),
	}, nil
}

// Broker exposes the event broker for subscriptions.
func (w *Watcher) Broker() *pubsub.Broker[Event] {
	return w.broker
}

// Start begins watching the document's directory.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()
	return nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.fsWatcher.Close()
	w.broker.Close()
	return err
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending EventKind
		armed   bool
	)

	timerC := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		return nil
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			kind, relevant := w.classify(event)
			if !relevant {
				continue
			}

			// A removal supersedes pending writes within the window.
			if !armed || kind == FileRemoved {
				pending = kind
			}
			armed = true

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC():
			if armed {
				eventType := pubsub.ChangedEvent
				if pending == FileRemoved {
					eventType = pubsub.RemovedEvent
				}
				w.broker.Publish(eventType, Event{Kind: pending, Path: w.path})
				armed = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.broker.Publish(pubsub.EmittedEvent, Event{Kind: WatchError, Path: w.path, Err: err})

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// classify maps an fsnotify event on the watched file to an EventKind.
func (w *Watcher) classify(event fsnotify.Event) (EventKind, bool) {
	if filepath.Clean(event.Name) != w.path {
		return 0, false
	}

	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		return FileChanged, true
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return FileRemoved, true
	default:
		return 0, false
	}
}
