// Package watch delivers file-change notifications to the render loop as
// non-blocking polls, so edited shader source files are re-bound on the
// next frame without the loop ever waiting on the watcher.
package watch

import (
	"github.com/fsnotify/fsnotify"
)

// Watcher watches a set of files and queues the paths of those written to.
type Watcher struct {
	fw      *fsnotify.Watcher
	changed chan string
}

// New starts watching the given paths. Missing paths are errors.
func New(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := fw.Add(p); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	w := &Watcher{fw: fw, changed: make(chan string, 16)}
	go w.forward()
	return w, nil
}

func (w *Watcher) forward() {
	for ev := range w.fw.Events {
		if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			continue
		}
		select {
		case w.changed <- ev.Name:
		default:
			// Queue full; the pending notifications already force a reload.
		}
	}
}

// Changed returns the next changed path without blocking. ok is false when
// nothing changed since the last poll.
func (w *Watcher) Changed() (path string, ok bool) {
	select {
	case p := <-w.changed:
		return p, true
	default:
		return "", false
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
