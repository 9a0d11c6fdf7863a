package sys

import "sync"

// EventKind describes why a watch callback fired.
type EventKind string

const (
	// EventDirectoryChange is delivered to directory watchers when something
	// below them was created, updated or removed.
	EventDirectoryChange EventKind = ""
	EventFileUpdate      EventKind = "fileUpdate"
	EventFileDelete      EventKind = "fileDelete"
)

// WatchCallback receives the changed path and the kind of change.
type WatchCallback func(p string, kind EventKind)

// FileWatcher is returned by watch registrations.
type FileWatcher interface {
	// Close removes the registered callback. Closing more than once is a no-op.
	Close()
}

// WatcherFunc adapts a plain function into a FileWatcher whose Close runs at most once.
func WatcherFunc(fn func()) FileWatcher {
	return &onceWatcher{fn: fn}
}

type onceWatcher struct {
	once sync.Once
	fn   func()
}

func (w *onceWatcher) Close() {
	w.once.Do(func() {
		if w.fn != nil {
			w.fn()
		}
	})
}
