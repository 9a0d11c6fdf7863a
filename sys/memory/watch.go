package memory

import "github.com/Gouterman/stencil/sys"

func (s *System) WatchDirectory(p string, cb sys.WatchCallback) sys.FileWatcher {
	return s.watch(sys.Normalize(p), kindDirectory, cb)
}

func (s *System) WatchFile(p string, cb sys.WatchCallback) sys.FileWatcher {
	return s.watch(sys.Normalize(p), kindFile, cb)
}

// watch registers cb on the entry at p, replacing any previous callback.
// A missing entry is created as a directory placeholder until something is written.
// A file watched as a directory becomes one; a directory only becomes a file
// while it is a childless placeholder, and the root never does.
func (s *System) watch(p string, kind entryKind, cb sys.WatchCallback) sys.FileWatcher {
	s.mu.Lock()
	if e, exists := s.entries.Get(p); exists {
		if e.kind != kind && (kind == kindDirectory || s.fileWritableUnsafe(p, e)) {
			e.kind = kind
			e.content = ""
		}
		e.watch = cb
	} else {
		e = newEntry(kindDirectory)
		e.placeholder = true
		e.watch = cb
		s.entries.Set(p, e)
	}
	s.mu.Unlock()

	return sys.WatcherFunc(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if e, exists := s.entries.Get(p); exists {
			e.watch = nil
		}
	})
}

// emitDirectoryWatch notifies every watched directory above changed, walking
// from the parent up to the root. Each ancestor is visited at most once.
func (s *System) emitDirectoryWatch(changed string) {
	visited := make(map[string]struct{})

	for current := changed; ; {
		parent := sys.Dir(current)
		if _, seen := visited[parent]; seen {
			return
		}
		visited[parent] = struct{}{}

		s.mu.RLock()
		dir, exists := s.entries.Get(parent)
		var cb sys.WatchCallback
		if exists && dir.kind == kindDirectory {
			cb = dir.watch
		}
		s.mu.RUnlock()

		if cb != nil {
			cb(changed, sys.EventDirectoryChange)
		}

		if parent == "/" {
			return
		}
		current = parent
	}
}
