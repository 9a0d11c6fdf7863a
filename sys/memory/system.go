package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Gouterman/stencil/sys"
	"github.com/google/uuid"
	"github.com/tidwall/btree"
)

type entryKind int

const (
	kindDirectory entryKind = iota
	kindFile
)

// entry is a single node of the in-memory tree. content is only meaningful
// while kind is kindFile.
type entry struct {
	id      string
	kind    entryKind
	content string
	watch   sys.WatchCallback

	// placeholder marks a directory created by watching a missing path; it may
	// still turn into a file while it has no children.
	placeholder bool
}

// System is an in-memory CompilerSystem that emulates the callback contract of
// a filesystem watcher, including directory-change propagation up the tree.
//
// Watch callbacks run synchronously on the calling goroutine, after the
// internal lock has been released, so a callback may use the System again.
type System struct {
	mu sync.RWMutex

	// Keys are normalized absolute paths; ordering gives sorted directory listings
	entries *btree.Map[string, *entry]
}

var _ sys.CompilerSystem = (*System)(nil)

// New creates an empty System holding only the root directory.
func New() *System {
	s := &System{
		entries: btree.NewMap[string, *entry](0),
	}
	s.entries.Set("/", newEntry(kindDirectory))

	return s
}

func newEntry(kind entryKind) *entry {
	return &entry{
		id:   uuid.Must(uuid.NewV7()).String(),
		kind: kind,
	}
}

// Returns the identifier name defined for this system
func (*System) Name() string {
	return "memory"
}

func (s *System) Exists(ctx context.Context, p string) bool {
	p = sys.Normalize(p)

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.entries.Get(p)
	return exists
}

func (s *System) CopyFile(ctx context.Context, src, dst string) bool {
	content, ok := s.ReadFile(ctx, src)
	if !ok {
		return false
	}

	return s.WriteFile(ctx, dst, content)
}

func (*System) GetCurrentDirectory() string {
	return "/"
}

func (*System) FileWatchTimeout() time.Duration {
	return sys.DefaultFileWatchTimeout
}

func (s *System) MakeDirectory(ctx context.Context, p string, opts sys.MakeDirectoryOptions) bool {
	p = sys.Normalize(p)

	s.mu.Lock()
	if opts.Recursive {
		s.makeAncestorsUnsafe(p)
	}

	if e, exists := s.entries.Get(p); exists {
		e.kind = kindDirectory
		e.content = ""
		e.placeholder = false
	} else {
		s.entries.Set(p, newEntry(kindDirectory))
	}
	s.mu.Unlock()

	// Created ancestors are covered by the walk up from p
	s.emitDirectoryWatch(p)

	return true
}

func (s *System) ListDirectory(ctx context.Context, p string) []string {
	p = sys.Normalize(p)

	s.mu.RLock()
	defer s.mu.RUnlock()

	dir, exists := s.entries.Get(p)
	if !exists || dir.kind != kindDirectory {
		return []string{}
	}

	prefix := p
	if prefix != "/" {
		prefix += "/"
	}

	children := make([]string, 0)
	// Keys are ordered, so every descendant follows the prefix contiguously
	s.entries.Ascend(prefix, func(key string, _ *entry) bool {
		if !strings.HasPrefix(key, prefix) {
			return false
		}
		if key != prefix && !strings.Contains(key[len(prefix):], "/") {
			children = append(children, key)
		}
		return true
	})

	return children
}

func (s *System) ReadFile(ctx context.Context, p string) (string, bool) {
	p = sys.Normalize(p)

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries.Get(p)
	if !exists || e.kind != kindFile {
		return "", false
	}

	return e.content, true
}

func (s *System) Realpath(ctx context.Context, p string) string {
	return sys.Normalize(p)
}

func (s *System) ResolvePath(p string) string {
	return sys.Normalize(p)
}

func (s *System) Stat(ctx context.Context, p string) *sys.Stats {
	p = sys.Normalize(p)

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries.Get(p)
	if !exists {
		return nil
	}

	stats := &sys.Stats{
		IsFile:      e.kind == kindFile,
		IsDirectory: e.kind == kindDirectory,
	}
	if e.kind == kindFile {
		stats.Size = int64(len(e.content))
	}

	return stats
}

func (s *System) WriteFile(ctx context.Context, p string, content string) bool {
	p = sys.Normalize(p)

	s.mu.RLock()
	e, exists := s.entries.Get(p)
	if exists && !s.fileWritableUnsafe(p, e) {
		s.mu.RUnlock()
		return false
	}
	var update sys.WatchCallback
	if exists && e.watch != nil && (e.kind != kindFile || e.content != content) {
		update = e.watch
	}
	s.mu.RUnlock()

	// The entry's own watcher sees the update before the content is replaced.
	// Concurrent writers to one path may each notify; the last lock holder wins.
	if update != nil {
		update(p, sys.EventFileUpdate)
	}

	s.mu.Lock()
	unchanged := false
	if e, exists = s.entries.Get(p); exists {
		if !s.fileWritableUnsafe(p, e) {
			s.mu.Unlock()
			return false
		}
		unchanged = e.kind == kindFile && e.content == content
		e.kind = kindFile
		e.content = content
		e.placeholder = false
	} else {
		s.makeAncestorsUnsafe(p)
		e = newEntry(kindFile)
		e.content = content
		s.entries.Set(p, e)
	}
	s.mu.Unlock()

	if !unchanged {
		s.emitDirectoryWatch(p)
	}

	return true
}

// fileWritableUnsafe reports whether the existing entry e at p may hold file
// content. The root and real directories never turn into files. Must be called
// with a lock held.
func (s *System) fileWritableUnsafe(p string, e *entry) bool {
	if e.kind == kindFile {
		return true
	}

	return p != "/" && e.placeholder && !s.hasChildrenUnsafe(p)
}

// hasChildrenUnsafe reports whether any entry lives below p. Must be called
// with a lock held.
func (s *System) hasChildrenUnsafe(p string) bool {
	prefix := p
	if prefix != "/" {
		prefix += "/"
	}

	found := false
	s.entries.Ascend(prefix, func(key string, _ *entry) bool {
		found = strings.HasPrefix(key, prefix) && key != prefix
		return false
	})

	return found
}

func (s *System) Remove(ctx context.Context, p string) bool {
	p = sys.Normalize(p)

	s.mu.RLock()
	e, exists := s.entries.Get(p)
	var cb sys.WatchCallback
	if exists {
		cb = e.watch
	}
	s.mu.RUnlock()

	if !exists {
		return false
	}

	if cb != nil {
		cb(p, sys.EventFileDelete)
	}

	s.mu.Lock()
	s.entries.Delete(p)
	s.mu.Unlock()

	s.emitDirectoryWatch(p)
	return true
}

func (s *System) RemoveDirectory(ctx context.Context, p string) bool {
	p = sys.Normalize(p)
	if p == "/" {
		// The root always exists
		return false
	}

	type removal struct {
		path string
		cb   sys.WatchCallback
	}

	s.mu.RLock()
	if _, exists := s.entries.Get(p); !exists {
		s.mu.RUnlock()
		return false
	}

	var removals []removal
	s.entries.Ascend(p, func(key string, e *entry) bool {
		if key != p && !strings.HasPrefix(key, p+"/") {
			// Siblings like "/a.txt" sort between "/a" and "/a/", keep scanning until past the subtree
			return key < p+"/"
		}
		removals = append(removals, removal{path: key, cb: e.watch})
		return true
	})
	s.mu.RUnlock()

	// Deepest entries are notified first, the directory itself last
	for i := len(removals) - 1; i >= 0; i-- {
		if removals[i].cb != nil {
			removals[i].cb(removals[i].path, sys.EventFileDelete)
		}
	}

	s.mu.Lock()
	for _, r := range removals {
		s.entries.Delete(r.path)
	}
	s.mu.Unlock()

	s.emitDirectoryWatch(p)
	return true
}

// makeAncestorsUnsafe creates every missing directory above p, root-most first.
// Must be called with the write lock held.
func (s *System) makeAncestorsUnsafe(p string) {
	for _, dir := range ancestors(p) {
		if e, exists := s.entries.Get(dir); !exists {
			s.entries.Set(dir, newEntry(kindDirectory))
		} else if e.kind == kindDirectory {
			e.placeholder = false
		}
	}
}

// ancestors returns every directory above p, starting at the root.
func ancestors(p string) []string {
	var dirs []string
	for dir := sys.Dir(p); ; dir = sys.Dir(dir) {
		dirs = append([]string{dir}, dirs...)
		if dir == "/" {
			break
		}
	}

	return dirs
}
