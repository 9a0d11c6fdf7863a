package direct

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Gouterman/stencil/data"
	"github.com/Gouterman/stencil/sys"
	"github.com/spf13/afero"
)

// System is a CompilerSystem backed by an afero filesystem, by default the
// operating system's disk below a root directory. Virtual paths are absolute
// and resolved against that root.
//
// Watch registrations are accepted but never fire: observing the real disk is
// left to the caller.
type System struct {
	mu sync.RWMutex
	fs afero.Fs
}

var _ sys.CompilerSystem = (*System)(nil)

// New creates a System rooted at the given directory on disk.
func New(root string) (*System, error) {
	root = filepath.Clean(root)

	// Verify the root directory exists
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, data.ErrNotExist
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, data.ErrPermission
		}
		return nil, err
	}

	// Ensure the root is a directory
	if !info.IsDir() {
		return nil, data.ErrNotDirectory
	}

	return NewFromFs(afero.NewBasePathFs(afero.NewOsFs(), root)), nil
}

// NewFromFs creates a System on top of any afero filesystem.
func NewFromFs(fs afero.Fs) *System {
	return &System{
		fs: fs,
	}
}

// Returns the identifier name defined for this system
func (*System) Name() string {
	return "direct"
}

func (s *System) Exists(ctx context.Context, p string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exists, err := afero.Exists(s.fs, sys.Normalize(p))
	return err == nil && exists
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
	defer s.mu.Unlock()

	info, err := s.fs.Stat(p)
	if err == nil {
		if info.IsDir() {
			return true
		}
		// An existing file is replaced by the directory
		if err := s.fs.Remove(p); err != nil {
			return false
		}
	}

	if opts.Recursive {
		return s.fs.MkdirAll(p, 0755) == nil
	}

	return s.fs.Mkdir(p, 0755) == nil
}

func (s *System) ListDirectory(ctx context.Context, p string) []string {
	p = sys.Normalize(p)

	s.mu.RLock()
	defer s.mu.RUnlock()

	infos, err := afero.ReadDir(s.fs, p)
	if err != nil {
		return []string{}
	}

	children := make([]string, 0, len(infos))
	for _, info := range infos {
		children = append(children, sys.Join(p, info.Name()))
	}
	sort.Strings(children)

	return children
}

func (s *System) ReadFile(ctx context.Context, p string) (string, bool) {
	p = sys.Normalize(p)

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Not every afero filesystem refuses to read a directory
	if info, err := s.fs.Stat(p); err != nil || info.IsDir() {
		return "", false
	}

	buffer, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return "", false
	}

	return string(buffer), true
}

func (s *System) Realpath(ctx context.Context, p string) string {
	return sys.Normalize(p)
}

func (s *System) ResolvePath(p string) string {
	return sys.Normalize(p)
}

func (s *System) RemoveDirectory(ctx context.Context, p string) bool {
	p = sys.Normalize(p)
	if p == "/" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.fs.Stat(p)
	if err != nil || !info.IsDir() {
		return false
	}

	return s.fs.RemoveAll(p) == nil
}

func (s *System) Stat(ctx context.Context, p string) *sys.Stats {
	p = sys.Normalize(p)

	s.mu.RLock()
	defer s.mu.RUnlock()

	info, symlink, err := s.lstat(p)
	if err != nil {
		return nil
	}

	stats := &sys.Stats{
		IsFile:      info.Mode().IsRegular(),
		IsDirectory: info.IsDir(),
		IsSymlink:   symlink,
	}
	if stats.IsFile {
		stats.Size = info.Size()
	}

	return stats
}

func (s *System) Remove(ctx context.Context, p string) bool {
	p = sys.Normalize(p)

	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.fs.Stat(p)
	if err != nil || info.IsDir() {
		return false
	}

	return s.fs.Remove(p) == nil
}

func (*System) WatchDirectory(p string, cb sys.WatchCallback) sys.FileWatcher {
	return sys.WatcherFunc(nil)
}

func (*System) WatchFile(p string, cb sys.WatchCallback) sys.FileWatcher {
	return sys.WatcherFunc(nil)
}

func (s *System) WriteFile(ctx context.Context, p string, content string) bool {
	p = sys.Normalize(p)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(sys.Dir(p), 0755); err != nil {
		return false
	}

	return afero.WriteFile(s.fs, p, []byte(content), 0644) == nil
}

// lstat reports whether p is a symbolic link when the underlying filesystem supports it.
func (s *System) lstat(p string) (os.FileInfo, bool, error) {
	if lstater, ok := s.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(p)
		if err != nil {
			return nil, false, err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			// Report what the link points at, flagged as a link
			target, err := s.fs.Stat(p)
			if err != nil {
				return info, true, nil
			}
			return target, true, nil
		}
		return info, false, nil
	}

	info, err := s.fs.Stat(p)
	return info, false, err
}
