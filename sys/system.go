package sys

import (
	"context"
	"time"
)

// DefaultFileWatchTimeout is how long a watch-mode build should wait after a
// change before acting on watch callbacks.
const DefaultFileWatchTimeout = 32 * time.Millisecond

// CompilerSystem is the filesystem surface used by the compiler. Implementations
// never return errors: a missing entry or an entry of the wrong kind is reported
// through zero values and false, so that an in-memory and an on-disk system can
// be swapped without touching call sites.
//
// Every operation completes before returning. The context is honoured by
// implementations that may block; the in-memory system ignores it.
type CompilerSystem interface {
	// Name returns the identifier name defined for this system.
	Name() string

	// Exists reports whether a file or directory exists at p.
	Exists(ctx context.Context, p string) bool

	// CopyFile copies the file content of src into dst.
	// Returns false if src is not a file.
	CopyFile(ctx context.Context, src, dst string) bool

	// GetCurrentDirectory returns the directory relative paths resolve against.
	GetCurrentDirectory() string

	// MakeDirectory creates a directory, coercing an existing entry to a directory.
	MakeDirectory(ctx context.Context, p string, opts MakeDirectoryOptions) bool

	// ListDirectory returns the sorted absolute paths of the direct children of p.
	// Returns an empty list if p is not a directory.
	ListDirectory(ctx context.Context, p string) []string

	// ReadFile returns the content of the file at p.
	// Returns false if p does not exist or is not a file.
	ReadFile(ctx context.Context, p string) (string, bool)

	// Realpath returns the canonical form of p.
	Realpath(ctx context.Context, p string) string

	// ResolvePath returns the canonical form of p.
	ResolvePath(p string) string

	// RemoveDirectory removes the directory at p and everything below it.
	RemoveDirectory(ctx context.Context, p string) bool

	// Stat returns stats for p, or nil if nothing exists at p.
	Stat(ctx context.Context, p string) *Stats

	// Remove removes the file at p.
	Remove(ctx context.Context, p string) bool

	// WatchDirectory registers cb as the only callback for the directory at p.
	WatchDirectory(p string, cb WatchCallback) FileWatcher

	// WatchFile registers cb as the only callback for the file at p.
	WatchFile(p string, cb WatchCallback) FileWatcher

	// FileWatchTimeout returns how long callers should debounce watch events.
	FileWatchTimeout() time.Duration

	// WriteFile writes content to the file at p, creating it if needed.
	WriteFile(ctx context.Context, p string, content string) bool
}

type MakeDirectoryOptions struct {
	// Recursive creates all missing parent directories as well.
	Recursive bool
}

// Stats describes a single filesystem entry.
type Stats struct {
	IsFile      bool  `json:"is_file"`
	IsDirectory bool  `json:"is_directory"`
	IsSymlink   bool  `json:"is_symlink"`
	Size        int64 `json:"size"`
}
