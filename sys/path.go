package sys

import (
	"path"
	"strings"
)

// Normalize converts p into a canonical absolute, slash separated path.
// The empty path and "/" both normalize to the root.
func Normalize(p string) string {
	if p == "" || p == "/" {
		return "/"
	}

	p = strings.ReplaceAll(p, "\\", "/")
	// Drop a windows volume name, the system is rooted at "/"
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		p = p[2:]
	}

	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return path.Clean(p)
}

// Dir returns the normalized parent directory of p. The parent of the root is the root.
func Dir(p string) string {
	return path.Dir(Normalize(p))
}

// Base returns the last element of the normalized p.
func Base(p string) string {
	return path.Base(Normalize(p))
}

// Join joins all elements and normalizes the result.
func Join(elem ...string) string {
	return Normalize(path.Join(elem...))
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
