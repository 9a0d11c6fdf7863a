package sys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":                   "/",
		"/":                  "/",
		"a":                  "/a",
		"/a/b/":              "/a/b",
		"/a//b":              "/a/b",
		"/a/./b/../c":        "/a/c",
		"a\\b\\c.css":        "/a/b/c.css",
		"C:\\src\\cmp.tsx":   "/src/cmp.tsx",
		"/../outside":        "/outside",
		"/components/x.scss": "/components/x.scss",
	}

	for input, expected := range tests {
		t.Run(input, func(tst *testing.T) {
			assert.Equal(tst, expected, Normalize(input))
		})
	}
}

func TestDirAndBase(t *testing.T) {
	assert.Equal(t, "/a/b", Dir("/a/b/c.txt"))
	assert.Equal(t, "/", Dir("/a"))
	assert.Equal(t, "/", Dir("/"))
	assert.Equal(t, "c.txt", Base("a/b/c.txt"))
	assert.Equal(t, "/", Base("/"))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "/src/styles/other.css", Join("/src/styles/", "./other.css"))
	assert.Equal(t, "/src/other.css", Join("/src/styles", "../other.css"))
	assert.Equal(t, "/", Join())
}

func TestWatcherFuncClosesOnce(t *testing.T) {
	calls := 0
	w := WatcherFunc(func() { calls++ })

	w.Close()
	w.Close()

	assert.Equal(t, 1, calls)
	assert.NotPanics(t, WatcherFunc(nil).Close)
}
