package style

import (
	"context"
	"errors"
	"testing"

	"github.com/Gouterman/stencil/data"
	"github.com/Gouterman/stencil/sys/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSystem(t *testing.T, files map[string]string) *memory.System {
	s := memory.New()
	for p, content := range files {
		require.True(t, s.WriteFile(t.Context(), p, content))
	}
	return s
}

func systemLoader(s *memory.System, loaded *[]string) Loader {
	return func(ctx context.Context, importPath, importer string) (string, string, bool) {
		if loaded != nil {
			*loaded = append(*loaded, importPath)
		}
		code, ok := s.ReadFile(ctx, importPath)
		return importPath, code, ok
	}
}

func TestInlineImports_ReplacesStatement(t *testing.T) {
	s := newTestSystem(t, map[string]string{
		"/other.css": "body{color:red}",
	})

	code := InlineImports(t.Context(), Inline{
		RequestID: "style.css",
		CurrentID: "style.css",
		Code:      `@import "other.css";`,
		Load:      systemLoader(s, nil),
	})

	assert.Equal(t, "body{color:red}", code)
}

func TestInlineImports_Forms(t *testing.T) {
	s := newTestSystem(t, map[string]string{
		"/a.css": "A",
		"/b.css": "B",
		"/c.css": "C",
		"/d.css": "D",
		"/e.css": "E",
	})

	code := InlineImports(t.Context(), Inline{
		CurrentID: "/style.css",
		Code:      "@import 'a.css';\n@import url(\"b.css\");\n@import url('c.css');\n@import url(d.css);\n@import   url( e.css ) ;",
		Load:      systemLoader(s, nil),
	})

	assert.Equal(t, "A\nB\nC\nD\nE", code)
}

func TestInlineImports_Nested(t *testing.T) {
	s := newTestSystem(t, map[string]string{
		"/src/lib/b.css": `@import "../c.css";b{}`,
		"/src/c.css":     "c{}",
	})

	code := InlineImports(t.Context(), Inline{
		CurrentID: "/src/a.css",
		Code:      `@import "./lib/b.css";a{}`,
		Load:      systemLoader(s, nil),
	})

	assert.Equal(t, "c{}b{}a{}", code)
}

func TestInlineImports_RelativeToCurrentID(t *testing.T) {
	s := newTestSystem(t, map[string]string{
		"/src/x.css": "src",
		"/out/x.css": "out",
	})

	code := InlineImports(t.Context(), Inline{
		RequestID: "/src/cmp.scss",
		CurrentID: "/out/cmp.css",
		Code:      `@import "x.css";`,
		Load:      systemLoader(s, nil),
	})

	assert.Equal(t, "out", code)
}

func TestInlineImports_MediaQuery(t *testing.T) {
	s := newTestSystem(t, map[string]string{
		"/print.css": "p{}",
	})

	code := InlineImports(t.Context(), Inline{
		CurrentID: "/style.css",
		Code:      `@import url("print.css") print and (orientation: landscape);`,
		Load:      systemLoader(s, nil),
	})

	assert.Equal(t, "@media print and (orientation: landscape) {\np{}\n}", code)
}

func TestInlineImports_MissingSemicolon(t *testing.T) {
	s := newTestSystem(t, map[string]string{
		"/b.css":     "B",
		"/print.css": "p{}",
	})

	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "before rule", code: "@import \"b.css\"\n.x{color:red;}", want: "B\n.x{color:red;}"},
		{name: "end of input", code: "a{}\n@import \"b.css\"", want: "a{}\nB"},
		{name: "media query", code: "@import \"print.css\" print\n.x{}", want: "@media print {\np{}\n}\n.x{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(tst *testing.T) {
			code := InlineImports(tst.Context(), Inline{
				CurrentID: "/style.css",
				Code:      tt.code,
				Load:      systemLoader(s, nil),
			})

			assert.Equal(tst, tt.want, code)
		})
	}
}

func TestInlineImports_NodeModules(t *testing.T) {
	s := newTestSystem(t, map[string]string{
		"/project/node_modules/lib/theme.css": ":root{}",
	})

	code := InlineImports(t.Context(), Inline{
		CurrentID: "/project/src/cmp.css",
		Code:      `@import "~lib/theme.css";`,
		RootDir:   "/project",
		Load:      systemLoader(s, nil),
	})

	assert.Equal(t, ":root{}", code)
}

func TestInlineImports_KeepsRemoteAndForeign(t *testing.T) {
	var loaded []string
	source := `@import url("https://fonts.example.com/a.css");@import "//cdn.example.com/b.css";@import "x.scss";@import url();`
	diagnostics := &data.Diagnostics{}

	code := InlineImports(t.Context(), Inline{
		CurrentID:   "/style.css",
		Code:        source,
		Load:        systemLoader(memory.New(), &loaded),
		Diagnostics: diagnostics,
	})

	assert.Equal(t, source, code)
	assert.Empty(t, loaded)
	assert.Zero(t, diagnostics.Len())
}

func TestInlineImports_MissingImport(t *testing.T) {
	s := newTestSystem(t, map[string]string{
		"/ok.css": "ok{}",
	})
	diagnostics := &data.Diagnostics{}

	code := InlineImports(t.Context(), Inline{
		CurrentID:   "/style.css",
		Code:        "@import \"missing.css\";\n@import \"ok.css\";",
		Load:        systemLoader(s, nil),
		Diagnostics: diagnostics,
	})

	assert.Equal(t, "@import \"missing.css\";\nok{}", code)

	list := diagnostics.List()
	require.Len(t, list, 1)
	assert.Equal(t, data.LevelError, list[0].Level)
	assert.Equal(t, "css", list[0].Type)
	require.NotNil(t, list[0].Location)
	assert.Equal(t, "/style.css", list[0].Location.FilePath)
	assert.Contains(t, list[0].Message, "/missing.css")
}

func TestInlineImports_Cycle(t *testing.T) {
	s := newTestSystem(t, map[string]string{
		"/b.css": "@import \"a.css\";\nb{}",
	})
	diagnostics := &data.Diagnostics{}

	code := InlineImports(t.Context(), Inline{
		CurrentID:   "/a.css",
		Code:        "@import \"b.css\";\na{}",
		Load:        systemLoader(s, nil),
		Diagnostics: diagnostics,
	})

	assert.Equal(t, "\nb{}\na{}", code)

	list := diagnostics.List()
	require.Len(t, list, 1)
	assert.Contains(t, list[0].Message, "cycle")
	assert.Equal(t, "/b.css", list[0].Location.FilePath)
}

func TestInlineImports_CycleAfterResolve(t *testing.T) {
	diagnostics := &data.Diagnostics{}
	load := func(ctx context.Context, importPath, importer string) (string, string, bool) {
		// Every import resolves back to the entry stylesheet
		return "/entry.css", "entry{}", true
	}

	code := InlineImports(t.Context(), Inline{
		CurrentID:   "/entry.css",
		Code:        `@import "alias.css";x{}`,
		Load:        load,
		Diagnostics: diagnostics,
	})

	assert.Equal(t, "x{}", code)
	assert.Equal(t, 1, diagnostics.Len())
}

func TestInlineImports_Cancelled(t *testing.T) {
	var loaded []string
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	code := InlineImports(ctx, Inline{
		CurrentID: "/style.css",
		Code:      `@import "a.css";`,
		Load:      systemLoader(memory.New(), &loaded),
	})

	assert.Equal(t, `@import "a.css";`, code)
	assert.Empty(t, loaded)
	assert.True(t, errors.Is(ctx.Err(), context.Canceled))
}
