package style

import (
	"context"
	"regexp"
	"slices"
	"strings"

	"github.com/Gouterman/stencil/data"
	stencilerrors "github.com/Gouterman/stencil/data/errors"
	"github.com/Gouterman/stencil/log"
	"github.com/Gouterman/stencil/sys"
)

// Loader resolves importPath, as imported by importer, and returns the
// resolved id with its source text. ok is false when nothing could be loaded.
type Loader func(ctx context.Context, importPath, importer string) (id string, code string, ok bool)

// Inline describes one inlining pass over a stylesheet.
type Inline struct {
	// RequestID is the id the pipeline was originally asked for.
	RequestID string
	// CurrentID is the possibly rewritten id of Code; relative imports resolve against it.
	CurrentID string
	Code      string

	// RootDir is the project root holding node_modules for "~" imports.
	RootDir string
	Load    Loader

	// StyleDocs receives the documented custom properties when not nil.
	StyleDocs   *[]data.StyleDoc
	Diagnostics *data.Diagnostics
	Logger      *log.Logger
}

// @import "x"; @import 'x'; @import url("x"); @import url('x'); @import url(x);
// each with an optional media query. A statement ends at its semicolon, or at
// the end of the line or input when the semicolon is missing.
var importRe = regexp.MustCompile(`@import\s+(?:url\(\s*(?:"([^"]*)"|'([^']*)'|([^)'"\s]*))\s*\)|"([^"]*)"|'([^']*)')[ \t]*([^;{}\n]*)(;|\n|$)`)

type inliner struct {
	in     Inline
	logger *log.Logger
}

// InlineImports replaces every local css @import of in.Code with the content of
// the imported stylesheet, recursively. Remote and non-css imports are kept.
// Missing imports are kept and reported; imports closing a cycle are dropped
// and reported.
func InlineImports(ctx context.Context, in Inline) string {
	if in.Load == nil {
		in.Load = func(context.Context, string, string) (string, string, bool) {
			return "", "", false
		}
	}

	i := &inliner{
		in:     in,
		logger: in.Logger.Named("style"),
	}

	currentID := sys.Normalize(in.CurrentID)
	stack := []string{currentID}
	if requestID := sys.Normalize(in.RequestID); requestID != currentID {
		stack = append(stack, requestID)
	}

	i.collectDocs(in.Code)
	return i.inline(ctx, currentID, in.Code, stack)
}

func (i *inliner) inline(ctx context.Context, id, code string, stack []string) string {
	matches := importRe.FindAllStringSubmatchIndex(code, -1)
	if len(matches) == 0 {
		return code
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(code[last:m[0]])
		last = m[1]

		statement := code[m[0]:m[1]]
		target := firstGroup(code, m, 1, 5)
		media := strings.TrimSpace(group(code, m, 6))
		// A line break closing the statement belongs to the surrounding code
		trailer := ""
		if group(code, m, 7) == "\n" {
			trailer = "\n"
		}

		if ctx.Err() != nil || !isLocalStylesheet(target) {
			sb.WriteString(statement)
			continue
		}

		importPath := i.resolve(id, target)
		if slices.Contains(stack, importPath) {
			i.report(stencilerrors.ImportCycle(id, importPath))
			sb.WriteString(trailer)
			continue
		}

		i.logger.Debug("Inlining '%s' into '%s'", importPath, id)
		resolvedID, content, ok := i.in.Load(ctx, importPath, id)
		if !ok {
			i.report(stencilerrors.ImportNotFound(id, importPath))
			sb.WriteString(statement)
			continue
		}

		resolvedID = sys.Normalize(resolvedID)
		if resolvedID != importPath && slices.Contains(stack, resolvedID) {
			i.report(stencilerrors.ImportCycle(id, resolvedID))
			sb.WriteString(trailer)
			continue
		}

		i.collectDocs(content)
		content = i.inline(ctx, resolvedID, content, append(slices.Clip(stack), importPath, resolvedID))

		if media != "" {
			content = "@media " + media + " {\n" + content + "\n}"
		}
		sb.WriteString(content)
		sb.WriteString(trailer)
	}
	sb.WriteString(code[last:])

	return sb.String()
}

// resolve turns target, as imported by importer, into an absolute id.
func (i *inliner) resolve(importer, target string) string {
	switch {
	case strings.HasPrefix(target, "~"):
		rootDir := i.in.RootDir
		if rootDir == "" {
			rootDir = "/"
		}
		return sys.Join(rootDir, "node_modules", strings.TrimPrefix(target, "~"))
	case strings.HasPrefix(target, "/"):
		return sys.Normalize(target)
	default:
		return sys.Join(sys.Dir(importer), target)
	}
}

func (i *inliner) report(err error) {
	i.logger.Warn("%v", err)
	data.CatchError(i.in.Diagnostics, err)
}

func isLocalStylesheet(target string) bool {
	lower := strings.ToLower(target)
	if lower == "" || strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "//") {
		return false
	}

	return strings.HasSuffix(lower, ".css")
}

func group(s string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return s[m[2*n]:m[2*n+1]]
}

func firstGroup(s string, m []int, from, to int) string {
	for n := from; n <= to; n++ {
		if v := group(s, m, n); v != "" {
			return v
		}
	}
	return ""
}
