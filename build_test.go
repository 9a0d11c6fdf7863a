package stencil

import (
	"context"
	"errors"
	"testing"

	"github.com/Gouterman/stencil/data"
	"github.com/Gouterman/stencil/sys/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiler_Build(t *testing.T) {
	s := memory.New()
	for _, p := range []string{"/a.tsx", "/b.tsx", "/c.tsx"} {
		require.True(t, s.WriteFile(t.Context(), p, "source "+p))
	}

	failing := &data.Plugin{
		Name: "failing",
		Transform: func(_ context.Context, code, id string, _ *data.PluginContext) (*data.TransformResult, error) {
			return nil, errors.New("failed " + id)
		},
	}

	c, err := New(t.Context(), WithSystem(s), WithPlugins(failing))
	require.NoError(t, err)
	defer c.Close(t.Context())

	results := c.Build(t.Context(), "/a.tsx", "/b.tsx", "/c.tsx")

	require.Len(t, results.Modules, 3)
	assert.Equal(t, "source /a.tsx", results.Modules[0].Code)
	assert.Equal(t, "source /c.tsx", results.Modules[2].Code)
	assert.NotEmpty(t, results.Context.BuildID)
	assert.True(t, results.HasError())

	// Merged in request order regardless of which module finished first
	diagnostics := results.Context.Diagnostics()
	require.Len(t, diagnostics, 3)
	assert.Contains(t, diagnostics[0].Message, "failed /a.tsx")
	assert.Contains(t, diagnostics[1].Message, "failed /b.tsx")
	assert.Contains(t, diagnostics[2].Message, "failed /c.tsx")
}

func TestCompiler_BuildModules_SharedSystem(t *testing.T) {
	s := memory.New()

	writer := &data.Plugin{
		Name: "emit",
		Transform: func(ctx context.Context, code, id string, pctx *data.PluginContext) (*data.TransformResult, error) {
			pctx.Sys.WriteFile(ctx, "/www"+id, code)
			return nil, nil
		},
		Load: func(_ context.Context, id string, _ *data.PluginContext) (string, error) {
			return "compiled " + id, nil
		},
	}

	c, err := New(t.Context(), WithSystem(s), WithPlugins(writer))
	require.NoError(t, err)
	defer c.Close(t.Context())

	modules := make([]Module, 0, 32)
	for i := range 32 {
		modules = append(modules, Module{ID: "/cmp" + string(rune('a'+i%26)) + string(rune('0'+i/26)) + ".js"})
	}

	results := c.BuildModules(t.Context(), modules...)

	assert.False(t, results.HasError())
	assert.Len(t, s.ListDirectory(t.Context(), "/www"), 32)
}

func TestBuildContext(t *testing.T) {
	b := NewBuildContext()
	b.Add(&data.Diagnostic{Level: data.LevelWarn}, nil)

	assert.Len(t, b.Diagnostics(), 1)
	assert.False(t, b.HasError())

	b.Add(&data.Diagnostic{Level: data.LevelError})
	assert.True(t, b.HasError())
}
