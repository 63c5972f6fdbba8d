package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailjsx/pkg/eval"
	"github.com/dmitrymomot/mailjsx/pkg/jsx"
	"github.com/dmitrymomot/mailjsx/pkg/render"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("stdin with set", func(t *testing.T) {
		t.Parallel()
		out, _, err := execute(t, `<Text>Hello, {name}!</Text>`, "render", "-", "--plain-text", "--set", "name=World")
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!\n", out)
	})

	t.Run("file with yaml scope", func(t *testing.T) {
		t.Parallel()
		tpl := writeFile(t, "order.jsx", `<ul>{order.items.map(i => <li key={i.sku}>{i.name} x{i.qty}</li>)}</ul>`)
		scope := writeFile(t, "scope.yaml", "order:\n  items:\n    - {sku: a1, name: Mug, qty: 2}\n    - {sku: b2, name: Tee, qty: 1}\n")
		out, _, err := execute(t, "", "render", tpl, "--scope", scope)
		require.NoError(t, err)
		assert.Equal(t, render.Doctype+"<ul><li>Mug x2</li><li>Tee x1</li></ul>\n", out)
	})

	t.Run("json scope and set override", func(t *testing.T) {
		t.Parallel()
		scope := writeFile(t, "scope.json", `{"name": "file", "n": 2.5}`)
		out, _, err := execute(t, `<p>{name} {n}</p>`, "render", "-", "-s", scope, "--set", "name=flag")
		require.NoError(t, err)
		assert.Equal(t, render.Doctype+"<p>flag 2.5</p>\n", out)
	})

	t.Run("typescript and strict", func(t *testing.T) {
		t.Parallel()
		out, _, err := execute(t, `<p>{(name as string).toUpperCase()}</p>`,
			"render", "-", "--syntax", "typescript", "--strict", "--set", "name=ann")
		require.NoError(t, err)
		assert.Equal(t, render.Doctype+"<p>ANN</p>\n", out)
	})

	t.Run("output file", func(t *testing.T) {
		t.Parallel()
		dst := filepath.Join(t.TempDir(), "out.html")
		out, _, err := execute(t, `<Hr />`, "render", "-", "--out", dst, "--pretty")
		require.NoError(t, err)
		assert.Empty(t, out)
		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), render.Doctype+"\n<hr "))
	})

	t.Run("debug logs go to stderr", func(t *testing.T) {
		t.Parallel()
		out, stderr, err := execute(t, `<p>x</p>`, "render", "-", "--log-level", "debug")
		require.NoError(t, err)
		assert.Equal(t, render.Doctype+"<p>x</p>\n", out)
		assert.Contains(t, stderr, "compiling template")
		assert.Contains(t, stderr, "service=mailjsx")
	})
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.jsx")

	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
		wantMsg string
	}{
		{name: "syntax error", stdin: `<div>`, args: []string{"render", "-"}, wantErr: jsx.ErrSyntax, wantMsg: "<stdin>"},
		{name: "unknown component", stdin: `<UnknownComp />`, args: []string{"render", "-"}, wantErr: eval.ErrReference},
		{name: "unknown syntax", stdin: `<p/>`, args: []string{"render", "-", "--syntax", "flow"}, wantErr: jsx.ErrInvalidOptions},
		{name: "conflicting output", stdin: `<p/>`, args: []string{"render", "-", "--plain-text", "--pretty"}, wantErr: render.ErrConflictingOptions},
		{name: "missing template", args: []string{"render", missing}, wantErr: os.ErrNotExist},
		{name: "missing scope", stdin: `<p/>`, args: []string{"render", "-", "--scope", missing}, wantErr: os.ErrNotExist},
		{name: "malformed set", stdin: `<p/>`, args: []string{"render", "-", "--set", "novalue"}, wantMsg: "expected name=value"},
		{name: "bad log level", stdin: `<p/>`, args: []string{"render", "-", "--log-level", "loud"}, wantMsg: "invalid log level"},
		{name: "no arguments", args: []string{"render"}, wantMsg: "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, _, err := execute(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Empty(t, out)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestComponents(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "components")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 16)
	assert.Equal(t, "Body", lines[0])
	assert.IsIncreasing(t, lines)
}

func TestServe_StopsWithContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := newRootCommand()
	root.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})
	root.SetErr(&bytes.Buffer{})
	assert.NoError(t, root.ExecuteContext(ctx))
}
