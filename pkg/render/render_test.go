package render_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailjsx/pkg/element"
	"github.com/dmitrymomot/mailjsx/pkg/render"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func el(t *testing.T, typ any, props element.Props, children ...any) *element.Element {
	t.Helper()
	e, err := element.CreateElement(typ, props, children...)
	require.NoError(t, err)
	return e
}

func TestRender_HTML(t *testing.T) {
	t.Parallel()

	greeting := element.NewComponent("Greeting", func(p element.Props) (any, error) {
		return element.CreateElement("p", nil, "Hello, ", p["name"])
	})

	tests := []struct {
		name string
		node any
		want string
	}{
		{
			name: "text children are joined",
			node: el(t, "p", element.Props{"className": "greeting"}, "Hello, ", "World", "!"),
			want: `<p class="greeting">Hello, World!</p>`,
		},
		{
			name: "text is escaped",
			node: el(t, "p", nil, `<b> & "q" 'a'`),
			want: `<p>&lt;b&gt; &amp; &quot;q&quot; &#x27;a&#x27;</p>`,
		},
		{
			name: "style object",
			node: el(t, "div", element.Props{"style": map[string]any{
				"fontSize":   14,
				"lineHeight": "24px",
				"margin":     "16px 0",
				"zIndex":     2,
				"padding":    0,
				"color":      nil,
			}}),
			want: `<div style="font-size:14px;line-height:24px;margin:16px 0;padding:0;z-index:2"></div>`,
		},
		{
			name: "vendor prefixed style",
			node: el(t, "div", element.Props{"style": map[string]any{
				"WebkitTextSizeAdjust": "100%",
				"msTextSizeAdjust":     "100%",
			}}),
			want: `<div style="-webkit-text-size-adjust:100%;-ms-text-size-adjust:100%"></div>`,
		},
		{
			name: "void element",
			node: el(t, "img", element.Props{"src": "a.png", "alt": "", "width": "100"}),
			want: `<img alt="" src="a.png" width="100"/>`,
		},
		{
			name: "boolean and function props",
			node: el(t, "input", element.Props{
				"disabled": true,
				"checked":  false,
				"data-x":   true,
				"hidden":   "",
				"readOnly": true,
				"onClick":  func() {},
			}),
			want: `<input data-x="true" disabled="" readonly=""/>`,
		},
		{
			name: "renamed attributes",
			node: el(t, "label", element.Props{"className": "c", "htmlFor": "x"}, "t"),
			want: `<label class="c" for="x">t</label>`,
		},
		{
			name: "nullish and boolean children render nothing",
			node: el(t, "div", nil, nil, false, element.Undefined, "x", 0),
			want: `<div>x0</div>`,
		},
		{
			name: "fragment",
			node: el(t, element.Fragment, nil, el(t, "b", nil, "a"), "b"),
			want: `<b>a</b>b`,
		},
		{
			name: "component",
			node: el(t, greeting, element.Props{"name": "Ann"}),
			want: `<p>Hello, Ann</p>`,
		},
		{
			name: "inner html",
			node: el(t, "div", element.Props{"dangerouslySetInnerHTML": map[string]any{"__html": "<i>raw</i>"}}),
			want: `<div><i>raw</i></div>`,
		},
		{
			name: "templ component child",
			node: el(t, "div", nil, templ.Raw("<b>t</b>")),
			want: `<div><b>t</b></div>`,
		},
		{
			name: "slice children",
			node: el(t, "ul", nil, []any{el(t, "li", nil, "a"), el(t, "li", nil, "b")}),
			want: `<ul><li>a</li><li>b</li></ul>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := render.Render(tt.node, nil)
			require.NoError(t, err)
			assert.Equal(t, render.Doctype+tt.want, got)
		})
	}
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	failing := element.NewComponent("Failing", func(element.Props) (any, error) { return nil, errBoom })

	var loop element.Component
	loop = element.NewComponent("Loop", func(element.Props) (any, error) {
		return element.CreateElement(loop, nil)
	})

	tests := []struct {
		name    string
		node    any
		opts    *render.Options
		wantErr error
	}{
		{
			name:    "object child",
			node:    el(t, "p", nil, map[string]any{"a": 1}),
			wantErr: render.ErrRender,
		},
		{
			name:    "void element with children",
			node:    el(t, "br", nil, "x"),
			wantErr: render.ErrRender,
		},
		{
			name: "children and inner html",
			node: el(t, "div", element.Props{"dangerouslySetInnerHTML": map[string]any{"__html": "x"}}, "y"),
			wantErr: render.ErrRender,
		},
		{
			name:    "component error is returned unchanged",
			node:    el(t, failing, nil),
			wantErr: errBoom,
		},
		{
			name:    "recursive component",
			node:    el(t, loop, nil),
			wantErr: render.ErrRender,
		},
		{
			name:    "plain text with pretty",
			node:    "x",
			opts:    &render.Options{PlainText: true, Pretty: true},
			wantErr: render.ErrConflictingOptions,
		},
		{
			name:    "malformed link brackets",
			node:    "x",
			opts:    &render.Options{PlainText: true, HTMLToText: &render.HTMLToTextOptions{LinkBrackets: []string{"["}}},
			wantErr: render.ErrInvalidLinkBrackets,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := render.Render(tt.node, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRender_Pretty(t *testing.T) {
	t.Parallel()

	node := el(t, "div", element.Props{"className": "wrap"},
		el(t, "p", nil, "Hi"),
		el(t, "br", nil),
		el(t, "table", nil, el(t, "tr", nil, el(t, "td", nil, "cell"))),
	)

	got, err := render.Render(node, &render.Options{Pretty: true})
	require.NoError(t, err)

	want := render.Doctype + "\n" + strings.Join([]string{
		`<div class="wrap">`,
		`  <p>Hi</p>`,
		`  <br/>`,
		`  <table>`,
		`    <tr>`,
		`      <td>cell</td>`,
		`    </tr>`,
		`  </table>`,
		`</div>`,
	}, "\n")
	assert.Equal(t, want, got)
	snaps.MatchSnapshot(t, got)
}

func plainTextTree(t *testing.T) *element.Element {
	t.Helper()
	return el(t, "html", nil, el(t, "body", nil,
		el(t, "div", element.Props{"data-skip-in-text": true}, "preview"),
		el(t, "h1", nil, "Welcome"),
		el(t, "p", nil, "Hello, ", el(t, "b", nil, "World"), "!"),
		el(t, "p", nil, el(t, "a", element.Props{"href": "https://x.io"}, "Visit us")),
		el(t, "img", element.Props{"src": "a.png"}),
		el(t, "ul", nil, el(t, "li", nil, "one"), el(t, "li", nil, "two")),
		el(t, "hr", nil),
		el(t, "p", nil, el(t, "a", element.Props{"href": "https://y.io"}, "https://y.io")),
	))
}

func TestRender_PlainText(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		got, err := render.Render(plainTextTree(t), &render.Options{PlainText: true})
		require.NoError(t, err)

		want := "WELCOME\n\nHello, World!\n\nVisit us [https://x.io]\n\n * one\n * two\n\n" +
			strings.Repeat("-", 40) + "\n\nhttps://y.io"
		assert.Equal(t, want, got)
		assert.NotContains(t, got, "preview")
		assert.NotContains(t, got, "<")
	})

	t.Run("custom options", func(t *testing.T) {
		t.Parallel()
		upper := false
		got, err := render.Render(plainTextTree(t), &render.Options{
			PlainText: true,
			HTMLToText: &render.HTMLToTextOptions{
				LinkBrackets:      []string{"<", ">"},
				UppercaseHeadings: &upper,
				HRWidth:           3,
			},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "Welcome\n\n"))
		assert.Contains(t, got, "Visit us <https://x.io>")
		assert.Contains(t, got, "\n---\n")
		assert.False(t, upper, "caller options must not be modified")
	})

	t.Run("word wrap", func(t *testing.T) {
		t.Parallel()
		got, err := render.Render(el(t, "p", nil, "aaa bbb ccc ddd"), &render.Options{
			PlainText:  true,
			HTMLToText: &render.HTMLToTextOptions{WordWrap: 10},
		})
		require.NoError(t, err)
		assert.Equal(t, "aaa bbb\nccc ddd", got)
	})

	t.Run("line breaks and ordered lists", func(t *testing.T) {
		t.Parallel()
		node := el(t, element.Fragment, nil,
			el(t, "p", nil, "a", el(t, "br", nil), "b"),
			el(t, "ol", nil, el(t, "li", nil, "x"), el(t, "li", nil, "y")),
		)
		got, err := render.Render(node, &render.Options{PlainText: true})
		require.NoError(t, err)
		assert.Equal(t, "a\nb\n\n 1. x\n 2. y", got)
	})
}

func TestRenderAsync(t *testing.T) {
	t.Parallel()

	node := plainTextTree(t)
	want, err := render.Render(node, nil)
	require.NoError(t, err)

	got, err := render.RenderAsync(context.Background(), node, nil).Await()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = render.RenderAsync(ctx, node, nil).Await()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComponent(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	err := render.Component(el(t, "p", nil, "x"), nil).Render(context.Background(), &b)
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", b.String())

	b.Reset()
	err = render.Component(el(t, "h2", nil, "title"), &render.Options{PlainText: true}).Render(context.Background(), &b)
	require.NoError(t, err)
	assert.Equal(t, "TITLE", b.String())
}
