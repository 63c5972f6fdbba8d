package mailjsx_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailjsx"
	"github.com/dmitrymomot/mailjsx/pkg/element"
	"github.com/dmitrymomot/mailjsx/pkg/eval"
	"github.com/dmitrymomot/mailjsx/pkg/jsx"
	"github.com/dmitrymomot/mailjsx/pkg/render"
)

const welcomeTemplate = `
<Html>
	<Head />
	<Preview>Welcome aboard, {user.name}</Preview>
	<Body style={{ backgroundColor: "#ffffff" }}>
		<Container>
			<Heading as="h2">Welcome, {user.name}!</Heading>
			<Text>
				Your plan: {user.plan ?? "free"}.
				You have {items.length} new {items.length === 1 ? "message" : "messages"}.
			</Text>
			<ul>
				{items.map(item => <li key={item}>{item.toUpperCase()}</li>)}
			</ul>
			<Button href={confirmURL} style={{ padding: "12px 20px" }}>Confirm email</Button>
			<Hr />
			<Text>
				Questions? <Link href="mailto:help@example.com">help@example.com</Link>
			</Text>
		</Container>
	</Body>
</Html>`

type welcomeUser struct {
	Name string `json:"name"`
	Plan *string
}

func welcomeScope() mailjsx.Scope {
	return mailjsx.Scope{
		"user":       welcomeUser{Name: "Ann"},
		"items":      []string{"invoice", "receipt"},
		"confirmURL": "https://example.com/confirm?token=abc&id=1",
	}
}

func TestRenderSync_HelloWorld(t *testing.T) {
	t.Parallel()

	scope := mailjsx.WithScope(mailjsx.Scope{"name": "World"})

	html, err := mailjsx.RenderSync(`<Text>Hello, {name}!</Text>`, scope)
	require.NoError(t, err)
	assert.Equal(t, render.Doctype+`<p style="font-size:14px;line-height:24px;margin:16px 0">Hello, World!</p>`, html)

	text, err := mailjsx.RenderSync(`<Text>Hello, {name}!</Text>`, scope,
		mailjsx.WithReactEmailRenderOptions(render.Options{PlainText: true}))
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", text)
	assert.NotContains(t, text, "<")
}

func TestRender_MatchesRenderSync(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tpl  string
		opts []mailjsx.Option
	}{
		{
			name: "welcome email",
			tpl:  welcomeTemplate,
			opts: []mailjsx.Option{mailjsx.WithScope(welcomeScope())},
		},
		{
			name: "welcome email as text",
			tpl:  welcomeTemplate,
			opts: []mailjsx.Option{
				mailjsx.WithScope(welcomeScope()),
				mailjsx.WithRenderOptions(render.Options{PlainText: true}),
			},
		},
		{
			name: "pretty fragment",
			tpl:  `<><Text>a</Text><Hr /></>`,
			opts: []mailjsx.Option{mailjsx.WithRenderOptions(render.Options{Pretty: true})},
		},
		{
			name: "precompiled runtime calls",
			tpl:  `React.createElement("p", { className: "x" }, "hi")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sync1, err := mailjsx.RenderSync(tt.tpl, tt.opts...)
			require.NoError(t, err)
			sync2, err := mailjsx.RenderSync(tt.tpl, tt.opts...)
			require.NoError(t, err)
			async1, err := mailjsx.Render(context.Background(), tt.tpl, tt.opts...)
			require.NoError(t, err)
			async2, err := mailjsx.RenderAsync(context.Background(), tt.tpl, tt.opts...).Await()
			require.NoError(t, err)

			assert.Equal(t, sync1, sync2)
			assert.Equal(t, sync1, async1)
			assert.Equal(t, sync1, async2)
		})
	}
}

func TestRender_WelcomeEmail(t *testing.T) {
	t.Parallel()

	html, err := mailjsx.Render(context.Background(), welcomeTemplate, mailjsx.WithScope(welcomeScope()))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, render.Doctype+`<html dir="ltr" lang="en">`))
	assert.Contains(t, html, `<h2>Welcome, Ann!</h2>`)
	assert.Contains(t, html, `Your plan: free. You have 2 new messages.`)
	assert.Contains(t, html, `<ul><li>INVOICE</li><li>RECEIPT</li></ul>`)
	assert.Contains(t, html, `href="https://example.com/confirm?token=abc&amp;id=1"`)
	assert.Contains(t, html, `padding:12px 20px`)
	assert.Contains(t, html, `<body style="background-color:#ffffff">`)
	assert.Contains(t, html, `<div data-skip-in-text="true" style="display:none;line-height:1px;max-height:0;max-width:0;opacity:0;overflow:hidden">Welcome aboard, Ann<div>`)
	assert.Contains(t, html, `<table align="center" border="0" cellpadding="0" cellspacing="0" role="presentation" style="max-width:37.5em" width="100%"><tbody><tr style="width:100%"><td>`)
	assert.Contains(t, html, `<a href="https://example.com/confirm?token=abc&amp;id=1" `+
		`style="display:inline-block;line-height:100%;max-width:100%;mso-padding-alt:0px;padding:12px 20px;text-decoration:none" target="_blank">`)
	assert.Contains(t, html, `<hr style="border:none;border-top:1px solid #eaeaea;width:100%"/>`)
	assert.Contains(t, html, `<a href="mailto:help@example.com" style="color:#067df7;text-decoration-line:none" target="_blank">help@example.com</a>`)
	assert.True(t, strings.HasSuffix(html, `</td></tr></tbody></table></body></html>`))

	text, err := mailjsx.Render(context.Background(), welcomeTemplate,
		mailjsx.WithScope(welcomeScope()),
		mailjsx.WithRenderOptions(render.Options{PlainText: true}),
	)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "WELCOME, ANN!"), text)
	assert.Contains(t, text, " * INVOICE\n * RECEIPT")
	assert.Contains(t, text, "Confirm email [https://example.com/confirm?token=abc&id=1]")
	assert.Contains(t, text, "Questions? help@example.com")
	assert.NotContains(t, text, "Welcome aboard")
	assert.NotContains(t, text, "<")
}

func TestRender_ScopePrecedence(t *testing.T) {
	t.Parallel()

	t.Run("caller scope shadows components", func(t *testing.T) {
		t.Parallel()
		custom := element.NewComponent("Text", func(p element.Props) (any, error) {
			return element.CreateElement("span", nil, p["children"])
		})
		out, err := mailjsx.RenderSync(`<Text>x</Text>`, mailjsx.WithScope(mailjsx.Scope{"Text": custom}))
		require.NoError(t, err)
		assert.Equal(t, render.Doctype+`<span>x</span>`, out)
	})

	t.Run("later scope option wins", func(t *testing.T) {
		t.Parallel()
		out, err := mailjsx.RenderSync(`<p>{name}</p>`,
			mailjsx.WithScope(mailjsx.Scope{"name": "first"}),
			mailjsx.WithScope(mailjsx.Scope{"name": "second"}),
		)
		require.NoError(t, err)
		assert.Equal(t, render.Doctype+`<p>second</p>`, out)
	})

	t.Run("caller scope is not modified", func(t *testing.T) {
		t.Parallel()
		scope := mailjsx.Scope{"name": "Ann"}
		_, err := mailjsx.RenderSync(`<p>{name}</p>`, mailjsx.WithScope(scope))
		require.NoError(t, err)
		assert.Equal(t, mailjsx.Scope{"name": "Ann"}, scope)
	})

	t.Run("build scope tiers", func(t *testing.T) {
		t.Parallel()
		base := mailjsx.BuildScope(nil)
		assert.Contains(t, base, mailjsx.RuntimeName)
		assert.Contains(t, base, "Text")
		assert.Contains(t, base, "Preview")

		custom := mailjsx.Scope{"Text": 1, "React": "shadowed"}
		scope := mailjsx.BuildScope(custom)
		assert.Equal(t, 1, scope["Text"])
		assert.Equal(t, "shadowed", scope["React"])
		assert.Len(t, custom, 2)
	})
}

func TestRender_CompilerOptions(t *testing.T) {
	t.Parallel()

	const tpl = `<Text>{greeting}</Text>`
	scope := mailjsx.WithScope(mailjsx.Scope{"greeting": "hi"})

	base, err := mailjsx.RenderSync(tpl, scope)
	require.NoError(t, err)

	t.Run("explicit defaults match omitted options", func(t *testing.T) {
		t.Parallel()
		out, err := mailjsx.RenderSync(tpl, scope, mailjsx.WithCompilerOptions(jsx.DefaultOptions()))
		require.NoError(t, err)
		assert.Equal(t, base, out)
	})

	t.Run("strict mode does not change output", func(t *testing.T) {
		t.Parallel()
		opts := jsx.DefaultOptions()
		opts.Module.StrictMode = true
		out, err := mailjsx.RenderSync(tpl, scope, mailjsx.WithSWCOptions(opts))
		require.NoError(t, err)
		assert.Equal(t, base, out)
	})

	t.Run("typescript casts", func(t *testing.T) {
		t.Parallel()
		opts := jsx.DefaultOptions()
		opts.Parser.Syntax = jsx.SyntaxTypeScript
		out, err := mailjsx.RenderSync(`<Text>{greeting as string}</Text>`, scope, mailjsx.WithCompilerOptions(opts))
		require.NoError(t, err)
		assert.Equal(t, base, out)
	})

	t.Run("options replace defaults wholesale", func(t *testing.T) {
		t.Parallel()
		_, err := mailjsx.RenderSync(tpl, scope, mailjsx.WithCompilerOptions(jsx.Options{}))
		assert.ErrorIs(t, err, jsx.ErrSyntax, "JSX is off unless enabled")
	})
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	failing := element.NewComponent("Failing", func(element.Props) (any, error) { return nil, errBoom })

	tests := []struct {
		name    string
		tpl     string
		opts    []mailjsx.Option
		wantErr error
	}{
		{name: "unclosed tag", tpl: `<div>`, wantErr: jsx.ErrSyntax},
		{name: "unknown component", tpl: `<UnknownComp/>`, wantErr: eval.ErrReference},
		{name: "unbound identifier", tpl: `<p>{missing}</p>`, wantErr: eval.ErrReference},
		{name: "property of undefined", tpl: `<p>{user.name}</p>`, opts: []mailjsx.Option{mailjsx.WithScope(mailjsx.Scope{"user": nil})}, wantErr: eval.ErrType},
		{
			name:    "invalid compiler options",
			tpl:     `<p />`,
			opts:    []mailjsx.Option{mailjsx.WithCompilerOptions(jsx.Options{Parser: jsx.ParserOptions{Syntax: "flow"}})},
			wantErr: jsx.ErrInvalidOptions,
		},
		{
			name:    "conflicting render options",
			tpl:     `<p />`,
			opts:    []mailjsx.Option{mailjsx.WithRenderOptions(render.Options{PlainText: true, Pretty: true})},
			wantErr: render.ErrConflictingOptions,
		},
		{
			name:    "component error",
			tpl:     `<Failing />`,
			opts:    []mailjsx.Option{mailjsx.WithScope(mailjsx.Scope{"Failing": failing})},
			wantErr: errBoom,
		},
		{name: "object child", tpl: `<p>{{ a: 1 }}</p>`, wantErr: render.ErrRender},
		{name: "unbounded recursion", tpl: `<p>{(f => f(f))(f => f(f))}</p>`, wantErr: eval.ErrDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := mailjsx.RenderSync(tt.tpl, tt.opts...)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, out)

			out, err = mailjsx.Render(context.Background(), tt.tpl, tt.opts...)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, out)
		})
	}
}

func TestRender_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mailjsx.Render(ctx, `<p>x</p>`)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_GoValuesInScope(t *testing.T) {
	t.Parallel()

	scope := mailjsx.Scope{
		"price":  func(cents int) string { return fmt.Sprintf("$%d", cents/100) },
		"banner": templ.Raw(`<b>templ</b>`),
		"Badge": func(p element.Props) any {
			return "[" + element.ToString(p["label"]) + "]"
		},
	}

	out, err := mailjsx.RenderSync(`<div>{price(300)} {banner}<Badge label="new" /></div>`, mailjsx.WithScope(scope))
	require.NoError(t, err)
	assert.Equal(t, render.Doctype+`<div>$3 <b>templ</b>[new]</div>`, out)
}

func TestRender_Logger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := mailjsx.RenderSync(`<p>x</p>`, mailjsx.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "compiling template")
	assert.Contains(t, buf.String(), "evaluating template")
	assert.Contains(t, buf.String(), "rendering element")

	buf.Reset()
	_, err = mailjsx.RenderSync(`<p>`, mailjsx.WithLogger(logger))
	require.ErrorIs(t, err, jsx.ErrSyntax)
	assert.Contains(t, buf.String(), "compiling template")
	assert.NotContains(t, buf.String(), "evaluating template")
}
