// Package mailjsx renders JSX email templates that arrive as data.
//
// A template is a single JSX expression held in a string, for example loaded
// from a database. Each call compiles it, evaluates it against a scope and
// renders the resulting element tree to HTML or plain text:
//
//	html, err := mailjsx.Render(ctx, `
//		<Html>
//			<Body>
//				<Text>Hello, {name}!</Text>
//				<Button href={url}>Confirm</Button>
//			</Body>
//		</Html>`,
//		mailjsx.WithScope(mailjsx.Scope{"name": "World", "url": confirmURL}),
//	)
//
// The scope a template sees has three tiers: the React runtime handle
// (createElement and Fragment), the prebuilt components of package
// components, and the names passed with WithScope. Later tiers shadow
// earlier ones. Templates are interpreted, not executed: they can reach
// nothing but the values in the scope.
//
// Render and RenderAsync run the pipeline through futures from package
// async; RenderSync runs it on the calling goroutine. Both produce the same
// output. Nothing is cached between calls.
//
// WithRenderOptions selects plain-text output:
//
//	text, err := mailjsx.RenderSync(tpl, mailjsx.WithRenderOptions(render.Options{PlainText: true}))
//
// Errors from each stage are returned unchanged.
package mailjsx
