package mailjsx

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/mailjsx/pkg/async"
	"github.com/dmitrymomot/mailjsx/pkg/eval"
	"github.com/dmitrymomot/mailjsx/pkg/jsx"
	"github.com/dmitrymomot/mailjsx/pkg/render"
)

// Render compiles template, evaluates it against the scope and renders the
// result. It runs the asynchronous pipeline and waits for it, returning
// ctx.Err() if ctx is done first.
//
// Parameters:
//   - ctx: Context for cancellation; checked between stages and before each
//     component render
//   - template: JSX source, a single expression
//   - opts: compiler options, render options, scope and logger
//
// Returns:
//   - string: the HTML document, or plain text with render.Options.PlainText
//   - error: compile, evaluation and render errors, returned unchanged; match
//     them with errors.Is against jsx.ErrSyntax, eval.ErrReference,
//     eval.ErrType, eval.ErrDepth, render.ErrRender and friends
func Render(ctx context.Context, template string, opts ...Option) (string, error) {
	return RenderAsync(ctx, template, opts...).AwaitContext(ctx)
}

// RenderAsync starts the pipeline in the background and returns its future.
// Compilation completes before evaluation starts, and evaluation before
// rendering.
func RenderAsync(ctx context.Context, template string, opts ...Option) *async.Future[string] {
	c := newConfig(opts)
	c.logger.DebugContext(ctx, "compiling template", slog.Int("size", len(template)))

	compiled := jsx.TransformAsync(ctx, template, c.compiler)
	return async.Then(ctx, compiled, func(ctx context.Context, out *jsx.Output) (string, error) {
		node, err := c.evaluate(ctx, out)
		if err != nil {
			return "", err
		}
		c.logger.DebugContext(ctx, "rendering element")
		return render.RenderAsync(ctx, node, c.render).AwaitContext(ctx)
	})
}

// RenderSync runs the pipeline on the calling goroutine. Its output is
// identical to Render's for the same inputs.
func RenderSync(template string, opts ...Option) (string, error) {
	ctx := context.Background()
	c := newConfig(opts)
	c.logger.DebugContext(ctx, "compiling template", slog.Int("size", len(template)))

	out, err := jsx.Transform(template, c.compiler)
	if err != nil {
		return "", err
	}
	node, err := c.evaluate(ctx, out)
	if err != nil {
		return "", err
	}
	c.logger.DebugContext(ctx, "rendering element")
	return render.Render(node, c.render)
}

func (c *config) evaluate(ctx context.Context, out *jsx.Output) (any, error) {
	scope := BuildScope(c.scope)
	c.logger.DebugContext(ctx, "evaluating template",
		slog.Int("scope_size", len(scope)),
		slog.Bool("strict", out.Program.Strict),
	)
	return eval.Evaluate(out.Program, scope)
}
