// Package async provides generic helpers for running computations in the
// background and waiting for their completion.
//
// The package is centred around Future, the eventual result of an
// asynchronous operation. Async and Run start a function in its own goroutine
// and immediately return a *Future. Then chains a second stage that starts
// only after the first one succeeded, which keeps multi-stage pipelines
// strictly sequential while the caller is free to do other work.
//
// # Usage
//
//	compiled := async.Run(ctx, func(ctx context.Context) (*jsx.Output, error) {
//	    return jsx.Transform(src, nil)
//	})
//	html := async.Then(ctx, compiled, func(ctx context.Context, out *jsx.Output) (string, error) {
//	    return renderProgram(out)
//	})
//
//	res, err := html.AwaitContext(ctx)
//
// # Error Handling
//
// Futures complete with the error returned by the callback unchanged. A
// context canceled before the callback starts yields ctx.Err(); a panic in the
// callback yields an error wrapping ErrPanic; AwaitWithTimeout yields
// ErrTimeout.
package async
