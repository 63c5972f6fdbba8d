package jsx

import (
	"context"

	"github.com/dmitrymomot/mailjsx/pkg/async"
)

// Output is the result of a transform.
type Output struct {
	// Code is the emitted createElement expression.
	Code string
	// Program is the parsed template the evaluator runs.
	Program *Program
}

// Transform compiles src. A nil opts uses DefaultOptions.
func Transform(src string, opts *Options) (*Output, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	prog, err := Parse(src, o)
	if err != nil {
		return nil, err
	}
	return &Output{Code: Print(prog, o), Program: prog}, nil
}

// TransformAsync runs Transform in the background.
func TransformAsync(ctx context.Context, src string, opts *Options) *async.Future[*Output] {
	return async.Run(ctx, func(context.Context) (*Output, error) {
		return Transform(src, opts)
	})
}
