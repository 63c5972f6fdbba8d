package preview

import "errors"

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("preview: failed to start HTTP server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("preview: failed to shutdown HTTP server gracefully")
	// ErrInvalidConfig indicates that Config defaults could not be applied.
	ErrInvalidConfig = errors.New("preview: invalid config")
	// ErrEmptyTemplate is returned for render requests without a template.
	ErrEmptyTemplate = errors.New("preview: template is required")
)
