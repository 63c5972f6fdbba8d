// Package logger builds the *slog.Logger used by the mailjsx command and its
// preview server.
//
// New picks a JSON or text handler, applies static attributes and wraps the
// handler so ContextExtractor callbacks can add request-scoped values such as
// the request ID:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithService("mailjsx"),
//		logger.WithContextExtractors(requestid.LogExtractor),
//	)
//	log.InfoContext(ctx, "rendered", logger.Template("welcome.jsx", 512), logger.Output(false))
//
// Records go to stderr by default so they never mix with rendered output on
// stdout.
package logger
