// Package preview is an HTTP server for rendering templates while writing
// them.
//
// POST /render takes a JSON body with the template source and its scope and
// answers with the rendered document:
//
//	curl -s localhost:8080/render -d '{
//		"template": "<Text>Hello, {name}!</Text>",
//		"scope": {"name": "World"},
//		"plainText": true
//	}'
//
// Compile and evaluation failures answer 422 with a JSON error body whose
// code is syntax_error, evaluation_error or render_error. Conflicting or
// unknown options answer 400 with invalid_options, and a render that outlives
// Config.RenderTimeout answers 504.
//
// Every response carries an X-Request-ID header; LogRequestID adds the same
// ID to log records written with the request context.
package preview
