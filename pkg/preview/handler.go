package preview

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/mailjsx"
	"github.com/dmitrymomot/mailjsx/pkg/components"
	"github.com/dmitrymomot/mailjsx/pkg/element"
	"github.com/dmitrymomot/mailjsx/pkg/eval"
	"github.com/dmitrymomot/mailjsx/pkg/jsx"
	"github.com/dmitrymomot/mailjsx/pkg/render"
)

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	Template  string         `json:"template"`
	Scope     map[string]any `json:"scope,omitempty"`
	PlainText bool           `json:"plainText,omitempty"`
	Pretty    bool           `json:"pretty,omitempty"`
	// Compiler replaces the default compiler options when set.
	Compiler *jsx.Options `json:"compiler,omitempty"`
}

// Handler returns the preview routes:
//
//	POST /render      render a template, answering text/html or text/plain
//	GET  /components  names of the prebuilt components
//	GET  /healthz     liveness probe
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, middleware.Recoverer, s.accessLog)

	r.Post("/render", s.handleRender)
	r.Get("/components", s.handleComponents)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	})
	return r
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.Template) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrEmptyTemplate)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RenderTimeout)
	defer cancel()

	opts := slices.Clone(s.base)
	opts = append(opts,
		mailjsx.WithScope(req.Scope),
		mailjsx.WithRenderOptions(render.Options{PlainText: req.PlainText, Pretty: req.Pretty}),
		mailjsx.WithLogger(s.log),
	)
	if req.Compiler != nil {
		opts = append(opts, mailjsx.WithCompilerOptions(*req.Compiler))
	}

	start := time.Now()
	out, err := mailjsx.Render(ctx, req.Template, opts...)
	if err != nil {
		status, code := classify(err)
		s.log.WarnContext(ctx, "render failed",
			slog.Int("status", status),
			slog.String("code", code),
			slog.Any("error", err),
		)
		writeError(w, status, code, err)
		return
	}
	s.log.DebugContext(ctx, "rendered",
		slog.Int("size", len(req.Template)),
		slog.Bool("plain_text", req.PlainText),
		slog.Duration("duration", time.Since(start)),
	)

	ct := "text/html; charset=utf-8"
	if req.PlainText {
		ct = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out)
}

func (s *Server) handleComponents(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(components.Exports()))
	for name := range components.Exports() {
		names = append(names, name)
	}
	slices.Sort(names)
	writeJSON(w, http.StatusOK, jsonResponse{Data: names})
}

// classify maps pipeline errors to a status and an error code. Template
// mistakes are the caller's fault and answer 422; bad settings answer 400.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, jsx.ErrSyntax):
		return http.StatusUnprocessableEntity, "syntax_error"
	case errors.Is(err, eval.ErrReference), errors.Is(err, eval.ErrType), errors.Is(err, eval.ErrPanic),
		errors.Is(err, eval.ErrDepth), errors.Is(err, element.ErrInvalidType):
		return http.StatusUnprocessableEntity, "evaluation_error"
	case errors.Is(err, render.ErrRender):
		return http.StatusUnprocessableEntity, "render_error"
	case errors.Is(err, jsx.ErrInvalidOptions), errors.Is(err, render.ErrConflictingOptions),
		errors.Is(err, render.ErrInvalidLinkBrackets):
		return http.StatusBadRequest, "invalid_options"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	}
	return http.StatusInternalServerError, "internal_error"
}

// accessLog logs one line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
