package preview_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailjsx"
	"github.com/dmitrymomot/mailjsx/pkg/preview"
	"github.com/dmitrymomot/mailjsx/pkg/render"
)

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestRenderEndpoint(t *testing.T) {
	t.Parallel()

	h := preview.New(preview.Config{}).Handler()

	tests := []struct {
		name        string
		body        string
		status      int
		contentType string
		want        string
		code        string
	}{
		{
			name:        "html",
			body:        `{"template": "<Text>Hello, {name}!</Text>", "scope": {"name": "World"}}`,
			status:      http.StatusOK,
			contentType: "text/html; charset=utf-8",
			want:        render.Doctype + `<p style="font-size:14px;line-height:24px;margin:16px 0">Hello, World!</p>`,
		},
		{
			name:        "plain text",
			body:        `{"template": "<Text>Hello, {name}!</Text>", "scope": {"name": "World"}, "plainText": true}`,
			status:      http.StatusOK,
			contentType: "text/plain; charset=utf-8",
			want:        "Hello, World!",
		},
		{
			name:        "numbers from json",
			body:        `{"template": "<p>{items.map(i => i * 2).join(\",\")}</p>", "scope": {"items": [1, 2, 3]}}`,
			status:      http.StatusOK,
			contentType: "text/html; charset=utf-8",
			want:        render.Doctype + `<p>2,4,6</p>`,
		},
		{
			name:        "typescript compiler options",
			body:        `{"template": "<p>{(user as any).name}</p>", "scope": {"user": {"name": "Ann"}}, "compiler": {"parser": {"syntax": "typescript", "jsx": true}}}`,
			status:      http.StatusOK,
			contentType: "text/html; charset=utf-8",
			want:        render.Doctype + `<p>Ann</p>`,
		},
		{
			name:   "syntax error",
			body:   `{"template": "<div>"}`,
			status: http.StatusUnprocessableEntity,
			code:   "syntax_error",
		},
		{
			name:   "unknown component",
			body:   `{"template": "<UnknownComp/>"}`,
			status: http.StatusUnprocessableEntity,
			code:   "evaluation_error",
		},
		{
			name:   "unbounded recursion",
			body:   `{"template": "<p>{(f => f(f))(f => f(f))}</p>"}`,
			status: http.StatusUnprocessableEntity,
			code:   "evaluation_error",
		},
		{
			name:   "object child",
			body:   `{"template": "<p>{user}</p>", "scope": {"user": {"name": "Ann"}}}`,
			status: http.StatusUnprocessableEntity,
			code:   "render_error",
		},
		{
			name:   "conflicting options",
			body:   `{"template": "<p/>", "plainText": true, "pretty": true}`,
			status: http.StatusBadRequest,
			code:   "invalid_options",
		},
		{
			name:   "empty template",
			body:   `{"template": "  "}`,
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
		{
			name:   "unknown field",
			body:   `{"template": "<p/>", "scopes": {}}`,
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
		{
			name:   "malformed json",
			body:   `{"template": `,
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(t, h, http.MethodPost, "/render", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get(preview.RequestIDHeader))

			if tt.code == "" {
				assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
				assert.Equal(t, tt.want, rec.Body.String())
				return
			}
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestRenderEndpoint_BaseOptions(t *testing.T) {
	t.Parallel()

	h := preview.New(preview.Config{},
		preview.WithRenderOptions(mailjsx.WithScope(mailjsx.Scope{"product": "Acme", "name": "base"})),
	).Handler()

	rec := serve(t, h, http.MethodPost, "/render", `{"template": "<p>{product}: {name}</p>", "scope": {"name": "request"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, render.Doctype+`<p>Acme: request</p>`, rec.Body.String())
}

func TestRenderEndpoint_Limits(t *testing.T) {
	t.Parallel()

	t.Run("body size", func(t *testing.T) {
		t.Parallel()
		h := preview.New(preview.Config{MaxBodyBytes: 16}).Handler()
		rec := serve(t, h, http.MethodPost, "/render", `{"template": "<p>long enough to overflow</p>"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("render timeout", func(t *testing.T) {
		t.Parallel()
		h := preview.New(preview.Config{RenderTimeout: time.Nanosecond}).Handler()
		rec := serve(t, h, http.MethodPost, "/render", `{"template": "<p>x</p>"}`)
		require.Equal(t, http.StatusGatewayTimeout, rec.Code, rec.Body.String())
		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "timeout", body.Error.Code)
	})
}

func TestComponentsEndpoint(t *testing.T) {
	t.Parallel()

	rec := serve(t, preview.New(preview.Config{}).Handler(), http.MethodGet, "/components", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 16)
	assert.IsIncreasing(t, body.Data)
	assert.Contains(t, body.Data, "Preview")
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := preview.New(preview.Config{}).Handler()
	rec := serve(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	rec = serve(t, h, http.MethodGet, "/render", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
