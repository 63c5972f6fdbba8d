package preview_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailjsx/pkg/preview"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when missing", incoming: ""},
		{name: "kept when valid", incoming: "req-123_abc", keep: true},
		{name: "replaced with spaces", incoming: "req 123"},
		{name: "replaced with slashes", incoming: "a/b"},
		{name: "replaced when too long", incoming: strings.Repeat("a", 129)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			h := preview.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = preview.RequestIDFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(preview.RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(preview.RequestIDHeader)
			assert.Equal(t, seen, got)
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
				return
			}
			_, err := uuid.Parse(got)
			require.NoError(t, err)
		})
	}
}

func TestLogRequestID(t *testing.T) {
	t.Parallel()

	_, ok := preview.LogRequestID(context.Background())
	assert.False(t, ok)

	h := preview.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attr, ok := preview.LogRequestID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "request_id", attr.Key)
		assert.Equal(t, "abc", attr.Value.String())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(preview.RequestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
}
