package preview_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailjsx/pkg/preview"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "unable to get free port")
	addr := l.Addr().String()
	require.NoError(t, l.Close(), "close listener")
	return addr
}

func waitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err, "run")
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not finish")
	}
}

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	var stopped atomic.Bool
	srv := preview.New(
		preview.Config{Addr: addr, ShutdownTimeout: 100 * time.Millisecond},
		preview.WithStopHook(func() { stopped.Store(true) }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var (
		resp *http.Response
		err  error
	)
	for range 50 {
		resp, err = http.Post("http://"+addr+"/render", "application/json",
			strings.NewReader(`{"template": "<Text>Hi</Text>", "plainText": true}`))
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	require.NoError(t, err, "post after 50 retries")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hi", string(body))

	cancel()
	waitDone(t, done)
	require.NoError(t, srv.Shutdown(context.Background()), "repeated shutdown")
	assert.True(t, stopped.Load(), "stop hook not executed")
}

func TestManualShutdown(t *testing.T) {
	t.Parallel()

	started := make(chan string, 1)
	srv := preview.New(
		preview.Config{Addr: freeAddr(t), ShutdownTimeout: 100 * time.Millisecond},
		preview.WithStartHook(func(addr string) { started <- addr }),
	)

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background()) }()
	assert.NotEmpty(t, <-started)

	require.NoError(t, srv.Shutdown(context.Background()))
	waitDone(t, done)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid address", func(t *testing.T) {
		t.Parallel()
		err := preview.New(preview.Config{Addr: ":invalid"}).Run(context.Background())
		assert.ErrorIs(t, err, preview.ErrStart)
	})

	t.Run("already running", func(t *testing.T) {
		t.Parallel()
		started := make(chan string, 1)
		srv := preview.New(
			preview.Config{Addr: freeAddr(t), ShutdownTimeout: 50 * time.Millisecond},
			preview.WithStartHook(func(addr string) { started <- addr }),
		)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx) }()
		<-started

		assert.ErrorIs(t, srv.Run(context.Background()), preview.ErrStart)
		cancel()
		waitDone(t, done)
	})

	t.Run("shutdown before run", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, preview.New(preview.Config{}).Shutdown(context.Background()))
	})
}
