package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrymomot/mailjsx"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRenderOptions adds options applied to every render before the
// request's own scope and settings.
func WithRenderOptions(opts ...mailjsx.Option) Option {
	return func(s *Server) { s.base = append(s.base, opts...) }
}

// WithStartHook registers a callback run once the server is about to listen.
func WithStartHook(h func(addr string)) Option {
	return func(s *Server) {
		if h != nil {
			s.startHooks = append(s.startHooks, h)
		}
	}
}

// WithStopHook registers a callback run after the server has shut down.
func WithStopHook(h func()) Option {
	return func(s *Server) {
		if h != nil {
			s.stopHooks = append(s.stopHooks, h)
		}
	}
}

// Server serves template previews over HTTP.
type Server struct {
	cfg        Config
	log        *slog.Logger
	base       []mailjsx.Option
	startHooks []func(addr string)
	stopHooks  []func()

	// cfgErr is reported by Run when defaults could not be applied.
	cfgErr error

	mu     sync.Mutex
	srv    *http.Server
	closed bool
}

// New returns a Server. Zero fields of cfg take their DefaultConfig value;
// if that fails the server falls back to DefaultConfig and Run reports the
// error.
func New(cfg Config, opts ...Option) *Server {
	cfg, err := cfg.withDefaults()
	s := &Server{
		cfg:    cfg,
		cfgErr: err,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run listens on the configured address and blocks until ctx is done, the
// process receives SIGINT or SIGTERM, or Shutdown is called. A failure to
// listen is wrapped with ErrStart.
func (s *Server) Run(ctx context.Context) error {
	if s.cfgErr != nil {
		return errors.Join(ErrStart, s.cfgErr)
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.log.Handler(), slog.LevelError),
	}
	s.srv = srv
	s.mu.Unlock()

	for _, h := range s.startHooks {
		h(srv.Addr)
	}
	s.log.InfoContext(ctx, "preview server listening", slog.String("addr", srv.Addr))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-ctx.Done():
		runErr = s.shutdownAndWait(errCh)
	case <-stop:
		runErr = s.shutdownAndWait(errCh)
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

func (s *Server) shutdownAndWait(errCh <-chan error) error {
	if err := s.Shutdown(context.Background()); err != nil {
		s.log.Error("preview server shutdown", slog.Any("error", err))
	}
	return <-errCh
}

// Shutdown stops the server gracefully within the configured shutdown
// timeout. Repeated calls are no-ops. Failures are wrapped with ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	if srv == nil || s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(ctx)
	for _, h := range s.stopHooks {
		h()
	}
	s.log.Info("preview server stopped")
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
