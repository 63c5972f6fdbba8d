package preview

import (
	"errors"
	"time"

	"dario.cat/mergo"
)

// Config holds the preview server settings. The cmd loads it from
// MAILJSX_-prefixed environment variables.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	// RenderTimeout bounds a single POST /render.
	RenderTimeout time.Duration `env:"RENDER_TIMEOUT" envDefault:"10s"`
	// MaxBodyBytes caps the request body of POST /render.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		RenderTimeout:   10 * time.Second,
		MaxBodyBytes:    1 << 20,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() (Config, error) {
	if err := mergo.Merge(&c, DefaultConfig()); err != nil {
		return DefaultConfig(), errors.Join(ErrInvalidConfig, err)
	}
	return c, nil
}
