package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures Load.
type Option func(*options)

type options struct {
	prefix  string
	files   []string
	custom  bool
	environ []string
}

// WithPrefix restricts parsing to variables starting with prefix; tags name
// the variable without it.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles reads variables from the given dotenv files in order, later
// files overriding earlier ones. The files must exist.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = append(o.files, files...)
		o.custom = true
	}
}

// WithEnviron replaces the process environment as the source of variables.
func WithEnviron(environ []string) Option {
	return func(o *options) { o.environ = environ }
}

// Load parses variables into v using its `env` and `envDefault` struct tags.
//
// Variables come from dotenv files first (".env" in the working directory
// when present, or the files given with WithEnvFiles) and then the process
// environment, which wins on conflict. The process environment is never
// modified.
//
//	type Config struct {
//		Addr     string `env:"ADDR" envDefault:":8080"`
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.WithPrefix("MAILJSX_"))
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}
	o := options{environ: os.Environ()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.custom {
		o.files = []string{".env"}
	}

	vars, err := readEnvFiles(o.files, !o.custom)
	if err != nil {
		return err
	}
	for _, kv := range o.environ {
		if k, val, ok := strings.Cut(kv, "="); ok {
			vars[k] = val
		}
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix, Environment: vars}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load that panics on failure.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func readEnvFiles(files []string, optional bool) (map[string]string, error) {
	vars := make(map[string]string)
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			if optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", f, err))
		}
		for k, val := range m {
			vars[k] = val
		}
	}
	return vars, nil
}
