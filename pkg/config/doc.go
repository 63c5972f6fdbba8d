// Package config loads configuration structs from environment variables and
// dotenv files.
//
// It combines github.com/joho/godotenv, which reads the files, with
// github.com/caarlos0/env/v11, which maps variables onto struct fields by
// their `env` tags:
//
//	type ServeConfig struct {
//		Addr string `env:"ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServeConfig
//	if err := config.Load(&cfg, config.WithPrefix("MAILJSX_")); err != nil {
//		return err
//	}
//
// Load never writes to the process environment, so several configurations
// can be loaded side by side and tests can supply their own variables with
// WithEnviron.
//
// # Errors
//
// Parse failures wrap ErrParsingConfig, unreadable files ErrLoadingEnvFile.
// Both are joined with the underlying cause, so errors.Is matches either.
package config
