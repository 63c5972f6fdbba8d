// Package cmd implements the mailjsx command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailjsx/pkg/config"
	"github.com/dmitrymomot/mailjsx/pkg/logger"
	"github.com/dmitrymomot/mailjsx/pkg/preview"
)

const (
	appName   = "mailjsx"
	envPrefix = "MAILJSX_"
)

// Env is read from MAILJSX_-prefixed variables and an optional .env file.
type Env struct {
	LogLevel  string         `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string         `env:"LOG_FORMAT" envDefault:"text"`
	Preview   preview.Config `envPrefix:"PREVIEW_"`
}

// app is the state shared by subcommands once the root pre-run has loaded
// the environment.
type app struct {
	envFiles []string
	logLevel string
	scope    string

	env Env
	log *slog.Logger
}

// Execute runs the command line with args.
func Execute(ctx context.Context, args []string) error {
	root := newRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   appName,
		Short: fmt.Sprintf("%s renders JSX email templates to HTML or plain text.", appName),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "read variables from these dotenv files (default: .env when present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides MAILJSX_LOG_LEVEL)")
	flags.StringVarP(&a.scope, "scope", "s", "", "YAML or JSON file whose top-level keys become template names")

	root.AddCommand(newRenderCommand(a), newServeCommand(a), newComponentsCommand())
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	opts := []config.Option{config.WithPrefix(envPrefix)}
	if len(a.envFiles) > 0 {
		opts = append(opts, config.WithEnvFiles(a.envFiles...))
	}
	if err := config.Load(&a.env, opts...); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	levelName := a.env.LogLevel
	if a.logLevel != "" {
		levelName = a.logLevel
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}
	format := logger.Format(a.env.LogFormat)
	switch format {
	case logger.FormatJSON, logger.FormatText:
	default:
		return fmt.Errorf("invalid log format %q: must be %q or %q", format, logger.FormatJSON, logger.FormatText)
	}

	a.log = logger.New(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithFormat(format),
		logger.WithLevel(level),
		logger.WithService(appName),
		logger.WithContextExtractors(preview.LogRequestID),
	)
	return nil
}
