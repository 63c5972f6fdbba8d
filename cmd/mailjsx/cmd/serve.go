package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailjsx"
	"github.com/dmitrymomot/mailjsx/pkg/preview"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start the preview server",
		Long: `Starts an HTTP server rendering templates posted to /render.

Settings come from MAILJSX_PREVIEW_* variables (ADDR, READ_TIMEOUT,
WRITE_TIMEOUT, IDLE_TIMEOUT, SHUTDOWN_TIMEOUT, RENDER_TIMEOUT,
MAX_BODY_BYTES). Names from --scope are visible to every request; a
request's own scope wins on collision.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.env.Preview
			if addr != "" {
				cfg.Addr = addr
			}
			scope, err := loadScope(a.scope)
			if err != nil {
				return err
			}
			srv := preview.New(cfg,
				preview.WithLogger(a.log),
				preview.WithRenderOptions(mailjsx.WithScope(scope)),
			)
			return srv.Run(cmd.Context())
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides MAILJSX_PREVIEW_ADDR)")
	return cmd
}
