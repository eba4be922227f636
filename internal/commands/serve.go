package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Hermes08/FastMVP-Core/internal/config"
	"github.com/Hermes08/FastMVP-Core/internal/lifecycle"
	"github.com/Hermes08/FastMVP-Core/internal/output"
	"github.com/Hermes08/FastMVP-Core/internal/scaffold"
	"github.com/Hermes08/FastMVP-Core/internal/server"
	"github.com/Hermes08/FastMVP-Core/internal/templates"
)

// ServeCmd creates and returns the 'serve' command for running the
// HTTP generation service.
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scaffold generation HTTP service",
		Long: `Starts the FastMVP HTTP server.

Configuration is read from fastmvp.yml in the current directory (all
keys optional), with FASTMVP_* environment overrides:

  server:
    addr: ":8080"
  generator:
    work_dir: /tmp/fastmvp
    template_dir: ""   # empty = built-in templates`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger, err := buildLogger()
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer logger.Sync()

			if err := os.MkdirAll(cfg.Generator.WorkDir, 0755); err != nil {
				return fmt.Errorf("creating work dir %s: %w", cfg.Generator.WorkDir, err)
			}

			store := templates.Embedded()
			if cfg.Generator.TemplateDir != "" {
				store = templates.Open(cfg.Generator.TemplateDir)
			}

			builder := scaffold.NewBuilder(store, io.Discard)
			manager := lifecycle.NewDefault(cfg.Generator.WorkDir, builder, logger)

			srv := server.New(manager, logger)
			return srv.Run(cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}

func buildLogger() (*zap.Logger, error) {
	if output.Verbose() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
