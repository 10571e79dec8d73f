package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/workbench"
	"github.com/aretw0/workbench/internal/cli"
	httpAdapter "github.com/aretw0/workbench/pkg/adapters/http"
	"github.com/aretw0/workbench/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Exposes the tools and panel sessions as a JSON API over HTTP.
The OpenAPI document is served at /openapi.yaml, Swagger UI at /swagger
and Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		metrics := observability.NewMetrics()
		hooks := cli.NewHooks(logger, metrics)

		wb, err := cli.NewWorkbench(cfg, logger, hooks)
		if err != nil {
			return err
		}
		sessions, err := cli.NewSessionManager(sc, cfg, logger, hooks)
		if err != nil {
			return err
		}

		handler := httpAdapter.NewHandler(wb,
			httpAdapter.WithSessions(sessions),
			httpAdapter.WithMetrics(metrics.Handler()),
			httpAdapter.WithVersion(strings.TrimSpace(workbench.Version)),
			httpAdapter.WithLogger(logger),
		)
		return cli.Serve(sc, handler, cfg.HTTP.Port, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides http.port)")
}
