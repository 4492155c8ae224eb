package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/finsight-ai/finrag"
	"github.com/finsight-ai/finrag/config"
	"github.com/finsight-ai/finrag/serve"
)

func newServeCmd(configPath *string) *cobra.Command {
	var traceStdout bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP backend",
		Long: `Start the HTTP backend consumed by the browser frontend. The server
exposes POST /api/chat and GET /api/health and shuts down gracefully on
SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))

			traceOut := io.Writer(io.Discard)
			if traceStdout {
				traceOut = os.Stdout
			}
			tracer, shutdownTracing, err := serve.SetupTracing(traceOut)
			if err != nil {
				return err
			}
			defer func() {
				_ = shutdownTracing(context.Background())
			}()

			app, err := finrag.New(cmd.Context(), cfg,
				finrag.WithLogger(logger),
				finrag.WithTracer(tracer),
			)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close(context.Background())
			}()

			return app.Serve()
		},
	}
	cmd.Flags().BoolVar(&traceStdout, "trace-stdout", false, "emit trace spans to stdout")
	return cmd
}
