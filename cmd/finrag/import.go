package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/finsight-ai/finrag"
	"github.com/finsight-ai/finrag/config"
)

func newImportCmd(configPath *string) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a graph dataset into Neo4j",
		Long: `Bulk-import a precomputed graph dataset, create the vector index, and
backfill document embeddings.

This is a one-shot setup step: run it once per dataset after the database
is up. Re-running against regenerated graph documents may duplicate nodes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))
			logger.Warn("import is one-shot per dataset; re-running it against regenerated documents may duplicate nodes")

			app, err := finrag.New(cmd.Context(), cfg, finrag.WithLogger(logger))
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close(context.Background())
			}()

			return app.Import(cmd.Context(), manifestPath)
		},
	}
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "dataset.yaml", "path to the dataset manifest (file or directory)")
	return cmd
}
