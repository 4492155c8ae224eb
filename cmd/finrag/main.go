// Command finrag runs the financial question-answering service.
//
//	finrag serve  --config config.yaml
//	finrag import --config config.yaml --manifest data/dataset.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:     "finrag",
		Short:   "GraphRAG question answering over financial reports",
		Long: `finrag answers financial questions over a precomputed knowledge graph,
returning text answers or rendered chart images. It combines structured
facts from Neo4j with vector similarity search over source documents.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (environment variables override)")

	root.AddCommand(
		newServeCmd(&configPath),
		newImportCmd(&configPath),
	)
	return root
}
