package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danilucaci/stylemap/internal/cli"
	"github.com/danilucaci/stylemap/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [sheet]",
	Short: "Export a sheet visualization",
	Long:  `Inspects a token sheet and outputs a Mermaid diagram (graph TD) of its structure and alias references.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)

		ctx := context.Background()
		logger := cli.NewLogger(opts.Debug)

		res, err := cli.BuildResolver(ctx, opts, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing resolver: %v\n", err)
			os.Exit(1)
		}

		sheet := ""
		if len(args) > 0 {
			sheet = args[0]
		}

		doc, err := res.Sheet(sheet)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading sheet: %v\n", err)
			os.Exit(1)
		}

		name := sheet
		if name == "" {
			name = opts.Sheet
		}
		if name == "" {
			name = "default"
		}

		// Generate and print Mermaid graph
		fmt.Print(graph.GenerateMermaid(name, doc))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
