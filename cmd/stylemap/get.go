package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danilucaci/stylemap/internal/cli"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Resolve a token by its dotted path",
	Long:  `Resolves a token path like 'palette.primary.500' against the sheet directory, expanding {alias} references.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)
		raw, _ := cmd.Flags().GetBool("raw")
		fallback, _ := cmd.Flags().GetString("default")

		if raw {
			opts.NoAliases = true
		}

		ctx := context.Background()
		logger := cli.NewLogger(opts.Debug)

		res, err := cli.BuildResolver(ctx, opts, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var value any
		if cmd.Flags().Changed("default") {
			value, err = res.GetDefault(ctx, args[0], fallback)
		} else {
			value, err = res.Get(ctx, args[0])
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		printValue(value)
	},
}

// printValue writes scalars plainly and nested values as indented JSON,
// so the command composes with shell pipelines either way.
func printValue(value any) {
	switch value.(type) {
	case string, bool, int, int64, float64, json.Number:
		fmt.Println(value)
	default:
		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			fmt.Println(value)
			return
		}
		fmt.Println(string(out))
	}
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().Bool("raw", false, "Return the value as authored, without alias expansion")
	getCmd.Flags().String("default", "", "Fallback value when the path is absent")
}
