package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danilucaci/stylemap/internal/cli"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [path...]",
	Short: "Watch the sheet directory and reload on changes",
	Long: `Runs stylemap in development mode. Sheets are reloaded whenever a file
changes, validation errors are reported, and any given token paths are
reprinted with their fresh values.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)

		if err := cli.RunWatch(opts, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
