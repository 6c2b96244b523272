package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danilucaci/stylemap/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "stylemap",
	Short: "Stylemap is a design token resolution engine",
	Long:  `Stylemap resolves deeply nested design tokens from YAML or JSON sheets, expanding {alias} references and sheet inheritance.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the token sheets")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("sheet", "", "Sheet to resolve against (default: 'default')")
	rootCmd.PersistentFlags().String("separator", "", "Key separator for path expressions (default: '.')")
}

// optionsFromFlags assembles the shared CLI options from the command flags.
func optionsFromFlags(cmd *cobra.Command) cli.RunOptions {
	dir, _ := cmd.Flags().GetString("dir")
	debug, _ := cmd.Flags().GetBool("debug")
	sheet, _ := cmd.Flags().GetString("sheet")
	sep, _ := cmd.Flags().GetString("separator")
	return cli.RunOptions{Dir: dir, Debug: debug, Sheet: sheet, Separator: sep}
}
