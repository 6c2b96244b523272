package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danilucaci/stylemap"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of stylemap",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stylemap version %s\n", strings.TrimSpace(stylemap.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
