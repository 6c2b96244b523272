package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danilucaci/stylemap/internal/cli"
	"github.com/danilucaci/stylemap/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the token sheets for consistency",
	Long:  `Loads every sheet and reports broken {alias} references, cycles, and '$types' schema violations.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Sheets are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts := optionsFromFlags(cmd)
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		opts.Dir = args[0]
	}

	ctx := context.Background()
	logger := cli.NewLogger(opts.Debug)

	res, err := cli.BuildResolver(ctx, opts, logger)
	if err != nil {
		return fmt.Errorf("failed to init resolver: %w", err)
	}

	return validator.ValidateSheets(res)
}
