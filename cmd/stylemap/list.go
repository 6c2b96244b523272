package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/danilucaci/stylemap/internal/cli"
	"github.com/danilucaci/stylemap/internal/presentation/tui"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [sheet]",
	Short: "List sheets, or the tokens of a sheet",
	Long: `Without arguments, lists the names of all loaded sheets.
With a sheet name, prints every token of that sheet as a table of dotted path and resolved value.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)

		ctx := context.Background()
		logger := cli.NewLogger(opts.Debug)

		res, err := cli.BuildResolver(ctx, opts, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(args) == 0 {
			for _, name := range res.Sheets() {
				fmt.Println(name)
			}
			return
		}

		flat, err := res.Flatten(ctx, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		paths := make([]string, 0, len(flat))
		for path := range flat {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		// Plain tab-separated output when piped, a rendered markdown
		// table on a terminal.
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			for _, path := range paths {
				fmt.Printf("%s\t%v\n", path, flat[path])
			}
			return
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s\n\n", args[0])
		sb.WriteString("| Token | Value |\n|---|---|\n")
		for _, path := range paths {
			fmt.Fprintf(&sb, "| `%s` | %v |\n", path, flat[path])
		}

		render := tui.NewRenderer()
		out, err := render(sb.String())
		if err != nil {
			fmt.Print(sb.String())
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
