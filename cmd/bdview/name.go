package main

import (
	"fmt"

	"github.com/skdltmxn/borland-go/demangle"
	"github.com/spf13/cobra"
)

var nameStrict bool

var nameCmd = &cobra.Command{
	Use:   "name <symbol>...",
	Short: "Demangle symbol names given as arguments",
	Long: `Demangle one or more Borland mangled symbol names.

Names that do not demangle are printed unchanged unless --strict is
given, in which case they fail the command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runName,
}

func init() {
	nameCmd.Flags().BoolVar(&nameStrict, "strict", false, "fail on names that do not demangle")
}

func runName(cmd *cobra.Command, args []string) error {
	for _, symbol := range args {
		demangled, err := demangle.Demangle(symbol)
		if err != nil {
			if nameStrict {
				return fmt.Errorf("failed to demangle %q: %w", symbol, err)
			}
			fmt.Fprintln(output, symbol)
			continue
		}
		fmt.Fprintln(output, demangled)
	}

	return nil
}
