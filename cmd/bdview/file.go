package main

import (
	"fmt"
	"io"
	"os"

	"github.com/skdltmxn/borland-go/symtab"
	"github.com/spf13/cobra"
)

var fileMangledOnly bool

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Demangle a symbol listing",
	Long: `Demangle a plain-text symbol listing with one symbol per line,
such as the output of nm. Use "-" to read from stdin.

Each line is printed as "<raw>  <demangled>"; names that do not
demangle keep their raw form on both sides.`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	fileCmd.Flags().BoolVar(&fileMangledOnly, "mangled-only", false, "skip symbols without the mangling sigil")
}

func runFile(cmd *cobra.Command, args []string) error {
	var in io.Reader
	if args[0] == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open listing: %w", err)
		}
		defer f.Close()
		in = f
	}

	table, err := symtab.Load(in)
	if err != nil {
		return err
	}

	symbols := table.All()
	if fileMangledOnly {
		symbols = table.Mangled()
	}

	for sym := range symbols {
		fmt.Fprintf(output, "%s  %s\n", sym.Name(), sym.DemangledName())
	}

	return nil
}
