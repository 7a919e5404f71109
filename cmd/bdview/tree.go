package main

import (
	"fmt"
	"strings"

	"github.com/skdltmxn/borland-go/ast"
	"github.com/skdltmxn/borland-go/demangle"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree <symbol>...",
	Short: "Show the parsed structure of mangled names",
	Long: `Parse Borland mangled names and dump the resulting syntax
tree, one node per line with indentation showing nesting.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
	for _, symbol := range args {
		root, err := demangle.Parse(symbol)
		if err != nil {
			return fmt.Errorf("failed to parse %q: %w", symbol, err)
		}

		fmt.Fprintf(output, "%s\n", symbol)
		printNode(root, 1)
	}

	return nil
}

func printNode(node ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n := node.(type) {
	case *ast.Function:
		fmt.Fprintf(output, "%sFunction\n", indent)
		printNode(n.Name, depth+1)
		printNode(n.Type, depth+1)
	case *ast.FunctionType:
		fmt.Fprintf(output, "%sFunctionType conv=%s quals=%q\n", indent, callConvLabel(n.CallConv), n.Quals.String())
		if n.Params != nil {
			fmt.Fprintf(output, "%s  params:\n", indent)
			for i := 0; i < n.Params.Size(); i++ {
				printNode(n.Params.Get(i), depth+2)
			}
		}
		if n.ReturnType != nil {
			fmt.Fprintf(output, "%s  return:\n", indent)
			printNode(n.ReturnType, depth+2)
		}
	case *ast.NestedName:
		fmt.Fprintf(output, "%sNestedName\n", indent)
		printNode(n.Qualifier, depth+1)
		printNode(n.Name, depth+1)
	case *ast.Template:
		fmt.Fprintf(output, "%sTemplate\n", indent)
		printNode(n.Name, depth+1)
		if n.Args != nil {
			fmt.Fprintf(output, "%s  args:\n", indent)
			for i := 0; i < n.Args.Size(); i++ {
				printNode(n.Args.Get(i), depth+2)
			}
		}
	case *ast.Name:
		fmt.Fprintf(output, "%sName %q\n", indent, n.Name)
	case *ast.PointerType:
		fmt.Fprintf(output, "%sPointerType quals=%q\n", indent, n.Quals.String())
		printNode(n.Pointee, depth+1)
	case *ast.ReferenceType:
		fmt.Fprintf(output, "%sReferenceType\n", indent)
		printNode(n.Referent, depth+1)
	case *ast.RValueReferenceType:
		fmt.Fprintf(output, "%sRValueReferenceType\n", indent)
		printNode(n.Referent, depth+1)
	case *ast.ArrayType:
		fmt.Fprintf(output, "%sArrayType len=%d quals=%q\n", indent, n.Length, n.Quals.String())
		printNode(n.Element, depth+1)
	case *ast.NamedType:
		fmt.Fprintf(output, "%sNamedType quals=%q\n", indent, n.Quals.String())
		printNode(n.Name, depth+1)
	default:
		fmt.Fprintf(output, "%s%s\n", indent, node.String())
	}
}

func callConvLabel(cc ast.CallConv) string {
	if name := cc.String(); name != "" {
		return name
	}
	return "unspecified"
}
