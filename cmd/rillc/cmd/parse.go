package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/pkg/rill"
)

var (
	parseDir     string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <module>",
	Short: "Parse a Rill module and its imports, reporting the first error",
	Long: `Parse reads <module>.rill (and every module it transitively
imports via "using") from --dir, builds the Abstract Syntax Tree, and
either reports success or the first fatal parse error.

Use --dump-ast to print each resolved module's declaration shape.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseDir, "dir", ".", "directory containing <module>.rill source files")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the declaration shape of every resolved module")
}

func runParse(cmd *cobra.Command, args []string) error {
	startModule := args[0]

	provide := func(name string) (string, error) {
		data, err := os.ReadFile(filepath.Join(parseDir, name+".rill"))
		if err != nil {
			return "", fmt.Errorf("reading module %s: %w", name, err)
		}
		return string(data), nil
	}

	reg, err := rill.Parse(startModule, provide)
	if err != nil {
		return err
	}

	if parseDumpAST {
		for _, m := range reg.ModulesInOrder {
			dumpModule(m)
		}
	}
	fmt.Printf("parsed %d module(s) starting from %s\n", len(reg.ModulesInOrder), startModule)
	return nil
}

func dumpModule(m *ast.Module) {
	fmt.Printf("module %s\n", m.Name)
	for name, cls := range m.Classes {
		kind := "class"
		if cls.IsInterface {
			kind = "interface"
		}
		fmt.Printf("  %s %s (%d fields, %d methods)\n", kind, name, len(cls.Fields), len(cls.NewMethods))
	}
	for name := range m.Functions {
		fmt.Printf("  fn %s\n", name)
	}
	for name := range m.Tests {
		fmt.Printf("  test %s\n", name)
	}
}
