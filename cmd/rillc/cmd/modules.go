package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rill-lang/rill/pkg/rill"
)

var modulesDir string

var modulesCmd = &cobra.Command{
	Use:   "modules <module>",
	Short: "List the modules a module transitively imports, in resolution order",
	Long: `Modules parses <module>.rill (and every module it transitively
imports via "using") from --dir and prints each resolved module's name in
the order module resolution completed it, "sys" first.`,
	Args: cobra.ExactArgs(1),
	RunE: runModules,
}

func init() {
	rootCmd.AddCommand(modulesCmd)

	modulesCmd.Flags().StringVar(&modulesDir, "dir", ".", "directory containing <module>.rill source files")
}

func runModules(cmd *cobra.Command, args []string) error {
	startModule := args[0]

	provide := func(name string) (string, error) {
		data, err := os.ReadFile(filepath.Join(modulesDir, name+".rill"))
		if err != nil {
			return "", fmt.Errorf("reading module %s: %w", name, err)
		}
		return string(data), nil
	}

	reg, err := rill.Parse(startModule, provide)
	if err != nil {
		return err
	}

	for _, m := range reg.ModulesInOrder {
		fmt.Println(m.Name)
	}
	return nil
}
