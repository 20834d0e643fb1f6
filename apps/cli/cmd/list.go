package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/flowspec/packages/flowfile"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>",
	Short: "List all cases and tests in flow files",
	Long: `List all cases and tests defined in .flow.yaml files.

Examples:
  flowspec list api.flow.yaml
  flowspec list ./flows/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no .flow.yaml files found")
	}

	for _, file := range files {
		f, err := flowfile.ParseFile(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error parsing %s: %v\n", file, err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", file)
		for _, c := range f.Cases {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s (%d setup, %d tests)\n", c.Name, len(c.Setup), len(c.Tests))
			for _, t := range c.Tests {
				if len(t.Variants) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "    - %s (%d variants)\n", t.Name, len(t.Variants))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "    - %s\n", t.Name)
				}
			}
		}
	}

	return nil
}
