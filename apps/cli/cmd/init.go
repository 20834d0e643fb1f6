package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/flowspec/packages/config"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new flowspec project",
	Long: `Initialize a new flowspec project in the current directory.

This creates:
  - .flowspec.config.json  - Configuration file
  - example.flow.yaml      - Example flow file

Examples:
  flowspec init
  flowspec init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, ".flowspec.config.json")
	exampleFile := filepath.Join(cwd, "example.flow.yaml")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	cfg := config.DefaultConfig()
	cfg.Headers = map[string]string{
		"User-Agent": "flowspec/1.0",
	}

	configJSON, _ := json.MarshalIndent(cfg, "", "  ")
	if err := os.WriteFile(configFile, append(configJSON, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	exampleContent := `cases:
  - name: user flows
    setup:
      - name: fixtures
        set:
          base: "https://jsonplaceholder.typicode.com"
      - name: first user
        request:
          method: GET
          url: "{{base}}/users/1"
        capture:
          userId: body.id
    tests:
      - name: user posts
        request:
          method: GET
          url: "{{base}}/posts?userId={{userId}}"
        expect:
          - status: 200
          - exists: body.0.title
      - name: "post {{suite}}"
        variants: [1, 2, 3]
        request:
          method: GET
          url: "{{base}}/posts/{{suite}}"
        expect:
          - status: 200
          - body.id: "{{suite}}"
`
	if err := os.WriteFile(exampleFile, []byte(exampleContent), 0644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nRun your first flow:\n  flowspec run example.flow.yaml\n")
	return nil
}
