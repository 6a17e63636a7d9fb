package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/encre/internal/paths"
	"github.com/zjrosen/encre/internal/templates"
)

var newTemplate string

var newCmd = &cobra.Command{
	Use:   "new [file]",
	Short: "Create a document, optionally from a built-in template",
	Long: `Create a markdown document without opening the editor.

Without --template an empty document is created. The target file must
not already exist. A bare name gets the .md extension added.

Examples:
  # Empty document
  encre new notes

  # Start from a template
  encre new standup.md --template meeting-notes

  # See available templates
  encre templates:list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newTemplate, "template", "t", "",
		"template name (see 'encre templates:list')")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	path := paths.DefaultDocumentName
	if len(args) > 0 {
		path = paths.ResolveDocument(args[0])
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	var content string
	if newTemplate != "" {
		src, err := templates.Load(newTemplate)
		if err != nil {
			return err
		}
		content = src
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // G306: documents are user files
		return fmt.Errorf("creating %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
