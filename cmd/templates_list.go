package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/encre/internal/templates"
)

var templatesListCmd = &cobra.Command{
	Use:   "templates:list",
	Short: "List built-in document templates",
	Long: `List the built-in document templates usable with 'encre new'.

Examples:
  encre templates:list
  encre new standup.md --template meeting-notes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range templates.Names() {
			title, err := templates.Title(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesListCmd)
}
