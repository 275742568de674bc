package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.gopad.dev/treelight/themes"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the builtin themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, theme := range themes.Available() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-6s revision %s\n", theme.Name, theme.Appearance, theme.Revision)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
