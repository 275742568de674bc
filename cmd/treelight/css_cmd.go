package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.gopad.dev/treelight"
	"go.gopad.dev/treelight/themes"
)

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Generate the stylesheet for html-linked or html-dual output",
	Long:  `Emits CSS rules matching the classes of html-linked output for --theme, or the theme-switching variable rules for a --light-theme/--dark-theme pair.`,
	Args:  cobra.NoArgs,
	RunE:  runCSS,
}

func init() {
	cssCmd.Flags().StringP("theme", "t", "", "theme for html-linked rules")
	cssCmd.Flags().String("light-theme", "", "light theme for html-dual switching rules")
	cssCmd.Flags().String("dark-theme", "", "dark theme for html-dual switching rules")
	cssCmd.Flags().String("class-prefix", "hl-", "class name prefix, must match the formatter's")

	rootCmd.AddCommand(cssCmd)
}

func runCSS(cmd *cobra.Command, _ []string) error {
	lightName, _ := cmd.Flags().GetString("light-theme")
	darkName, _ := cmd.Flags().GetString("dark-theme")

	if lightName != "" || darkName != "" {
		if lightName == "" || darkName == "" {
			return fmt.Errorf("dual css needs both --light-theme and --dark-theme")
		}
		light, err := themes.Get(lightName)
		if err != nil {
			return err
		}
		dark, err := themes.Get(darkName)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), treelight.DualStylesheet(&light, &dark))
		return nil
	}

	name, _ := cmd.Flags().GetString("theme")
	if name == "" {
		name = themeName()
	}
	theme, err := themes.Get(name)
	if err != nil {
		return err
	}

	prefix, _ := cmd.Flags().GetString("class-prefix")
	fmt.Fprint(cmd.OutOrStdout(), treelight.Stylesheet(&theme, prefix))
	return nil
}
