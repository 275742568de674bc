package main

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"go.gopad.dev/treelight"
	"go.gopad.dev/treelight/language"
	"go.gopad.dev/treelight/themes"
	"go.gopad.dev/treelight/tsbridge"
)

//go:embed queries/go/highlights.scm
var goHighlightsQuery []byte

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "treelight [file]",
	Short:   "Syntax highlighter for the terminal and the web",
	Long:    `Highlights source code as ANSI output or HTML using tree-sitter grammars and builtin color themes. With no file argument the source is read from stdin.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runHighlight,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/treelight/config.yaml)")

	rootCmd.Flags().StringP("language", "l", "", "language name (default: detected from the file name)")
	rootCmd.Flags().StringP("theme", "t", "", "theme name, see 'treelight themes'")
	rootCmd.Flags().StringP("format", "f", "", "output format: terminal, html-inline, html-linked or html-dual")
	rootCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	rootCmd.Flags().String("light-theme", "", "light theme for html-dual output")
	rootCmd.Flags().String("dark-theme", "", "dark theme for html-dual output")
	rootCmd.Flags().String("default-appearance", "", "side of a dual pair rendered inline: light or dark")
	rootCmd.Flags().String("class-prefix", "", "class name prefix for html-linked output")
	rootCmd.Flags().String("pre-class", "", "extra class for the pre element")
	rootCmd.Flags().Bool("scopes", false, "add data-highlight attributes naming each scope")
	rootCmd.Flags().IntSlice("highlight-lines", nil, "1-based line numbers to mark")

	for _, flag := range []string{"language", "theme", "format", "light-theme", "dark-theme", "default-appearance", "class-prefix", "pre-class"} {
		_ = viper.BindPFlag(flag, rootCmd.Flags().Lookup(flag))
	}
}

func initConfig() {
	viper.SetDefault("format", "terminal")
	viper.SetDefault("class-prefix", "hl-")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "treelight"))
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Warning: reading config:", err)
		}
	}
}

// grammars compiles the grammar set shipped with the binary.
func grammars() (*tsbridge.Engine, error) {
	return tsbridge.New(tsbridge.Grammar{
		Name:            "go",
		Language:        tree_sitter.NewLanguage(tree_sitter_go.Language()),
		HighlightsQuery: goHighlightsQuery,
	})
}

func readSource(args []string) ([]byte, string, error) {
	if len(args) == 0 {
		source, err := io.ReadAll(os.Stdin)
		return source, "", err
	}
	source, err := os.ReadFile(args[0])
	return source, args[0], err
}

func openOutput(cmd *cobra.Command) (io.WriteCloser, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	source, path, err := readSource(args)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	lang := viper.GetString("language")
	if lang == "" {
		detected, ok := language.Detect(path, source)
		if !ok {
			return fmt.Errorf("cannot detect language, pass --language")
		}
		lang = detected
	}

	backend, err := treelight.ParseBackend(viper.GetString("format"))
	if err != nil {
		return err
	}

	cfg := treelight.Config{
		Backend:       backend,
		Language:      lang,
		ClassPrefix:   viper.GetString("class-prefix"),
		PreClass:      viper.GetString("pre-class"),
		ColorProfile:  termenv.EnvColorProfile(),
		IncludeScopes: must(cmd.Flags().GetBool("scopes")),
	}

	if lines := must(cmd.Flags().GetIntSlice("highlight-lines")); len(lines) > 0 {
		cfg.HighlightLines = &treelight.HighlightLines{Lines: lines}
	}

	if backend == treelight.BackendHTMLDual {
		if name := viper.GetString("light-theme"); name != "" {
			theme, err := themes.Get(name)
			if err != nil {
				return err
			}
			cfg.LightTheme = &theme
		}
		if name := viper.GetString("dark-theme"); name != "" {
			theme, err := themes.Get(name)
			if err != nil {
				return err
			}
			cfg.DarkTheme = &theme
		}
		cfg.DefaultAppearance = themes.Appearance(viper.GetString("default-appearance"))
	} else {
		theme, err := themes.Get(themeName())
		if err != nil {
			return err
		}
		cfg.Theme = &theme
	}

	formatter, err := treelight.New(cfg)
	if err != nil {
		return err
	}

	engine, err := grammars()
	if err != nil {
		return err
	}
	if !engine.Has(lang) {
		return fmt.Errorf("no grammar for language %q (available: %v)", lang, engine.Languages())
	}

	captures, regions, err := engine.Extract(lang, source)
	if err != nil {
		return fmt.Errorf("extracting captures: %w", err)
	}

	out, err := openOutput(cmd)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	if out != os.Stdout {
		defer out.Close()
	}

	return formatter.Format(out, source, captures, regions)
}

// themeName resolves the theme to use: the flag or config value, else a
// default matching the terminal's background.
func themeName() string {
	if name := viper.GetString("theme"); name != "" {
		return name
	}
	if termenv.HasDarkBackground() {
		return "github_dark"
	}
	return "github_light"
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
