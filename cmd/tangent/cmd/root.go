package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tangent/internal/cache"
	"tangent/internal/config"
	"tangent/internal/note"
	"tangent/internal/search"
	"tangent/internal/workspace"
)

var (
	configPath string
	rootDir    string

	cfg    *config.Config
	ws     *workspace.DirWorkspace
	engine *search.Engine
)

var rootCmd = &cobra.Command{
	Use:   "tangent",
	Short: "In-memory reference index for a plain-text note workspace",
	Long: `tangent indexes hashtags and wiki-style links across a directory of
plain-text notes and answers where a tag or note is referenced.

It can run as a one-shot query tool or serve the index to an editor
over the language server protocol.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.NewLoader(configPath).Load()
		if err != nil {
			return err
		}
		if rootDir != "" {
			cfg.Root = rootDir
		}

		patterns, err := cfg.CompilePatterns()
		if err != nil {
			return err
		}

		ws = workspace.NewDirWorkspace(cfg.Root, cfg.FileExtensions)
		matcher := note.NewNoteNameMatcher(cfg.FileExtensions)
		engine = search.NewEngine(cache.NewDocumentCache(ws, patterns), matcher)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "workspace root (overrides config)")
}
