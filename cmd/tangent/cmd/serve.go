package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"tangent/internal/lsp"
	"tangent/internal/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the index to an editor over stdio (LSP)",
	RunE: func(cmd *cobra.Command, args []string) error {
		logFile := cfg.LogFile
		if logFile == "" {
			logsDir := filepath.Join(os.TempDir(), "tangent")
			if err := os.MkdirAll(logsDir, 0755); err != nil {
				return fmt.Errorf("failed to create logs directory: %w", err)
			}
			logFile = filepath.Join(logsDir, "tangent.log")
		}
		// Stdout belongs to the LSP transport, keep logs in a file.
		commonlog.Configure(cfg.Verbosity, &logFile)

		watcher, err := workspace.NewWatcher(ws,
			func(path string) { engine.UpdateCacheFor(path) },
			func(path string) { engine.ClearCacheFor(path) },
		)
		if err != nil {
			return err
		}
		defer watcher.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go watcher.Run(ctx)

		return lsp.NewServer(engine).RunStdio()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
