package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hkanno/internal/config"
	"hkanno/internal/engine"
	"hkanno/internal/lsp"
	"hkanno/internal/trace"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the hkanno language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func runLSP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, err := maxDiagnostics(cmd, cfg)
	if err != nil {
		return err
	}
	hints := cfg.Hints()

	opts := lsp.ServerOptions{
		Debounce:         cfg.Debounce(),
		MaxDiagnostics:   limit,
		WarningsAsErrors: cfg.Check.WarningsAsErrors,
		Hints:            &hints,
		Engine:           engine.NewLocal(),
		Tracer:           trace.FromContext(cmd.Context()),
	}
	// An explicit --config pins the settings; otherwise the workspace root
	// chosen by the client decides.
	if path, _ := cmd.Root().PersistentFlags().GetString("config"); path == "" {
		opts.LoadConfig = config.Load
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, opts)
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
