package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hkanno/internal/editor"
	"hkanno/internal/engine"
	"hkanno/internal/trace"
	"hkanno/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit [flags] [file...]",
	Short: "Edit annotations in a terminal editor with a live XML preview",
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().Bool("fresh", false, "ignore the tabs saved by the previous session")
}

func runEdit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return fmt.Errorf("edit: needs an interactive terminal")
	}
	fresh, err := cmd.Flags().GetBool("fresh")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	kv, err := cfg.OpenState()
	if err != nil {
		return fmt.Errorf("edit: open state: %w", err)
	}

	ctx := cmd.Context()
	persister := editor.NewKVPersister(kv)
	persister.Default = editor.State{PreviewVisible: cfg.Editor.ShowPreview}
	initial := persister.Default
	var notes []editor.Notification
	if !fresh {
		restored, err := persister.Restore(ctx)
		if err != nil {
			notes = append(notes, editor.Notification{Level: editor.LevelError, Message: "Previous session not restored: " + err.Error()})
		}
		initial = restored
	}

	store := editor.NewStore(initial, persister).WithTracer(trace.FromContext(ctx))
	session := editor.NewSession(store, engine.NewLocal())
	if len(args) > 0 {
		opened, err := session.Open(ctx, args...)
		notes = append(notes, opened...)
		if err != nil {
			notes = append(notes, editor.Notification{Level: editor.LevelError, Message: err.Error()})
		}
	}
	return ui.Run(ctx, session, notes, os.Stdin, os.Stdout)
}
