package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"hkanno/internal/engine"
	"hkanno/internal/hkanno"
	"hkanno/internal/panesync"
	"hkanno/internal/source"
)

var previewCmd = &cobra.Command{
	Use:   "preview [flags] <input>",
	Short: "Render the XML packfile fragment of an annotation file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().Int("line", 0, "print only the preview line of the annotation on this source line")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	line, err := cmd.Flags().GetInt("line")
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	eng := engine.NewLocal()
	value, err := eng.Load(ctx, args[0])
	if err != nil {
		return err
	}
	preview, err := eng.Preview(ctx, args[0], value)
	if err != nil {
		return err
	}
	if line <= 0 {
		_, err := io.WriteString(cmd.OutOrStdout(), preview)
		return err
	}

	src := value.String()
	if hkanno.FormatFromPath(args[0]) == hkanno.FormatText {
		if src, err = readInput(cmd, args[0]); err != nil {
			return err
		}
	}
	target, ok := panesync.BuildIndex(preview).Lookup(panesync.FlatIndex(src, line))
	if !ok {
		return fmt.Errorf("preview: no annotation at or after line %d", line)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", target, strings.TrimSpace(source.Line(preview, target)))
	return err
}
