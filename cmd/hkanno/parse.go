package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hkanno/internal/diagfmt"
	"hkanno/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file|->",
	Short: "Print the parsed line structure of an annotation text",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	text, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	doc := parser.ParseContext(cmd.Context(), text)

	switch outputFormat {
	case "pretty":
		return diagfmt.FormatDocumentPretty(cmd.OutOrStdout(), doc)
	case "json":
		return diagfmt.FormatDocumentJSON(cmd.OutOrStdout(), doc)
	}
	return fmt.Errorf("parse: unsupported output format %q", outputFormat)
}

// readInput reads path, or standard input for "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
