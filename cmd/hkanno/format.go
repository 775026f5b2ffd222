package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hkanno/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format annotation text files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted text to stdout instead of rewriting files")
	fmtCmd.Flags().Int("jobs", 0, "files formatted in parallel (0 = GOMAXPROCS)")
}

type fmtResultJSON struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Error   string `json:"error,omitempty"`
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Check:  check,
		Stdout: writeToStdout,
		Jobs:   jobs,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
		}
		if res.Changed {
			hasChanges = true
		}
	}

	switch outputFormat {
	case "text":
		renderFmtText(out, results, check, writeToStdout, quiet)
	case "json":
		payload := make([]fmtResultJSON, len(results))
		for i, res := range results {
			payload[i] = fmtResultJSON{Path: res.Path, Changed: res.Changed}
			if res.Err != nil {
				payload[i].Error = res.Err.Error()
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func renderFmtText(out io.Writer, results []driver.FormatResult, check, stdout, quiet bool) {
	for _, res := range results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
		case stdout:
			io.WriteString(out, res.Formatted) //nolint:errcheck
		case check && res.Changed && !quiet:
			fmt.Fprintln(out, res.Path)
		case !check && res.Changed && !quiet:
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
	}
}
