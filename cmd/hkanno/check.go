package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hkanno/internal/diag"
	"hkanno/internal/diagfmt"
	"hkanno/internal/driver"
	"hkanno/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Report diagnostics for annotation text files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Int("jobs", 0, "files checked in parallel (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().String("path-mode", "auto", "path display (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("timings", false, "print phase timings to stderr")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return err
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return err
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return fmt.Errorf("check: invalid --path-mode %q", pathModeStr)
	}
	limit, err := maxDiagnostics(cmd, cfg)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	timer := observ.NewTimer()
	if timings {
		defer func() { fmt.Fprint(os.Stderr, timer.Summary()) }()
	}

	endCheck := timer.Begin("check")
	results, err := driver.CheckPaths(cmd.Context(), args, driver.CheckOptions{
		Jobs:             jobs,
		MaxDiagnostics:   limit,
		WarningsAsErrors: strict || cfg.Check.WarningsAsErrors,
	})
	if err != nil {
		return err
	}
	endCheck(fmt.Sprintf("%d file(s)", len(results)))
	defer timer.Begin("render")("")

	out := cmd.OutOrStdout()
	failed := 0
	for _, res := range results {
		if res.HasErrors() {
			failed++
		}
	}

	switch outputFormat {
	case "pretty":
		for _, res := range results {
			if err := diagfmt.Pretty(out, res.Path, res.Text, res.Diagnostics, diagfmt.PrettyOpts{
				Color:    !color.NoColor,
				PathMode: pathMode,
			}); err != nil {
				return err
			}
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "checked %d file(s), %d with errors\n", len(results), failed)
		}
	case "short":
		for _, res := range results {
			if len(res.Diagnostics) == 0 {
				continue
			}
			fmt.Fprintln(out, diag.FormatShort(res.Path, res.Diagnostics))
		}
	case "json":
		files := make([]diagfmt.File, len(results))
		for i, res := range results {
			files[i] = diagfmt.File{Path: res.Path, Diagnostics: res.Diagnostics}
		}
		if err := diagfmt.JSON(out, files, diagfmt.JSONOpts{PathMode: pathMode}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("check: unsupported output format %q", outputFormat)
	}

	if failed > 0 {
		return fmt.Errorf("check: %d file(s) with errors", failed)
	}
	return nil
}
