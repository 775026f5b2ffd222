package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hkanno/internal/engine"
	"hkanno/internal/hkanno"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <input>",
	Short: "Convert annotations between text, JSON, TOML and XML",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringP("to", "t", "", "output format (xml|json|toml|txt|amd64|win32); default inferred from the input")
	convertCmd.Flags().StringP("output", "o", "", "output path (default <name>.modified.<ext>)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	input := args[0]
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	format := hkanno.FormatFromPath(input)
	if to != "" {
		if format, err = hkanno.ParseOutFormat(to); err != nil {
			return err
		}
	}
	if output == "" {
		output = hkanno.ChangeExtension(hkanno.OutputPath(input), format)
	}

	eng := engine.NewLocal()
	value, err := eng.Load(cmd.Context(), input)
	if err != nil {
		return err
	}
	if err := eng.Save(cmd.Context(), input, output, format, value); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d annotation(s))\n", output, format, value.Len())
	}
	return nil
}
