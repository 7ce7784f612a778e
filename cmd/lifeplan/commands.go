package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rpgo/lifeplan/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newProjectCmd(opts *rootOptions) *cobra.Command {
	var (
		format  string
		outFile string
	)
	cmd := &cobra.Command{
		Use:   "project <scenario-file>",
		Short: "Run a projection from a YAML or JSON scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := opts.newParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine := opts.newEngine()
			assumptions := engine.Assumptions()
			f, err := output.ResolveFormatter(format, &assumptions)
			if err != nil {
				return err
			}

			res, err := engine.Project(cmd.Context(), in)
			if err != nil {
				return err
			}
			data, err := f.Format(res)
			if err != nil {
				return fmt.Errorf("format %s: %w", f.Name(), err)
			}
			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "projection %s written to %s\n", res.RunID, outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite",
		fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write output to a file instead of stdout")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario-file>",
		Short: "Check a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := opts.newParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d years, %d milestones\n", args[0], in.YearsToProject, len(in.Milestones))
			return nil
		},
	}
}

func newExampleCmd(opts *rootOptions) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := opts.newParser().CreateExampleInput()
			var (
				data []byte
				err  error
			)
			if strings.EqualFold(filepath.Ext(outFile), ".json") {
				data, err = json.MarshalIndent(in, "", "  ")
			} else {
				data, err = yaml.Marshal(in)
			}
			if err != nil {
				return err
			}
			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(outFile, data, 0644)
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the example to a file (.yaml or .json)")
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintln(out, "Aliases:", strings.Join(output.AvailableFormatAliases(), ", "))
		},
	}
}
