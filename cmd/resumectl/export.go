package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"resume-tailor/resume/model"
	"resume-tailor/resume/render"
)

type exportOptions struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export <resume.json>",
		Short: "Render a GeneratedResume JSON file to PDF or DOCX",
		Example: `  resumectl export resume.json --format docx
  resumectl export resume.json -o out/jane.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := runExport(args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatPDF), "Output format: pdf or docx")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output path (default <name>_resume.<ext> next to the input)")
	return cmd
}

func runExport(input string, opts *exportOptions) (string, error) {
	format, ok := render.ParseFormat(opts.format)
	if !ok {
		return "", errors.Errorf("unsupported format %q", opts.format)
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return "", errors.Wrap(err, "read resume")
	}
	var resume model.GeneratedResume
	if err := json.Unmarshal(raw, &resume); err != nil {
		return "", errors.Wrap(err, "decode resume")
	}
	if err := resume.Validate(); err != nil {
		return "", errors.Wrap(err, "invalid resume")
	}

	data, err := render.Render(format, resume)
	if err != nil {
		return "", errors.Wrapf(err, "render %s", format)
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(filepath.Dir(input), render.FileName(resume, format))
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(err, "create output dir")
		}
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return "", errors.Wrap(err, "write output")
	}
	return output, nil
}
