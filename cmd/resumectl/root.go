package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "resumectl",
		Short: "Offline tools for the resume-tailor API",
		Long: `resumectl renders GeneratedResume JSON to PDF or DOCX, prints the generation
prompt for a stored profile and a job description, and signs development JWTs.`,
		SilenceUsage: true,
	}
	root.AddCommand(newExportCmd(), newPromptCmd(), newTokenCmd())
	return root
}
