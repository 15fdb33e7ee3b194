package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "codecompass-engine [command]",
	Short:         "CodeCompass engine analyzes code snippets for improvement opportunities.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `CodeCompass engine is the analysis service behind CodeCompass. It parses
source snippets with tree-sitter, flags hardcoded secret-looking assignments,
and can forward snippets to a hosted generative model for a holistic review.`,
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// Execute runs the CLI.
func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
