package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docaudit",
	Short: "AI-assisted audit of software project documents",
	Long: `Docaudit analyzes a project document with multiple AI auditors,
verifies every reported issue against the document text, and produces a
consolidated audit report.`,
}

var DebugMode bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
}
