package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "stock-scoring",
	Short: "Composite stock scoring engine",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
