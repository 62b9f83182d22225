// Package cli implements the Serene command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "serene",
	Short: "Serene — personal wellness engagement engine",
	Long: `Serene is the backend for the Serene wellness app.
It records moods, journals, tasks, habits, and chat, and turns that
activity into streaks, points, and badges.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
