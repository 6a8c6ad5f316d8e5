// Package cli implements the constellation command line client. It talks to
// a running server over its HTTP API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

var flagServer string

var rootCmd = &cobra.Command{
	Use:   "constellation",
	Short: "Client for the constellation reviewed-answer service",
	Long:  "Constellation drafts answers to health questions, runs them past a staged reviewer panel, and corrects them when reviewers object.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8080", "Server base URL")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "constellation version %s\n", version)
	},
}
