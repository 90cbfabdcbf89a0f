// Package main is the entry point for the Roster admin CLI. It drives
// the server's HTTP API through the client gateway and performs the same
// pre-submit validation the dashboard form does.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// serverURL is the base URL of the Roster server, set by --server.
var serverURL string

var rootCmd = &cobra.Command{
	Use:   "roster-admin",
	Short: "Administer a Roster server",
	Long: `roster-admin manages user records on a running Roster server.

All commands talk to the server's HTTP API. Point --server at the
instance to manage (default http://localhost:3001).`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("roster-admin\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3001", "base URL of the Roster server")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(userCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
