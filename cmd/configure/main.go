package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/questfeed/hashtag-engine/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "hashtag-configure",
		Short: "Operations tool for the hashtag engine",
		Long:  "CLI tool for inspecting stats, scheduling counter resets, and curating keyword rules",
	}

	rootCmd.AddCommand(commands.NewSummaryCmd())
	rootCmd.AddCommand(commands.NewResetCmd())
	rootCmd.AddCommand(commands.NewKeywordsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
