package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskvoice/cmd/dialogctl/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "dialogctl",
		Short: "Operator tool for the voice command service",
		Long:  "CLI tool for inspecting dialog sessions and checking slot compilation",
	}

	rootCmd.AddCommand(commands.NewRecurrenceCmd())
	rootCmd.AddCommand(commands.NewReminderCmd())
	rootCmd.AddCommand(commands.NewMatchCmd())
	rootCmd.AddCommand(commands.NewSessionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
