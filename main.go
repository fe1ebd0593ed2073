package main

import (
	"os"

	"contractai/cmd"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "contractai",
		Short: "ContractAI - upload, analyze and generate contracts with an LLM.",
		Long: `contractai keeps an in-memory list of contracts per session, answers questions
about a selected contract and drafts new contracts from a short form.

Run "contractai serve" for the HTTP API or "contractai tui" for the terminal UI.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml)")

	rootCmd.AddCommand(cmd.NewServeCmd(&configPath))
	rootCmd.AddCommand(cmd.NewTUICmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
