// Package commands implements the ledgerline command line interface.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// Version of the backend. This is set at build time via ldflags.
var Version = "0.0.0"

// NewRootCommand creates the root CLI command with all subcommands registered.
// Running it without a subcommand starts the server.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "ledgerline",
		Short:   "Household budget backend for bills, incomes, insurance and savings goals",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("LEDGERLINE_CONFIG"), "path to a YAML configuration file, defaults to $LEDGERLINE_CONFIG")

	rootCmd.AddCommand(newServeCommand(&configPath))
	rootCmd.AddCommand(newBackupCommand(&configPath))
	rootCmd.AddCommand(newRestoreCommand(&configPath))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
