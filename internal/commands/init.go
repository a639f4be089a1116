package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledgerline/backend/internal/config"
	"github.com/spf13/cobra"
)

var errConfigExists = errors.New("the configuration file already exists, use --force to overwrite it")

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a configuration file with the default settings",
		Long:  "Write a configuration file with the default settings. Environment variables that are set override the defaults.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "ledgerline.yaml"
			if len(args) > 0 {
				path = args[0]
			}

			if err := runInit(path, force); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func runInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errConfigExists
	}

	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	return config.Save(path, cfg)
}
