package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledgerline/backend/internal/backup"
	"github.com/ledgerline/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errRestoreNotConfirmed = errors.New("restoring replaces all data, confirm with --yes")

func newBackupCommand(configPath *string) *cobra.Command {
	var (
		out        string
		passphrase string
		include    []string
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export all data to a backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, closeDB, err := setup(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeDB()

			b, err := backup.Create(Version, include)
			if err != nil {
				return err
			}

			data, err := backup.Marshal(b, passphrase)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("writing backup: %w", err)
			}

			log.Info().Str("file", out).Bool("encrypted", passphrase != "").Msg("Backup written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write the backup to, stdout if empty")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "encrypt the backup with this passphrase")
	cmd.Flags().StringArrayVar(&include, "include", nil, "glob pattern for resource types to export, can be repeated")

	return cmd
}

func newRestoreCommand(configPath *string) *cobra.Command {
	var (
		in         string
		passphrase string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace all data with the content of a backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errRestoreNotConfirmed
			}

			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("reading backup: %w", err)
			}

			b, err := backup.Parse(data, passphrase)
			if err != nil {
				return err
			}

			_, closeDB, err := setup(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeDB()

			if err := backup.Restore(models.DB, b); err != nil {
				return err
			}

			log.Info().Str("file", in).Time("created", b.CreationTime).Msg("Backup restored")
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "backup file to restore")
	_ = cmd.MarkFlagRequired("in")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "passphrase of an encrypted backup")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm that all data is replaced")

	return cmd
}
