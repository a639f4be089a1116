package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/config"
	"github.com/ledgerline/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// configureLogging sets up the global logger. Without an explicit
// log format, the output is human readable for development and JSON
// for release.
func configureLogging(cfg *config.Config, w io.Writer) {
	gin.SetMode(cfg.GinMode)

	output := w
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: w}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// setup loads the configuration, configures logging and connects the
// database. The returned function closes the database.
func setup(configPath string, logOutput io.Writer) (*config.Config, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	configureLogging(cfg, logOutput)

	err = os.MkdirAll(cfg.DataDir, 0o750)
	if err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	err = models.Connect(cfg.DatabasePath())
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		sqlDB, err := models.DB.DB()
		if err != nil {
			return
		}

		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("closing database")
		}
	}

	return cfg, closeDB, nil
}
