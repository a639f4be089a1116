package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledgerline/backend/internal/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, closeDB, err := setup(configPath, os.Stdout)
	if err != nil {
		return err
	}
	defer closeDB()

	url, err := cfg.URL()
	if err != nil {
		return err
	}

	formatter, err := cfg.Formatter()
	if err != nil {
		return err
	}

	opts := []router.Option{
		router.WithCORSOrigins(cfg.CORSOrigins),
		router.WithPprof(cfg.EnablePprof),
		router.WithFormatter(formatter),
		router.WithVersion(Version),
	}

	r, teardown, err := router.Config(url, opts...)
	if err != nil {
		return err
	}
	defer teardown()

	router.AttachRoutes(r.Group(url.Path), opts...)

	// h2c serves HTTP/2 without TLS for clients that support it
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Str("url", url.String()).Msg("Starting server")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
