package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/httpapi"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(cfg *Config) *cobra.Command {
	var addr string
	var queueSize int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Library over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := newLogger(cfg, cmd.ErrOrStderr())

			env, err := newEnvironment(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer env.close()

			lib, err := env.newLibrary()
			if err != nil {
				return err
			}

			sequencer := circulation.NewSequencer(lib, queueSize)
			sequencerDone := make(chan error, 1)
			go func() {
				sequencerDone <- sequencer.Run(ctx)
			}()

			app := httpapi.NewApp(sequencer, httpapi.WithLogger(logger))
			listenDone := make(chan error, 1)
			go func() {
				listenDone <- app.Listen(addr)
			}()

			logger.Info("serving", "addr", addr, "journal", cfg.Journal)

			select {
			case <-ctx.Done():
				logger.Info("shutting down")
			case err = <-listenDone:
				stop()
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			shutdownErr := app.ShutdownWithContext(shutdownCtx)
			<-sequencerDone

			return errors.Join(err, shutdownErr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().IntVar(&queueSize, "queue-size", defaultQueueSize, "operations buffered ahead of the sequencer")

	return cmd
}
