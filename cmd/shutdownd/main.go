package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/spf13/cobra"
	log "go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanet-platform/shutdown/internal/app"
	"github.com/yanet-platform/shutdown/internal/monitoring/logger"
)

// errInterrupted is returned when the process receives a termination signal.
// It is a regular way to stop and is not reported as a failure.
var errInterrupted = errors.New("interrupted")

func main() {
	var configPath string
	cmd := &cobra.Command{
		Use:   path.Base(os.Args[0]),
		Short: "Runs periodic workers and drains them gracefully on SIGINT/SIGTERM",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd.Context(), configPath)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the config file (required).")
	if err := cmd.MarkFlagRequired("config"); err != nil {
		panic("Logic error: `config` flag not exists in the program")
	}

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func exec(ctx context.Context, configPath string) error {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zapLogger, err := logger.New(ctx, config.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("starting shutdownd", log.Any("config", config))

	wg, ctx := errgroup.WithContext(ctx)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)
	wg.Go(func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s := <-ch:
			zapLogger.Info("received signal", log.Stringer("signal", s))
			return errInterrupted
		}
	})

	daemon := app.New(config, zapLogger)
	wg.Go(func() error {
		return daemon.Run(ctx)
	})

	if err := wg.Wait(); err != nil && !errors.Is(err, errInterrupted) {
		zapLogger.Error("shutdownd failed", log.Error(err))
		return err
	}

	zapLogger.Info("shutdownd stopped")
	return nil
}
