package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amaumene/cinefront/internal/api"
	"github.com/amaumene/cinefront/internal/controllers"
	"github.com/amaumene/cinefront/internal/metrics"
	"github.com/amaumene/cinefront/internal/render"
	"github.com/amaumene/cinefront/internal/scheduler"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search and creation pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	cmd.Flags().String("port", "", "HTTP port (env SERVER_PORT)")
	viper.BindPFlag("SERVER_PORT", cmd.Flags().Lookup("port"))
	return cmd
}

func runServe() error {
	// 1. Load configuration, logger and backend client
	cfg, logger, client, err := setup()
	if err != nil {
		return err
	}
	logger.Info("Starting cinefront")

	// 2. Register metrics
	metrics.Init()

	// 3. Parse templates
	renderer, err := render.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	// 4. Initialize controllers
	creationCtrl := controllers.NewCreationController(client, logger)
	logger.Info("Controllers initialized")

	// 5. Initialize scheduler
	sched := scheduler.NewScheduler(client, cfg.HealthCheckSchedule, cfg.RequestTimeout, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 6. Initialize HTTP server
	server := api.NewServer(cfg, client, creationCtrl, renderer, sched, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 7. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.WithField("backend_url", cfg.BackendURL).Info("cinefront is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("cinefront stopped")
	return nil
}
