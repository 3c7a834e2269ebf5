package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amaumene/cinefront/internal/config"
	"github.com/amaumene/cinefront/internal/services/catalog"
	"github.com/amaumene/cinefront/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err unless the command already showed it to the user
func reportError(w io.Writer, err error) {
	var reported reportedError
	if errors.As(err, &reported) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cinefront",
		Short:         "Search and extend a movie catalog backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("backend-url", "", "catalog backend base URL (env BACKEND_URL)")
	root.PersistentFlags().String("log-level", "", "log level (env LOG_LEVEL)")
	viper.BindPFlag("BACKEND_URL", root.PersistentFlags().Lookup("backend-url"))
	viper.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newServeCmd(),
		newSearchCmd(),
		newAddActorCmd(),
		newAddMovieCmd(),
	)
	return root
}

// setup loads configuration and builds the logger and the backend client
func setup() (*config.Config, *logrus.Logger, *catalog.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)
	logger.WithFields(logrus.Fields{
		"backend_url":     cfg.BackendURL,
		"authenticated":   cfg.HasCredentials(),
		"request_timeout": cfg.RequestTimeout.String(),
	}).Debug("Configuration loaded")

	client, err := catalog.NewClient(cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize catalog client: %w", err)
	}

	return cfg, logger, client, nil
}
