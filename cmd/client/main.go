package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/client/cli"
	"github.com/iudanet/storefront/internal/client/iocli"
	"github.com/iudanet/storefront/internal/client/storage/boltdb"
	"github.com/iudanet/storefront/internal/config"
	"github.com/iudanet/storefront/internal/logger"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var (
	// Глобальные флаги
	configPath string
	serverURL  string
	dbPath     string
	verbose    bool

	app     *cli.Cli
	storage *boltdb.Storage
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Storefront cart client",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Storefront cart client.

Quantity changes are shown immediately and sent to the server
in one request once edits pause for the configured sync window.`,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown(cmd.Context())
	},
}

func setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations["setup"] == "skip" {
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("server") {
		cfg.Client.ServerURL = serverURL
	}
	if cmd.Flags().Changed("db") {
		cfg.Client.DBPath = dbPath
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	storage, err = boltdb.New(cmd.Context(), cfg.Client.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	apiClient := api.NewClient(cfg.Client.ServerURL, cfg.Client.RequestTimeout)
	app = cli.New(iocli.NewStdio(), apiClient, storage, log, cli.Options{
		Window:      cfg.Client.SyncWindow,
		SyncTimeout: cfg.Client.RequestTimeout,
	})
	return nil
}

// teardown отправляет накопленные изменения и закрывает базу
func teardown(ctx context.Context) error {
	var err error
	if app != nil {
		// изменения должны уйти даже после Ctrl+C
		err = app.Close(context.WithoutCancel(ctx))
		app = nil
	}
	if storage != nil {
		if cerr := storage.Close(); cerr != nil {
			slog.Error("failed to close database", "error", cerr)
		}
		storage = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Server URL (default: http://localhost:8080)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to local database (default: storefront-client.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		showCmd,
		addCmd,
		incCmd,
		decCmd,
		rmCmd,
		searchCmd,
		statusCmd,
		shellCmd,
		resetCmd,
		versionCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// PersistentPostRunE не вызывается при ошибке команды
		_ = teardown(ctx)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
