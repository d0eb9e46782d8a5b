package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/storefront/internal/config"
	"github.com/iudanet/storefront/internal/logger"
	"github.com/iudanet/storefront/internal/server/handlers"
	"github.com/iudanet/storefront/internal/server/middleware"
	"github.com/iudanet/storefront/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var (
	configPath  string
	addr        string
	dbPath      string
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:           "storefront-server",
	Short:         "Reference cart service for the storefront client",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion()
			return nil
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = addr
		}
		if cmd.Flags().Changed("db") {
			cfg.Server.DBPath = dbPath
		}

		return run(cmd.Context(), cfg)
	},
}

func run(ctx context.Context, cfg config.Config) error {
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	log.Info("Storefront server starting",
		"version", Version,
		"addr", cfg.Server.Addr,
		"db", cfg.Server.DBPath,
	)

	store, err := sqlite.New(ctx, cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window, log)
	defer limiter.Stop()

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: handlers.NewRouter(log, store, handlers.RouterConfig{
			RateLimiter: limiter,
			Version:     Version,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server", "timeout", cfg.Server.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("Server stopped")
	return nil
}

func printVersion() {
	fmt.Printf("Storefront Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: :8080)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Path to SQLite database (default: storefront.db)")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		stop()
		os.Exit(1)
	}
}
