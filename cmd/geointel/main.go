// Command geointel serves the live intelligence feed.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/deusflow/geointel/internal/api"
	"github.com/deusflow/geointel/internal/app"
	"github.com/deusflow/geointel/internal/config"
	"github.com/deusflow/geointel/internal/intel"
	"github.com/deusflow/geointel/internal/logger"
	"github.com/deusflow/geointel/internal/metrics"
	"github.com/deusflow/geointel/internal/scraper"
	"github.com/deusflow/geointel/internal/storage"
)

const (
	Version = "0.3.0"
	appName = "geointel"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Live geopolitical intelligence feed",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			logger.Init()
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(serveCmd(), fetchCmd(), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (sector rules v%d)\n", appName, Version, intel.RulesVersion)
		},
	}
}

// setup loads configuration and builds the service.
func setup() (*config.Config, *app.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := intel.ValidatePlaces(intel.Places); err != nil {
		logger.Warn("Place table has repeated keywords", "error", err)
	}

	queries, err := config.LoadQueries(cfg.QueriesConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load queries: %w", err)
	}
	if !cfg.HasSerper() && !cfg.HasGNews() {
		logger.Warn("No provider keys set, feed will contain curated records only")
	}
	return cfg, app.New(cfg, queries), nil
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := setup()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg, svc)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func serve(parent context.Context, cfg *config.Config, svc *app.Service) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.WatchQueries {
		go func() {
			if err := config.WatchQueries(ctx, cfg.QueriesConfigPath, svc.SetQueries); err != nil {
				logger.Error("Query watcher stopped", "error", err)
			}
		}()
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := api.NewHandler(svc, scraper.NewArticleExtractor(cfg.RequestTimeout))
	router := api.NewRouter(handler, cfg.CORSOrigins, metrics.Global.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "addr", srv.Addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func fetchCmd() *cobra.Command {
	var (
		writeSnapshot bool
		snapshotPath  string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Run one aggregation cycle and print the payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := setup()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if writeSnapshot {
				path := snapshotPath
				if path == "" {
					path = cfg.SnapshotPath
				}
				res, _ := svc.Collect(ctx)
				if err := storage.NewSnapshot(path).Save(res.Items); err != nil {
					return err
				}
				logger.Info("Snapshot written", "path", path, "items", len(res.Items))
				return nil
			}

			body, _, err := svc.Feed(ctx)
			if err != nil {
				return err
			}
			var out bytes.Buffer
			if err := json.Indent(&out, body, "", "  "); err != nil {
				return fmt.Errorf("format payload: %w", err)
			}
			out.WriteByte('\n')
			_, err = out.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().BoolVar(&writeSnapshot, "write-snapshot", false, "save the aggregated items as the static fallback instead of printing")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "snapshot path for --write-snapshot (defaults to SNAPSHOT_PATH)")
	return cmd
}
