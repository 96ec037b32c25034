package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v5"
	"github.com/spf13/cobra"

	"github.com/pensiondata/efastdl/internal/api"
	"github.com/pensiondata/efastdl/internal/app"
	"github.com/pensiondata/efastdl/internal/extraction"
	"github.com/pensiondata/efastdl/internal/fetch"
	"github.com/pensiondata/efastdl/internal/infra/config"
	"github.com/pensiondata/efastdl/internal/infra/logger"
	"github.com/pensiondata/efastdl/internal/runner"
	"github.com/pensiondata/efastdl/internal/store"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "efastdl",
		Short:         "Bulk downloader for DOL Form 5500 filing extracts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default config.yaml)")
	rootCmd.AddCommand(runCmd(), serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap loads config and wires the shared application context.
// The returned cleanup closes the attempt store.
func bootstrap() (*app.Context, func(), error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log.Path, logger.ParseLevel(cfg.Log.Level), cfg.Log.IncludeStdout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	st, err := store.NewPersistentStore(cfg.Store.SQLitePath)
	if err != nil {
		return nil, nil, err
	}

	appCtx := app.NewContext(cfg, log, st)
	return appCtx, func() { st.Close() }, nil
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Download and extract all four dataset groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			// Ctrl+C cancels after the current task; the run is
			// idempotent at the file level and safe to resume.
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fetcher := fetch.New(appCtx.Config.Download.HTTPTimeout, appCtx.Logger)
			r := runner.New(appCtx, fetcher, extraction.NewUnzip())

			if _, err := r.Run(ctx); err != nil {
				appCtx.Logger.Warn("Run interrupted: %v", err)
			}
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only run history API",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			e := echo.New()
			api.RegisterRoutes(e, appCtx)

			srv := &http.Server{
				Addr:     ":" + appCtx.Config.Port,
				Handler:  e,
				ErrorLog: log.New(appCtx.Logger, "", 0),
			}

			appCtx.Logger.Info("Serving run history on %s", srv.Addr)
			return srv.ListenAndServe()
		},
	}
}
