package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sitedeck/internal/devserver"
	"sitedeck/internal/logging"
	"sitedeck/internal/store"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr, dbPath, httpLogPath string
		seed                      bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local sites service backed by SQLite",
		Long: `serve implements GET /api/sites and DELETE /api/sites/{id} on a local
SQLite database, for trying sitedeck without the real service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if cmd.Flags().Changed("http-log") {
				cfg.HTTPLogPath = httpLogPath
			}

			log, err := logging.NewLogger(opts.cfg.Logging)
			if err != nil {
				return err
			}
			defer log.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := store.Open(ctx, cfg.DBPath, log)
			if err != nil {
				return err
			}
			defer st.Close()
			if seed {
				if _, err := st.Seed(ctx); err != nil {
					return err
				}
			}

			var httpLog io.Writer
			if cfg.HTTPLogPath != "" {
				f, err := os.OpenFile(cfg.HTTPLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
				if err != nil {
					return fmt.Errorf("open http log: %w", err)
				}
				defer f.Close()
				httpLog = f
				log.Info("http request logging enabled", "path", cfg.HTTPLogPath)
			}

			srv := devserver.New(st, devserver.Options{Addr: cfg.Addr, HTTPLog: httpLog, Logger: log})
			if err := srv.Start(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Serving sites on %s (db %s)\n", srv.Addr(), cfg.DBPath)

			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", devserver.DefaultAddr, "listen address (default $SITEDECK_SERVE_ADDR)")
	cmd.Flags().StringVar(&dbPath, "db", "sitedeck.db", "SQLite database path (default $SITEDECK_DB_PATH)")
	cmd.Flags().StringVar(&httpLogPath, "http-log", "", "append JSON request logs to this file (default $SITEDECK_HTTP_LOG_PATH)")
	cmd.Flags().BoolVar(&seed, "seed", false, "insert demo sites into an empty database")
	return cmd
}
