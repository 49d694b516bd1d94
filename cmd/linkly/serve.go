package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/joestump/linkly/internal/config"
	"github.com/joestump/linkly/internal/db"
	"github.com/joestump/linkly/internal/handler"
	"github.com/joestump/linkly/internal/links"
	"github.com/joestump/linkly/internal/logging"
	"github.com/joestump/linkly/internal/session"
	"github.com/joestump/linkly/internal/workspace"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			database, err := db.New(ctx, cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			sessionManager := session.NewManager(database, cfg.DB.Driver, cfg.SessionLifetime, !cfg.InsecureCookies)

			registry := workspace.NewRegistry(workspace.Options{
				IdleTimeout:    cfg.Workspace.IdleTimeout,
				Max:            cfg.Workspace.Max,
				NotifyDuration: cfg.NotifyDuration,
				Logger:         log.Named("workspace"),
			})

			router := handler.NewRouter(handler.Deps{
				SessionManager: sessionManager,
				Workspaces:     registry,
				Logos:          links.NewLogoResolver(cfg.LogoEndpoint),
				Logger:         log.Named("http"),
				Ping:           database.PingContext,
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return registry.Run(ctx, cfg.Workspace.SweepInterval)
			})
			g.Go(func() error {
				log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				log.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
}
