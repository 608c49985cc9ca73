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

	"github.com/trussworks/bookclub"
	"github.com/trussworks/bookclub/pkg/api"
	"github.com/trussworks/bookclub/pkg/books"
	"github.com/trussworks/bookclub/pkg/catalog"
	"github.com/trussworks/bookclub/pkg/config"
	"github.com/trussworks/bookclub/pkg/logger"
	"github.com/trussworks/bookclub/pkg/reviews"
	"github.com/trussworks/bookclub/pkg/token"
	"github.com/trussworks/bookclub/pkg/users"
)

func newServeCmd() *cobra.Command {
	cfg, loadErr := config.Load()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loadErr != nil {
				return loadErr
			}
			return serve(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flags.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "access token validity")
	flags.DurationVar(&cfg.SessionLifetime, "session-lifetime", cfg.SessionLifetime, "server side session lifetime")
	flags.StringVar(&cfg.CookiePath, "cookie-path", cfg.CookiePath, "path the session cookie is scoped to")
	flags.BoolVar(&cfg.CookieSecure, "cookie-secure", cfg.CookieSecure, "only send the session cookie over https")
	flags.DurationVar(&cfg.CatalogLatency, "catalog-latency", cfg.CatalogLatency, "simulated delay on catalog reads")
	flags.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "JSON catalog seed file, built in catalog if empty")

	return cmd
}

func serve(ctx context.Context, cfg config.App) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if err := cfg.EnsureSecret(); err != nil {
		return err
	}

	store, err := catalog.LoadStore(cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	issuer, err := token.NewIssuer(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	directory := users.NewDirectory()

	sessionManager := bookclub.NewSessionManager(bookclub.SessionConfig{
		Lifetime:     cfg.SessionLifetime,
		CookiePath:   cfg.CookiePath,
		CookieSecure: cfg.CookieSecure,
	})
	sessions, err := bookclub.NewUserSessions(sessionManager, issuer, directory,
		bookclub.CustomLogger(logger.NewSlogLogger(log)))
	if err != nil {
		return err
	}

	handler := api.Handler(api.Deps{
		SessionManager: sessionManager,
		Sessions:       sessions,
		Users:          directory,
		Books:          books.New(store, books.WithLatency(cfg.CatalogLatency)),
		Reviews:        reviews.New(store, log),
		Log:            log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.Addr, "books", len(store.All()))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
