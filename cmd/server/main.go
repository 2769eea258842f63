package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/settleapp/settle/internal/api"
	"github.com/settleapp/settle/internal/auth"
	"github.com/settleapp/settle/internal/config"
	"github.com/settleapp/settle/internal/notify"
	"github.com/settleapp/settle/internal/service"
	"github.com/settleapp/settle/internal/storage/sqlite"
	"github.com/settleapp/settle/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var mailer notify.Mailer = notify.NopMailer{}
	if cfg.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)
		slog.Info("Email notifications enabled", "host", cfg.SMTPHost)
	}
	notifier := notify.LogNotifier{}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store, cfg.Defaults)

	handler := api.New(
		store,
		jwtManager,
		service.NewUserService(authenticator, jwtManager, store),
		service.NewGroupService(store, notifier, mailer),
		service.NewExpenseService(store, notifier, mailer, cfg.Defaults),
		service.NewPaymentService(store, notifier, cfg.AllowThirdPartySettlement),
		service.NewDashboardService(store),
	).Handler()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: cfg.CORSOrigin != "*",
	}).Handler(handler)

	// h2c allows HTTP/2 without TLS behind a terminating proxy.
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h2c.NewHandler(corsHandler, &http2.Server{}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "address", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
