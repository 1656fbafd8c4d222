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

	"portfolio/internal/cache"
	"portfolio/internal/commentstore"
	"portfolio/internal/config"
	"portfolio/internal/github"
	"portfolio/internal/logger"
	"portfolio/internal/server"
	"portfolio/internal/storage"
	"portfolio/internal/subscribe"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	log := logger.New()
	logger.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting portfolio API",
		"port", cfg.Port,
		"comment_store", cfg.CommentStore,
		"email_mode", cfg.Email.Mode,
	)

	// The store connects on the first request that needs it.
	opener, err := commentstore.OpenerFor(cfg.CommentStore, cfg.MongoURI, cfg.MongoDatabase, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to configure comment store", "error", err)
		os.Exit(1)
	}
	store := commentstore.NewLazy(opener)

	deps := server.Deps{
		Logger:           log,
		Comments:         store,
		ContactRecipient: cfg.Email.Recipient,
		AudienceID:       cfg.MailchimpAudienceID,
		GalleryPrefix:    cfg.S3.GalleryPrefix,
		AllowOrigins:     cfg.AllowOrigins,
	}

	deps.Email = newEmailSender(cfg, log)

	if cfg.MailchimpAPIKey != "" && cfg.MailchimpServerPrefix != "" {
		deps.Subscriber = subscribe.NewMailchimp(cfg.MailchimpAPIKey, cfg.MailchimpServerPrefix)
	} else {
		slog.Warn("Mailchimp not configured, subscribe endpoint disabled")
	}

	if cfg.RedisAddr != "" {
		deps.Cache = cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "portfolio:")
		slog.Info("Redis cache configured", "redis_addr", cfg.RedisAddr)
	}

	if cfg.GitHubUsername != "" && cfg.GitHubToken != "" {
		var fetcher github.Fetcher = github.NewClient(cfg.GitHubUsername, cfg.GitHubToken)
		if deps.Cache != nil {
			fetcher = github.NewCachedFetcher(fetcher, deps.Cache, cfg.GitHubCacheTTL, log)
		}
		deps.GitHub = fetcher
	} else {
		slog.Warn("GitHub username or token not set, contributions endpoint disabled")
	}

	if cfg.S3.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		svc, err := storage.New(ctx, storage.Config{
			Endpoint:       cfg.S3.Endpoint,
			PublicEndpoint: cfg.S3.PublicEndpoint,
			Region:         cfg.S3.Region,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			Bucket:         cfg.S3.Bucket,
			UseSSL:         cfg.S3.UseSSL,
		}, log)
		cancel()
		if err != nil {
			slog.Warn("Failed to initialize storage service", "error", err)
		} else {
			deps.Storage = svc
		}
	}

	srv := server.NewServer(cfg, deps)

	go func() {
		slog.Info("Portfolio API listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down portfolio API")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	if err := store.Close(ctx); err != nil {
		slog.Error("Failed to close comment store", "error", err)
	}

	slog.Info("Portfolio API stopped")
}
