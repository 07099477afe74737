package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	httpapi "medibook/review-svc/internal/api/http"
	"medibook/review-svc/internal/service"
	"medibook/review-svc/internal/storage"
)

type Config struct {
	Environment        string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort           string        `env:"REVIEW_HTTP_PORT" envDefault:"8082"`
	KafkaBrokers       []string      `env:"KAFKA_BROKERS" envSeparator:","`
	ReviewTopic        string        `env:"REVIEW_TOPIC" envDefault:"reviews"`
	SeedDatabaseURL    string        `env:"REVIEW_SEED_DATABASE_URL"`
	SeedPublishEvents  bool          `env:"REVIEW_SEED_PUBLISH_EVENTS" envDefault:"false"`
	StatsSourceURL     string        `env:"REVIEW_STATS_SOURCE_URL"`
	PublicBaseURL      string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := config.NewLogger("review-svc", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("review-svc stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger *slog.Logger) error {
	var publisher service.ReviewPublisher
	if len(cfg.KafkaBrokers) > 0 {
		writer := config.NewKafkaWriter(cfg.KafkaBrokers, cfg.ReviewTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
		logger.Info("review events enabled",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("topic", cfg.ReviewTopic),
		)
	}

	reviews := service.NewReviewService(storage.NewMemoryRepository(), publisher, logger)
	if cfg.SeedDatabaseURL != "" {
		if err := seedReviews(ctx, cfg.SeedDatabaseURL, reviews, cfg.SeedPublishEvents && publisher != nil, logger); err != nil {
			return err
		}
	}

	var lister service.ReviewLister = reviews
	if cfg.StatsSourceURL != "" {
		lister = storage.NewReviewAPIClient(cfg.StatsSourceURL, &http.Client{Timeout: 5 * time.Second})
	}
	stats := service.NewStatsService(lister)

	qr := service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}
	handler := httpapi.NewHandler(reviews, stats, qr, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return serve(ctx, srv, cfg.ShutdownTimeout, logger)
}

func seedReviews(ctx context.Context, dsn string, reviews *service.ReviewService, publishEvents bool, logger *slog.Logger) error {
	db := config.MustInitPostgres(dsn)
	defer db.Close()

	fixtures, err := storage.NewPostgresSeedSource(db).LoadReviews(ctx)
	if err != nil {
		return err
	}
	imported, err := reviews.Import(ctx, fixtures, publishEvents)
	if err != nil {
		return err
	}
	logger.Info("review store seeded",
		slog.Int("reviews", imported),
		slog.Bool("events_published", publishEvents),
	)
	return nil
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Review Service starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down review-svc")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
