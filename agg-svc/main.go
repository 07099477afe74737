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

	"medibook/agg-svc/internal/service"
	"medibook/agg-svc/internal/storage"
	"medibook/config"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	KafkaBrokers    []string      `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	ReviewTopic     string        `env:"REVIEW_TOPIC" envDefault:"reviews"`
	ConsumerGroup   string        `env:"AGG_CONSUMER_GROUP" envDefault:"agg-svc-consumer"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	EventMarkerTTL  time.Duration `env:"EVENT_MARKER_TTL" envDefault:"168h"`
	MetricsPort     string        `env:"AGG_METRICS_PORT" envDefault:"9102"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := config.NewLogger("agg-svc", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg.KafkaBrokers, cfg.ReviewTopic, cfg.ConsumerGroup)
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb, cfg.EventMarkerTTL), logger)

	metricsSrv := newMetricsServer(cfg.MetricsPort)
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()

	if err := consumer.Start(ctx); err != nil {
		logger.Error("consumer stopped with error", slog.String("error", err.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", slog.String("error", err.Error()))
	}
	logger.Info("agg-svc stopped")
}

func newMetricsServer(port string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","service":"agg-svc"}`))
	})
	return &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
