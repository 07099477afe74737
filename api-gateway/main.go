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

	"medibook/api-gateway/internal/gateway"
	"medibook/config"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

type Config struct {
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort           string        `env:"GATEWAY_HTTP_PORT" envDefault:"8080"`
	ReviewSvcURL       string        `env:"REVIEW_SVC_URL" envDefault:"http://localhost:8082"`
	AnalyticsSvcURL    string        `env:"ANALYTICS_SVC_URL" envDefault:"http://localhost:8083"`
	UpstreamTimeout    time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := config.NewLogger("api-gateway", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           newHandler(cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("API Gateway starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api-gateway listen failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down api-gateway")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("api-gateway shutdown", slog.String("error", err.Error()))
	}
}

func newHandler(cfg Config, logger *slog.Logger) http.Handler {
	gw := gateway.NewGateway(gateway.Config{
		ReviewSvcURL:    cfg.ReviewSvcURL,
		AnalyticsSvcURL: cfg.AnalyticsSvcURL,
	}, &http.Client{Timeout: cfg.UpstreamTimeout}, logger)

	r := gw.SetupRoutes()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}
