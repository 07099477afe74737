package httpapi

import (
	"log/slog"
	"net/http"

	"medibook/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler, logger *slog.Logger, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(logger), middleware.RequestLogging(logger), middleware.Metrics("review-svc"))
	handler.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}
