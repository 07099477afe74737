package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"medibook/middleware"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	ReviewSvcURL    string
	AnalyticsSvcURL string
}

type Gateway struct {
	config Config
	client HTTPClient
	logger *slog.Logger
}

func NewGateway(config Config, client HTTPClient, logger *slog.Logger) *Gateway {
	config.ReviewSvcURL = strings.TrimRight(config.ReviewSvcURL, "/")
	config.AnalyticsSvcURL = strings.TrimRight(config.AnalyticsSvcURL, "/")
	return &Gateway{
		config: config,
		client: client,
		logger: logger,
	}
}

// hop-by-hop headers are not forwarded in either direction.
var hopHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	g.logger.DebugContext(r.Context(), "proxy",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("target", targetURL),
	)

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.logger.ErrorContext(r.Context(), "failed to create upstream request", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Internal server error"})
		return
	}
	copyHeaders(req.Header, r.Header)
	req.Header.Set("X-Forwarded-Host", r.Host)

	resp, err := g.client.Do(req)
	if err != nil {
		if r.Context().Err() == context.Canceled {
			return
		}
		g.logger.ErrorContext(r.Context(), "upstream unavailable",
			slog.String("target", targetURL),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusBadGateway, map[string]any{"success": false, "error": "Upstream service unavailable"})
		return
	}
	defer resp.Body.Close()

	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.WarnContext(r.Context(), "failed to copy upstream response", slog.String("error", err.Error()))
	}
}

// Target picks the upstream for an /api path, or "" when none serves it.
func (g *Gateway) Target(path string) string {
	switch {
	case path == "/api/reviews" || strings.HasPrefix(path, "/api/reviews/"):
		return g.config.ReviewSvcURL
	case strings.HasPrefix(path, "/api/appointments/") && strings.HasSuffix(path, "/review-qrcode"):
		return g.config.ReviewSvcURL
	case strings.HasPrefix(path, "/api/analytics/"), strings.HasPrefix(path, "/api/doctors/"):
		return g.config.AnalyticsSvcURL
	}
	return ""
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	target := g.Target(r.URL.Path)
	if target == "" {
		g.logger.InfoContext(r.Context(), "unmatched api route", slog.String("path", r.URL.Path))
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "API route not found"})
		return
	}
	g.ProxyRequest(w, r, target)
}

func (g *Gateway) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(g.logger), middleware.RequestLogging(g.logger), middleware.Metrics("api-gateway"))
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	return r
}

func copyHeaders(dst, src http.Header) {
	for k, v := range src {
		if _, hop := hopHeaders[http.CanonicalHeaderKey(k)]; hop {
			continue
		}
		dst[k] = append([]string(nil), v...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
