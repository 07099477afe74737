package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"medibook/analytics-svc/internal/domain"
	"medibook/analytics-svc/internal/service"

	"github.com/gorilla/mux"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type Handler struct {
	Analytics service.AnalyticsInterface
	Logger    *slog.Logger
}

func NewHandler(svc service.AnalyticsInterface, logger *slog.Logger) *Handler {
	return &Handler{Analytics: svc, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "analytics-svc"})
	}).Methods("GET")
	r.HandleFunc("/api/doctors/{doctorId}/rating", h.getDoctorRating).Methods("GET")
	r.HandleFunc("/api/analytics/top-rated", h.getTopRated).Methods("GET")
	r.HandleFunc("/api/analytics/top-today", h.getTopToday).Methods("GET")
}

func (h *Handler) getDoctorRating(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctorId"]

	rating, err := h.Analytics.DoctorRating(r.Context(), doctorID)
	if errors.Is(err, domain.ErrRatingNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Doctor rating not found"})
		return
	}
	if err != nil {
		h.internalError(w, r, err, "Failed to fetch doctor rating")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "rating": rating})
}

func (h *Handler) getTopRated(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	entries, err := h.Analytics.TopRated(r.Context(), limit)
	if err != nil {
		h.internalError(w, r, err, "Failed to fetch top rated doctors")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "doctors": entries})
}

func (h *Handler) getTopToday(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	entries, err := h.Analytics.TopToday(r.Context(), limit)
	if err != nil {
		h.internalError(w, r, err, "Failed to fetch today's leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "doctors": entries})
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxLimit {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "limit must be an integer between 1 and " + strconv.Itoa(maxLimit),
		})
		return 0, false
	}
	return limit, true
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	h.Logger.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
