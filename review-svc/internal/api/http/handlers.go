package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"medibook/review-svc/internal/domain"
	"medibook/review-svc/internal/service"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	Reviews service.ReviewServiceInterface
	Stats   service.StatsServiceInterface
	QRCodes service.QRGenerator
	Logger  *slog.Logger
}

func NewHandler(reviews service.ReviewServiceInterface, stats service.StatsServiceInterface, qr service.QRGenerator, logger *slog.Logger) *Handler {
	return &Handler{Reviews: reviews, Stats: stats, QRCodes: qr, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.health).Methods("GET")
	r.HandleFunc("/api/reviews", h.listReviews).Methods("GET")
	r.HandleFunc("/api/reviews", h.createReview).Methods("POST")
	r.HandleFunc("/api/reviews", h.updateReview).Methods("PUT", "PATCH")
	r.HandleFunc("/api/reviews", h.deleteReview).Methods("DELETE")
	r.HandleFunc("/api/reviews/stats/{doctorId}", h.getDoctorStats).Methods("GET")
	r.HandleFunc("/api/appointments/{appointmentId}/review-qrcode", h.getReviewQRCode).Methods("GET")
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "review-svc"})
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ReviewFilter{
		DoctorID:      query.Get("doctorId"),
		PatientID:     query.Get("patientId"),
		AppointmentID: query.Get("appointmentId"),
	}

	reviews, err := h.Reviews.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch reviews")
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateReviewInput
	if !h.decode(w, r, &input) {
		return
	}

	review, err := h.Reviews.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, r, err, "Failed to create review")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"review":  review,
		"message": "Review submitted successfully",
	})
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request) {
	var input domain.UpdateReviewInput
	if !h.decode(w, r, &input) {
		return
	}

	review, err := h.Reviews.Update(r.Context(), &input)
	if err != nil {
		h.writeError(w, r, err, "Failed to update review")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"review":  review,
		"message": "Review updated successfully",
	})
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.URL.Query().Get("reviewId")

	if err := h.Reviews.Delete(r.Context(), reviewID); err != nil {
		h.writeError(w, r, err, "Failed to delete review")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Review deleted successfully",
	})
}

func (h *Handler) getDoctorStats(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctorId"]

	stats, err := h.Stats.ComputeStats(r.Context(), doctorID)
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch review stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

func (h *Handler) getReviewQRCode(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	png, err := h.QRCodes.Generate(appointmentID)
	if err != nil {
		h.writeError(w, r, err, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body",
		})
		return false
	}
	return true
}

// writeError maps service errors to status codes. Unclassified errors get
// fallback as the message and are logged with their cause.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		status, message = http.StatusBadRequest, verr.Error()
	case errors.Is(err, domain.ErrDuplicateReview):
		status, message = http.StatusConflict, "Review already exists for this appointment"
	case errors.Is(err, domain.ErrReviewNotFound):
		status, message = http.StatusNotFound, "Review not found"
	case errors.Is(err, domain.ErrEditWindowExpired):
		status, message = http.StatusForbidden, "Reviews can only be edited or deleted within 24 hours of creation"
	}

	if status == http.StatusInternalServerError {
		h.Logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
