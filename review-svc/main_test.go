package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "medibook/review-svc/internal/api/http"
	"medibook/review-svc/internal/service"
	"medibook/review-svc/internal/storage"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reviews := service.NewReviewService(storage.NewMemoryRepository(), nil, logger)
	stats := service.NewStatsService(reviews)
	qr := service.DefaultQRGenerator{BaseURL: "https://medibook.test"}
	handler := httpapi.NewHandler(reviews, stats, qr, logger)

	server := httptest.NewServer(httpapi.NewRouter(handler, logger, []string{"*"}))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestReviewLifecycle(t *testing.T) {
	server := newTestServer(t)

	status, body := doJSON(t, http.MethodPost, server.URL+"/api/reviews", map[string]any{
		"appointmentId": "appt-1",
		"patientId":     "pat-1",
		"doctorId":      "doc-1",
		"patientName":   "Alex",
		"doctorName":    "Dr. Grey",
		"rating":        "5",
		"reviewText":    "Listened carefully",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	review := body["review"].(map[string]any)
	reviewID := review["id"].(string)
	assert.Equal(t, true, review["canEdit"])
	assert.EqualValues(t, 5, review["rating"])

	status, body = doJSON(t, http.MethodPost, server.URL+"/api/reviews", map[string]any{
		"appointmentId": "appt-1",
		"patientId":     "pat-1",
		"doctorId":      "doc-1",
		"rating":        4,
		"reviewText":    "Second try",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, body["success"])

	_, _ = doJSON(t, http.MethodPost, server.URL+"/api/reviews", map[string]any{
		"appointmentId": "appt-2",
		"patientId":     "pat-2",
		"doctorId":      "doc-1",
		"rating":        4,
		"reviewText":    "Fine",
	})

	status, body = doJSON(t, http.MethodPatch, server.URL+"/api/reviews", map[string]any{
		"reviewId": reviewID,
		"rating":   5,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Review updated successfully", body["message"])

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/reviews?doctorId=doc-1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["total"])

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/reviews/stats/doc-1", nil)
	require.Equal(t, http.StatusOK, status)
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 2, stats["totalReviews"])
	assert.EqualValues(t, 4.5, stats["averageRating"])
	assert.Len(t, stats["recentReviews"], 2)

	status, body = doJSON(t, http.MethodDelete, server.URL+"/api/reviews?reviewId="+reviewID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Review deleted successfully", body["message"])

	status, _ = doJSON(t, http.MethodDelete, server.URL+"/api/reviews?reviewId="+reviewID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateReview_AppointmentDateFormats(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name         string
		date         any
		expectedCode int
		expectedDate string
	}{
		{name: "plain_date", date: "2024-01-15", expectedCode: http.StatusCreated, expectedDate: "2024-01-15T00:00:00Z"},
		{name: "rfc3339", date: "2024-01-15T09:30:00Z", expectedCode: http.StatusCreated, expectedDate: "2024-01-15T09:30:00Z"},
		{name: "unparseable", date: "next tuesday", expectedCode: http.StatusBadRequest},
		{name: "number", date: 20240115, expectedCode: http.StatusBadRequest},
	}

	for i, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			status, body := doJSON(t, http.MethodPost, server.URL+"/api/reviews", map[string]any{
				"appointmentId":   "appt-date-" + string(rune('a'+i)),
				"patientId":       "pat-1",
				"doctorId":        "doc-1",
				"rating":          5,
				"reviewText":      "On time",
				"appointmentDate": testCase.date,
			})
			require.Equal(t, testCase.expectedCode, status)

			if testCase.expectedCode != http.StatusCreated {
				assert.Equal(t, false, body["success"])
				assert.Contains(t, body["error"], "appointmentDate")
				return
			}
			review := body["review"].(map[string]any)
			assert.Equal(t, testCase.expectedDate, review["appointmentDate"])
		})
	}
}

func TestStatsForUnknownDoctor(t *testing.T) {
	server := newTestServer(t)

	status, body := doJSON(t, http.MethodGet, server.URL+"/api/reviews/stats/nobody", nil)
	require.Equal(t, http.StatusOK, status)
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 0, stats["totalReviews"])
	assert.EqualValues(t, 0, stats["averageRating"])
	assert.Equal(t, []any{}, stats["recentReviews"])
	assert.Len(t, stats["ratingDistribution"], 5)
}

func TestQRCodeEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/appointments/appt-9/review-qrcode")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	png, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestHealthAndMetrics(t *testing.T) {
	server := newTestServer(t)

	status, body := doJSON(t, http.MethodGet, server.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	metrics, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `http_requests_total{method="GET",path="/health",service="review-svc"`)
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, "8082", cfg.HTTPPort)
	assert.Equal(t, "reviews", cfg.ReviewTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.SeedPublishEvents)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestServe_StopsOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	srv := &http.Server{Addr: addr, Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, srv, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}
