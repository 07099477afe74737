package tests

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medibook/api-gateway/internal/gateway"
	"medibook/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = gateway.Config{
	ReviewSvcURL:    "http://review-svc/",
	AnalyticsSvcURL: "http://analytics-svc",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func jsonResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	resp.Header.Set("Connection", "close")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil, discardLogger())

	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_Target(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil, discardLogger())

	tests := []struct {
		path     string
		expected string
	}{
		{"/api/reviews", "http://review-svc"},
		{"/api/reviews/stats/d1", "http://review-svc"},
		{"/api/appointments/a1/review-qrcode", "http://review-svc"},
		{"/api/appointments/a1", ""},
		{"/api/reviewsx", ""},
		{"/api/analytics/top-rated", "http://analytics-svc"},
		{"/api/doctors/d1/rating", "http://analytics-svc"},
		{"/api/prescriptions", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.path, func(t *testing.T) {
			assert.Equal(t, testCase.expected, gw.Target(testCase.path))
		})
	}
}

func TestGateway_ProxiesReviews(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, discardLogger())

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		body, _ := io.ReadAll(req.Body)
		return req.Method == http.MethodPost &&
			req.URL.String() == "http://review-svc/api/reviews" &&
			req.Header.Get("Content-Type") == "application/json" &&
			string(body) == `{"rating":5}`
	})).Return(jsonResponse(http.StatusCreated, `{"success":true}`), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())
	assert.Empty(t, rr.Header().Get("Connection"))
}

func TestGateway_ProxiesAnalyticsWithQuery(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, discardLogger())

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "http://analytics-svc/api/analytics/top-rated?limit=3"
	})).Return(jsonResponse(http.StatusOK, `{"success":true,"doctors":[]}`), nil).Once()

	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/analytics/top-rated?limit=3", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestGateway_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil, discardLogger())

	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}

func TestGateway_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, discardLogger())

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/doctors/d1/rating", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}
