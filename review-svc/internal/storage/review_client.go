package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"medibook/review-svc/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ReviewAPIClient lists reviews through another instance's collection
// endpoint (GET /api/reviews).
type ReviewAPIClient struct {
	BaseURL string
	Client  HTTPClient
}

func NewReviewAPIClient(baseURL string, client HTTPClient) *ReviewAPIClient {
	return &ReviewAPIClient{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

type listReviewsResponse struct {
	Success bool            `json:"success"`
	Reviews []domain.Review `json:"reviews"`
	Total   int             `json:"total"`
	Error   string          `json:"error"`
}

func (c *ReviewAPIClient) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	query := url.Values{}
	if filter.DoctorID != "" {
		query.Set("doctorId", filter.DoctorID)
	}
	if filter.PatientID != "" {
		query.Set("patientId", filter.PatientID)
	}
	if filter.AppointmentID != "" {
		query.Set("appointmentId", filter.AppointmentID)
	}

	endpoint := c.BaseURL + "/api/reviews"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read list response: %w", err)
	}

	var payload listReviewsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode list response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !payload.Success {
		return nil, fmt.Errorf("list reviews: status %d: %s", resp.StatusCode, payload.Error)
	}
	if payload.Reviews == nil {
		payload.Reviews = []domain.Review{}
	}
	return payload.Reviews, nil
}
