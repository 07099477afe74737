package service

import (
	"context"

	"medibook/analytics-svc/internal/domain"
)

type AnalyticsInterface interface {
	DoctorRating(ctx context.Context, doctorID string) (*domain.DoctorRating, error)
	TopRated(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	TopToday(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)
