package service

import (
	"context"
	"math"

	"medibook/review-svc/internal/domain"
)

// StatsService recomputes a doctor's rating summary from the reviews
// returned by its lister on every call.
type StatsService struct {
	lister ReviewLister
}

func NewStatsService(lister ReviewLister) *StatsService {
	return &StatsService{lister: lister}
}

func (s *StatsService) ComputeStats(ctx context.Context, doctorID string) (*domain.DoctorStats, error) {
	reviews, err := s.lister.List(ctx, domain.ReviewFilter{DoctorID: doctorID})
	if err != nil {
		return nil, &domain.AggregationError{DoctorID: doctorID, Err: err}
	}
	return Aggregate(doctorID, reviews), nil
}

// Aggregate expects reviews ordered newest first.
func Aggregate(doctorID string, reviews []domain.Review) *domain.DoctorStats {
	stats := &domain.DoctorStats{
		DoctorID:           doctorID,
		TotalReviews:       len(reviews),
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		RatingPercentages:  map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		RecentReviews:      []domain.Review{},
	}
	if len(reviews) == 0 {
		return stats
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
		if _, ok := stats.RatingDistribution[review.Rating]; ok {
			stats.RatingDistribution[review.Rating]++
		}
	}

	total := float64(len(reviews))
	stats.AverageRating = roundHalfUp(float64(sum)/total, 1)
	for rating, count := range stats.RatingDistribution {
		stats.RatingPercentages[rating] = int(roundHalfUp(100*float64(count)/total, 0))
	}

	recent := reviews
	if len(recent) > domain.RecentReviewsLimit {
		recent = recent[:domain.RecentReviewsLimit]
	}
	stats.RecentReviews = append(stats.RecentReviews, recent...)

	return stats
}

// roundHalfUp rounds a non-negative value to the given number of decimals.
func roundHalfUp(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Floor(v*scale+0.5) / scale
}
