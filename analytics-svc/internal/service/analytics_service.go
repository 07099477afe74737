package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"medibook/analytics-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const topRatedKey = "analytics:top-rated"

type AnalyticsService struct {
	rdb redis.Cmdable
	now func() time.Time
}

func NewAnalyticsService(rdb redis.Cmdable) *AnalyticsService {
	return &AnalyticsService{rdb: rdb, now: time.Now}
}

// WithClock replaces time.Now when picking today's leaderboard.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

func (s *AnalyticsService) DoctorRating(ctx context.Context, doctorID string) (*domain.DoctorRating, error) {
	fields, err := s.rdb.HGetAll(ctx, "doctor:"+doctorID+":rating").Result()
	if err != nil {
		return nil, fmt.Errorf("read rating for doctor %s: %w", doctorID, err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrRatingNotFound
	}

	rating := &domain.DoctorRating{
		DoctorID:           doctorID,
		RatingDistribution: make(map[int]int64, 5),
	}
	if rating.TotalReviews, err = intField(fields, "review_count"); err != nil {
		return nil, fmt.Errorf("read rating for doctor %s: %w", doctorID, err)
	}
	if rating.TotalReviews <= 0 {
		return nil, domain.ErrRatingNotFound
	}
	if rating.AverageRating, err = floatField(fields, "avg_rating"); err != nil {
		return nil, fmt.Errorf("read rating for doctor %s: %w", doctorID, err)
	}
	for stars := 1; stars <= 5; stars++ {
		if rating.RatingDistribution[stars], err = intField(fields, "r"+strconv.Itoa(stars)); err != nil {
			return nil, fmt.Errorf("read rating for doctor %s: %w", doctorID, err)
		}
	}
	ts, err := intField(fields, "last_updated")
	if err != nil {
		return nil, fmt.Errorf("read rating for doctor %s: %w", doctorID, err)
	}
	if ts > 0 {
		rating.LastUpdated = time.Unix(ts, 0).UTC()
	}
	return rating, nil
}

func (s *AnalyticsService) TopRated(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return s.leaderboard(ctx, topRatedKey, limit)
}

// TopToday ranks doctors by reviews received today (UTC).
func (s *AnalyticsService) TopToday(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return s.leaderboard(ctx, "analytics:daily:"+s.now().UTC().Format("2006-01-02"), limit)
}

func (s *AnalyticsService) leaderboard(ctx context.Context, key string, limit int) ([]domain.LeaderboardEntry, error) {
	entries := []domain.LeaderboardEntry{}
	if limit <= 0 {
		return entries, nil
	}

	results, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard %s: %w", key, err)
	}
	for _, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{DoctorID: member, Score: z.Score})
	}
	return entries, nil
}

// intField and floatField treat a missing hash field as 0.
func intField(fields map[string]string, name string) (int64, error) {
	raw, ok := fields[name]
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Join(fmt.Errorf("field %s is not an integer", name), err)
	}
	return v, nil
}

func floatField(fields map[string]string, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Join(fmt.Errorf("field %s is not a number", name), err)
	}
	return v, nil
}
