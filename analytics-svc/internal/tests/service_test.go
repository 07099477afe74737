package tests

import (
	"context"
	"testing"
	"time"

	"medibook/analytics-svc/internal/domain"
	"medibook/analytics-svc/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*service.AnalyticsService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	today := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	svc := service.NewAnalyticsService(rdb).WithClock(func() time.Time { return today })
	return svc, mr
}

func TestAnalyticsService_DoctorRating(t *testing.T) {
	ctx := context.Background()
	svc, mr := setupService(t)

	mr.HSet("doctor:d1:rating",
		"review_count", "3",
		"rating_sum", "14",
		"r4", "1",
		"r5", "2",
		"avg_rating", "4.7",
		"last_updated", "1788000000",
	)
	mr.HSet("doctor:d2:rating", "review_count", "0")

	rating, err := svc.DoctorRating(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 4.7, rating.AverageRating)
	assert.Equal(t, int64(3), rating.TotalReviews)
	assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 0, 4: 1, 5: 2}, rating.RatingDistribution)
	assert.Equal(t, time.Unix(1788000000, 0).UTC(), rating.LastUpdated)

	_, err = svc.DoctorRating(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRatingNotFound)

	_, err = svc.DoctorRating(ctx, "d2")
	assert.ErrorIs(t, err, domain.ErrRatingNotFound)
}

func TestAnalyticsService_DoctorRating_CorruptFields(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		value      string
		errMessage string
	}{
		{name: "count", field: "review_count", value: "three", errMessage: "review_count"},
		{name: "average", field: "avg_rating", value: "high", errMessage: "avg_rating"},
		{name: "bucket", field: "r5", value: "2.5", errMessage: "r5"},
		{name: "timestamp", field: "last_updated", value: "yesterday", errMessage: "last_updated"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, mr := setupService(t)
			mr.HSet("doctor:d1:rating",
				"review_count", "2",
				"r5", "2",
				"avg_rating", "5.0",
				"last_updated", "1788000000",
			)
			mr.HSet("doctor:d1:rating", testCase.field, testCase.value)

			rating, err := svc.DoctorRating(context.Background(), "d1")
			assert.Nil(t, rating)
			require.Error(t, err)
			assert.NotErrorIs(t, err, domain.ErrRatingNotFound)
			assert.ErrorContains(t, err, testCase.errMessage)
		})
	}
}

func TestAnalyticsService_TopRated(t *testing.T) {
	ctx := context.Background()
	svc, mr := setupService(t)

	_, _ = mr.ZAdd("analytics:top-rated", 4.2, "d1")
	_, _ = mr.ZAdd("analytics:top-rated", 4.9, "d2")
	_, _ = mr.ZAdd("analytics:top-rated", 3.1, "d3")

	entries, err := svc.TopRated(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{{DoctorID: "d2", Score: 4.9}, {DoctorID: "d1", Score: 4.2}}, entries)

	entries, err = svc.TopRated(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAnalyticsService_TopToday(t *testing.T) {
	ctx := context.Background()
	svc, mr := setupService(t)

	_, _ = mr.ZAdd("analytics:daily:2026-09-01", 3, "d1")
	_, _ = mr.ZAdd("analytics:daily:2026-08-31", 9, "d2")

	entries, err := svc.TopToday(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{{DoctorID: "d1", Score: 3}}, entries)
}

func TestAnalyticsService_EmptyLeaderboard(t *testing.T) {
	svc, _ := setupService(t)

	entries, err := svc.TopToday(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
