package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook/agg-svc/internal/domain"
	"medibook/agg-svc/internal/service"
	"medibook/agg-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/caarlos0/env/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProjection_EventSequence replays a created/updated/deleted sequence
// against miniredis, including a redelivered event.
func TestProjection_EventSequence(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	consumer := service.NewConsumer(nil, storage.NewStore(rdb, time.Hour), slog.New(slog.NewTextHandler(io.Discard, nil)))
	at := time.Date(2026, 8, 2, 15, 0, 0, 0, time.UTC)

	events := []domain.ReviewEvent{
		{ID: "e1", Type: domain.EventReviewCreated, DoctorID: "d1", ReviewID: "r1", Rating: 5, Timestamp: at},
		{ID: "e2", Type: domain.EventReviewCreated, DoctorID: "d1", ReviewID: "r2", Rating: 4, Timestamp: at},
		{ID: "e2", Type: domain.EventReviewCreated, DoctorID: "d1", ReviewID: "r2", Rating: 4, Timestamp: at},
		{ID: "e3", Type: domain.EventReviewUpdated, DoctorID: "d1", ReviewID: "r2", Rating: 2, PreviousRating: 4, Timestamp: at},
		{ID: "e4", Type: domain.EventReviewCreated, DoctorID: "d2", ReviewID: "r3", Rating: 3, Timestamp: at},
		{ID: "e5", Type: domain.EventReviewDeleted, DoctorID: "d2", ReviewID: "r3", Rating: 3, Timestamp: at},
	}
	for _, event := range events {
		require.NoError(t, consumer.ProcessEvent(ctx, event))
	}

	key := storage.DoctorRatingKey("d1")
	assert.Equal(t, "2", mr.HGet(key, "review_count"))
	assert.Equal(t, "7", mr.HGet(key, "rating_sum"))
	assert.Equal(t, "3.5", mr.HGet(key, "avg_rating"))
	assert.Equal(t, "0", mr.HGet(key, "r4"))
	assert.False(t, mr.Exists(storage.DoctorRatingKey("d2")))

	members, err := rdb.ZRange(ctx, storage.TopRatedKey, 0, -1).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, members)

	daily, err := rdb.ZRevRangeWithScores(ctx, storage.DailyKey(at), 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "d1", daily[0].Member)
	assert.Equal(t, 2.0, daily[0].Score)

	payload, err := json.Marshal(events[0])
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"doctor_id":"d1"`)
}

func TestMetricsServer(t *testing.T) {
	srv := newMetricsServer("0")

	recorder := httptest.NewRecorder()
	srv.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "agg-svc")

	recorder = httptest.NewRecorder()
	srv.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, "reviews", cfg.ReviewTopic)
	assert.Equal(t, "agg-svc-consumer", cfg.ConsumerGroup)
	assert.Equal(t, 168*time.Hour, cfg.EventMarkerTTL)
}
