package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"medibook/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	TopRatedKey    = "analytics:top-rated"
	dailyKeyTTL    = 7 * 24 * time.Hour
	eventMarkerFmt = "review-event:%s"
)

func DoctorRatingKey(doctorID string) string {
	return fmt.Sprintf("doctor:%s:rating", doctorID)
}

func DailyKey(day time.Time) string {
	return "analytics:daily:" + day.UTC().Format("2006-01-02")
}

type Store struct {
	rdb       redis.Cmdable
	markerTTL time.Duration
}

func NewStore(rdb redis.Cmdable, markerTTL time.Duration) *Store {
	return &Store{rdb: rdb, markerTTL: markerTTL}
}

// MarkProcessed records eventID and reports whether it was seen for the
// first time.
func (s *Store) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, fmt.Sprintf(eventMarkerFmt, eventID), 1, s.markerTTL).Result()
	if err != nil {
		return false, fmt.Errorf("mark event %s: %w", eventID, err)
	}
	return ok, nil
}

// ReleaseProcessed forgets eventID so a redelivery is applied again.
func (s *Store) ReleaseProcessed(ctx context.Context, eventID string) error {
	if err := s.rdb.Del(ctx, fmt.Sprintf(eventMarkerFmt, eventID)).Err(); err != nil {
		return fmt.Errorf("release event %s: %w", eventID, err)
	}
	return nil
}

func (s *Store) UpdateDoctorRating(ctx context.Context, change domain.RatingChange) (domain.DoctorRating, error) {
	key := DoctorRatingKey(change.DoctorID)

	countDelta := int64(0)
	switch {
	case change.Added > 0 && change.Removed == 0:
		countDelta = 1
	case change.Removed > 0 && change.Added == 0:
		countDelta = -1
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, "review_count", countDelta)
		pipe.HIncrBy(ctx, key, "rating_sum", int64(change.Added-change.Removed))
		if change.Added > 0 {
			pipe.HIncrBy(ctx, key, starField(change.Added), 1)
		}
		if change.Removed > 0 {
			pipe.HIncrBy(ctx, key, starField(change.Removed), -1)
		}
		pipe.HSet(ctx, key, "last_updated", change.At.Unix())
		return nil
	})
	if err != nil {
		return domain.DoctorRating{}, fmt.Errorf("update rating totals for doctor %s: %w", change.DoctorID, err)
	}

	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return domain.DoctorRating{}, fmt.Errorf("read rating totals for doctor %s: %w", change.DoctorID, err)
	}
	rating, err := parseDoctorRating(change.DoctorID, fields)
	if err != nil {
		return domain.DoctorRating{}, err
	}

	if rating.ReviewCount <= 0 {
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			return domain.DoctorRating{}, fmt.Errorf("drop rating for doctor %s: %w", change.DoctorID, err)
		}
		rating.ReviewCount = 0
		rating.AvgRating = 0
		return rating, nil
	}

	rating.AvgRating = math.Floor(float64(rating.RatingSum)/float64(rating.ReviewCount)*10+0.5) / 10
	if err := s.rdb.HSet(ctx, key, "avg_rating", strconv.FormatFloat(rating.AvgRating, 'f', 1, 64)).Err(); err != nil {
		return domain.DoctorRating{}, fmt.Errorf("store average for doctor %s: %w", change.DoctorID, err)
	}
	return rating, nil
}

// UpdateAnalytics refreshes the leaderboards. newReview counts the review
// towards the daily board of rating.LastUpdated.
func (s *Store) UpdateAnalytics(ctx context.Context, rating domain.DoctorRating, newReview bool) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if rating.ReviewCount > 0 {
			pipe.ZAdd(ctx, TopRatedKey, redis.Z{Score: rating.AvgRating, Member: rating.DoctorID})
		} else {
			pipe.ZRem(ctx, TopRatedKey, rating.DoctorID)
		}
		if newReview {
			dailyKey := DailyKey(rating.LastUpdated)
			pipe.ZIncrBy(ctx, dailyKey, 1, rating.DoctorID)
			pipe.Expire(ctx, dailyKey, dailyKeyTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update analytics for doctor %s: %w", rating.DoctorID, err)
	}
	return nil
}

func starField(stars int) string {
	return "r" + strconv.Itoa(stars)
}

func parseDoctorRating(doctorID string, fields map[string]string) (domain.DoctorRating, error) {
	rating := domain.DoctorRating{
		DoctorID:     doctorID,
		Distribution: make(map[int]int64, 5),
	}

	var err error
	if rating.ReviewCount, err = intField(fields, "review_count"); err != nil {
		return rating, err
	}
	if rating.RatingSum, err = intField(fields, "rating_sum"); err != nil {
		return rating, err
	}
	for stars := 1; stars <= 5; stars++ {
		if rating.Distribution[stars], err = intField(fields, starField(stars)); err != nil {
			return rating, err
		}
	}
	updated, err := intField(fields, "last_updated")
	if err != nil {
		return rating, err
	}
	rating.LastUpdated = time.Unix(updated, 0).UTC()
	return rating, nil
}

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
