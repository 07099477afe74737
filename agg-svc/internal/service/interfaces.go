package service

import (
	"context"

	"medibook/agg-svc/internal/domain"
	"medibook/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
	ReleaseProcessed(ctx context.Context, eventID string) error
	UpdateDoctorRating(ctx context.Context, change domain.RatingChange) (domain.DoctorRating, error)
	UpdateAnalytics(ctx context.Context, rating domain.DoctorRating, newReview bool) error
}

// MessageReader is the subset of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

var (
	_ StoreInterface = (*storage.Store)(nil)
	_ MessageReader  = (*kafka.Reader)(nil)
)
