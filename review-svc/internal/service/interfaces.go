package service

import (
	"context"

	"medibook/review-svc/internal/domain"
	"medibook/review-svc/internal/storage"
)

type ReviewServiceInterface interface {
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
	Create(ctx context.Context, input *domain.CreateReviewInput) (*domain.Review, error)
	Update(ctx context.Context, input *domain.UpdateReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

type StatsServiceInterface interface {
	ComputeStats(ctx context.Context, doctorID string) (*domain.DoctorStats, error)
}

// ReviewRepository stores reviews. Update and Delete run check under the
// repository lock so that it observes the record it is about to change.
type ReviewRepository interface {
	Insert(ctx context.Context, review domain.Review) error
	Update(ctx context.Context, id string, apply func(*domain.Review) error) (domain.Review, error)
	Delete(ctx context.Context, id string, check func(domain.Review) error) (domain.Review, error)
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
}

type ReviewPublisher interface {
	PublishReviewEvent(ctx context.Context, event domain.ReviewEvent) error
}

// ReviewLister is what the stats aggregator reads from.
type ReviewLister interface {
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
}

type QRGenerator interface {
	Generate(appointmentID string) ([]byte, error)
}

var (
	_ ReviewServiceInterface = (*ReviewService)(nil)
	_ StatsServiceInterface  = (*StatsService)(nil)
	_ ReviewLister           = (*ReviewService)(nil)
	_ QRGenerator            = DefaultQRGenerator{}

	_ ReviewRepository = (*storage.MemoryRepository)(nil)
	_ ReviewPublisher  = (*storage.KafkaPublisher)(nil)
	_ ReviewLister     = (*storage.ReviewAPIClient)(nil)
)
