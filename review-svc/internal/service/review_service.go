package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"medibook/review-svc/internal/domain"
)

// publishTimeout bounds an event write once it is detached from the request.
const publishTimeout = 5 * time.Second

type ReviewService struct {
	repository ReviewRepository
	publisher  ReviewPublisher
	logger     *slog.Logger
	now        func() time.Time
}

type ReviewServiceOption func(*ReviewService)

// WithClock replaces time.Now as the service's source of the current time.
func WithClock(now func() time.Time) ReviewServiceOption {
	return func(s *ReviewService) {
		s.now = now
	}
}

// NewReviewService wires the review rules over repository. publisher may be
// nil, in which case no events are emitted.
func NewReviewService(repository ReviewRepository, publisher ReviewPublisher, logger *slog.Logger, opts ...ReviewServiceOption) *ReviewService {
	s := &ReviewService{
		repository: repository,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReviewService) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	reviews, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	now := s.now()
	for i := range reviews {
		reviews[i] = reviews[i].WithCanEdit(now)
	}
	return reviews, nil
}

func (s *ReviewService) Create(ctx context.Context, input *domain.CreateReviewInput) (*domain.Review, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	appointmentDate := now
	if !input.AppointmentDate.Time.IsZero() {
		appointmentDate = input.AppointmentDate.Time.UTC()
	}

	review := domain.Review{
		ID:              uuid.NewString(),
		AppointmentID:   input.AppointmentID,
		PatientID:       input.PatientID,
		DoctorID:        input.DoctorID,
		PatientName:     input.PatientName,
		DoctorName:      input.DoctorName,
		Rating:          int(input.Rating),
		ReviewText:      input.ReviewText,
		CreatedAt:       now,
		UpdatedAt:       now,
		AppointmentDate: appointmentDate,
	}

	if err := s.repository.Insert(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	review.CanEdit = true

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("appointment_id", review.AppointmentID),
		slog.String("doctor_id", review.DoctorID),
		slog.Int("rating", review.Rating),
	)
	s.publish(ctx, s.newEvent(domain.EventReviewCreated, review, 0))

	return &review, nil
}

func (s *ReviewService) Update(ctx context.Context, input *domain.UpdateReviewInput) (*domain.Review, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var previousRating int
	updated, err := s.repository.Update(ctx, input.ReviewID, func(review *domain.Review) error {
		if !domain.CanEdit(review.CreatedAt, now) {
			return domain.ErrEditWindowExpired
		}
		previousRating = review.Rating
		if input.Rating != 0 {
			review.Rating = int(input.Rating)
		}
		if input.ReviewText != "" {
			review.ReviewText = input.ReviewText
		}
		review.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update review %s: %w", input.ReviewID, err)
	}
	updated = updated.WithCanEdit(s.now())

	s.logger.InfoContext(ctx, "review updated",
		slog.String("review_id", updated.ID),
		slog.Int("rating", updated.Rating),
		slog.Int("previous_rating", previousRating),
	)
	s.publish(ctx, s.newEvent(domain.EventReviewUpdated, updated, previousRating))

	return &updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, reviewID string) error {
	if reviewID == "" {
		return domain.NewValidationError("reviewId", "is required")
	}

	now := s.now().UTC()
	deleted, err := s.repository.Delete(ctx, reviewID, func(review domain.Review) error {
		if !domain.CanEdit(review.CreatedAt, now) {
			return domain.ErrEditWindowExpired
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete review %s: %w", reviewID, err)
	}

	s.logger.InfoContext(ctx, "review deleted",
		slog.String("review_id", deleted.ID),
		slog.String("appointment_id", deleted.AppointmentID),
	)
	s.publish(ctx, s.newEvent(domain.EventReviewDeleted, deleted, 0))

	return nil
}

// Import loads existing reviews as they are, stopping at the first conflict.
// With publishEvents set, each imported review is announced as created under
// a deterministic event id so consumers can drop repeats from a restart.
func (s *ReviewService) Import(ctx context.Context, reviews []domain.Review, publishEvents bool) (int, error) {
	for i, review := range reviews {
		if err := s.repository.Insert(ctx, review); err != nil {
			return i, fmt.Errorf("import review %s: %w", review.ID, err)
		}
		if !publishEvents {
			continue
		}
		event := s.newEvent(domain.EventReviewCreated, review, 0)
		event.ID = "seed-" + review.ID
		event.Timestamp = review.CreatedAt.UTC()
		s.publish(ctx, event)
	}
	return len(reviews), nil
}

func (s *ReviewService) newEvent(eventType string, review domain.Review, previousRating int) domain.ReviewEvent {
	return domain.ReviewEvent{
		ID:             uuid.NewString(),
		Type:           eventType,
		ReviewID:       review.ID,
		AppointmentID:  review.AppointmentID,
		DoctorID:       review.DoctorID,
		PatientID:      review.PatientID,
		Rating:         review.Rating,
		PreviousRating: previousRating,
		Timestamp:      s.now().UTC(),
	}
}

func (s *ReviewService) publish(ctx context.Context, event domain.ReviewEvent) {
	if s.publisher == nil {
		return
	}

	// The mutation is already stored; a client hanging up must not drop the event.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishReviewEvent(publishCtx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish review event",
			slog.String("event_type", event.Type),
			slog.String("review_id", event.ReviewID),
			slog.String("error", err.Error()),
		)
	}
}
