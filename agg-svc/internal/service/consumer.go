package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"medibook/agg-svc/internal/domain"
)

const readRetryDelay = time.Second

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Logger *slog.Logger
}

func NewConsumer(reader MessageReader, store StoreInterface, logger *slog.Logger) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		Logger: logger,
	}
}

// Start reads until ctx is cancelled. Malformed or unsupported messages are
// logged and skipped.
func (c *Consumer) Start(ctx context.Context) error {
	c.Logger.InfoContext(ctx, "starting aggregation consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Logger.Info("aggregation consumer stopped")
				return nil
			}
			c.Logger.ErrorContext(ctx, "error reading message", slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(readRetryDelay):
			}
			continue
		}

		var event domain.ReviewEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			eventsProcessed.WithLabelValues("unknown", "malformed").Inc()
			c.Logger.WarnContext(ctx, "error unmarshaling message",
				slog.Int64("offset", message.Offset),
				slog.String("error", err.Error()),
			)
			continue
		}

		if err := c.ProcessEvent(ctx, event); err != nil {
			c.Logger.ErrorContext(ctx, "error processing review event",
				slog.String("event_id", event.ID),
				slog.String("event_type", event.Type),
				slog.String("error", err.Error()),
			)
		}
	}
}

// ProcessEvent applies one review event to the rating projection. Events
// already applied are ignored.
func (c *Consumer) ProcessEvent(ctx context.Context, event domain.ReviewEvent) error {
	change, err := event.Change()
	if err != nil {
		eventsProcessed.WithLabelValues(event.Type, "skipped").Inc()
		c.Logger.WarnContext(ctx, "skipping review event",
			slog.String("event_id", event.ID),
			slog.String("event_type", event.Type),
		)
		return nil
	}
	if change.At.IsZero() || change.At.Unix() <= 0 {
		change.At = time.Now().UTC()
	}

	if event.ID != "" {
		fresh, err := c.Store.MarkProcessed(ctx, event.ID)
		if err != nil {
			eventsProcessed.WithLabelValues(event.Type, "error").Inc()
			return err
		}
		if !fresh {
			eventsProcessed.WithLabelValues(event.Type, "duplicate").Inc()
			c.Logger.DebugContext(ctx, "duplicate review event", slog.String("event_id", event.ID))
			return nil
		}
	}

	rating, err := c.Store.UpdateDoctorRating(ctx, change)
	if err != nil {
		eventsProcessed.WithLabelValues(event.Type, "error").Inc()
		err = fmt.Errorf("update doctor rating: %w", err)
		// totals were not touched, so a redelivery may apply the event
		if event.ID != "" {
			if releaseErr := c.Store.ReleaseProcessed(ctx, event.ID); releaseErr != nil {
				err = errors.Join(err, releaseErr)
			}
		}
		return err
	}
	if err := c.Store.UpdateAnalytics(ctx, rating, event.Type == domain.EventReviewCreated); err != nil {
		eventsProcessed.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("update analytics: %w", err)
	}

	eventsProcessed.WithLabelValues(event.Type, "applied").Inc()
	c.Logger.InfoContext(ctx, "processed review event",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.Type),
		slog.String("doctor_id", event.DoctorID),
	)
	return nil
}
