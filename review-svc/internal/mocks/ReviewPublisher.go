package mocks

import (
	"context"

	"medibook/review-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// ReviewPublisher is a mock type for the ReviewPublisher type
type ReviewPublisher struct {
	mock.Mock
}

// PublishReviewEvent provides a mock function with given fields: ctx, event
func (_m *ReviewPublisher) PublishReviewEvent(ctx context.Context, event domain.ReviewEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// NewReviewPublisher creates a new instance of ReviewPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewReviewPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewPublisher {
	m := &ReviewPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
