package mocks

import (
	"context"

	"medibook/review-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// ReviewRepository is a mock type for the ReviewRepository type
type ReviewRepository struct {
	mock.Mock
}

// Insert provides a mock function with given fields: ctx, review
func (_m *ReviewRepository) Insert(ctx context.Context, review domain.Review) error {
	ret := _m.Called(ctx, review)
	return ret.Error(0)
}

// Update provides a mock function with given fields: ctx, id, apply
func (_m *ReviewRepository) Update(ctx context.Context, id string, apply func(*domain.Review) error) (domain.Review, error) {
	ret := _m.Called(ctx, id, apply)

	var r0 domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Review)
	}
	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id, check
func (_m *ReviewRepository) Delete(ctx context.Context, id string, check func(domain.Review) error) (domain.Review, error) {
	ret := _m.Called(ctx, id, check)

	var r0 domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Review)
	}
	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, filter
func (_m *ReviewRepository) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	ret := _m.Called(ctx, filter)

	var r0 []domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Review)
	}
	return r0, ret.Error(1)
}

// NewReviewRepository creates a new instance of ReviewRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewReviewRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewRepository {
	m := &ReviewRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
