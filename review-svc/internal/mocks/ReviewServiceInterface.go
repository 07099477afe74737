package mocks

import (
	"context"

	"medibook/review-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// ReviewServiceInterface is a mock type for the ReviewServiceInterface type
type ReviewServiceInterface struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, filter
func (_m *ReviewServiceInterface) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	ret := _m.Called(ctx, filter)

	if rf, ok := ret.Get(0).(func(context.Context, domain.ReviewFilter) ([]domain.Review, error)); ok {
		return rf(ctx, filter)
	}

	var r0 []domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Review)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, input
func (_m *ReviewServiceInterface) Create(ctx context.Context, input *domain.CreateReviewInput) (*domain.Review, error) {
	ret := _m.Called(ctx, input)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.CreateReviewInput) (*domain.Review, error)); ok {
		return rf(ctx, input)
	}

	var r0 *domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Review)
	}
	return r0, ret.Error(1)
}

// Update provides a mock function with given fields: ctx, input
func (_m *ReviewServiceInterface) Update(ctx context.Context, input *domain.UpdateReviewInput) (*domain.Review, error) {
	ret := _m.Called(ctx, input)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.UpdateReviewInput) (*domain.Review, error)); ok {
		return rf(ctx, input)
	}

	var r0 *domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Review)
	}
	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, reviewID
func (_m *ReviewServiceInterface) Delete(ctx context.Context, reviewID string) error {
	ret := _m.Called(ctx, reviewID)
	return ret.Error(0)
}

// NewReviewServiceInterface creates a new instance of ReviewServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewReviewServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewServiceInterface {
	m := &ReviewServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
