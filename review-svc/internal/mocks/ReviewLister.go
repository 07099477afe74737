package mocks

import (
	"context"

	"medibook/review-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// ReviewLister is a mock type for the ReviewLister type
type ReviewLister struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, filter
func (_m *ReviewLister) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	ret := _m.Called(ctx, filter)

	var r0 []domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Review)
	}
	return r0, ret.Error(1)
}

// NewReviewLister creates a new instance of ReviewLister. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewReviewLister(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewLister {
	m := &ReviewLister{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
