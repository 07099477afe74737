package mocks

import (
	"context"

	"medibook/agg-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// StoreInterface is a mock type for the StoreInterface type
type StoreInterface struct {
	mock.Mock
}

// MarkProcessed provides a mock function with given fields: ctx, eventID
func (_m *StoreInterface) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	ret := _m.Called(ctx, eventID)
	return ret.Bool(0), ret.Error(1)
}

// ReleaseProcessed provides a mock function with given fields: ctx, eventID
func (_m *StoreInterface) ReleaseProcessed(ctx context.Context, eventID string) error {
	ret := _m.Called(ctx, eventID)
	return ret.Error(0)
}

// UpdateDoctorRating provides a mock function with given fields: ctx, change
func (_m *StoreInterface) UpdateDoctorRating(ctx context.Context, change domain.RatingChange) (domain.DoctorRating, error) {
	ret := _m.Called(ctx, change)

	var r0 domain.DoctorRating
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.DoctorRating)
	}
	return r0, ret.Error(1)
}

// UpdateAnalytics provides a mock function with given fields: ctx, rating, newReview
func (_m *StoreInterface) UpdateAnalytics(ctx context.Context, rating domain.DoctorRating, newReview bool) error {
	ret := _m.Called(ctx, rating, newReview)
	return ret.Error(0)
}

// NewStoreInterface creates a new instance of StoreInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
