package mocks

import (
	"context"

	"medibook/analytics-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// AnalyticsInterface is a mock type for the AnalyticsInterface type
type AnalyticsInterface struct {
	mock.Mock
}

// DoctorRating provides a mock function with given fields: ctx, doctorID
func (_m *AnalyticsInterface) DoctorRating(ctx context.Context, doctorID string) (*domain.DoctorRating, error) {
	ret := _m.Called(ctx, doctorID)

	var r0 *domain.DoctorRating
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DoctorRating)
	}
	return r0, ret.Error(1)
}

// TopRated provides a mock function with given fields: ctx, limit
func (_m *AnalyticsInterface) TopRated(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	ret := _m.Called(ctx, limit)

	var r0 []domain.LeaderboardEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.LeaderboardEntry)
	}
	return r0, ret.Error(1)
}

// TopToday provides a mock function with given fields: ctx, limit
func (_m *AnalyticsInterface) TopToday(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	ret := _m.Called(ctx, limit)

	var r0 []domain.LeaderboardEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.LeaderboardEntry)
	}
	return r0, ret.Error(1)
}

// NewAnalyticsInterface creates a new instance of AnalyticsInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewAnalyticsInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *AnalyticsInterface {
	m := &AnalyticsInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
