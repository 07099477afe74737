package mocks

import (
	"context"

	"medibook/review-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// StatsServiceInterface is a mock type for the StatsServiceInterface type
type StatsServiceInterface struct {
	mock.Mock
}

// ComputeStats provides a mock function with given fields: ctx, doctorID
func (_m *StatsServiceInterface) ComputeStats(ctx context.Context, doctorID string) (*domain.DoctorStats, error) {
	ret := _m.Called(ctx, doctorID)

	var r0 *domain.DoctorStats
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DoctorStats)
	}
	return r0, ret.Error(1)
}

// NewStatsServiceInterface creates a new instance of StatsServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewStatsServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StatsServiceInterface {
	m := &StatsServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
