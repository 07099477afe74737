package mocks

import (
	"context"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

// MessageReader is a mock type for the MessageReader type
type MessageReader struct {
	mock.Mock
}

// ReadMessage provides a mock function with given fields: ctx
func (_m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) (kafka.Message, error)); ok {
		return rf(ctx)
	}

	var r0 kafka.Message
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(kafka.Message)
	}
	return r0, ret.Error(1)
}

// NewMessageReader creates a new instance of MessageReader. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMessageReader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MessageReader {
	m := &MessageReader{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
