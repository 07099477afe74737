package mocks

import (
	"context"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

// MessageWriter is a mock type for the MessageWriter type
type MessageWriter struct {
	mock.Mock
}

// WriteMessages provides a mock function with given fields: ctx, msgs
func (_m *MessageWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	ret := _m.Called(ctx, msgs)
	return ret.Error(0)
}

// NewMessageWriter creates a new instance of MessageWriter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMessageWriter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MessageWriter {
	m := &MessageWriter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
