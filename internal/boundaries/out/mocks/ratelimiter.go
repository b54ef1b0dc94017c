package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRateLimiter is a mock implementation of out.RateLimiter.
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string) bool {
	return m.Called(ctx, key).Bool(0)
}

// NewMockRateLimiter creates a MockRateLimiter whose expectations are
// asserted when the test ends.
func NewMockRateLimiter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRateLimiter {
	m := &MockRateLimiter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
