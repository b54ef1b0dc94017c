// Package mocks provides testify mocks of the output ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/dockcmd/internal/domain"
)

// MockContainerRuntime is a mock implementation of out.ContainerRuntime.
type MockContainerRuntime struct {
	mock.Mock
}

// NewMockContainerRuntime creates a mock whose expectations are asserted when
// the test ends.
func NewMockContainerRuntime(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockContainerRuntime {
	m := &MockContainerRuntime{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Container lifecycle
func (m *MockContainerRuntime) RunContainer(ctx context.Context, opts domain.ContainerOptions) (string, error) {
	args := m.Called(ctx, opts)
	return args.String(0), args.Error(1)
}

func (m *MockContainerRuntime) StartContainer(ctx context.Context, containerID string) error {
	return m.Called(ctx, containerID).Error(0)
}

func (m *MockContainerRuntime) StopContainer(ctx context.Context, containerID string, timeout *int) error {
	return m.Called(ctx, containerID, timeout).Error(0)
}

func (m *MockContainerRuntime) RemoveContainer(ctx context.Context, containerID string, force, volumes bool) error {
	return m.Called(ctx, containerID, force, volumes).Error(0)
}

// Inspection
func (m *MockContainerRuntime) ListContainers(ctx context.Context, opts domain.ListOptions) ([]*domain.Container, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Container), args.Error(1)
}

func (m *MockContainerRuntime) InspectContainer(ctx context.Context, containerID string) (any, error) {
	args := m.Called(ctx, containerID)
	return args.Get(0), args.Error(1)
}

func (m *MockContainerRuntime) InspectImage(ctx context.Context, imageRef string) (any, error) {
	args := m.Called(ctx, imageRef)
	return args.Get(0), args.Error(1)
}

func (m *MockContainerRuntime) InspectNetwork(ctx context.Context, name string) (any, error) {
	args := m.Called(ctx, name)
	return args.Get(0), args.Error(1)
}

// Image operations
func (m *MockContainerRuntime) PullImage(ctx context.Context, imageRef, platform string) error {
	return m.Called(ctx, imageRef, platform).Error(0)
}

func (m *MockContainerRuntime) ListImages(ctx context.Context, opts domain.ListOptions) ([]*domain.Image, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Image), args.Error(1)
}

// Network operations
func (m *MockContainerRuntime) CreateNetwork(ctx context.Context, opts domain.NetworkCreateOptions) (string, error) {
	args := m.Called(ctx, opts)
	return args.String(0), args.Error(1)
}

func (m *MockContainerRuntime) RemoveNetwork(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockContainerRuntime) ListNetworks(ctx context.Context, opts domain.ListOptions) ([]*domain.NetworkInfo, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.NetworkInfo), args.Error(1)
}

// Health
func (m *MockContainerRuntime) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockContainerRuntime) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
