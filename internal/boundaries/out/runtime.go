// Package out defines output ports (interfaces) for infrastructure.
// These interfaces define the contract between use cases and driven adapters
// (Docker, rate limiting, etc.).
package out

import (
	"context"

	"github.com/bnema/dockcmd/internal/domain"
)

// ContainerRuntime defines the contract for container engine operations.
// Implementations report missing objects with domain.ErrNotFound.
type ContainerRuntime interface {
	// Container lifecycle
	RunContainer(ctx context.Context, opts domain.ContainerOptions) (string, error)
	StartContainer(ctx context.Context, containerID string) error
	StopContainer(ctx context.Context, containerID string, timeout *int) error
	RemoveContainer(ctx context.Context, containerID string, force, volumes bool) error

	// Inspection
	ListContainers(ctx context.Context, opts domain.ListOptions) ([]*domain.Container, error)
	InspectContainer(ctx context.Context, containerID string) (any, error)
	InspectImage(ctx context.Context, imageRef string) (any, error)
	InspectNetwork(ctx context.Context, name string) (any, error)

	// Image operations
	PullImage(ctx context.Context, imageRef, platform string) error
	ListImages(ctx context.Context, opts domain.ListOptions) ([]*domain.Image, error)

	// Network operations
	CreateNetwork(ctx context.Context, opts domain.NetworkCreateOptions) (string, error)
	RemoveNetwork(ctx context.Context, name string) error
	ListNetworks(ctx context.Context, opts domain.ListOptions) ([]*domain.NetworkInfo, error)

	// Health
	Ping(ctx context.Context) error
	Version(ctx context.Context) (string, error)
}
