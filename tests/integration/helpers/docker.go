// Package helpers provides Docker-related test utilities.
package helpers

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/client"
	"github.com/google/uuid"
)

// TestImage is small and ships a sleep binary.
const TestImage = "alpine:3.20"

// PingEngine checks that the engine from the environment (DOCKER_HOST or
// the default socket) answers.
func PingEngine(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("failed to create docker client: %w", err)
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := cli.Ping(ctx); err != nil {
		return fmt.Errorf("docker engine not reachable: %w", err)
	}
	return nil
}

// UniqueName returns prefix with a short random suffix so parallel runs do
// not collide on engine object names.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}
