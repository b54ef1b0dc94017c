//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bnema/dockcmd/internal/adapters/out/docker"
	"github.com/bnema/dockcmd/internal/domain"
	"github.com/bnema/dockcmd/internal/logging"
	"github.com/bnema/dockcmd/internal/usecase/analyzer"
	"github.com/bnema/dockcmd/internal/usecase/executor"
	"github.com/bnema/dockcmd/tests/integration/helpers"
)

const maxTestDuration = 5 * time.Minute

// EngineTestSuite drives the executor with the docker runtime.
type EngineTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc

	runtime *docker.Runtime
	exec    *executor.Service

	containers []string
	networks   []string
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), maxTestDuration)
	s.ctx = logging.WithCtx(ctx, logging.Nop())
	s.cancel = cancel

	if err := helpers.PingEngine(s.ctx); err != nil {
		s.T().Skipf("skipping engine tests: %v", err)
	}

	runtime, err := docker.NewRuntime("")
	s.Require().NoError(err)
	s.runtime = runtime
	s.exec = executor.NewService(analyzer.NewService(analyzer.New()), runtime)
}

func (s *EngineTestSuite) TearDownSuite() {
	if s.runtime != nil {
		ctx := context.Background()
		for _, name := range s.containers {
			_ = s.runtime.RemoveContainer(ctx, name, true, true)
		}
		for _, name := range s.networks {
			_ = s.runtime.RemoveNetwork(ctx, name)
		}
		_ = s.runtime.Close()
	}
	if s.cancel != nil {
		s.cancel()
	}
}

// execute runs raw and fails the test on any error.
func (s *EngineTestSuite) execute(raw string) *domain.DispatchResult {
	s.T().Helper()
	result, err := s.exec.Execute(s.ctx, raw)
	s.Require().NoError(err, raw)
	return result
}
