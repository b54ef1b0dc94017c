//go:build integration

package integration

import (
	"errors"

	"github.com/bnema/dockcmd/internal/domain"
	"github.com/bnema/dockcmd/tests/integration/helpers"
)

func (s *EngineTestSuite) TestNetworkLifecycle() {
	name := helpers.UniqueName("dockcmd-net")
	s.networks = append(s.networks, name)

	created := s.execute("network create --subnet 10.231.7.0/24 --gateway 10.231.7.1 --internal " + name)
	s.Require().Len(created.IDs, 1)
	s.NotEmpty(created.IDs[0])

	inspected := s.execute("network inspect -f '{{.Name}} {{.Internal}}' " + name)
	s.Equal([]any{name + " true"}, inspected.Payload)

	listed := s.execute("network ls -q -f name=" + name)
	s.Contains(listed.IDs, created.IDs[0])
	s.Nil(listed.Payload)

	removed := s.execute("network rm " + name)
	s.Equal([]string{name}, removed.IDs)

	// Removing again is a not-found failure unless forced.
	_, err := s.exec.Execute(s.ctx, "network rm "+name)
	s.Require().ErrorIs(err, domain.ErrNotFound)
	s.Empty(s.execute("network rm -f " + name).IDs)
}

func (s *EngineTestSuite) TestContainerLifecycle() {
	name := helpers.UniqueName("dockcmd-run")
	s.containers = append(s.containers, name)

	s.execute("pull -q " + helpers.TestImage)

	run := s.execute("run --name " + name + " -e MODE=test " + helpers.TestImage + " sleep 300")
	s.Require().Len(run.IDs, 1)

	ps := s.execute("ps -q -f name=" + name)
	s.Require().Len(ps.IDs, 1)
	s.Equal(run.IDs[0], ps.IDs[0])

	inspected := s.execute("inspect --type container -f '{{.Config.Image}}' " + name)
	s.Equal([]any{helpers.TestImage}, inspected.Payload)

	s.Equal([]string{name}, s.execute("stop -t 1 "+name).IDs)
	s.Equal([]string{name}, s.execute("start "+name).IDs)
	s.Equal([]string{name}, s.execute("rm -f -v "+name).IDs)

	_, err := s.exec.Execute(s.ctx, "inspect "+name)
	s.Require().Error(err)
	s.True(errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func (s *EngineTestSuite) TestInspectFallsBackToImage() {
	s.execute("pull -q " + helpers.TestImage)

	result := s.execute("inspect -f '{{index .RepoTags 0}}' " + helpers.TestImage)
	s.Equal([]any{helpers.TestImage}, result.Payload)
}

func (s *EngineTestSuite) TestAnalysisErrorNeverReachesEngine() {
	_, err := s.exec.Execute(s.ctx, "run --ip 10.0.0.5 "+helpers.TestImage)
	s.Require().ErrorIs(err, domain.ErrNetworkRequiredForIP)
	s.False(errors.Is(err, domain.ErrEngineFailure))
}
