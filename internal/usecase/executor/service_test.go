package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockcmd/internal/boundaries/out/mocks"
	"github.com/bnema/dockcmd/internal/domain"
	"github.com/bnema/dockcmd/internal/logging"
	"github.com/bnema/dockcmd/internal/usecase/analyzer"
)

func testContext() context.Context {
	return logging.WithCtx(context.Background(), logging.Nop())
}

func newTestService(t *testing.T) (*Service, *mocks.MockContainerRuntime) {
	runtime := mocks.NewMockContainerRuntime(t)
	return NewService(analyzer.NewService(analyzer.New()), runtime), runtime
}

func TestService_Execute_Run(t *testing.T) {
	svc, runtime := newTestService(t)

	runtime.On("RunContainer", mock.Anything, domain.ContainerOptions{
		Name:         "web",
		NetworkName:  "bridge",
		PortForwards: []string{"8080:80"},
		Image:        "nginx:latest",
	}).Return("c0ffee", nil)

	result, err := svc.Execute(testContext(), "run --name web -p 8080:80 nginx:latest")
	require.NoError(t, err)
	assert.Equal(t, domain.PathContainerRun, result.TargetPath)
	assert.Equal(t, []string{"c0ffee"}, result.IDs)
}

func TestService_Execute_AnalysisErrorSkipsRuntime(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Execute(testContext(), "run --ip 10.0.0.5 nginx")
	assert.Nil(t, result)
	require.ErrorIs(t, err, domain.ErrNetworkRequiredForIP)
	assert.False(t, errors.Is(err, domain.ErrEngineFailure))
}

func TestService_Execute_EngineFailure(t *testing.T) {
	svc, runtime := newTestService(t)
	runtime.On("PullImage", mock.Anything, "alpine:3.20", "linux/arm64").Return(errors.New("connection refused"))

	_, err := svc.Execute(testContext(), "pull --platform linux/arm64 alpine:3.20")
	require.ErrorIs(t, err, domain.ErrEngineFailure)
	assert.Contains(t, err.Error(), "pull image alpine:3.20")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestService_Execute_StopsAtFirstFailingTarget(t *testing.T) {
	svc, runtime := newTestService(t)
	timeout := 5
	runtime.On("StopContainer", mock.Anything, "web", &timeout).Return(nil).Once()
	runtime.On("StopContainer", mock.Anything, "db", &timeout).Return(domain.ErrNotFound).Once()

	_, err := svc.Execute(testContext(), "stop -t 5 web db cache")
	require.ErrorIs(t, err, domain.ErrEngineFailure)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	runtime.AssertNotCalled(t, "StopContainer", mock.Anything, "cache", mock.Anything)
}

func TestService_Execute_TargetsInOrder(t *testing.T) {
	svc, runtime := newTestService(t)
	runtime.On("RemoveContainer", mock.Anything, "a", true, false).Return(nil).Once()
	runtime.On("RemoveContainer", mock.Anything, "b", true, false).Return(nil).Once()
	runtime.On("StartContainer", mock.Anything, "c").Return(nil).Once()

	result, err := svc.Execute(testContext(), "rm -f a b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, result.IDs)

	result, err = svc.Execute(testContext(), "start c")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, result.IDs)
}

func TestService_Execute_ListQuietDropsPayload(t *testing.T) {
	svc, runtime := newTestService(t)
	containers := []*domain.Container{{ID: "1", Name: "web"}, {ID: "2", Name: "db"}}
	runtime.On("ListContainers", mock.Anything, domain.ListOptions{All: true, Quiet: true}).Return(containers, nil)
	runtime.On("ListContainers", mock.Anything, domain.ListOptions{}).Return(containers, nil)

	result, err := svc.Execute(testContext(), "ps -a -q")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, result.IDs)
	assert.Nil(t, result.Payload)

	result, err = svc.Execute(testContext(), "ps")
	require.NoError(t, err)
	assert.Equal(t, containers, result.Payload)
}

func TestService_Execute_ImagesAndNetworks(t *testing.T) {
	svc, runtime := newTestService(t)
	runtime.On("ListImages", mock.Anything, domain.ListOptions{Reference: "redis"}).
		Return([]*domain.Image{{ID: "sha256:1", Tags: []string{"redis:7"}}}, nil)
	runtime.On("ListNetworks", mock.Anything, domain.ListOptions{Filters: []string{"driver=bridge"}}).
		Return([]*domain.NetworkInfo{{ID: "n1", Name: "bridge"}}, nil)

	result, err := svc.Execute(testContext(), "images redis")
	require.NoError(t, err)
	assert.Equal(t, []string{"sha256:1"}, result.IDs)

	result, err = svc.Execute(testContext(), "network ls -f driver=bridge")
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, result.IDs)
	assert.Equal(t, domain.PathNetworkList, result.TargetPath)
}

func TestService_Execute_CreateNetworkPassesDefaults(t *testing.T) {
	svc, runtime := newTestService(t)
	runtime.On("CreateNetwork", mock.Anything, mock.MatchedBy(func(o domain.NetworkCreateOptions) bool {
		return o.Name == "backend" &&
			o.Driver == "bridge" &&
			o.Subnet == "172.17.0.0/16" &&
			o.Gateway == "172.17.0.1" &&
			o.Options[domain.OptionMTU] == "1500"
	})).Return("net-1", nil)

	result, err := svc.Execute(testContext(), "network create backend")
	require.NoError(t, err)
	assert.Equal(t, []string{"net-1"}, result.IDs)
}

func TestService_Execute_NetworkRemoveForceIgnoresMissing(t *testing.T) {
	svc, runtime := newTestService(t)
	runtime.On("RemoveNetwork", mock.Anything, "gone").Return(domain.ErrNotFound)
	runtime.On("RemoveNetwork", mock.Anything, "live").Return(nil)

	result, err := svc.Execute(testContext(), "network rm -f gone live")
	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, result.IDs)

	_, err = svc.Execute(testContext(), "network rm gone")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Execute_InspectFallsBackOnNotFound(t *testing.T) {
	svc, runtime := newTestService(t)
	runtime.On("InspectContainer", mock.Anything, "nginx").Return(nil, domain.ErrNotFound)
	runtime.On("InspectImage", mock.Anything, "nginx").Return(map[string]any{"Id": "sha256:abc"}, nil)

	result, err := svc.Execute(testContext(), "inspect nginx")
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"Id": "sha256:abc"}}, result.Payload)
	runtime.AssertNotCalled(t, "InspectNetwork", mock.Anything, mock.Anything)
}

func TestService_Execute_InspectStopsOnRealError(t *testing.T) {
	svc, runtime := newTestService(t)
	runtime.On("InspectContainer", mock.Anything, "x").Return(nil, errors.New("daemon down"))

	_, err := svc.Execute(testContext(), "inspect x")
	require.ErrorIs(t, err, domain.ErrEngineFailure)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestService_Execute_InspectNothingFound(t *testing.T) {
	svc, runtime := newTestService(t)
	runtime.On("InspectContainer", mock.Anything, "x").Return(nil, domain.ErrNotFound)
	runtime.On("InspectImage", mock.Anything, "x").Return(nil, domain.ErrNotFound)
	runtime.On("InspectNetwork", mock.Anything, "x").Return(nil, domain.ErrNotFound)

	_, err := svc.Execute(testContext(), "inspect x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Execute_InspectWithTypeAndFormat(t *testing.T) {
	svc, runtime := newTestService(t)
	type network struct{ Name, Driver string }
	runtime.On("InspectNetwork", mock.Anything, "bridge").Return(network{Name: "bridge", Driver: "bridge"}, nil)
	runtime.On("InspectNetwork", mock.Anything, "apps").Return(network{Name: "apps", Driver: "overlay"}, nil)

	result, err := svc.Execute(testContext(), "inspect --type network -f '{{.Name}}/{{.Driver}}' bridge")
	require.NoError(t, err)
	assert.Equal(t, []any{"bridge/bridge"}, result.Payload)

	result, err = svc.Execute(testContext(), "network inspect --format {{.Driver}} apps")
	require.NoError(t, err)
	assert.Equal(t, []any{"overlay"}, result.Payload)
}

func TestService_Execute_InspectFormatFailsToRender(t *testing.T) {
	svc, runtime := newTestService(t)
	type network struct{ Name string }
	runtime.On("InspectNetwork", mock.Anything, "mynet").Return(network{Name: "mynet"}, nil)

	result, err := svc.Execute(testContext(), "network inspect -f '{{.Missing}}' mynet")
	assert.Nil(t, result)
	require.ErrorIs(t, err, domain.ErrInvalidFormat)
	assert.False(t, errors.Is(err, domain.ErrEngineFailure))
	assert.Contains(t, err.Error(), "mynet")
}

func TestService_Dispatch_UnsupportedTarget(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Dispatch(testContext(), &domain.Analysis{Request: domain.EngineRequest{TargetPath: "/volumes/create"}})
	assert.ErrorIs(t, err, domain.ErrUnsupportedTarget)

	_, err = svc.Dispatch(testContext(), nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedTarget)
}

func TestService_Dispatch_MismatchedOptions(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Dispatch(testContext(), &domain.Analysis{
		Command: domain.Command{Kind: domain.Kind{Main: domain.MainRun}, Options: domain.PullOptions{Image: "x"}},
		Request: domain.EngineRequest{TargetPath: domain.PathContainerRun},
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedTarget)
}
