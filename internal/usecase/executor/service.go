// Package executor implements the analyze-then-dispatch use case.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/bnema/dockcmd/internal/boundaries/in"
	"github.com/bnema/dockcmd/internal/boundaries/out"
	"github.com/bnema/dockcmd/internal/domain"
	"github.com/bnema/dockcmd/internal/logging"
)

var _ in.CommandExecutor = (*Service)(nil)

// Service runs analyzed commands against a container runtime.
type Service struct {
	analyzer in.CommandAnalyzer
	runtime  out.ContainerRuntime
	handlers map[string]handler
}

type handler func(ctx context.Context, opts any) (*domain.DispatchResult, error)

// NewService creates a new executor service.
func NewService(analyzer in.CommandAnalyzer, runtime out.ContainerRuntime) *Service {
	s := &Service{analyzer: analyzer, runtime: runtime}
	s.handlers = map[string]handler{
		domain.PathContainerRun:    s.run,
		domain.PathContainerList:   s.listContainers,
		domain.PathContainerStart:  s.start,
		domain.PathContainerStop:   s.stop,
		domain.PathContainerRemove: s.removeContainers,
		domain.PathInspect:         s.inspect,
		domain.PathImagePull:       s.pull,
		domain.PathImageList:       s.listImages,
		domain.PathNetworkCreate:   s.createNetwork,
		domain.PathNetworkRemove:   s.removeNetworks,
		domain.PathNetworkList:     s.listNetworks,
		domain.PathNetworkInspect:  s.inspectNetworks,
	}
	return s
}

// Execute analyzes raw and dispatches the result. Analysis errors are
// returned unchanged.
func (s *Service) Execute(ctx context.Context, raw string) (*domain.DispatchResult, error) {
	analysis, err := s.analyzer.Analyze(ctx, raw)
	if err != nil {
		return nil, err
	}
	return s.Dispatch(ctx, analysis)
}

// Dispatch routes an analysis to the runtime by its target path.
func (s *Service) Dispatch(ctx context.Context, analysis *domain.Analysis) (*domain.DispatchResult, error) {
	if analysis == nil {
		return nil, fmt.Errorf("%w: no analysis to dispatch", domain.ErrUnsupportedTarget)
	}

	path := analysis.Request.TargetPath
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:   "usecase",
		logging.FieldUseCase: "Dispatch",
		logging.FieldTarget:  path,
		logging.FieldCommand: analysis.Command.Kind.String(),
	})
	log := logging.FromCtx(ctx)

	h, ok := s.handlers[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedTarget, path)
	}

	result, err := h(ctx, analysis.Command.Options)
	if err != nil {
		return nil, log.WrapErr(err, "dispatch failed")
	}
	result.TargetPath = path

	log.Info().Strs("ids", result.IDs).Msg("command dispatched")
	return result, nil
}

// engineError marks err as an engine failure while keeping it matchable,
// e.g. as domain.ErrNotFound.
func engineError(op, target string, err error) error {
	if target != "" {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrEngineFailure, op, target, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrEngineFailure, op, err)
}

func optionsAs[T any](opts any) (T, error) {
	o, ok := opts.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: options %T do not match target", domain.ErrUnsupportedTarget, opts)
	}
	return o, nil
}

func (s *Service) run(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.ContainerOptions](opts)
	if err != nil {
		return nil, err
	}
	id, err := s.runtime.RunContainer(ctx, o)
	if err != nil {
		return nil, engineError("run container from", o.Image, err)
	}
	return &domain.DispatchResult{IDs: []string{id}}, nil
}

func (s *Service) listContainers(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.ListOptions](opts)
	if err != nil {
		return nil, err
	}
	containers, err := s.runtime.ListContainers(ctx, o)
	if err != nil {
		return nil, engineError("list containers", "", err)
	}
	ids := make([]string, 0, len(containers))
	for _, c := range containers {
		ids = append(ids, c.ID)
	}
	if o.Quiet {
		return &domain.DispatchResult{IDs: ids}, nil
	}
	return &domain.DispatchResult{IDs: ids, Payload: containers}, nil
}

// eachTarget applies fn to every target in order and stops at the first
// failure.
func eachTarget(targets []string, op string, fn func(string) error) ([]string, error) {
	done := make([]string, 0, len(targets))
	for _, t := range targets {
		if err := fn(t); err != nil {
			return done, engineError(op, t, err)
		}
		done = append(done, t)
	}
	return done, nil
}

func (s *Service) start(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.StartOptions](opts)
	if err != nil {
		return nil, err
	}
	ids, err := eachTarget(o.Targets, "start container", func(id string) error {
		return s.runtime.StartContainer(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &domain.DispatchResult{IDs: ids}, nil
}

func (s *Service) stop(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.StopOptions](opts)
	if err != nil {
		return nil, err
	}
	ids, err := eachTarget(o.Targets, "stop container", func(id string) error {
		return s.runtime.StopContainer(ctx, id, o.Timeout)
	})
	if err != nil {
		return nil, err
	}
	return &domain.DispatchResult{IDs: ids}, nil
}

func (s *Service) removeContainers(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.RemoveOptions](opts)
	if err != nil {
		return nil, err
	}
	ids, err := eachTarget(o.Targets, "remove container", func(id string) error {
		return s.runtime.RemoveContainer(ctx, id, o.Force, o.Volumes)
	})
	if err != nil {
		return nil, err
	}
	return &domain.DispatchResult{IDs: ids}, nil
}

func (s *Service) inspect(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.InspectOptions](opts)
	if err != nil {
		return nil, err
	}
	return s.inspectTargets(o, func(target string) (any, error) {
		return s.inspectOne(ctx, o.Type, target)
	})
}

// inspectOne inspects target as objType. Without a type it tries container,
// image and network in that order, moving on only when the object is
// missing.
func (s *Service) inspectOne(ctx context.Context, objType, target string) (any, error) {
	switch objType {
	case "container":
		return s.runtime.InspectContainer(ctx, target)
	case "image":
		return s.runtime.InspectImage(ctx, target)
	case "network":
		return s.runtime.InspectNetwork(ctx, target)
	}

	lookups := []func(context.Context, string) (any, error){
		s.runtime.InspectContainer,
		s.runtime.InspectImage,
		s.runtime.InspectNetwork,
	}
	for _, lookup := range lookups {
		v, err := lookup(ctx, target)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("no such object: %w", domain.ErrNotFound)
}

func (s *Service) inspectNetworks(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.InspectOptions](opts)
	if err != nil {
		return nil, err
	}
	return s.inspectTargets(o, func(target string) (any, error) {
		return s.runtime.InspectNetwork(ctx, target)
	})
}

func (s *Service) inspectTargets(o domain.InspectOptions, lookup func(string) (any, error)) (*domain.DispatchResult, error) {
	var tmpl *template.Template
	if o.Format != "" {
		t, err := template.New("format").Parse(o.Format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidFormat, err)
		}
		tmpl = t
	}

	payload := make([]any, 0, len(o.Targets))
	for _, target := range o.Targets {
		v, err := lookup(target)
		if err != nil {
			return nil, engineError("inspect", target, err)
		}
		if tmpl != nil {
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, v); err != nil {
				return nil, fmt.Errorf("%w: render for %s: %w", domain.ErrInvalidFormat, target, err)
			}
			v = buf.String()
		}
		payload = append(payload, v)
	}
	return &domain.DispatchResult{IDs: o.Targets, Payload: payload}, nil
}

func (s *Service) pull(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.PullOptions](opts)
	if err != nil {
		return nil, err
	}
	if err := s.runtime.PullImage(ctx, o.Image, o.Platform); err != nil {
		return nil, engineError("pull image", o.Image, err)
	}
	return &domain.DispatchResult{IDs: []string{o.Image}}, nil
}

func (s *Service) listImages(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.ListOptions](opts)
	if err != nil {
		return nil, err
	}
	images, err := s.runtime.ListImages(ctx, o)
	if err != nil {
		return nil, engineError("list images", "", err)
	}
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	if o.Quiet {
		return &domain.DispatchResult{IDs: ids}, nil
	}
	return &domain.DispatchResult{IDs: ids, Payload: images}, nil
}

func (s *Service) createNetwork(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.NetworkCreateOptions](opts)
	if err != nil {
		return nil, err
	}
	id, err := s.runtime.CreateNetwork(ctx, o)
	if err != nil {
		return nil, engineError("create network", o.Name, err)
	}
	return &domain.DispatchResult{IDs: []string{id}}, nil
}

func (s *Service) removeNetworks(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.RemoveOptions](opts)
	if err != nil {
		return nil, err
	}
	log := logging.FromCtx(ctx)

	removed := make([]string, 0, len(o.Targets))
	for _, name := range o.Targets {
		err := s.runtime.RemoveNetwork(ctx, name)
		switch {
		case err == nil:
			removed = append(removed, name)
		case o.Force && errors.Is(err, domain.ErrNotFound):
			log.Debug().Str(logging.FieldEntityID, name).Msg("network already absent")
		default:
			return nil, engineError("remove network", name, err)
		}
	}
	return &domain.DispatchResult{IDs: removed}, nil
}

func (s *Service) listNetworks(ctx context.Context, opts any) (*domain.DispatchResult, error) {
	o, err := optionsAs[domain.ListOptions](opts)
	if err != nil {
		return nil, err
	}
	networks, err := s.runtime.ListNetworks(ctx, o)
	if err != nil {
		return nil, engineError("list networks", "", err)
	}
	ids := make([]string, 0, len(networks))
	for _, n := range networks {
		ids = append(ids, n.ID)
	}
	if o.Quiet {
		return &domain.DispatchResult{IDs: ids}, nil
	}
	return &domain.DispatchResult{IDs: ids, Payload: networks}, nil
}
