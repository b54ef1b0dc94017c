package app

import (
	"context"
	"fmt"

	"github.com/bnema/dockcmd/internal/adapters/out/docker"
	"github.com/bnema/dockcmd/internal/logging"
	"github.com/bnema/dockcmd/internal/usecase/analyzer"
	"github.com/bnema/dockcmd/internal/usecase/executor"
)

// NewLogger builds the application logger from config. The returned cleanup
// closes the log file, if any.
func NewLogger(cfg Config) (logging.Logger, func(), error) {
	log, cleanup, err := logging.NewWithFile(cfg.LoggingConfig())
	if err != nil {
		return logging.Default(), func() {}, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, cleanup, nil
}

// NewAnalyzer builds the analyzer service from config.
func NewAnalyzer(cfg Config) *analyzer.Service {
	return analyzer.NewService(analyzer.New(
		analyzer.WithDefaults(cfg.EngineDefaults()),
		analyzer.WithMaxInputLength(cfg.Analyzer.MaxInputLength),
	))
}

// Services holds the use cases wired from config.
type Services struct {
	Analyzer *analyzer.Service
	// Executor and Runtime are nil unless the engine is enabled.
	Executor *executor.Service
	Runtime  *docker.Runtime
}

// NewServices wires the analyzer and, when enabled, the engine executor.
func NewServices(ctx context.Context, cfg Config) (*Services, error) {
	svc := &Services{Analyzer: NewAnalyzer(cfg)}
	if !cfg.Engine.Enabled {
		return svc, nil
	}

	runtime, err := NewEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc.Runtime = runtime
	svc.Executor = executor.NewService(svc.Analyzer, runtime)
	return svc, nil
}

// NewEngine connects to the container engine and checks it answers.
func NewEngine(ctx context.Context, cfg Config) (*docker.Runtime, error) {
	log := logging.FromCtx(ctx)

	runtime, err := docker.NewRuntime(cfg.Engine.Host)
	if err != nil {
		return nil, log.WrapErr(err, "failed to create docker client")
	}
	if err := runtime.Ping(ctx); err != nil {
		_ = runtime.Close()
		return nil, log.WrapErr(err, "container engine is not reachable")
	}
	return runtime, nil
}

// Close releases the engine connection.
func (s *Services) Close() error {
	if s.Runtime == nil {
		return nil
	}
	return s.Runtime.Close()
}
