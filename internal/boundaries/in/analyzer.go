// Package in defines input ports (interfaces) for use cases.
// These interfaces define the contract between driving adapters (HTTP, CLI)
// and the business logic (use cases).
package in

import (
	"context"

	"github.com/bnema/dockcmd/internal/domain"
)

// CommandAnalyzer defines the contract for analyzing raw commands.
type CommandAnalyzer interface {
	// Analyze turns a raw command string into a command descriptor and an
	// engine request. User errors are *domain.AnalysisError.
	Analyze(ctx context.Context, raw string) (*domain.Analysis, error)

	// Vocabulary describes every supported command and flag.
	Vocabulary() []domain.CommandUsage
}

// CommandExecutor defines the contract for analyzing and then running a
// command against the container engine.
type CommandExecutor interface {
	// Execute analyzes raw and dispatches the resulting request.
	// Engine failures wrap domain.ErrEngineFailure.
	Execute(ctx context.Context, raw string) (*domain.DispatchResult, error)

	// Dispatch runs an already analyzed command.
	Dispatch(ctx context.Context, analysis *domain.Analysis) (*domain.DispatchResult, error)
}
