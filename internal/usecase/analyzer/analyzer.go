// Package analyzer turns raw docker-style command strings into validated
// command descriptors and engine requests.
//
// The pipeline is Tokenize, Classify, ParseOptions, Normalize and
// BuildRequest. Every stage is a pure function; an Analyzer only holds
// read-only configuration and may be shared between goroutines.
package analyzer

import (
	"fmt"

	"github.com/bnema/dockcmd/internal/domain"
)

// Analyzer runs the analysis pipeline with fixed configuration.
type Analyzer struct {
	defaults       domain.EngineDefaults
	maxInputLength int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDefaults sets the values injected for absent network flags.
func WithDefaults(d domain.EngineDefaults) Option {
	return func(a *Analyzer) { a.defaults = d }
}

// WithMaxInputLength sets the longest accepted raw command in bytes.
// Zero or less disables the limit.
func WithMaxInputLength(n int) Option {
	return func(a *Analyzer) { a.maxInputLength = n }
}

// New creates an Analyzer with stock defaults unless overridden.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		defaults:       domain.DefaultEngineDefaults(),
		maxInputLength: DefaultMaxInputLength,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs every stage over raw. It returns either a complete analysis
// or the first error; stages after a failing one never run.
//
// Errors from user input are *domain.AnalysisError. Any other error is an
// internal fault.
func (a *Analyzer) Analyze(raw string) (*domain.Analysis, error) {
	tokens, err := Tokenize(raw, a.maxInputLength)
	if err != nil {
		return nil, err
	}

	spec, rest, err := Classify(tokens)
	if err != nil {
		return nil, err
	}

	opts, err := ParseOptions(spec, rest, len(raw))
	if err != nil {
		return nil, err
	}

	cmd, err := Normalize(spec, opts, a.defaults)
	if err != nil {
		return nil, err
	}

	req, err := BuildRequest(spec, cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	return &domain.Analysis{Command: cmd, Request: req}, nil
}

// Defaults returns the configured engine defaults.
func (a *Analyzer) Defaults() domain.EngineDefaults {
	return a.defaults
}
