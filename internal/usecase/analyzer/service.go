package analyzer

import (
	"context"

	"github.com/bnema/dockcmd/internal/boundaries/in"
	"github.com/bnema/dockcmd/internal/domain"
	"github.com/bnema/dockcmd/internal/logging"
)

var _ in.CommandAnalyzer = (*Service)(nil)

// Service implements in.CommandAnalyzer on top of an Analyzer, adding
// structured logging.
type Service struct {
	analyzer *Analyzer
}

// NewService creates a new analyzer service.
func NewService(a *Analyzer) *Service {
	return &Service{analyzer: a}
}

// Analyze runs the pipeline over raw. The context only carries the logger;
// analysis never blocks.
func (s *Service) Analyze(ctx context.Context, raw string) (*domain.Analysis, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:   "usecase",
		logging.FieldUseCase: "Analyze",
	})
	log := logging.FromCtx(ctx)

	analysis, err := s.analyzer.Analyze(raw)
	if err != nil {
		if ae, ok := domain.AsAnalysisError(err); ok {
			log.Info().
				Str("kind", string(ae.Kind)).
				Str("token", ae.Token).
				Int("position", ae.Position).
				Msg("command rejected")
			return nil, err
		}
		return nil, log.WrapErr(err, "command analysis failed")
	}

	log.Debug().
		Str(logging.FieldCommand, analysis.Command.Kind.String()).
		Str(logging.FieldTarget, analysis.Request.TargetPath).
		Int("args", len(analysis.Request.Arguments)).
		Msg("command analyzed")

	return analysis, nil
}

// Vocabulary describes every supported command and flag.
func (s *Service) Vocabulary() []domain.CommandUsage {
	return Vocabulary()
}
