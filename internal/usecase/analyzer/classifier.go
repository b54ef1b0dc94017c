package analyzer

import (
	"slices"
	"strings"

	"github.com/bnema/dockcmd/internal/domain"
)

// Classify matches the leading tokens against the command vocabulary and
// returns the command spec with the tokens that follow the verb words.
//
// Matching is exact and case-sensitive. The longest verb sequence wins, so
// a command whose name is a prefix of another never shadows it.
func Classify(tokens []domain.Token) (*CommandSpec, []domain.Token, error) {
	if len(tokens) == 0 {
		return nil, nil, &domain.AnalysisError{Kind: domain.KindEmptyCommand, Position: domain.NoPosition}
	}

	words := make([]string, 0, maxCommandWords)
	for _, t := range tokens[:min(len(tokens), maxCommandWords)] {
		if t.Quoted {
			break
		}
		words = append(words, t.Value)
	}

	for n := len(words); n > 0; n-- {
		if spec, ok := specByWords[strings.Join(words[:n], " ")]; ok {
			return spec, tokens[n:], nil
		}
	}

	first := tokens[0]
	main := domain.MainCommand(first.Value)
	if first.Quoted || !slices.Contains(domain.MainCommands, main) {
		return nil, nil, domain.NewAnalysisError(domain.KindUnknownMainCommand, first)
	}

	// The main command exists but needs a sub-command that was not given or
	// not recognized.
	subs := subCommandsOf(main)
	reason := "expected one of: " + strings.Join(subs, ", ")
	if len(tokens) < 2 {
		return nil, nil, (&domain.AnalysisError{
			Kind:     domain.KindUnknownSubCommand,
			Position: first.Pos + len(first.Value),
		}).WithReason(reason)
	}
	return nil, nil, domain.NewAnalysisError(domain.KindUnknownSubCommand, tokens[1]).WithReason(reason)
}
