package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockcmd/internal/domain"
)

func mustTokenize(t *testing.T, raw string) []domain.Token {
	t.Helper()
	tokens, err := Tokenize(raw, DefaultMaxInputLength)
	require.NoError(t, err)
	return tokens
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		wantKind domain.Kind
		wantRest []string
	}{
		{"run nginx", domain.Kind{Main: domain.MainRun}, []string{"nginx"}},
		{"ps -a", domain.Kind{Main: domain.MainPs}, []string{"-a"}},
		{"images", domain.Kind{Main: domain.MainImages}, []string{}},
		{"network create mynet", domain.Kind{Main: domain.MainNetwork, Sub: domain.SubCreate}, []string{"mynet"}},
		{"network rm a b", domain.Kind{Main: domain.MainNetwork, Sub: domain.SubRemove}, []string{"a", "b"}},
		{"network ls", domain.Kind{Main: domain.MainNetwork, Sub: domain.SubList}, []string{}},
		{"network inspect n", domain.Kind{Main: domain.MainNetwork, Sub: domain.SubInspect}, []string{"n"}},
		// "create" after a leaf verb is a positional, not a sub-command.
		{"rm create", domain.Kind{Main: domain.MainRm}, []string{"create"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, rest, err := Classify(mustTokenize(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, spec.Kind)
			assert.Equal(t, tt.wantRest, values(rest))
		})
	}
}

func TestClassify_UnknownMainCommand(t *testing.T) {
	for _, input := range []string{"RUN nginx", "dance", "--rm run", `"run" nginx`} {
		t.Run(input, func(t *testing.T) {
			_, _, err := Classify(mustTokenize(t, input))
			require.ErrorIs(t, err, domain.ErrUnknownMainCommand)

			ae, _ := domain.AsAnalysisError(err)
			assert.Equal(t, 0, ae.Position)
		})
	}
}

func TestClassify_UnknownSubCommand(t *testing.T) {
	_, _, err := Classify(mustTokenize(t, "network destroy x"))
	require.ErrorIs(t, err, domain.ErrUnknownSubCommand)
	ae, _ := domain.AsAnalysisError(err)
	assert.Equal(t, "destroy", ae.Token)
	assert.Equal(t, 8, ae.Position)
	assert.Contains(t, ae.Reason, "create, inspect, ls, rm")
}

func TestClassify_MissingSubCommand(t *testing.T) {
	_, _, err := Classify(mustTokenize(t, "network"))
	require.ErrorIs(t, err, domain.ErrUnknownSubCommand)
	ae, _ := domain.AsAnalysisError(err)
	assert.Equal(t, 7, ae.Position)
}

func TestClassify_NoTokens(t *testing.T) {
	_, _, err := Classify(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyCommand)
}

func TestCommandTable_Consistency(t *testing.T) {
	seenPaths := map[string]bool{}
	for _, spec := range commandTable {
		t.Run(spec.Kind.String(), func(t *testing.T) {
			assert.Contains(t, domain.MainCommands, spec.Kind.Main)
			assert.NotEmpty(t, spec.TargetPath)
			assert.False(t, seenPaths[spec.TargetPath], "duplicate target path %s", spec.TargetPath)
			seenPaths[spec.TargetPath] = true

			names := map[string]bool{}
			for _, f := range spec.Flags {
				for _, n := range append([]string{f.Name}, f.Aliases...) {
					assert.False(t, names[n], "duplicate flag %s", n)
					names[n] = true
				}
			}

			got, ok := SpecFor(spec.Kind)
			require.True(t, ok)
			assert.Equal(t, spec.Kind, got.Kind)
		})
	}

	for _, main := range domain.MainCommands {
		_, leaf := SpecFor(domain.Kind{Main: main})
		assert.True(t, leaf || len(subCommandsOf(main)) > 0, "main command %s has no spec", main)
	}
}
