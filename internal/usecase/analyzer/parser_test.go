package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockcmd/internal/domain"
)

func parse(t *testing.T, raw string) (*RawOptions, error) {
	t.Helper()
	spec, rest, err := Classify(mustTokenize(t, raw))
	require.NoError(t, err)
	return ParseOptions(spec, rest, len(raw))
}

func TestParseOptions_ValuesAndPositionals(t *testing.T) {
	opts, err := parse(t, "run --name web --rm -p 8080:80 nginx:latest echo hi")
	require.NoError(t, err)

	assert.Equal(t, "web", opts.String(flagName))
	assert.True(t, opts.Bool(flagRm))
	assert.Equal(t, []string{"8080:80"}, opts.Values(flagPublish))
	assert.Equal(t, []string{"nginx:latest", "echo", "hi"}, opts.PositionalValues())
	assert.False(t, opts.Has(flagNetwork))
}

func TestParseOptions_RepeatableAccumulates(t *testing.T) {
	opts, err := parse(t, "run -p 80:80 -p 443:443 --publish 80:80 nginx")
	require.NoError(t, err)
	assert.Equal(t, []string{"80:80", "443:443", "80:80"}, opts.Values(flagPublish))
}

func TestParseOptions_AliasesMapToCanonicalName(t *testing.T) {
	opts, err := parse(t, "run -d --env A=1 -e B=2 nginx")
	require.NoError(t, err)
	assert.True(t, opts.Bool(flagDetach))
	assert.Equal(t, []string{"A=1", "B=2"}, opts.Values(flagEnv))
}

func TestParseOptions_RepeatedSingleFlagRejected(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantFlag string
		wantPos  int
	}{
		{"same spelling", "run --name a --name b nginx", "--name", 13},
		{"inline", "run --network x --network=y nginx", "--network", 16},
		{"bool", "run --rm --rm=false nginx", "--rm", 9},
		{"bool alias", "run -d --detach nginx", "--detach", 7},
		{"after positional", "rm web --force -f", "-f", 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			require.ErrorIs(t, err, domain.ErrDuplicateOption)

			ae, ok := domain.AsAnalysisError(err)
			require.True(t, ok)
			assert.Equal(t, domain.KindDuplicateOption, ae.Kind)
			assert.Equal(t, tt.wantFlag, ae.Flag)
			assert.Equal(t, tt.wantPos, ae.Position)
		})
	}
}

func TestParseOptions_InlineValue(t *testing.T) {
	opts, err := parse(t, `run --name=web --network= --rm=false nginx`)
	require.NoError(t, err)

	assert.Equal(t, "web", opts.String(flagName))
	assert.True(t, opts.Has(flagNetwork))
	assert.Equal(t, "", opts.String(flagNetwork))
	assert.False(t, opts.Bool(flagRm))

	tok, ok := opts.Last(flagName)
	require.True(t, ok)
	assert.Equal(t, 11, tok.Pos)
}

func TestParseOptions_InlineQuotedValue(t *testing.T) {
	opts, err := parse(t, `run -e="GREETING=hello world" nginx`)
	require.NoError(t, err)
	assert.Equal(t, []string{"GREETING=hello world"}, opts.Values(flagEnv))
}

func TestParseOptions_QuotedEmptyValue(t *testing.T) {
	opts, err := parse(t, `run --network "" nginx`)
	require.NoError(t, err)
	assert.True(t, opts.Has(flagNetwork))
	assert.Equal(t, "", opts.String(flagNetwork))
}

func TestParseOptions_QuotedDashIsValue(t *testing.T) {
	opts, err := parse(t, `run --name "-web" nginx`)
	require.NoError(t, err)
	assert.Equal(t, "-web", opts.String(flagName))
}

func TestParseOptions_EndOfFlags(t *testing.T) {
	opts, err := parse(t, "rm -f -- -x --volumes")
	require.NoError(t, err)
	assert.True(t, opts.Bool(flagForce))
	assert.False(t, opts.Has(flagVolumes))
	assert.Equal(t, []string{"-x", "--volumes"}, opts.PositionalValues())
}

func TestParseOptions_RunFlagsEndAtImage(t *testing.T) {
	opts, err := parse(t, "run --rm nginx sh -c true --name x")
	require.NoError(t, err)
	assert.True(t, opts.Bool(flagRm))
	assert.False(t, opts.Has(flagName))
	assert.Equal(t, []string{"nginx", "sh", "-c", "true", "--name", "x"}, opts.PositionalValues())
}

func TestParseOptions_InterspersedPositionals(t *testing.T) {
	opts, err := parse(t, "rm web -f db")
	require.NoError(t, err)
	assert.True(t, opts.Bool(flagForce))
	assert.Equal(t, []string{"web", "db"}, opts.PositionalValues())
}

func TestParseOptions_SingleDashIsPositional(t *testing.T) {
	opts, err := parse(t, "rm -")
	require.NoError(t, err)
	assert.Equal(t, []string{"-"}, opts.PositionalValues())
}

func TestParseOptions_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantFlag string
		wantPos  int
	}{
		{"unknown flag", "run --bogus x nginx", domain.ErrUnknownOption, "--bogus", 4},
		{"unknown inline flag", "run --bogus=x nginx", domain.ErrUnknownOption, "--bogus", 4},
		{"flag of another command", "ps --rm", domain.ErrUnknownOption, "--rm", 3},
		{"value at end", "pull nginx --platform", domain.ErrMissingFlagValue, "--platform", 11},
		{"value is a flag", "run --name --rm nginx", domain.ErrMissingFlagValue, "--name", 4},
		{"bad bool inline", "run --rm=yes nginx", domain.ErrInvalidOptionFormat, "--rm", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			require.ErrorIs(t, err, tt.wantErr)

			ae, ok := domain.AsAnalysisError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantFlag, ae.Flag)
			assert.Equal(t, tt.wantPos, ae.Position)
		})
	}
}

func TestParseOptions_FlagToken(t *testing.T) {
	opts, err := parse(t, "run --ip 10.0.0.5 nginx")
	require.NoError(t, err)

	tok, ok := opts.FlagToken(flagIP)
	require.True(t, ok)
	assert.Equal(t, "--ip", tok.Value)
	assert.Equal(t, 4, tok.Pos)
}
