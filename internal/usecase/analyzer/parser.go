package analyzer

import (
	"strings"

	"github.com/bnema/dockcmd/internal/domain"
)

const endOfFlags = "--"

// RawOptions is the parser output: flag values keyed by canonical flag name,
// in encounter order, plus the positionals.
type RawOptions struct {
	values      map[string][]domain.Token
	flags       map[string]domain.Token
	Positionals []domain.Token
	// End is the offset just past the input, used to anchor diagnostics about
	// missing arguments.
	End int
}

func newRawOptions(end int) *RawOptions {
	return &RawOptions{
		values: make(map[string][]domain.Token),
		flags:  make(map[string]domain.Token),
		End:    end,
	}
}

func (o *RawOptions) add(flag string, typed, value domain.Token) {
	o.values[flag] = append(o.values[flag], value)
	if _, seen := o.flags[flag]; !seen {
		o.flags[flag] = typed
	}
}

// Has reports whether the flag appeared at all, even with an empty value.
func (o *RawOptions) Has(flag string) bool {
	_, ok := o.values[flag]
	return ok
}

// Tokens returns every value given to flag, in order.
func (o *RawOptions) Tokens(flag string) []domain.Token {
	return o.values[flag]
}

// Values returns every value given to flag, in order.
func (o *RawOptions) Values(flag string) []string {
	toks := o.values[flag]
	if len(toks) == 0 {
		return nil
	}
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Value
	}
	return out
}

// Last returns the last value given to flag.
func (o *RawOptions) Last(flag string) (domain.Token, bool) {
	toks := o.values[flag]
	if len(toks) == 0 {
		return domain.Token{}, false
	}
	return toks[len(toks)-1], true
}

// String returns the last value given to flag, or "".
func (o *RawOptions) String(flag string) string {
	t, _ := o.Last(flag)
	return t.Value
}

// Bool returns the last value of a boolean flag.
func (o *RawOptions) Bool(flag string) bool {
	t, ok := o.Last(flag)
	return ok && t.Value == "true"
}

// FlagToken returns the first flag token written for flag, as typed.
func (o *RawOptions) FlagToken(flag string) (domain.Token, bool) {
	t, ok := o.flags[flag]
	return t, ok
}

// PositionalValues returns the positional values in order.
func (o *RawOptions) PositionalValues() []string {
	out := make([]string, len(o.Positionals))
	for i, t := range o.Positionals {
		out[i] = t.Value
	}
	return out
}

// ParseOptions walks tokens against the flag table of spec.
//
// Unknown flags are rejected, as is a second occurrence of a bool or single
// value flag under any of its aliases. Value flags take the next token, or the part
// after '=' when written as --flag=value. A bare "--" ends flag parsing, as
// does the first positional of a spec with FlagsEndAtFirstArg.
func ParseOptions(spec *CommandSpec, tokens []domain.Token, end int) (*RawOptions, error) {
	opts := newRawOptions(end)
	flagsDone := false

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if flagsDone || !tok.IsFlag() {
			opts.Positionals = append(opts.Positionals, tok)
			if spec.FlagsEndAtFirstArg {
				flagsDone = true
			}
			continue
		}
		if tok.Value == endOfFlags {
			flagsDone = true
			continue
		}

		name, inline, hasInline := strings.Cut(tok.Value, "=")
		typed := domain.Token{Value: name, Pos: tok.Pos}

		flag, ok := spec.Flag(name)
		if !ok {
			return nil, domain.NewAnalysisError(domain.KindUnknownOption, typed).WithFlag(name)
		}

		if flag.Arity != ArityRepeatable && opts.Has(flag.Name) {
			return nil, domain.NewAnalysisError(domain.KindDuplicateOption, typed).WithFlag(name)
		}

		inlineTok := domain.Token{Value: inline, Pos: tok.Pos + len(name) + 1, Quoted: tok.Quoted}

		if flag.Arity == ArityBool {
			value := "true"
			if hasInline {
				if inline != "true" && inline != "false" {
					return nil, domain.NewAnalysisError(domain.KindInvalidOptionFormat, inlineTok).
						WithFlag(name).WithReason("expected true or false")
				}
				value = inline
			}
			opts.add(flag.Name, typed, domain.Token{Value: value, Pos: tok.Pos})
			continue
		}

		if hasInline {
			opts.add(flag.Name, typed, inlineTok)
			continue
		}
		if i+1 >= len(tokens) || tokens[i+1].IsFlag() {
			return nil, domain.NewAnalysisError(domain.KindMissingFlagValue, typed).WithFlag(name)
		}
		i++
		opts.add(flag.Name, typed, tokens[i])
	}

	return opts, nil
}
