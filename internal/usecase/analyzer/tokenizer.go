package analyzer

import (
	"fmt"
	"strings"

	"github.com/bnema/dockcmd/internal/domain"
)

// DefaultMaxInputLength is the longest raw command accepted, in bytes.
const DefaultMaxInputLength = 4096

// Tokenize splits raw into tokens on runs of whitespace.
//
// Single and double quotes group characters, including whitespace, into one
// token and are stripped from the output. Inside double quotes a backslash
// escapes '"' and '\'. Quoted and unquoted parts that touch form a single
// token, so --name="my app" yields `--name=my app`. A token is Quoted when it
// opens with a quote, which keeps "--rm" from being read as a flag while
// --name="my app" still is one. A maxLen of zero or less disables the length
// check.
func Tokenize(raw string, maxLen int) ([]domain.Token, error) {
	if maxLen > 0 && len(raw) > maxLen {
		return nil, &domain.AnalysisError{
			Kind:     domain.KindInputTooLong,
			Position: maxLen,
			Reason:   fmt.Sprintf("%d bytes exceeds the limit of %d", len(raw), maxLen),
		}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &domain.AnalysisError{Kind: domain.KindEmptyCommand, Position: domain.NoPosition}
	}

	var (
		tokens     []domain.Token
		buf        strings.Builder
		inToken    bool
		quoted     bool
		start      int
		quote      byte
		quoteStart int
	)

	emit := func() {
		tokens = append(tokens, domain.Token{Value: buf.String(), Pos: start, Quoted: quoted})
		buf.Reset()
		inToken, quoted = false, false
	}
	begin := func(i int) {
		if !inToken {
			inToken = true
			start = i
		}
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if quote != 0 {
			switch {
			case quote == '"' && c == '\\' && i+1 < len(raw) && (raw[i+1] == '"' || raw[i+1] == '\\'):
				i++
				buf.WriteByte(raw[i])
			case c == quote:
				quote = 0
			default:
				buf.WriteByte(c)
			}
			continue
		}

		switch c {
		case ' ', '\t', '\n', '\r':
			if inToken {
				emit()
			}
		case '"', '\'':
			if !inToken {
				quoted = true
			}
			begin(i)
			quote, quoteStart = c, i
		default:
			begin(i)
			buf.WriteByte(c)
		}
	}

	if quote != 0 {
		return nil, &domain.AnalysisError{
			Kind:     domain.KindMalformedQuoting,
			Token:    raw[start:],
			Position: quoteStart,
			Reason:   fmt.Sprintf("unterminated %c quote", quote),
		}
	}
	if inToken {
		emit()
	}

	return tokens, nil
}
