package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business-level errors that can occur in the system.
// These errors are used across layers to communicate specific failure conditions.
var (
	// Analysis errors, one per ErrorKind
	ErrEmptyCommand            = errors.New("empty command")
	ErrInputTooLong            = errors.New("input too long")
	ErrMalformedQuoting        = errors.New("malformed quoting")
	ErrUnknownMainCommand      = errors.New("unknown command")
	ErrUnknownSubCommand       = errors.New("unknown sub-command")
	ErrMissingFlagValue        = errors.New("missing flag value")
	ErrUnknownOption           = errors.New("unknown option")
	ErrDuplicateOption         = errors.New("option given more than once")
	ErrMissingRequiredArgument = errors.New("missing required argument")
	ErrUnexpectedArgument      = errors.New("unexpected argument")
	ErrNetworkRequiredForIP    = errors.New("--ip requires --network")
	ErrGatewayRequiresSubnet   = errors.New("--gateway requires --subnet")
	ErrInvalidOptionFormat     = errors.New("invalid option format")

	// Engine errors
	ErrNotFound          = errors.New("object not found")
	ErrEngineFailure     = errors.New("engine request failed")
	ErrUnsupportedTarget = errors.New("unsupported engine target")
	// ErrInvalidFormat is a --format template that failed against the engine object.
	ErrInvalidFormat = errors.New("invalid format template")

	// Config errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ErrorKind classifies an AnalysisError.
type ErrorKind string

const (
	KindEmptyCommand            ErrorKind = "EmptyCommand"
	KindInputTooLong            ErrorKind = "InputTooLong"
	KindMalformedQuoting        ErrorKind = "MalformedQuoting"
	KindUnknownMainCommand      ErrorKind = "UnknownMainCommand"
	KindUnknownSubCommand       ErrorKind = "UnknownSubCommand"
	KindMissingFlagValue        ErrorKind = "MissingFlagValue"
	KindUnknownOption           ErrorKind = "UnknownOption"
	KindDuplicateOption         ErrorKind = "DuplicateOption"
	KindMissingRequiredArgument ErrorKind = "MissingRequiredArgument"
	KindUnexpectedArgument      ErrorKind = "UnexpectedArgument"
	KindNetworkRequiredForIP    ErrorKind = "NetworkRequiredForIp"
	KindGatewayRequiresSubnet   ErrorKind = "GatewayRequiresSubnet"
	KindInvalidOptionFormat     ErrorKind = "InvalidOptionFormat"
)

var kindSentinels = map[ErrorKind]error{
	KindEmptyCommand:            ErrEmptyCommand,
	KindInputTooLong:            ErrInputTooLong,
	KindMalformedQuoting:        ErrMalformedQuoting,
	KindUnknownMainCommand:      ErrUnknownMainCommand,
	KindUnknownSubCommand:       ErrUnknownSubCommand,
	KindMissingFlagValue:        ErrMissingFlagValue,
	KindUnknownOption:           ErrUnknownOption,
	KindDuplicateOption:         ErrDuplicateOption,
	KindMissingRequiredArgument: ErrMissingRequiredArgument,
	KindUnexpectedArgument:      ErrUnexpectedArgument,
	KindNetworkRequiredForIP:    ErrNetworkRequiredForIP,
	KindGatewayRequiresSubnet:   ErrGatewayRequiresSubnet,
	KindInvalidOptionFormat:     ErrInvalidOptionFormat,
}

// NoPosition marks an AnalysisError not tied to a place in the input.
const NoPosition = -1

// AnalysisError is the single error type returned by command analysis.
// It is terminal and safe to show to the user.
type AnalysisError struct {
	Kind ErrorKind `json:"kind"`
	// Token is the offending token as typed (quotes stripped).
	Token string `json:"token,omitempty"`
	// Flag is the flag the error relates to, when there is one.
	Flag string `json:"flag,omitempty"`
	// Position is a byte offset in the raw input, or NoPosition.
	Position int    `json:"position"`
	Reason   string `json:"reason,omitempty"`
}

func (e *AnalysisError) Error() string {
	msg := e.Unwrap().Error()
	switch {
	case e.Flag != "" && e.Token != "" && e.Flag != e.Token:
		msg = fmt.Sprintf("%s: %s %q", msg, e.Flag, e.Token)
	case e.Flag != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Flag)
	case e.Token != "":
		msg = fmt.Sprintf("%s: %q", msg, e.Token)
	}
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if e.Position != NoPosition {
		msg = fmt.Sprintf("%s at position %d", msg, e.Position)
	}
	return msg
}

// Unwrap returns the sentinel matching the error's kind.
func (e *AnalysisError) Unwrap() error {
	if s, ok := kindSentinels[e.Kind]; ok {
		return s
	}
	return fmt.Errorf("analysis error %s", e.Kind)
}

// NewAnalysisError creates an AnalysisError anchored at a token.
func NewAnalysisError(kind ErrorKind, tok Token) *AnalysisError {
	return &AnalysisError{Kind: kind, Token: tok.Value, Position: tok.Pos}
}

// WithFlag sets the flag the error relates to.
func (e *AnalysisError) WithFlag(flag string) *AnalysisError {
	e.Flag = flag
	return e
}

// WithReason sets a human readable explanation.
func (e *AnalysisError) WithReason(reason string) *AnalysisError {
	e.Reason = reason
	return e
}

// AsAnalysisError unwraps err into an AnalysisError.
func AsAnalysisError(err error) (*AnalysisError, bool) {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
