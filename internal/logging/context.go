package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Common structured field names.
const (
	FieldLayer     = "layer"
	FieldAdapter   = "adapter"
	FieldUseCase   = "usecase"
	FieldAction    = "action"
	FieldHandler   = "handler"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration"
	FieldClientIP  = "client_ip"
	FieldRequestID = "request_id"
	FieldEntityID  = "entity_id"
	FieldCommand   = "command"
	FieldTarget    = "target"
)

// WithCtx attaches log to ctx.
func WithCtx(ctx context.Context, log Logger) context.Context {
	return log.Logger.WithContext(ctx)
}

// FromCtx returns the logger attached to ctx, or a disabled logger.
func FromCtx(ctx context.Context) Logger {
	return Logger{Logger: *zerolog.Ctx(ctx)}
}

// CtxWithFields returns a context whose logger carries fields in addition to
// whatever the parent logger already had.
func CtxWithFields(ctx context.Context, fields map[string]any) context.Context {
	l := FromCtx(ctx).With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// CtxWithField is CtxWithFields for a single field.
func CtxWithField(ctx context.Context, key string, value any) context.Context {
	return CtxWithFields(ctx, map[string]any{key: value})
}
