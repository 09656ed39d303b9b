package logfields

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// NewContext returns a copy of ctx that carries fields in addition to the
// fields that are already stored in ctx.
func NewContext(ctx context.Context, fields ...zap.Field) context.Context {
	existing := FromContext(ctx)

	all := make([]zap.Field, 0, len(existing)+len(fields))
	all = append(all, existing...)
	all = append(all, fields...)

	return context.WithValue(ctx, ctxKey{}, all)
}

// FromContext returns the fields stored in ctx by NewContext.
func FromContext(ctx context.Context) []zap.Field {
	fields, _ := ctx.Value(ctxKey{}).([]zap.Field)
	return fields
}
