package logger

import (
	"context"
	"log/slog"
)

type attrsKey struct{}

// With attaches fields to ctx. Records logged through a *Context method of a
// logger built by Configure carry them.
func With(ctx context.Context, fields ...any) context.Context {
	prev := Attrs(ctx)
	attrs := make([]slog.Attr, 0, len(prev)+len(fields)/2)
	attrs = append(attrs, prev...)
	attrs = append(attrs, slog.Group("", fields...).Value.Group()...)
	return context.WithValue(ctx, attrsKey{}, attrs)
}

// Attrs returns the fields attached to ctx by With.
func Attrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return attrs
}

// From returns the process logger bound to the fields of ctx, for code that
// logs without passing a context.
func From(ctx context.Context) *slog.Logger {
	l := LoggerWrapper()
	for _, a := range Attrs(ctx) {
		l = l.With(a)
	}
	return l
}

// ContextHandler adds the fields attached to the record's context.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := Attrs(ctx); len(attrs) > 0 {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}
