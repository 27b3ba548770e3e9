package logging

import (
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs err at error level. Coded errors also log their code and
// context attributes.
func LogError(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, ErrorAttrs(err)...)
}

// ErrorAttrs returns the structured attributes describing err.
func ErrorAttrs(err error) []any {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return []any{"error", err}
	}

	attrs := []any{"error", oopsErr.Error()}
	if code := oopsErr.Code(); code != nil {
		attrs = append(attrs, "code", code)
	}
	if domain := oopsErr.Domain(); domain != "" {
		attrs = append(attrs, "domain", domain)
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		attrs = append(attrs, "context", ctx)
	}
	return attrs
}
