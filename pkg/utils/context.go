package utils

import (
	"context"

	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/contextkeys"
)

// LocaleFromContext возвращает язык запроса, выставленный middleware.
func LocaleFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(contextkeys.LocaleKey).(string); ok && lang != "" {
		return lang
	}
	return "ru"
}

func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, contextkeys.LocaleKey, lang)
}
