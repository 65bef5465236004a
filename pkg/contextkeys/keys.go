package contextkeys

type contextKey string

const (
	SessionKey contextKey = "Session"
	LocaleKey  contextKey = "Locale"
)

// Ключи echo.Context (c.Set / c.Get).
const (
	EchoLogger  = "logger"
	EchoSession = "session"
	EchoLocale  = "locale"
)
