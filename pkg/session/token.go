package session

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// tokenExpiry читает exp из токена бэкенда без проверки подписи:
// ключа у нас нет, подпись проверяет сам бэкенд.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// sessionTTL ограничивает TTL сессии сроком жизни токена.
func sessionTTL(token string, fallback time.Duration, now time.Time) time.Duration {
	exp, ok := tokenExpiry(token)
	if !ok {
		return fallback
	}
	left := exp.Sub(now)
	if left <= 0 {
		return time.Second
	}
	if fallback > 0 && left > fallback {
		return fallback
	}
	return left
}
