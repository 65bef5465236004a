package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/config"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/contextkeys"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/utils"
)

var sessionCfg = config.SessionConfig{CookieName: "clinic_session", TTL: time.Hour}

func newAuthEcho(t *testing.T) (*echo.Echo, *session.Manager) {
	t.Helper()
	e := echo.New()
	manager := session.NewManager(session.NewMemoryStore(), time.Hour, zap.NewNop())
	mw := NewAuthMiddleware(manager, sessionCfg, zap.NewNop())
	e.Use(mw.Session)

	e.POST("/login", func(c echo.Context) error {
		sess := session.FromContext(c.Request().Context())
		if err := sess.Login(c.Request().Context(), session.LoginData{Token: "tok", Role: c.QueryParam("role")}); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	})
	admin := e.Group("/admin", mw.RequireRole("/admin/login", session.RoleAdmin))
	admin.GET("", func(c echo.Context) error { return c.String(http.StatusOK, "admin") })
	reception := e.Group("/reception", mw.RequireRole("/reception/login", session.RoleReception, session.RoleAdmin))
	reception.GET("", func(c echo.Context) error { return c.String(http.StatusOK, "reception") })
	return e, manager
}

func TestRequireRole_RedirectsAnonymous(t *testing.T) {
	e, _ := newAuthEcho(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get(echo.HeaderLocation))
}

func loginCookie(t *testing.T, e *echo.Echo, role string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login?role="+role, nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCfg.CookieName {
			return c
		}
	}
	t.Fatal("cookie сессии не выставлена")
	return nil
}

func TestSession_CookieAfterLoginAndRoleGate(t *testing.T) {
	e, _ := newAuthEcho(t)
	cookie := loginCookie(t, e, session.RoleReception)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/reception", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get(echo.HeaderLocation))
}

func TestSession_LoginIgnoresPlantedCookie(t *testing.T) {
	e, manager := newAuthEcho(t)

	req := httptest.NewRequest(http.MethodPost, "/login?role="+session.RoleAdmin, nil)
	req.AddCookie(&http.Cookie{Name: sessionCfg.CookieName, Value: "attacker-chosen-id"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	planted, err := manager.Open(req.Context(), "attacker-chosen-id")
	require.NoError(t, err)
	assert.False(t, planted.IsAuthenticated())

	var issued *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCfg.CookieName {
			issued = c
		}
	}
	require.NotNil(t, issued)
	assert.NotEqual(t, "attacker-chosen-id", issued.Value)

	fresh, err := manager.Open(req.Context(), issued.Value)
	require.NoError(t, err)
	assert.True(t, fresh.IsAuthenticated())
	assert.Equal(t, session.RoleAdmin, fresh.Role())
}

func TestRequireRole_AdminMayOpenReception(t *testing.T) {
	e, _ := newAuthEcho(t)
	cookie := loginCookie(t, e, session.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/reception", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLocale(t *testing.T) {
	cfg := config.LocaleConfig{Default: "ru", CookieName: "i18nextLng"}
	e := echo.New()
	e.Use(Locale(cfg))
	e.GET("/", func(c echo.Context) error {
		assert.Equal(t, c.Get(contextkeys.EchoLocale), utils.LocaleFromContext(c.Request().Context()))
		return c.String(http.StatusOK, c.Get(contextkeys.EchoLocale).(string))
	})

	tests := []struct {
		name   string
		target string
		cookie string
		accept string
		want   string
	}{
		{"query", "/?lang=uz", "en", "", "uz"},
		{"cookie", "/", "en", "uz", "en"},
		{"accept-language", "/", "", "en-US,en;q=0.9", "en"},
		{"по умолчанию", "/", "", "", "ru"},
		{"неизвестный query", "/?lang=de", "", "", "ru"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}
