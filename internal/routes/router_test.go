package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/views"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/config"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/customvalidator"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/upload"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/utils"
)

// fakeBackend - минимальный REST API клиники в памяти.
type fakeBackend struct {
	mu       sync.Mutex
	news     []map[string]any
	patients []url.Values
	files    []string
	token    string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api")
	write := func(code int, v any) {
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(v)
	}

	switch {
	case path == "/admin/login" && r.Method == http.MethodPost:
		var creds apiclient.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			write(http.StatusUnauthorized, map[string]any{"message": "Неверный логин или пароль"})
			return
		}
		write(http.StatusOK, map[string]any{"data": map[string]any{"token": "adm-tok", "admin": map[string]any{"id": 1, "username": creds.Username}}})
	case path == "/branch" && r.Method == http.MethodGet:
		write(http.StatusOK, map[string]any{"data": []any{map[string]any{"id": 1, "title": "Cardiology", "Services": []any{}, "Branch_techs": []any{}}}})
	case path == "/news" && r.Method == http.MethodGet:
		write(http.StatusOK, map[string]any{"data": b.news})
	case strings.HasPrefix(path, "/news/") && r.Method == http.MethodDelete:
		if r.Header.Get(apiclient.TokenHeader) != b.token {
			write(http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
			return
		}
		id := strings.TrimPrefix(path, "/news/")
		kept := b.news[:0]
		for _, n := range b.news {
			if fmt.Sprint(n["id"]) != id {
				kept = append(kept, n)
			}
		}
		b.news = kept
		write(http.StatusOK, map[string]any{"success": true})
	case path == "/patient" && r.Method == http.MethodGet:
		write(http.StatusOK, map[string]any{"data": []any{
			map[string]any{"id": 7, "first_name": "Иван", "second_name": "Петров", "phone_number": "+998901234567", "problem": "Болит голова"},
		}})
	case path == "/patient" && r.Method == http.MethodPost:
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			write(http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		b.patients = append(b.patients, url.Values(r.MultipartForm.Value))
		for _, fh := range r.MultipartForm.File["media"] {
			b.files = append(b.files, fh.Filename)
		}
		write(http.StatusCreated, map[string]any{"success": true})
	default:
		write(http.StatusInternalServerError, map[string]any{"message": "not available"})
	}
}

type RouterTestSuite struct {
	suite.Suite
	Echo    *echo.Echo
	Backend *fakeBackend
	server  *httptest.Server
}

func (s *RouterTestSuite) SetupTest() {
	s.Backend = &fakeBackend{
		token: "adm-tok",
		news: []map[string]any{
			{"id": 1, "title_ru": "Открытие", "media": []any{}},
			{"id": 2, "title_ru": "Акция недели", "media": []any{}},
		},
	}
	s.server = httptest.NewServer(s.Backend)

	e := echo.New()
	v := validator.New()
	s.Require().NoError(customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	bundle, err := i18n.LoadBundle()
	s.Require().NoError(err)
	renderer, err := views.NewRenderer(bundle, "/api")
	s.Require().NoError(err)
	e.Renderer = renderer

	cfg := &config.Config{
		Session: config.SessionConfig{CookieName: "clinic_session", TTL: time.Hour},
		Locale:  config.LocaleConfig{Default: "ru", CookieName: "i18nextLng"},
	}
	nopLogger := zap.NewNop()
	sessions := session.NewManager(session.NewMemoryStore(), cfg.Session.TTL, nopLogger)
	api := apiclient.New(s.server.URL, "/api", nopLogger, apiclient.WithTokenSource(session.TokenFromContext))

	InitRouter(e, api, sessions, bundle, &Loggers{Main: nopLogger, Auth: nopLogger, Admin: nopLogger, Reception: nopLogger}, cfg)
	s.Echo = e
}

func (s *RouterTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *RouterTestSuite) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) postForm(path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return s.do(req, cookies...)
}

func (s *RouterTestSuite) loginAdmin() *http.Cookie {
	rec := s.postForm("/admin/login", url.Values{"username": {"root"}, "password": {"secret"}})
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Require().Equal("/admin", rec.Header().Get(echo.HeaderLocation))
	for _, c := range rec.Result().Cookies() {
		if c.Name == "clinic_session" {
			return c
		}
	}
	s.FailNow("cookie сессии не выставлена")
	return nil
}

func (s *RouterTestSuite) TestLanding_DegradesFailedSections() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/?lang=en", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Cardiology")
	s.Contains(rec.Body.String(), `<html lang="en">`)
}

func (s *RouterTestSuite) TestUnknownPath_NotFoundPage() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/no/such/page", nil))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "404")
}

func (s *RouterTestSuite) TestAdmin_RedirectsAnonymous() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/admin/news", nil))

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/login", rec.Header().Get(echo.HeaderLocation))
}

func (s *RouterTestSuite) TestAdminLogin_WrongPasswordShowsServerMessage() {
	rec := s.postForm("/admin/login", url.Values{"username": {"root"}, "password": {"bad"}})

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "Неверный логин или пароль")
	s.Contains(rec.Body.String(), `value="root"`)
}

func (s *RouterTestSuite) TestAdmin_DeleteThenReloadExcludesRow() {
	cookie := s.loginAdmin()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/admin/news", nil), cookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Акция недели")

	rec = s.do(httptest.NewRequest(http.MethodGet, "/admin/news?confirm=2", nil), cookie)
	s.Contains(rec.Body.String(), `action="/admin/news/2/delete"`)

	rec = s.postForm("/admin/news/2/delete", url.Values{}, cookie)
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/news", rec.Header().Get(echo.HeaderLocation))

	rec = s.do(httptest.NewRequest(http.MethodGet, "/admin/news", nil), cookie)
	s.NotContains(rec.Body.String(), "Акция недели")
	s.Contains(rec.Body.String(), "Открытие")
}

func (s *RouterTestSuite) TestAdmin_CreateMissingFieldsKeepsModalOpen() {
	cookie := s.loginAdmin()

	rec := s.postForm("/admin/statistics", url.Values{"title_ru": {"Пациентов"}, "action": {"save"}}, cookie)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "заполните поля")
	s.Contains(rec.Body.String(), `value="Пациентов"`)
}

func (s *RouterTestSuite) TestAdmin_EditModalFromLoadedRow() {
	cookie := s.loginAdmin()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/admin/news?modal=edit&id=2", nil), cookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `action="/admin/news/2"`)
	s.Contains(rec.Body.String(), `value="Акция недели"`)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/admin/news?modal=edit&id=9", nil), cookie)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestAdmin_UnknownEntity() {
	cookie := s.loginAdmin()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/admin/unknown", nil), cookie)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestLogout_ClearsSession() {
	cookie := s.loginAdmin()

	rec := s.postForm("/logout", url.Values{}, cookie)
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/login", rec.Header().Get(echo.HeaderLocation))

	rec = s.do(httptest.NewRequest(http.MethodGet, "/admin", nil), cookie)
	s.Equal(http.StatusSeeOther, rec.Code)
}

func (s *RouterTestSuite) TestReception_AdminExportsPatients() {
	cookie := s.loginAdmin()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/reception/patients/export", nil), cookie)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get(echo.HeaderContentType))
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "patients_")
	s.NotZero(rec.Body.Len())
}

func (s *RouterTestSuite) consultationRequest(fields map[string]string, files map[string]string, staged ...upload.File) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		s.Require().NoError(mw.WriteField(k, v))
	}
	for _, f := range staged {
		s.Require().NoError(mw.WriteField("staged_media", f.Token()))
	}
	for name, content := range files {
		part, err := mw.CreateFormFile("media", name)
		s.Require().NoError(err)
		_, _ = part.Write([]byte(content))
	}
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/consultation", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

func (s *RouterTestSuite) TestConsultation_SendsMultipartAndResets() {
	rec := s.do(s.consultationRequest(map[string]string{
		"first_name":   "Иван",
		"second_name":  "Петров",
		"phone_number": "+7 912 345-67-89",
		"problem":      "Болит голова",
	}, map[string]string{"scan.jpg": "jpeg-bytes"}))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `href="/#consultation"`)
	s.NotContains(rec.Body.String(), "Болит голова")

	s.Backend.mu.Lock()
	defer s.Backend.mu.Unlock()
	s.Require().Len(s.Backend.patients, 1)
	s.Equal("+7 912 345-67-89", s.Backend.patients[0].Get("phone_number"))
	s.Empty(s.Backend.patients[0]["third_name"])
	s.Equal([]string{"scan.jpg"}, s.Backend.files)
}

func (s *RouterTestSuite) TestConsultation_BlankRequiredFieldKeepsInput() {
	rec := s.do(s.consultationRequest(map[string]string{
		"first_name":   "Иван",
		"second_name":  "Петров",
		"phone_number": "+7 912 345-67-89",
		"problem":      "   ",
	}, nil))

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), `7 912 345-67-89"`)
	s.Contains(rec.Body.String(), `class="invalid"`)

	s.Backend.mu.Lock()
	defer s.Backend.mu.Unlock()
	s.Empty(s.Backend.patients)
}

func (s *RouterTestSuite) TestConsultation_AttachKeepsFilesWithoutSubmitting() {
	rec := s.do(s.consultationRequest(map[string]string{
		"first_name": "Иван",
		"action":     "attach",
	}, map[string]string{"scan.jpg": "jpeg-bytes"}))

	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, "scan.jpg")
	s.Contains(body, `name="staged_media"`)
	s.Contains(body, `value="remove_file:0"`)
	s.Contains(body, "10 B")

	s.Backend.mu.Lock()
	defer s.Backend.mu.Unlock()
	s.Empty(s.Backend.patients)
}

func (s *RouterTestSuite) TestConsultation_RemoveStagedFileThenSubmit() {
	staged := []upload.File{
		{Name: "keep.jpg", ContentType: "image/jpeg", Data: []byte("keep")},
		{Name: "drop.jpg", ContentType: "image/jpeg", Data: []byte("drop")},
	}

	rec := s.do(s.consultationRequest(map[string]string{"action": "remove_file:1"}, nil, staged...))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "keep.jpg")
	s.NotContains(rec.Body.String(), "drop.jpg")

	rec = s.do(s.consultationRequest(map[string]string{
		"first_name":   "Иван",
		"second_name":  "Петров",
		"phone_number": "+998901234567",
		"problem":      "Кашель",
	}, nil, staged[0]))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "keep.jpg")

	s.Backend.mu.Lock()
	defer s.Backend.mu.Unlock()
	s.Equal([]string{"keep.jpg"}, s.Backend.files)
}

func (s *RouterTestSuite) TestConsultation_SoftLimitHidesFileInput() {
	staged := make([]upload.File, 10)
	for i := range staged {
		staged[i] = upload.File{Name: fmt.Sprintf("f%d.jpg", i), ContentType: "image/jpeg", Data: []byte("x")}
	}

	rec := s.do(s.consultationRequest(map[string]string{"action": "attach"}, nil, staged...))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "files-full")
	s.NotContains(rec.Body.String(), `name="media" type="file"`)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
