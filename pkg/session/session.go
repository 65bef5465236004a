// Package session - состояние авторизации посетителя: токены, роль и профиль.
// Хранится в Store под случайным id из cookie, поэтому переживает перезагрузку.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/contextkeys"
)

// Ключи, под которыми сессия лежит в хранилище.
const (
	KeyToken        = "clinic_token"
	KeyRefreshToken = "clinic_refresh_token"
	KeyRole         = "clinic_role"
	KeyUser         = "clinic_user"
)

const (
	RoleAdmin     = "ADMIN"
	RoleReception = "RECEPTION"
)

// LoginData - то, что сохраняется после успешного входа.
type LoginData struct {
	Token        string
	RefreshToken string
	Role         string
	User         json.RawMessage
}

type Manager struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(store Store, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{store: store, ttl: ttl, logger: logger.Named("session"), now: time.Now}
}

// Open загружает сессию по id из cookie. Пустой или неизвестный хранилищу id
// даёт новую сессию со свежим id, которая попадёт в хранилище только после Login.
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	s := &Session{id: id, manager: m}
	if id == "" {
		s.id = uuid.NewString()
		return s, nil
	}
	values, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		s.id = uuid.NewString()
		return s, nil
	}
	s.apply(values)
	return s, nil
}

// Session - явный объект сессии, который middleware кладёт в контекст запроса.
// Все чтения и записи ключей проходят через него.
type Session struct {
	id      string
	manager *Manager

	token        string
	refreshToken string
	role         string
	user         string
}

func (s *Session) ID() string { return s.id }

func (s *Session) Token() string { return s.token }

func (s *Session) RefreshToken() string { return s.refreshToken }

// Role возвращает "" если роль не сохранена.
func (s *Session) Role() string { return s.role }

// IsAuthenticated зависит только от наличия токена.
func (s *Session) IsAuthenticated() bool { return s.token != "" }

// HasRole сообщает, совпадает ли роль сессии с одной из перечисленных.
func (s *Session) HasRole(roles ...string) bool {
	for _, r := range roles {
		if s.role == r {
			return true
		}
	}
	return false
}

// User возвращает сохранённый профиль или nil, если его нет или он битый.
func (s *Session) User() map[string]any {
	if s.user == "" || s.user == "undefined" || s.user == "null" {
		return nil
	}
	var u map[string]any
	if err := json.Unmarshal([]byte(s.user), &u); err != nil {
		return nil
	}
	return u
}

// Login сохраняет токены, роль и профиль после успешного обмена учётных данных.
// Сессия каждый раз получает новый id, прежняя запись удаляется.
func (s *Session) Login(ctx context.Context, data LoginData) error {
	if err := s.manager.store.Delete(ctx, s.id); err != nil {
		return err
	}
	s.id = uuid.NewString()
	s.token = data.Token
	s.refreshToken = data.RefreshToken
	s.role = data.Role
	s.user = ""
	if len(data.User) > 0 {
		s.user = string(data.User)
	}
	return s.persist(ctx)
}

// SetUser обновляет кешированный профиль (после загрузки /profile).
func (s *Session) SetUser(ctx context.Context, user any) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать профиль: %w", err)
	}
	s.user = string(raw)
	return s.persist(ctx)
}

// Logout удаляет все четыре ключа и сбрасывает состояние в памяти.
func (s *Session) Logout(ctx context.Context) error {
	s.token, s.refreshToken, s.role, s.user = "", "", "", ""
	if err := s.manager.store.Delete(ctx, s.id); err != nil {
		return err
	}
	s.manager.logger.Debug("Сессия очищена", zap.String("session", s.shortID()))
	return nil
}

// RemoveToken - синоним Logout.
func (s *Session) RemoveToken(ctx context.Context) error { return s.Logout(ctx) }

// Refresh перечитывает ключи из хранилища (например, после входа в другой вкладке).
func (s *Session) Refresh(ctx context.Context) error {
	values, err := s.manager.store.Load(ctx, s.id)
	if err != nil {
		return err
	}
	s.apply(values)
	return nil
}

func (s *Session) apply(values map[string]string) {
	s.token = values[KeyToken]
	s.refreshToken = values[KeyRefreshToken]
	s.role = values[KeyRole]
	s.user = values[KeyUser]
}

func (s *Session) persist(ctx context.Context) error {
	values := make(map[string]string, 4)
	for k, v := range map[string]string{
		KeyToken:        s.token,
		KeyRefreshToken: s.refreshToken,
		KeyRole:         s.role,
		KeyUser:         s.user,
	} {
		if v != "" {
			values[k] = v
		}
	}
	ttl := sessionTTL(s.token, s.manager.ttl, s.manager.now())
	if err := s.manager.store.Save(ctx, s.id, values, ttl); err != nil {
		return err
	}
	s.manager.logger.Debug("Сессия сохранена",
		zap.String("session", s.shortID()),
		zap.String("role", s.role),
		zap.Duration("ttl", ttl),
	)
	return nil
}

func (s *Session) shortID() string {
	if len(s.id) > 8 {
		return s.id[:8]
	}
	return s.id
}

func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextkeys.SessionKey, s)
}

func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextkeys.SessionKey).(*Session)
	return s
}

// TokenFromContext - источник токена для API-клиента.
func TokenFromContext(ctx context.Context) string {
	if s := FromContext(ctx); s != nil {
		return s.Token()
	}
	return ""
}
