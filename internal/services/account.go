package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/dto"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/upload"
)

// AuthService обменивает учётные данные на токены и кладёт их в сессию.
type AuthService struct {
	api    *apiclient.Client
	logger *zap.Logger
}

func NewAuthService(api *apiclient.Client, logger *zap.Logger) *AuthService {
	return &AuthService{api: api, logger: logger}
}

func (s *AuthService) LoginAdmin(ctx context.Context, sess *session.Session, form dto.LoginDTO) error {
	res, err := s.api.AdminLogin(ctx, apiclient.Credentials{Username: form.Username, Password: form.Password})
	if err != nil {
		s.logger.Warn("Вход администратора отклонён", zap.String("username", form.Username), zap.Error(err))
		return err
	}
	s.logger.Info("Администратор вошёл", zap.String("username", form.Username))
	return sess.Login(ctx, session.LoginData{Token: res.Token, Role: session.RoleAdmin, User: res.User})
}

// LoginReception сохраняет оба токена; профиль подтягивается отдельным запросом
// уже с новым токеном. Ошибка профиля вход не отменяет.
func (s *AuthService) LoginReception(ctx context.Context, sess *session.Session, form dto.LoginDTO) error {
	res, err := s.api.ReceptionLogin(ctx, apiclient.Credentials{Username: form.Username, Password: form.Password})
	if err != nil {
		s.logger.Warn("Вход регистратора отклонён", zap.String("username", form.Username), zap.Error(err))
		return err
	}
	if err := sess.Login(ctx, session.LoginData{
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
		Role:         session.RoleReception,
	}); err != nil {
		return err
	}

	profile, err := s.api.Reception().Profile(session.WithContext(ctx, sess))
	if err != nil {
		s.logger.Warn("Профиль регистратора не загружен", zap.Error(err))
		return nil
	}
	if err := sess.SetUser(ctx, profile); err != nil {
		s.logger.Warn("Профиль регистратора не сохранён в сессии", zap.Error(err))
	}
	s.logger.Info("Регистратор вошёл", zap.String("username", form.Username))
	return nil
}

func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	return sess.Logout(ctx)
}

// ProfileService - профиль и учётные данные текущего пользователя консоли.
type ProfileService struct {
	api    *apiclient.Client
	logger *zap.Logger
}

func NewProfileService(api *apiclient.Client, logger *zap.Logger) *ProfileService {
	return &ProfileService{api: api, logger: logger}
}

func (s *ProfileService) AdminProfile(ctx context.Context) (apiclient.Row, error) {
	return s.api.Admin().Profile(ctx)
}

func (s *ProfileService) ReceptionProfile(ctx context.Context) (entities.Reception, error) {
	return s.api.Reception().Profile(ctx)
}

func (s *ProfileService) EditUsername(ctx context.Context, role string, form dto.EditUsernameDTO) error {
	req := apiclient.EditUsernameRequest{Username: form.Username}
	if role == session.RoleReception {
		return s.api.Reception().EditUsername(ctx, req)
	}
	return s.api.Admin().EditUsername(ctx, req)
}

func (s *ProfileService) EditPassword(ctx context.Context, role string, form dto.EditPasswordDTO) error {
	req := apiclient.EditPasswordRequest{OldPassword: form.OldPassword, NewPassword: form.NewPassword}
	if role == session.RoleReception {
		return s.api.Reception().EditPassword(ctx, req)
	}
	return s.api.Admin().EditPassword(ctx, req)
}

// EditReceptionProfile - multipart: имя, фамилия и новый аватар в media.
func (s *ProfileService) EditReceptionProfile(ctx context.Context, form dto.ReceptionProfileDTO, files []upload.File) error {
	body := apiclient.NewForm().
		FieldIfNotEmpty("first_name", form.FirstName).
		FieldIfNotEmpty("second_name", form.SecondName).
		Files("media", files)
	return s.api.Reception().EditProfile(ctx, body)
}
