package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/admin"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	apperrors "github.com/Obkeldiyev/vitality-clinic-hub/pkg/errors"
)

// AdminService выполняет CRUD любой сущности консоли по её схеме.
type AdminService struct {
	api    *apiclient.Client
	logger *zap.Logger
}

func NewAdminService(api *apiclient.Client, logger *zap.Logger) *AdminService {
	return &AdminService{api: api, logger: logger}
}

func (s *AdminService) resource(e admin.Entity) apiclient.Resource {
	return e.Resource(s.api.Admin())
}

// List всегда загружает коллекцию целиком, пагинации у бэкенда нет.
func (s *AdminService) List(ctx context.Context, e admin.Entity) ([]apiclient.Row, error) {
	rows, err := s.resource(e).List(ctx)
	if err != nil {
		s.logger.Error("Ошибка загрузки списка", zap.String("entity", e.Name), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// Save создаёт или обновляет запись. Ошибка бэкенда возвращается как есть,
// её сообщение показывается в модалке.
func (s *AdminService) Save(ctx context.Context, e admin.Entity, mode admin.Mode, id string, sub *admin.Submission) error {
	body, err := e.BuildBody(mode, sub)
	if err != nil {
		return err
	}
	res := s.resource(e)
	if mode == admin.ModeCreate {
		err = res.Create(ctx, body)
	} else {
		err = res.Update(ctx, id, body)
	}
	if err != nil {
		s.logger.Warn("Сохранение отклонено", zap.String("entity", e.Name), zap.String("mode", string(mode)), zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("Запись сохранена", zap.String("entity", e.Name), zap.String("mode", string(mode)), zap.String("id", id))
	return nil
}

func (s *AdminService) Delete(ctx context.Context, e admin.Entity, id string) error {
	if e.NoDelete {
		return apperrors.NewBadRequestError("удаление недоступно")
	}
	if err := s.resource(e).Delete(ctx, id); err != nil {
		s.logger.Warn("Удаление отклонено", zap.String("entity", e.Name), zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("Запись удалена", zap.String("entity", e.Name), zap.String("id", id))
	return nil
}

func (s *AdminService) Approve(ctx context.Context, id string) error {
	return s.api.Admin().ApproveFeedback(ctx, id)
}

// Options загружает варианты для select-полей сущности.
// Ошибка источника оставляет список пустым.
func (s *AdminService) Options(ctx context.Context, e admin.Entity, lang string) map[string][]admin.Option {
	out := make(map[string][]admin.Option)
	for _, f := range e.FormFields() {
		if f.Kind != admin.KindSelect {
			continue
		}
		if f.OptionsFrom == nil {
			out[f.Name] = f.Options
			continue
		}
		opts, err := f.OptionsFrom(ctx, s.api, lang)
		if err != nil {
			s.logger.Warn("Варианты не загружены", zap.String("field", f.Name), zap.Error(err))
		}
		out[f.Name] = opts
	}
	return out
}
