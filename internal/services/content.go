package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
)

// Сколько элементов каждой секции показывает главная страница.
const (
	LandingDoctors   = 8
	LandingServices  = 12
	LandingNews      = 6
	LandingMedia     = 16
	LandingFeedbacks = 6
)

// LandingData - все секции главной страницы. Секция, которая не загрузилась,
// остаётся пустой и не ломает остальные.
type LandingData struct {
	About      []entities.AboutUs
	Statistics []entities.Statistic
	Branches   []entities.Branch
	Doctors    []entities.Doctor
	News       []entities.News
	Gallery    []entities.GalleryItem
	Feedbacks  []entities.Feedback
	Contacts   []entities.Contact
}

// Services - услуги всех отделений одним списком.
func (d LandingData) Services() []entities.Service {
	var out []entities.Service
	for _, b := range d.Branches {
		out = append(out, b.Services...)
	}
	return out
}

// GalleryMedia - медиа всех альбомов галереи одним списком.
func (d LandingData) GalleryMedia() []entities.Media {
	var out []entities.Media
	for _, g := range d.Gallery {
		out = append(out, g.Media...)
	}
	return out
}

// Counts - счётчики обзора консоли администратора.
type Counts struct {
	Branches   int
	Doctors    int
	News       int
	Gallery    int
	Statistics int
	Feedbacks  int
	Receptions int
	Contacts   int
}

type ContentServiceInterface interface {
	Landing(ctx context.Context) LandingData
	Overview(ctx context.Context) Counts
	Branches(ctx context.Context) []entities.Branch
	Branch(ctx context.Context, id string) (entities.Branch, error)
	Doctors(ctx context.Context) []entities.Doctor
	Doctor(ctx context.Context, id string) (entities.Doctor, error)
	News(ctx context.Context) []entities.News
	NewsItem(ctx context.Context, id string) (entities.News, error)
	Gallery(ctx context.Context) []entities.GalleryItem
	GalleryItem(ctx context.Context, id string) (entities.GalleryItem, error)
}

type ContentService struct {
	api    *apiclient.Client
	logger *zap.Logger
}

func NewContentService(api *apiclient.Client, logger *zap.Logger) ContentServiceInterface {
	return &ContentService{api: api, logger: logger}
}

// settle запускает загрузку секции в группе. Горутина всегда возвращает nil:
// ошибка пишется в лог, а dst остаётся пустым.
func settle[T any](ctx context.Context, g *errgroup.Group, logger *zap.Logger, section string, dst *[]T, load func(context.Context) ([]T, error)) {
	g.Go(func() error {
		items, err := load(ctx)
		if err != nil {
			logger.Warn("Секция не загружена", zap.String("section", section), zap.Error(err))
			return nil
		}
		*dst = items
		return nil
	})
}

func (s *ContentService) Landing(ctx context.Context) LandingData {
	var (
		data LandingData
		g    errgroup.Group
		pub  = s.api.Public()
	)
	settle(ctx, &g, s.logger, "about", &data.About, pub.AboutUs)
	settle(ctx, &g, s.logger, "statistics", &data.Statistics, pub.Statistics)
	settle(ctx, &g, s.logger, "branches", &data.Branches, pub.Branches)
	settle(ctx, &g, s.logger, "doctors", &data.Doctors, pub.Doctors)
	settle(ctx, &g, s.logger, "news", &data.News, pub.News)
	settle(ctx, &g, s.logger, "gallery", &data.Gallery, pub.Gallery)
	settle(ctx, &g, s.logger, "feedbacks", &data.Feedbacks, pub.ApprovedFeedbacks)
	settle(ctx, &g, s.logger, "contacts", &data.Contacts, pub.Contacts)
	_ = g.Wait()
	return data
}

// Overview считает записи восьми коллекций; недоступная коллекция даёт 0.
func (s *ContentService) Overview(ctx context.Context) Counts {
	var (
		g          errgroup.Group
		pub        = s.api.Public()
		adm        = s.api.Admin()
		branches   []entities.Branch
		doctors    []entities.Doctor
		news       []entities.News
		gallery    []entities.GalleryItem
		stats      []entities.Statistic
		feedbacks  []entities.Feedback
		receptions []apiclient.Row
		contacts   []entities.Contact
	)
	settle(ctx, &g, s.logger, "branches", &branches, pub.Branches)
	settle(ctx, &g, s.logger, "doctors", &doctors, pub.Doctors)
	settle(ctx, &g, s.logger, "news", &news, pub.News)
	settle(ctx, &g, s.logger, "gallery", &gallery, pub.Gallery)
	settle(ctx, &g, s.logger, "statistics", &stats, pub.Statistics)
	settle(ctx, &g, s.logger, "feedbacks", &feedbacks, adm.AllFeedbacks)
	settle(ctx, &g, s.logger, "receptions", &receptions, adm.Receptions().List)
	settle(ctx, &g, s.logger, "contacts", &contacts, pub.Contacts)
	_ = g.Wait()

	return Counts{
		Branches:   len(branches),
		Doctors:    len(doctors),
		News:       len(news),
		Gallery:    len(gallery),
		Statistics: len(stats),
		Feedbacks:  len(feedbacks),
		Receptions: len(receptions),
		Contacts:   len(contacts),
	}
}

// Списки отдельных страниц: ошибка даёт пустой список, как на главной.

func (s *ContentService) Branches(ctx context.Context) []entities.Branch {
	items, err := s.api.Public().Branches(ctx)
	return orEmpty(s.logger, "branches", items, err)
}

func (s *ContentService) Branch(ctx context.Context, id string) (entities.Branch, error) {
	return s.api.Public().Branch(ctx, id)
}

func (s *ContentService) Doctors(ctx context.Context) []entities.Doctor {
	items, err := s.api.Public().Doctors(ctx)
	return orEmpty(s.logger, "doctors", items, err)
}

func (s *ContentService) Doctor(ctx context.Context, id string) (entities.Doctor, error) {
	return s.api.Public().Doctor(ctx, id)
}

func (s *ContentService) News(ctx context.Context) []entities.News {
	items, err := s.api.Public().News(ctx)
	return orEmpty(s.logger, "news", items, err)
}

func (s *ContentService) NewsItem(ctx context.Context, id string) (entities.News, error) {
	return s.api.Public().NewsItem(ctx, id)
}

func (s *ContentService) Gallery(ctx context.Context) []entities.GalleryItem {
	items, err := s.api.Public().Gallery(ctx)
	return orEmpty(s.logger, "gallery", items, err)
}

func (s *ContentService) GalleryItem(ctx context.Context, id string) (entities.GalleryItem, error) {
	return s.api.Public().GalleryItem(ctx, id)
}

func orEmpty[T any](logger *zap.Logger, section string, items []T, err error) []T {
	if err != nil {
		logger.Warn("Список не загружен", zap.String("section", section), zap.Error(err))
		return nil
	}
	return items
}
