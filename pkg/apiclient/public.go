package apiclient

import (
	"context"
	"net/http"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
)

// Public - эндпоинты без авторизации.
type Public struct {
	c *Client
}

func (c *Client) Public() *Public { return &Public{c: c} }

func (p *Public) AboutUs(ctx context.Context) ([]entities.AboutUs, error) {
	return fetch[[]entities.AboutUs](ctx, p.c, "/about/us", false)
}

func (p *Public) AdditionalInfo(ctx context.Context) ([]entities.AdditionalInfo, error) {
	return fetch[[]entities.AdditionalInfo](ctx, p.c, "/additional/info", false)
}

func (p *Public) Branches(ctx context.Context) ([]entities.Branch, error) {
	return fetch[[]entities.Branch](ctx, p.c, "/branch", false)
}

func (p *Public) Branch(ctx context.Context, id string) (entities.Branch, error) {
	return fetch[entities.Branch](ctx, p.c, "/branch/"+id, false)
}

func (p *Public) Contacts(ctx context.Context) ([]entities.Contact, error) {
	return fetch[[]entities.Contact](ctx, p.c, "/contact", false)
}

func (p *Public) Doctors(ctx context.Context) ([]entities.Doctor, error) {
	return fetch[[]entities.Doctor](ctx, p.c, "/doctor", false)
}

func (p *Public) Doctor(ctx context.Context, id string) (entities.Doctor, error) {
	return fetch[entities.Doctor](ctx, p.c, "/doctor/"+id, false)
}

func (p *Public) ApprovedFeedbacks(ctx context.Context) ([]entities.Feedback, error) {
	return fetch[[]entities.Feedback](ctx, p.c, "/feedback/approved", false)
}

// FeedbackRequest - публичный отзыв, до одобрения на сайте не виден.
type FeedbackRequest struct {
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Content     string `json:"content"`
}

func (p *Public) LeaveFeedback(ctx context.Context, req FeedbackRequest) error {
	return send(ctx, p.c, http.MethodPost, "/feedback", JSON(req), false)
}

func (p *Public) Gallery(ctx context.Context) ([]entities.GalleryItem, error) {
	return fetch[[]entities.GalleryItem](ctx, p.c, "/gallery", false)
}

func (p *Public) GalleryItem(ctx context.Context, id string) (entities.GalleryItem, error) {
	return fetch[entities.GalleryItem](ctx, p.c, "/gallery/"+id, false)
}

func (p *Public) News(ctx context.Context) ([]entities.News, error) {
	return fetch[[]entities.News](ctx, p.c, "/news", false)
}

func (p *Public) NewsItem(ctx context.Context, id string) (entities.News, error) {
	return fetch[entities.News](ctx, p.c, "/news/"+id, false)
}

func (p *Public) Statistics(ctx context.Context) ([]entities.Statistic, error) {
	return fetch[[]entities.Statistic](ctx, p.c, "/statistics", false)
}

// CreatePatient - публичная заявка на консультацию, файлы в поле media.
func (p *Public) CreatePatient(ctx context.Context, form *Form) error {
	return send(ctx, p.c, http.MethodPost, "/patient", form, false)
}
