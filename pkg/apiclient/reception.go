package apiclient

import (
	"context"
	"net/http"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
)

// Reception - эндпоинты консоли регистратуры.
type Reception struct {
	c *Client
}

func (c *Client) Reception() *Reception { return &Reception{c: c} }

func (r *Reception) Profile(ctx context.Context) (entities.Reception, error) {
	return fetch[entities.Reception](ctx, r.c, "/reception/profile/me", true)
}

func (r *Reception) EditProfile(ctx context.Context, form *Form) error {
	return send(ctx, r.c, http.MethodPatch, "/reception/profile/me", form, true)
}

func (r *Reception) EditUsername(ctx context.Context, req EditUsernameRequest) error {
	return send(ctx, r.c, http.MethodPatch, "/reception/edit-username", JSON(req), true)
}

func (r *Reception) EditPassword(ctx context.Context, req EditPasswordRequest) error {
	return send(ctx, r.c, http.MethodPatch, "/reception/edit-password", JSON(req), true)
}

// Patients - активные заявки.
func (r *Reception) Patients(ctx context.Context) ([]entities.Patient, error) {
	return fetch[[]entities.Patient](ctx, r.c, "/patient", true)
}

// History - обработанные заявки.
func (r *Reception) History(ctx context.Context) ([]entities.Patient, error) {
	return fetch[[]entities.Patient](ctx, r.c, "/patient/history", true)
}

func (r *Reception) Patient(ctx context.Context, id string) (entities.Patient, error) {
	return fetch[entities.Patient](ctx, r.c, "/patient/"+id, true)
}

func (r *Reception) DeletePatient(ctx context.Context, id string) error {
	return send(ctx, r.c, http.MethodDelete, "/patient/"+id, nil, true)
}

func (r *Reception) Feedbacks(ctx context.Context) ([]entities.Feedback, error) {
	return fetch[[]entities.Feedback](ctx, r.c, "/feedback", true)
}
