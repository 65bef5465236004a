package apiclient

import (
	"context"
	"net/http"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
)

// Admin - эндпоинты консоли администратора, все с токеном.
type Admin struct {
	c *Client
}

func (c *Client) Admin() *Admin { return &Admin{c: c} }

func (a *Admin) Profile(ctx context.Context) (Row, error) {
	return fetch[Row](ctx, a.c, "/admin/profile", true)
}

type EditUsernameRequest struct {
	Username string `json:"username"`
}

type EditPasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (a *Admin) EditUsername(ctx context.Context, req EditUsernameRequest) error {
	return send(ctx, a.c, http.MethodPatch, "/admin/edit-username", JSON(req), true)
}

func (a *Admin) EditPassword(ctx context.Context, req EditPasswordRequest) error {
	return send(ctx, a.c, http.MethodPatch, "/admin/edit-password", JSON(req), true)
}

func (a *Admin) Admins() Resource {
	return a.c.Resource("/admin").WithCreatePath("/admin/create").WithAuthList()
}

func (a *Admin) About() Resource { return a.c.Resource("/about/us") }

func (a *Admin) AdditionalInfo() Resource { return a.c.Resource("/additional/info") }

func (a *Admin) Branches() Resource { return a.c.Resource("/branch") }

func (a *Admin) Contacts() Resource { return a.c.Resource("/contact") }

func (a *Admin) Doctors() Resource { return a.c.Resource("/doctor") }

func (a *Admin) Gallery() Resource { return a.c.Resource("/gallery") }

func (a *Admin) News() Resource { return a.c.Resource("/news") }

// Statistics - единственная коллекция, которая обновляется через PUT.
func (a *Admin) Statistics() Resource {
	return a.c.Resource("/statistics").WithUpdateMethod(http.MethodPut)
}

func (a *Admin) Receptions() Resource { return a.c.Resource("/reception").WithAuthList() }

func (a *Admin) Feedbacks() Resource { return a.c.Resource("/feedback").WithAuthList() }

func (a *Admin) AllFeedbacks(ctx context.Context) ([]entities.Feedback, error) {
	return fetch[[]entities.Feedback](ctx, a.c, "/feedback", true)
}

func (a *Admin) ApproveFeedback(ctx context.Context, id string) error {
	return send(ctx, a.c, http.MethodPatch, "/feedback/"+id+"/approve", nil, true)
}
