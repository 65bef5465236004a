package apiclient

import (
	"context"
	"net/http"
)

// Row - запись коллекции в том виде, в каком её отдал бэкенд.
type Row = map[string]any

// Resource - CRUD-эндпоинты одной коллекции. Пути у некоторых сущностей
// отличаются (создание админа - /admin/create), поэтому задаются по отдельности.
type Resource struct {
	c            *Client
	listPath     string
	itemPath     string
	createPath   string
	updateMethod string
	listAuth     bool
}

func (c *Client) Resource(path string) Resource {
	return Resource{
		c:            c,
		listPath:     path,
		itemPath:     path,
		createPath:   path,
		updateMethod: http.MethodPatch,
	}
}

func (r Resource) WithCreatePath(path string) Resource { r.createPath = path; return r }

func (r Resource) WithUpdateMethod(method string) Resource { r.updateMethod = method; return r }

func (r Resource) WithListPath(path string) Resource { r.listPath = path; return r }

// WithAuthList - список доступен только с токеном (отзывы, регистраторы).
func (r Resource) WithAuthList() Resource { r.listAuth = true; return r }

func (r Resource) Path() string { return r.itemPath }

func (r Resource) List(ctx context.Context) ([]Row, error) {
	return fetch[[]Row](ctx, r.c, r.listPath, r.listAuth)
}

func (r Resource) Get(ctx context.Context, id string) (Row, error) {
	return fetch[Row](ctx, r.c, r.itemPath+"/"+id, r.listAuth)
}

func (r Resource) Create(ctx context.Context, body any) error {
	return send(ctx, r.c, http.MethodPost, r.createPath, body, true)
}

func (r Resource) Update(ctx context.Context, id string, body any) error {
	return send(ctx, r.c, r.updateMethod, r.itemPath+"/"+id, body, true)
}

func (r Resource) Delete(ctx context.Context, id string) error {
	return send(ctx, r.c, http.MethodDelete, r.itemPath+"/"+id, nil, true)
}
