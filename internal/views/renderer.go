// Package views рендерит HTML-страницы сайта и консолей.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/admin"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/media"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/upload"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS - стили сайта для e.StaticFS.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page - общие данные любой страницы.
type Page struct {
	Lang  string
	Title string
	Path  string
	// Role - роль текущей сессии, "" для гостя.
	Role  string
	User  map[string]any
	Flash string
	Error string
	Data  any
}

// sharedFiles подключаются к каждой странице: каркас и общие блоки.
var sharedFiles = []string{"templates/layout.html", "templates/partials.html"}

func isShared(p string) bool {
	for _, name := range sharedFiles {
		if p == name {
			return true
		}
	}
	return false
}

// Renderer - echo.Renderer: каждая страница собирается из layout и своего файла.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer(bundle *i18n.Bundle, mediaBase string) (*Renderer, error) {
	funcs := Funcs(bundle, media.NewResolver(mediaBase))

	shared := make([]string, 0, len(sharedFiles))
	for _, name := range sharedFiles {
		raw, err := fs.ReadFile(templateFS, name)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать %s: %w", name, err)
		}
		shared = append(shared, string(raw))
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || isShared(p) {
			return err
		}
		body, err := fs.ReadFile(templateFS, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), path.Ext(p))
		tmpl := template.New(name).Funcs(funcs)
		for _, src := range shared {
			if _, err := tmpl.Parse(src); err != nil {
				return fmt.Errorf("layout: %w", err)
			}
		}
		if _, err := tmpl.Parse(string(body)); err != nil {
			return fmt.Errorf("шаблон %s: %w", name, err)
		}
		r.pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Has сообщает, есть ли страница с таким именем.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("шаблон %s не найден", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// Funcs - функции шаблонов: переводы, локализованные поля, медиа.
func Funcs(bundle *i18n.Bundle, resolver *media.Resolver) template.FuncMap {
	return template.FuncMap{
		"t": bundle.T,
		"title": func(obj any, lang string) string {
			return i18n.Display(obj, "title", lang)
		},
		"description": func(obj any, lang string) string {
			return i18n.Display(obj, "description", lang)
		},
		"content": func(obj any, lang string) string {
			return i18n.Display(obj, "content", lang)
		},
		"mediaURL": resolver.URL,
		"firstImage": func(items []entities.Media) string {
			if m, ok := media.FirstImage(items); ok {
				return resolver.URL(m.URL)
			}
			return ""
		},
		"isVideo":   media.IsVideo,
		"humanSize": upload.HumanSize,
		"nestedName": func(collection string, index int, field string) string {
			return admin.NestedFieldName(collection, index, field)
		},
		"cell": func(col admin.Column, row map[string]any, lang string) string {
			return col.Value(row, lang)
		},
		"rowID":    func(row map[string]any) string { return admin.RowID(row) },
		"approved": func(row map[string]any) bool { return admin.IsApproved(row) },
		"upper":    strings.ToUpper,
		"truncate": func(s string, n int) string {
			r := []rune(s)
			if len(r) <= n {
				return s
			}
			return string(r[:n]) + "..."
		},
		"price": func(v float64) string {
			return formatPrice(v)
		},
		"number": func(v float64) string {
			return formatPrice(v)
		},
		"add":   func(a, b int) int { return a + b },
		"langs": func() []string { return i18n.FallbackOrder },
		"bind": func(item any, lang string) map[string]any {
			return map[string]any{"Item": item, "Lang": lang}
		},
		"limit": func(n int, items any) any {
			return limit(items, n)
		},
	}
}
