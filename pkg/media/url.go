// Package media превращает пути медиа из ответов бэкенда в ссылки для страниц.
package media

import (
	"strings"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
)

// URL склеивает относительный путь с базой ровно через один слэш.
// Абсолютные http(s) ссылки возвращаются как есть.
func URL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Resolver держит базу медиа из конфига.
type Resolver struct {
	base string
}

func NewResolver(base string) *Resolver {
	return &Resolver{base: base}
}

func (r *Resolver) URL(path string) string {
	return URL(r.base, path)
}

func IsImage(m entities.Media) bool {
	return strings.Contains(strings.ToLower(m.Type), "image")
}

func IsVideo(m entities.Media) bool {
	return strings.Contains(strings.ToLower(m.Type), "video")
}

// FirstImage возвращает первое изображение из списка.
func FirstImage(items []entities.Media) (entities.Media, bool) {
	for _, m := range items {
		if IsImage(m) {
			return m, true
		}
	}
	return entities.Media{}, false
}
