package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle хранит строки интерфейса для всех языков.
type Bundle struct {
	messages map[string]map[string]string
}

// LoadBundle читает встроенные файлы locales/<lang>.json.
func LoadBundle() (*Bundle, error) {
	b := &Bundle{messages: make(map[string]map[string]string)}
	for _, lang := range FallbackOrder {
		raw, err := localeFS.ReadFile(path.Join("locales", lang+".json"))
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать словарь %s: %w", lang, err)
		}
		var dict map[string]string
		if err := json.Unmarshal(raw, &dict); err != nil {
			return nil, fmt.Errorf("не удалось разобрать словарь %s: %w", lang, err)
		}
		b.messages[lang] = dict
	}
	return b, nil
}

// T возвращает перевод ключа; если его нет, берёт русский, затем сам ключ.
func (b *Bundle) T(lang, key string) string {
	if s, ok := b.messages[lang][key]; ok && s != "" {
		return s
	}
	if s, ok := b.messages[RU][key]; ok && s != "" {
		return s
	}
	return key
}
