package config

// UploadConfig - правила списка загружаемых файлов для формы.
type UploadConfig struct {
	// Accept уходит в атрибут accept поля input и нигде не проверяется.
	Accept string
	// MaxFiles - мягкое ограничение: после него кнопка добавления скрывается,
	// но отправку формы оно не блокирует.
	MaxFiles int
}

var UploadContexts = map[string]UploadConfig{
	"media": {
		Accept:   "image/*,video/*",
		MaxFiles: 10,
	},
	"consultation": {
		Accept:   "image/*,video/*,application/pdf",
		MaxFiles: 10,
	},
	"avatar": {
		Accept:   "image/*",
		MaxFiles: 1,
	},
}

// UploadContext возвращает правила по имени, для неизвестного имени - "media".
func UploadContext(name string) UploadConfig {
	if rules, ok := UploadContexts[name]; ok {
		return rules
	}
	return UploadContexts["media"]
}
