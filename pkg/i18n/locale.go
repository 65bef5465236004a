package i18n

import (
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.Russian,
	language.English,
	language.Uzbek,
}

var matcher = language.NewMatcher(supported)

// IsSupported сообщает, есть ли у сайта переводы для языка.
func IsSupported(lang string) bool {
	switch lang {
	case RU, EN, UZ:
		return true
	}
	return false
}

// Detect выбирает язык: явный выбор (query или cookie), затем Accept-Language,
// затем fallback.
func Detect(explicit, acceptLanguage, fallback string) string {
	if IsSupported(explicit) {
		return explicit
	}
	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, idx, confidence := matcher.Match(tags...)
			if confidence != language.No {
				base, _ := supported[idx].Base()
				return base.String()
			}
		}
	}
	if IsSupported(fallback) {
		return fallback
	}
	return RU
}
