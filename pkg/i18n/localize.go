// Package i18n выбирает активный язык и достаёт локализованные поля сущностей.
package i18n

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	RU = "ru"
	EN = "en"
	UZ = "uz"
)

// FallbackOrder - порядок, в котором пробуются суффиксы после активного языка.
var FallbackOrder = []string{RU, EN, UZ}

// Resolve возвращает obj[prefix_locale], а если оно пустое - первое непустое
// из prefix_ru, prefix_en, prefix_uz. obj может быть map со строковыми ключами
// или структурой (ключ ищется по json-тегу). Если ничего нет, возвращает "".
func Resolve(obj any, prefix, locale string) string {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	if locale != "" {
		if s := lookup(v, prefix+"_"+locale); s != "" {
			return s
		}
	}
	for _, lang := range FallbackOrder {
		if s := lookup(v, prefix+"_"+lang); s != "" {
			return s
		}
	}
	return ""
}

func Title(obj any, locale string) string       { return Resolve(obj, "title", locale) }
func Description(obj any, locale string) string { return Resolve(obj, "description", locale) }
func Content(obj any, locale string) string     { return Resolve(obj, "content", locale) }

func lookup(v reflect.Value, key string) string {
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return ""
		}
		item := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !item.IsValid() {
			return ""
		}
		return stringify(item)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name := strings.Split(field.Tag.Get("json"), ",")[0]
			if name == key || (name == "" && strings.EqualFold(field.Name, key)) {
				return stringify(v.Field(i))
			}
		}
	}
	return ""
}

func stringify(v reflect.Value) string {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}

// Display - как Resolve, но если локализованных полей нет совсем,
// берёт поле без суффикса (у отделений title хранится без языка).
// Пробелы по краям срезаются только здесь, при выводе.
func Display(obj any, prefix, locale string) string {
	if s := Resolve(obj, prefix, locale); s != "" {
		return strings.TrimSpace(s)
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	return strings.TrimSpace(lookup(v, prefix))
}
