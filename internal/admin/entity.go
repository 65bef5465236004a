// Package admin описывает управляемые из консоли сущности одной схемой:
// поля формы, колонки таблицы, вложенные коллекции и способ отправки.
// Один набор обработчиков обслуживает все сущности по этой схеме.
package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/payload"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindSelect   FieldKind = "select"
	KindPassword FieldKind = "password"
)

type Option struct {
	Value string
	Label string
}

// OptionSource загружает варианты для select (например, список отделений).
type OptionSource func(ctx context.Context, c *apiclient.Client, lang string) ([]Option, error)

type Field struct {
	Name  string
	Label string
	Kind  FieldKind
	// Localized разворачивает поле в name_ru, name_en, name_uz.
	Localized bool
	Required  bool
	Options   []Option
	// OptionsFrom имеет приоритет над Options.
	OptionsFrom OptionSource
}

// Expand возвращает поле как есть или три локализованных варианта.
func (f Field) Expand() []Field {
	if !f.Localized {
		return []Field{f}
	}
	out := make([]Field, 0, len(i18n.FallbackOrder))
	for _, lang := range i18n.FallbackOrder {
		lf := f
		lf.Localized = false
		lf.Name = f.Name + "_" + lang
		lf.Label = f.Label + " " + strings.ToUpper(lang)
		out = append(out, lf)
	}
	return out
}

// Column - колонка таблицы списка.
type Column struct {
	Label string
	Value func(row apiclient.Row, lang string) string
}

// Nested - вложенная коллекция, редактируемая внутри модалки родителя.
type Nested struct {
	Name  string
	Label string
	// SourceKey - ключ коллекции в ответе бэкенда (Services, Branch_techs, awards).
	SourceKey  string
	Collection payload.Collection
	Fields     []Field
}

// FormFields - поля вложенного элемента с развёрнутыми локализациями.
func (n Nested) FormFields() []Field {
	return expandAll(n.Fields)
}

type BodyMode int

const (
	BodyJSON BodyMode = iota
	BodyMultipart
)

type Entity struct {
	Name    string
	Title   string
	Columns []Column
	Fields  []Field
	// MediaField - имя file part-а для файлов самой сущности, "" если файлов нет.
	MediaField string
	Nested     []Nested
	Body       BodyMode
	// Resource выбирает эндпоинты сущности в API-клиенте.
	Resource func(a *apiclient.Admin) apiclient.Resource

	NoCreate bool
	NoEdit   bool
	NoDelete bool
	// Approve включает кнопку одобрения (отзывы).
	Approve bool
}

func (e Entity) FormFields() []Field {
	return expandAll(e.Fields)
}

func (e Entity) NestedByName(name string) (Nested, bool) {
	for _, n := range e.Nested {
		if n.Name == name {
			return n, true
		}
	}
	return Nested{}, false
}

func expandAll(fields []Field) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Expand()...)
	}
	return out
}

// Values переносит значения записи из ответа бэкенда в поля формы.
func (e Entity) Values(row apiclient.Row) map[string]string {
	values := make(map[string]string)
	for _, f := range e.FormFields() {
		if f.Kind == KindPassword {
			continue
		}
		values[f.Name] = Text(row[f.Name])
	}
	return values
}

// NestedRows переносит вложенные коллекции записи в строки формы.
func (e Entity) NestedRows(row apiclient.Row) map[string][]NestedRow {
	out := make(map[string][]NestedRow, len(e.Nested))
	for _, n := range e.Nested {
		items, _ := row[n.SourceKey].([]any)
		rows := make([]NestedRow, 0, len(items))
		for _, raw := range items {
			item, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			nr := NestedRow{ID: Text(item["id"]), Values: make(map[string]string)}
			for _, f := range n.FormFields() {
				nr.Values[f.Name] = Text(item[f.Name])
			}
			rows = append(rows, nr)
		}
		out[n.Name] = rows
	}
	return out
}

// BuildBody собирает тело запроса create или update из отправленной формы.
func (e Entity) BuildBody(mode Mode, sub *Submission) (any, error) {
	if e.Body == BodyJSON {
		return apiclient.JSON(e.jsonValues(sub)), nil
	}

	form := apiclient.NewForm()
	for _, f := range e.FormFields() {
		value := strings.TrimSpace(sub.Values.Get(f.Name))
		if f.Kind == KindPassword && value == "" {
			continue
		}
		form.Field(f.Name, value)
	}
	if e.MediaField != "" {
		form.Files(e.MediaField, sub.Files[e.MediaField])
	}
	for _, n := range e.Nested {
		items := sub.NestedItems(n)
		var err error
		if mode == ModeCreate {
			err = n.Collection.BuildCreate(form, items)
		} else {
			err = n.Collection.BuildUpsert(form, items)
		}
		if err != nil {
			return nil, err
		}
	}
	return form, nil
}

func (e Entity) jsonValues(sub *Submission) map[string]any {
	out := make(map[string]any)
	for _, f := range e.FormFields() {
		value := strings.TrimSpace(sub.Values.Get(f.Name))
		if f.Kind == KindPassword && value == "" {
			continue
		}
		out[f.Name] = fieldValue(f, value)
	}
	return out
}

// fieldValue приводит числовые поля к числу, пустое или неверное число даёт 0.
func fieldValue(f Field, value string) any {
	if f.Kind != KindNumber {
		return value
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0.0
	}
	return n
}

// Validate проверяет обязательные поля, как required в браузере.
func (e Entity) Validate(sub *Submission) error {
	var missing []string
	for _, f := range e.FormFields() {
		if f.Required && strings.TrimSpace(sub.Values.Get(f.Name)) == "" {
			missing = append(missing, f.Label)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("заполните поля: %s", strings.Join(missing, ", "))
	}
	return nil
}

// RowID достаёт id записи в строковом виде.
func RowID(row apiclient.Row) string {
	return Text(row["id"])
}

// FindRow ищет строку загруженного списка по id.
func FindRow(rows []apiclient.Row, id string) (apiclient.Row, bool) {
	if id == "" {
		return nil, false
	}
	for _, row := range rows {
		if RowID(row) == id {
			return row, true
		}
	}
	return nil, false
}

// Text приводит значение из JSON к строке для формы и таблицы.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
