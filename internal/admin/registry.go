package admin

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/payload"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
)

// Registry - сущности консоли в порядке пунктов меню.
type Registry struct {
	entities []Entity
	byName   map[string]Entity
}

func NewRegistry(entities ...Entity) *Registry {
	r := &Registry{byName: make(map[string]Entity, len(entities))}
	for _, e := range entities {
		r.entities = append(r.entities, e)
		r.byName[e.Name] = e
	}
	return r
}

func (r *Registry) Get(name string) (Entity, bool) {
	e, ok := r.byName[name]
	return e, ok
}

func (r *Registry) All() []Entity { return r.entities }

// DefaultRegistry - все сущности консоли администратора.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Branches,
		Doctors,
		News,
		Gallery,
		Statistics,
		Feedback,
		Receptions,
		About,
		AdditionalInfo,
		Contacts,
		Admins,
	)
}

var Branches = Entity{
	Name:  "branches",
	Title: "Отделения",
	Columns: []Column{
		idColumn(0),
		{Label: "Название", Value: func(r apiclient.Row, lang string) string { return i18n.Display(r, "title", lang) }},
		countColumn("Услуги", "Services"),
		countColumn("Оборудование", "Branch_techs"),
		countColumn("Врачи", "doctors"),
	},
	Fields: []Field{
		{Name: "title", Label: "Название", Kind: KindText, Required: true},
		{Name: "description", Label: "Описание", Kind: KindTextarea, Required: true},
	},
	MediaField: "branch_media",
	Nested: []Nested{
		{
			Name:      "services",
			Label:     "Услуги",
			SourceKey: "Services",
			Collection: payload.Collection{
				CreateField: "services",
				UpsertField: "services_upsert",
				MediaPrefix: "service_media",
				KeyLetter:   "s",
			},
			Fields: []Field{
				{Name: "title", Label: "Название", Kind: KindText, Localized: true},
				{Name: "price", Label: "Цена", Kind: KindNumber},
			},
		},
		{
			Name:      "techs",
			Label:     "Оборудование",
			SourceKey: "Branch_techs",
			Collection: payload.Collection{
				CreateField: "techs",
				UpsertField: "techs_upsert",
				MediaPrefix: "tech_media",
				KeyLetter:   "t",
			},
			Fields: []Field{
				{Name: "title", Label: "Название", Kind: KindText},
				{Name: "description", Label: "Описание", Kind: KindTextarea},
			},
		},
	},
	Body:     BodyMultipart,
	Resource: func(a *apiclient.Admin) apiclient.Resource { return a.Branches() },
}

var Doctors = Entity{
	Name:  "doctors",
	Title: "Врачи",
	Columns: []Column{
		idColumn(8),
		{Label: "Имя", Value: func(r apiclient.Row, _ string) string {
			return strings.TrimSpace(Text(r["first_name"]) + " " + Text(r["second_name"]))
		}},
		truncColumn("Описание", "description", 40),
		{Label: "Отделение", Value: func(r apiclient.Row, lang string) string {
			if branch, ok := r["branch"].(map[string]any); ok {
				if title := i18n.Display(branch, "title", lang); title != "" {
					return title
				}
			}
			return Text(r["branch_id"])
		}},
		countColumn("Награды", "awards"),
	},
	Fields: []Field{
		{Name: "first_name", Label: "Имя", Kind: KindText, Required: true},
		{Name: "second_name", Label: "Фамилия", Kind: KindText, Required: true},
		{Name: "third_name", Label: "Отчество (необяз.)", Kind: KindText},
		{Name: "description", Label: "Описание", Kind: KindTextarea},
		{Name: "branch_id", Label: "Отделение", Kind: KindSelect, Required: true, OptionsFrom: BranchOptions},
	},
	MediaField: "doctor_media",
	Nested: []Nested{
		{
			Name:      "awards",
			Label:     "Награды",
			SourceKey: "awards",
			Collection: payload.Collection{
				CreateField: "awards",
				UpsertField: "awards_upsert",
				MediaPrefix: "award_media",
				KeyLetter:   "a",
			},
			Fields: []Field{
				{Name: "title", Label: "Название", Kind: KindText},
				{Name: "level", Label: "Уровень", Kind: KindText},
			},
		},
	},
	Body:     BodyMultipart,
	Resource: func(a *apiclient.Admin) apiclient.Resource { return a.Doctors() },
}

var News = Entity{
	Name:  "news",
	Title: "Новости",
	Columns: []Column{
		idColumn(0),
		localizedColumn("Заголовок", "title"),
		countColumn("Медиа", "media"),
	},
	Fields: []Field{
		{Name: "title", Label: "Заголовок", Kind: KindText, Localized: true},
		{Name: "description", Label: "Текст", Kind: KindTextarea, Localized: true},
	},
	MediaField: "media",
	Body:       BodyMultipart,
	Resource:   func(a *apiclient.Admin) apiclient.Resource { return a.News() },
}

var Gallery = Entity{
	Name:  "gallery",
	Title: "Галерея",
	Columns: []Column{
		idColumn(0),
		localizedColumn("Название", "title"),
		countColumn("Медиа", "media"),
	},
	Fields: []Field{
		{Name: "title", Label: "Название", Kind: KindText, Localized: true},
	},
	MediaField: "media",
	Body:       BodyMultipart,
	Resource:   func(a *apiclient.Admin) apiclient.Resource { return a.Gallery() },
}

var Statistics = Entity{
	Name:  "statistics",
	Title: "Статистика",
	Columns: []Column{
		idColumn(0),
		localizedColumn("Название", "title"),
		{Label: "Число", Value: func(r apiclient.Row, _ string) string { return Text(r["number"]) }},
	},
	Fields: []Field{
		{Name: "title", Label: "Название", Kind: KindText, Localized: true},
		{Name: "number", Label: "Число", Kind: KindNumber, Required: true},
	},
	Body:     BodyJSON,
	Resource: func(a *apiclient.Admin) apiclient.Resource { return a.Statistics() },
}

// Feedback только модерируется: создавать и править отзывы из консоли нельзя.
var Feedback = Entity{
	Name:  "feedback",
	Title: "Отзывы",
	Columns: []Column{
		{Label: "Имя", Value: func(r apiclient.Row, _ string) string { return Text(r["full_name"]) }},
		{Label: "Телефон", Value: func(r apiclient.Row, _ string) string { return Text(r["phone_number"]) }},
		truncColumn("Отзыв", "content", 50),
		{Label: "Статус", Value: func(r apiclient.Row, _ string) string {
			if IsApproved(r) {
				return "Одобрен"
			}
			return "Ожидание"
		}},
	},
	Body:     BodyJSON,
	Resource: func(a *apiclient.Admin) apiclient.Resource { return a.Feedbacks() },
	NoCreate: true,
	NoEdit:   true,
	Approve:  true,
}

var Receptions = Entity{
	Name:  "receptions",
	Title: "Регистраторы",
	Columns: []Column{
		idColumn(8),
		{Label: "Имя", Value: func(r apiclient.Row, _ string) string {
			return strings.TrimSpace(Text(r["first_name"]) + " " + Text(r["second_name"]))
		}},
		{Label: "Логин", Value: func(r apiclient.Row, _ string) string { return Text(r["username"]) }},
	},
	Fields: []Field{
		{Name: "first_name", Label: "Имя", Kind: KindText, Required: true},
		{Name: "second_name", Label: "Фамилия", Kind: KindText, Required: true},
		{Name: "username", Label: "Логин", Kind: KindText, Required: true},
		{Name: "password", Label: "Пароль", Kind: KindPassword, Required: true},
	},
	MediaField: "media",
	Body:       BodyMultipart,
	Resource:   func(a *apiclient.Admin) apiclient.Resource { return a.Receptions() },
	NoEdit:     true,
}

var About = Entity{
	Name:  "about",
	Title: "О нас",
	Columns: []Column{
		idColumn(0),
		{Label: "Заголовок", Value: func(r apiclient.Row, _ string) string { return Text(r["title_ru"]) }},
		truncColumn("Текст", "content_ru", 60),
	},
	Fields: []Field{
		{Name: "title", Label: "Заголовок", Kind: KindText, Localized: true},
		{Name: "content", Label: "Текст", Kind: KindTextarea, Localized: true},
	},
	Body:     BodyJSON,
	Resource: func(a *apiclient.Admin) apiclient.Resource { return a.About() },
}

var AdditionalInfo = Entity{
	Name:  "additional-info",
	Title: "Доп. информация",
	Columns: []Column{
		idColumn(0),
		localizedColumn("Заголовок", "title"),
		truncColumn("Текст", "description_ru", 60),
	},
	Fields: []Field{
		{Name: "title", Label: "Заголовок", Kind: KindText, Localized: true},
		{Name: "description", Label: "Текст", Kind: KindTextarea, Localized: true},
	},
	Body:     BodyJSON,
	Resource: func(a *apiclient.Admin) apiclient.Resource { return a.AdditionalInfo() },
}

var Contacts = Entity{
	Name:  "contacts",
	Title: "Контакты",
	Columns: []Column{
		idColumn(0),
		{Label: "Тип", Value: func(r apiclient.Row, _ string) string { return Text(r["type"]) }},
		{Label: "Значение", Value: func(r apiclient.Row, _ string) string { return Text(r["contact"]) }},
	},
	Fields: []Field{
		{Name: "type", Label: "Тип", Kind: KindSelect, Required: true, Options: []Option{
			{Value: "phone", Label: "Телефон"},
			{Value: "email", Label: "Email"},
			{Value: "address", Label: "Адрес"},
			{Value: "telegram", Label: "Telegram"},
			{Value: "instagram", Label: "Instagram"},
		}},
		{Name: "contact", Label: "Значение", Kind: KindText, Required: true},
	},
	Body:     BodyJSON,
	Resource: func(a *apiclient.Admin) apiclient.Resource { return a.Contacts() },
}

// Admins - учётные записи администраторов: только список и создание.
var Admins = Entity{
	Name:  "admins",
	Title: "Администраторы",
	Columns: []Column{
		idColumn(0),
		{Label: "Логин", Value: func(r apiclient.Row, _ string) string { return Text(r["username"]) }},
	},
	Fields: []Field{
		{Name: "username", Label: "Логин", Kind: KindText, Required: true},
		{Name: "password", Label: "Пароль", Kind: KindPassword, Required: true},
	},
	Body:     BodyJSON,
	Resource: func(a *apiclient.Admin) apiclient.Resource { return a.Admins() },
	NoEdit:   true,
	NoDelete: true,
}

// BranchOptions - отделения для выбора у врача.
func BranchOptions(ctx context.Context, c *apiclient.Client, lang string) ([]Option, error) {
	branches, err := c.Public().Branches(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(branches))
	for _, b := range branches {
		opts = append(opts, Option{Value: b.ID.String(), Label: i18n.Display(b, "title", lang)})
	}
	return opts, nil
}

// IsApproved понимает оба написания флага одобрения.
func IsApproved(r apiclient.Row) bool {
	for _, key := range []string{"isApproved", "is_approved"} {
		if v, ok := r[key].(bool); ok && v {
			return true
		}
	}
	return false
}

func idColumn(short int) Column {
	return Column{Label: "ID", Value: func(r apiclient.Row, _ string) string {
		id := RowID(r)
		if short > 0 && utf8.RuneCountInString(id) > short {
			return string([]rune(id)[:short]) + "..."
		}
		return id
	}}
}

func localizedColumn(label, prefix string) Column {
	return Column{Label: label, Value: func(r apiclient.Row, lang string) string { return i18n.Resolve(r, prefix, lang) }}
}

func countColumn(label, key string) Column {
	return Column{Label: label, Value: func(r apiclient.Row, _ string) string {
		items, _ := r[key].([]any)
		return strconv.Itoa(len(items))
	}}
}

func truncColumn(label, key string, limit int) Column {
	return Column{Label: label, Value: func(r apiclient.Row, _ string) string {
		s := Text(r[key])
		if utf8.RuneCountInString(s) <= limit {
			return s
		}
		return string([]rune(s)[:limit]) + "..."
	}}
}
