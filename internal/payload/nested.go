// Package payload собирает вложенные коллекции (услуги и оборудование филиала,
// награды врача) в одно multipart-тело вместе с их файлами.
//
// Новые элементы получают клиентский ключ <буква><позиция> (s0, t1, a0),
// по которому бэкенд связывает файлы part-а <prefix>__<key> с записью,
// у которой ещё нет id. У существующих элементов файлы идут как <prefix>__<id>.
package payload

import (
	"fmt"
	"strconv"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/upload"
)

// Item - один элемент вложенной коллекции.
type Item struct {
	ID     entities.ID
	Key    string
	Fields map[string]any
	Files  []upload.File
}

// IsNew - у элемента ещё нет сохранённого id.
func (it Item) IsNew() bool { return it.ID.IsZero() }

// Collection описывает одну вложенную коллекцию сущности.
type Collection struct {
	// CreateField - имя JSON-поля при создании родителя (services).
	CreateField string
	// UpsertField - имя JSON-поля при редактировании (services_upsert).
	UpsertField string
	// MediaPrefix - префикс file part-ов (service_media).
	MediaPrefix string
	// KeyLetter - буква клиентского ключа (s).
	KeyLetter string
}

// AssignKeys выдаёт ключи новым элементам без ключа по их позиции в списке.
func (c Collection) AssignKeys(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if it.IsNew() && it.Key == "" {
			it.Key = c.KeyLetter + strconv.Itoa(i)
		}
		out[i] = it
	}
	return out
}

// BuildCreate пишет в форму массив [{key, ...fields}] и файлы <prefix>__<key>.
// При создании все элементы новые, сохранённые id игнорируются.
func (c Collection) BuildCreate(form *apiclient.Form, items []Item) error {
	entries := make([]map[string]any, 0, len(items))
	for i, it := range items {
		it.ID = ""
		if it.Key == "" {
			it.Key = c.KeyLetter + strconv.Itoa(i)
		}
		entries = append(entries, entry(it, "key", it.Key))
		form.Files(c.mediaPart(it.Key), it.Files)
	}
	if err := form.JSONField(c.CreateField, entries); err != nil {
		return fmt.Errorf("payload %s: %w", c.CreateField, err)
	}
	return nil
}

// BuildUpsert пишет смешанный массив {id, ...} / {key, ...} и файлы
// <prefix>__<id> для существующих и <prefix>__<key> для новых.
func (c Collection) BuildUpsert(form *apiclient.Form, items []Item) error {
	items = c.AssignKeys(items)
	entries := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if it.IsNew() {
			entries = append(entries, entry(it, "key", it.Key))
			form.Files(c.mediaPart(it.Key), it.Files)
			continue
		}
		entries = append(entries, entry(it, "id", it.ID))
		form.Files(c.mediaPart(it.ID.String()), it.Files)
	}
	if err := form.JSONField(c.UpsertField, entries); err != nil {
		return fmt.Errorf("payload %s: %w", c.UpsertField, err)
	}
	return nil
}

func (c Collection) mediaPart(ref string) string {
	return c.MediaPrefix + "__" + ref
}

func entry(it Item, refName string, ref any) map[string]any {
	e := make(map[string]any, len(it.Fields)+1)
	for k, v := range it.Fields {
		e[k] = v
	}
	e[refName] = ref
	return e
}
