package admin

import (
	"mime/multipart"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/payload"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/upload"
)

// Поля вложенных элементов в HTML-форме называются <коллекция>.<индекс>.<поле>,
// служебные: id, key, files и remove.
const (
	nestedID     = "id"
	nestedKey    = "key"
	nestedFiles  = "files"
	nestedRemove = "remove"
)

// NestedRow - строка вложенной коллекции в модалке.
type NestedRow struct {
	ID     string
	Key    string
	Values map[string]string
}

// Submission - отправленная форма модалки: текстовые поля и файлы.
type Submission struct {
	Values url.Values
	Files  map[string][]upload.File
}

// ReadSubmission разбирает форму. form может быть nil для urlencoded-запросов.
func ReadSubmission(values url.Values, form *multipart.Form) (*Submission, error) {
	sub := &Submission{Values: values, Files: make(map[string][]upload.File)}
	if sub.Values == nil {
		sub.Values = url.Values{}
	}
	if form == nil {
		return sub, nil
	}
	for k, v := range form.Value {
		sub.Values[k] = v
	}
	for field := range form.File {
		files, err := upload.FromMultipart(form, field)
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			sub.Files[field] = files
		}
	}
	return sub, nil
}

// NestedRows восстанавливает строки коллекции из формы в порядке индексов.
// Строки, отмеченные на удаление, пропускаются.
func (s *Submission) NestedRows(n Nested) []NestedRow {
	rows := make([]NestedRow, 0)
	for _, idx := range s.nestedIndexes(n) {
		row := s.rowAt(n, idx)
		if row.Values[nestedRemove] != "" {
			continue
		}
		delete(row.Values, nestedRemove)
		rows = append(rows, row)
	}
	return rows
}

// NestedItems превращает строки коллекции в элементы payload вместе с файлами.
// Файлы строки ищутся по её исходному индексу в форме.
func (s *Submission) NestedItems(n Nested) []payload.Item {
	fields := n.FormFields()
	items := make([]payload.Item, 0)
	for _, idx := range s.nestedIndexes(n) {
		row := s.rowAt(n, idx)
		if row.Values[nestedRemove] != "" {
			continue
		}
		item := payload.Item{
			ID:     entities.ID(row.ID),
			Key:    row.Key,
			Fields: make(map[string]any, len(fields)),
			Files:  s.Files[NestedFieldName(n.Name, idx, nestedFiles)],
		}
		for _, f := range fields {
			item.Fields[f.Name] = fieldValue(f, row.Values[f.Name])
		}
		items = append(items, item)
	}
	return items
}

func (s *Submission) nestedIndexes(n Nested) []int {
	prefix := n.Name + "."
	seen := make(map[int]bool)
	for key := range s.Values {
		if idx, ok := parseIndex(key, prefix); ok {
			seen[idx] = true
		}
	}
	for key := range s.Files {
		if idx, ok := parseIndex(key, prefix); ok {
			seen[idx] = true
		}
	}
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

func (s *Submission) rowAt(n Nested, idx int) NestedRow {
	row := NestedRow{Values: make(map[string]string)}
	prefix := NestedFieldName(n.Name, idx, "")
	for key, vals := range s.Values {
		if !strings.HasPrefix(key, prefix) || len(vals) == 0 {
			continue
		}
		name := strings.TrimPrefix(key, prefix)
		value := strings.TrimSpace(vals[0])
		switch name {
		case nestedID:
			row.ID = value
		case nestedKey:
			row.Key = value
		default:
			row.Values[name] = value
		}
	}
	return row
}

func parseIndex(key, prefix string) (int, bool) {
	if !strings.HasPrefix(key, prefix) {
		return 0, false
	}
	parts := strings.SplitN(strings.TrimPrefix(key, prefix), ".", 2)
	if len(parts) != 2 {
		return 0, false
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// NestedFieldName - имя поля вложенного элемента в HTML-форме.
func NestedFieldName(collection string, index int, field string) string {
	return collection + "." + strconv.Itoa(index) + "." + field
}
