package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/upload"
)

// JSONBody отправляется как application/json.
type JSONBody struct {
	Value any
}

func JSON(v any) JSONBody { return JSONBody{Value: v} }

// Part описывает одну часть multipart-тела.
type Part struct {
	Name     string
	Value    string
	FileName string
	File     *upload.File
}

func (p Part) IsFile() bool { return p.File != nil }

// Form - multipart-тело. Заголовок Content-Type с boundary ставит writer,
// поэтому JSON-заголовок для формы не выставляется.
type Form struct {
	parts []Part
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Field(name, value string) *Form {
	f.parts = append(f.parts, Part{Name: name, Value: value})
	return f
}

// FieldIfNotEmpty пропускает пустые значения, как форма консультации.
func (f *Form) FieldIfNotEmpty(name, value string) *Form {
	if strings.TrimSpace(value) == "" {
		return f
	}
	return f.Field(name, value)
}

// JSONField кладёт значение как JSON-строку в текстовое поле.
func (f *Form) JSONField(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать поле %s: %w", name, err)
	}
	f.Field(name, string(raw))
	return nil
}

func (f *Form) File(field string, file upload.File) *Form {
	f.parts = append(f.parts, Part{Name: field, FileName: file.Name, File: &file})
	return f
}

func (f *Form) Files(field string, files []upload.File) *Form {
	for _, file := range files {
		f.File(field, file)
	}
	return f
}

func (f *Form) Parts() []Part { return f.parts }

// Value возвращает первое текстовое значение поля.
func (f *Form) Value(name string) (string, bool) {
	for _, p := range f.parts {
		if p.Name == name && !p.IsFile() {
			return p.Value, true
		}
	}
	return "", false
}

// FileParts возвращает имена всех файловых частей в порядке добавления.
func (f *Form) FileParts() []string {
	names := make([]string, 0, len(f.parts))
	for _, p := range f.parts {
		if p.IsFile() {
			names = append(names, p.Name)
		}
	}
	return names
}

func (f *Form) encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, p := range f.parts {
		if !p.IsFile() {
			if err := w.WriteField(p.Name, p.Value); err != nil {
				return nil, "", err
			}
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(p.Name), escapeQuotes(p.FileName)))
		ct := p.File.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := pw.Write(p.File.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
