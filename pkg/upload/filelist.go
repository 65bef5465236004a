// Package upload - единый список прикрепляемых файлов для всех форм:
// добавить несколько, удалить по индексу, определить вид для превью.
package upload

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindOther Kind = "other"
)

// File держится в памяти до отправки формы на бэкенд.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Kind определяет класс файла по mime. Если браузер тип не прислал,
// тип определяется по содержимому.
func (f File) Kind() Kind {
	ct := f.ContentType
	if ct == "" || ct == "application/octet-stream" {
		ct = mimetype.Detect(f.Data).String()
	}
	switch {
	case strings.HasPrefix(ct, "image/"):
		return KindImage
	case strings.HasPrefix(ct, "video/"):
		return KindVideo
	}
	return KindOther
}

type fileToken struct {
	Name string `json:"n"`
	Type string `json:"t"`
	Data []byte `json:"d"`
}

// Token упаковывает файл в строку для скрытого поля формы, так список
// переживает повторный показ формы без промежуточного хранилища.
func (f File) Token() string {
	raw, _ := json.Marshal(fileToken{Name: f.Name, Type: f.ContentType, Data: f.Data})
	return base64.StdEncoding.EncodeToString(raw)
}

func ParseToken(token string) (File, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return File{}, fmt.Errorf("неверный токен файла: %w", err)
	}
	var t fileToken
	if err := json.Unmarshal(raw, &t); err != nil {
		return File{}, fmt.Errorf("неверный токен файла: %w", err)
	}
	return File{Name: t.Name, ContentType: t.Type, Size: int64(len(t.Data)), Data: t.Data}, nil
}

// FromTokens восстанавливает файлы, прикреплённые в прошлых показах формы.
func FromTokens(tokens []string) ([]File, error) {
	files := make([]File, 0, len(tokens))
	for _, token := range tokens {
		f, err := ParseToken(token)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// List - список файлов формы. MaxFiles только прячет кнопку добавления.
type List struct {
	files    []File
	maxFiles int
}

func NewList(maxFiles int) *List {
	return &List{maxFiles: maxFiles}
}

func (l *List) Add(files ...File) {
	l.files = append(l.files, files...)
}

// Remove удаляет файл по индексу, неверный индекс игнорируется.
func (l *List) Remove(index int) {
	if index < 0 || index >= len(l.files) {
		return
	}
	l.files = append(l.files[:index:index], l.files[index+1:]...)
}

func (l *List) Files() []File { return l.files }

func (l *List) Len() int { return len(l.files) }

// Full сообщает, что достигнут мягкий лимит. Отправку это не блокирует.
func (l *List) Full() bool {
	return l.maxFiles > 0 && len(l.files) >= l.maxFiles
}

// HumanSize форматирует размер как в превью: B, KB, MB.
func HumanSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(size)/1024/1024)
}

// FromMultipart читает все файлы поля формы в память. Пустые поля input
// (браузер шлёт их без имени) пропускаются.
func FromMultipart(form *multipart.Form, field string) ([]File, error) {
	if form == nil {
		return nil, nil
	}
	headers := form.File[field]
	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		if fh.Filename == "" || fh.Size == 0 {
			continue
		}
		f, err := readHeader(fh)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать файл %s: %w", fh.Filename, err)
		}
		files = append(files, f)
	}
	return files, nil
}

func readHeader(fh *multipart.FileHeader) (File, error) {
	src, err := fh.Open()
	if err != nil {
		return File{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return File{}, err
	}
	return File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}
