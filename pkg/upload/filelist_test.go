package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestList_AddRemove(t *testing.T) {
	l := NewList(2)
	l.Add(File{Name: "a.png"}, File{Name: "b.png"})
	assert.True(t, l.Full())

	// мягкий лимит не мешает добавлять дальше
	l.Add(File{Name: "c.mp4"})
	assert.Equal(t, 3, l.Len())

	l.Remove(1)
	l.Remove(10)
	l.Remove(-1)
	require.Equal(t, 2, l.Len())
	assert.Equal(t, "a.png", l.Files()[0].Name)
	assert.Equal(t, "c.mp4", l.Files()[1].Name)
}

func TestFile_Kind(t *testing.T) {
	assert.Equal(t, KindImage, File{ContentType: "image/jpeg"}.Kind())
	assert.Equal(t, KindVideo, File{ContentType: "video/mp4"}.Kind())
	assert.Equal(t, KindOther, File{ContentType: "application/pdf"}.Kind())
	assert.Equal(t, KindImage, File{Data: pngHeader}.Kind())
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", HumanSize(512))
	assert.Equal(t, "1.5 KB", HumanSize(1536))
	assert.Equal(t, "2.0 MB", HumanSize(2*1024*1024))
}

func TestFromMultipart(t *testing.T) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("media", "scan.png")
	require.NoError(t, err)
	_, _ = part.Write(pngHeader)
	_, err = w.CreateFormFile("media", "")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files, err := FromMultipart(req.MultipartForm, "media")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "scan.png", files[0].Name)
	assert.Equal(t, int64(len(pngHeader)), files[0].Size)
}

func TestToken_KeepsFileBetweenRenders(t *testing.T) {
	original := File{Name: "скан.png", Data: pngHeader}

	restored, err := ParseToken(original.Token())
	require.NoError(t, err)
	assert.Equal(t, "скан.png", restored.Name)
	assert.Equal(t, pngHeader, restored.Data)
	assert.Equal(t, int64(len(pngHeader)), restored.Size)
	assert.Equal(t, KindImage, restored.Kind())
}

func TestFromTokens_RejectsGarbage(t *testing.T) {
	files, err := FromTokens([]string{File{Name: "a.txt", Data: []byte("a")}.Token()})
	require.NoError(t, err)
	require.Len(t, files, 1)

	_, err = FromTokens([]string{"не base64"})
	assert.Error(t, err)
}
