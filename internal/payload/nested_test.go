package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/upload"
)

var services = Collection{
	CreateField: "services",
	UpsertField: "services_upsert",
	MediaPrefix: "service_media",
	KeyLetter:   "s",
}

func jsonField(t *testing.T, form *apiclient.Form, name string) []map[string]any {
	t.Helper()
	raw, ok := form.Value(name)
	require.True(t, ok, "поле %s отсутствует", name)
	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestBuildCreate_TwoServicesFileOnSecond(t *testing.T) {
	form := apiclient.NewForm()
	items := []Item{
		{Fields: map[string]any{"title_ru": "УЗИ", "price": 100.0}},
		{
			Fields: map[string]any{"title_ru": "ЭКГ", "price": 50.0},
			Files:  []upload.File{{Name: "ecg.png", ContentType: "image/png", Data: []byte("png")}},
		},
	}

	require.NoError(t, services.BuildCreate(form, items))

	entries := jsonField(t, form, "services")
	require.Len(t, entries, 2)
	assert.Equal(t, "s0", entries[0]["key"])
	assert.Equal(t, "s1", entries[1]["key"])
	assert.Equal(t, "ЭКГ", entries[1]["title_ru"])
	assert.NotContains(t, entries[0], "id")
	assert.Equal(t, []string{"service_media__s1"}, form.FileParts())
}

func TestBuildUpsert_MixesIDsAndKeys(t *testing.T) {
	form := apiclient.NewForm()
	file := upload.File{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}
	items := []Item{
		{ID: "12", Fields: map[string]any{"title": "МРТ"}, Files: []upload.File{file}},
		{Fields: map[string]any{"title": "КТ"}, Files: []upload.File{file}},
	}
	techs := Collection{UpsertField: "techs_upsert", MediaPrefix: "tech_media", KeyLetter: "t"}

	require.NoError(t, techs.BuildUpsert(form, items))

	entries := jsonField(t, form, "techs_upsert")
	require.Len(t, entries, 2)
	assert.Equal(t, float64(12), entries[0]["id"])
	assert.NotContains(t, entries[0], "key")
	assert.Equal(t, "t1", entries[1]["key"])
	assert.Equal(t, []string{"tech_media__12", "tech_media__t1"}, form.FileParts())
}

func TestAssignKeys_KeepsExisting(t *testing.T) {
	items := services.AssignKeys([]Item{{Key: "custom"}, {}, {ID: "5"}})

	assert.Equal(t, "custom", items[0].Key)
	assert.Equal(t, "s1", items[1].Key)
	assert.Empty(t, items[2].Key)
}

func TestBuildCreate_EmptyCollection(t *testing.T) {
	form := apiclient.NewForm()
	require.NoError(t, services.BuildCreate(form, nil))

	raw, ok := form.Value("services")
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}
