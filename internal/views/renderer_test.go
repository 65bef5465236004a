package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/admin"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
)

type branchList struct {
	Items    []entities.Branch
	Selected *entities.Branch
}

type entityData struct {
	Entities []admin.Entity
	Entity   admin.Entity
	Rows     []apiclient.Row
	Modal    *admin.Modal
	Options  map[string][]admin.Option
	Confirm  string
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	bundle, err := i18n.LoadBundle()
	require.NoError(t, err)
	r, err := NewRenderer(bundle, "https://cdn.clinic.uz/api")
	require.NoError(t, err)
	return r
}

func renderPage(t *testing.T, r *Renderer, name string, page Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, page, nil))
	return buf.String()
}

func TestNewRenderer_ParsesAllPages(t *testing.T) {
	r := newTestRenderer(t)

	for _, name := range []string{
		"landing", "doctors", "branches", "news", "gallery", "login", "notfound", "error",
		"admin/overview", "admin/entity", "admin/profile",
		"reception/dashboard", "reception/patient", "reception/profile",
	} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("layout"))
	assert.False(t, r.Has("partials"))
}

func TestRender_UnknownPage(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, "missing", Page{}, nil))
}

func TestBranchCard_PlaceholderWithoutEquipment(t *testing.T) {
	r := newTestRenderer(t)

	html := renderPage(t, r, "branches", Page{Lang: "ru", Path: "/branches", Data: branchList{
		Items: []entities.Branch{{ID: "1", Title: "Cardiology", Services: []entities.Service{}, Media: []entities.Media{}}},
	}})

	assert.Contains(t, html, "Cardiology")
	assert.Contains(t, html, `class="placeholder"`)
	assert.Contains(t, html, `href="/branches?id=1"`)
	assert.NotContains(t, html, "techs-count")
}

func TestBranchCard_ImageAndEquipment(t *testing.T) {
	r := newTestRenderer(t)

	html := renderPage(t, r, "branches", Page{Lang: "en", Data: branchList{
		Items: []entities.Branch{{
			ID:    "2",
			Title: "Neurology",
			Media: []entities.Media{{URL: "/uploads/clip.mp4", Type: "video/mp4"}, {URL: "/uploads/front.jpg", Type: "image/jpeg"}},
			Techs: []entities.BranchTech{{ID: "7", Title: "MRI"}},
		}},
	}})

	assert.Contains(t, html, `src="https://cdn.clinic.uz/api/uploads/front.jpg"`)
	assert.Contains(t, html, "techs-count")
	assert.NotContains(t, html, `class="placeholder"`)
}

func TestBranchDetail_ServicesWithPrice(t *testing.T) {
	r := newTestRenderer(t)
	branch := entities.Branch{
		ID:    "3",
		Title: "Cardiology",
		Services: []entities.Service{
			{ID: "11", TitleRu: "ЭКГ", TitleEn: "ECG", Price: 150000},
		},
	}

	html := renderPage(t, r, "branches", Page{Lang: "en", Data: branchList{Items: []entities.Branch{branch}, Selected: &branch}})

	assert.Contains(t, html, "ECG")
	assert.Contains(t, html, "150 000")
	assert.Contains(t, html, `href="/branches"`)
}

func TestLayout_LanguageSwitchAndLogout(t *testing.T) {
	r := newTestRenderer(t)

	guest := renderPage(t, r, "notfound", Page{Lang: "uz"})
	assert.Contains(t, guest, `<html lang="uz">`)
	assert.Contains(t, guest, `href="?lang=ru"`)
	assert.NotContains(t, guest, `action="/logout"`)

	authed := renderPage(t, r, "notfound", Page{Lang: "ru", Role: "ADMIN"})
	assert.Contains(t, authed, `action="/logout"`)
}

func TestAdminEntity_ModalWithNestedRows(t *testing.T) {
	r := newTestRenderer(t)
	modal := admin.NewModal()
	require.NoError(t, modal.OpenEdit("5",
		map[string]string{"title": "Cardiology", "description": "Heart"},
		map[string][]admin.NestedRow{
			"services": {{ID: "12", Values: map[string]string{"title_ru": "ЭКГ", "price": "100"}}},
		},
	))

	html := renderPage(t, r, "admin/entity", Page{Lang: "ru", Data: entityData{
		Entities: admin.DefaultRegistry().All(),
		Entity:   admin.Branches,
		Rows:     []apiclient.Row{{"id": float64(5), "title": "Cardiology"}},
		Modal:    modal,
	}})

	assert.Contains(t, html, `action="/admin/branches/5"`)
	assert.Contains(t, html, `name="services.0.id" value="12"`)
	assert.Contains(t, html, `name="services.0.title_ru"`)
	assert.Contains(t, html, `value="add:services"`)
	assert.Contains(t, html, `name="branch_media"`)
}

func TestAdminEntity_ClosedModalAndConfirm(t *testing.T) {
	r := newTestRenderer(t)

	html := renderPage(t, r, "admin/entity", Page{Lang: "ru", Data: entityData{
		Entity:  admin.Feedback,
		Rows:    []apiclient.Row{{"id": float64(8), "full_name": "Али", "isApproved": false}},
		Modal:   admin.NewModal(),
		Confirm: "8",
	}})

	assert.Contains(t, html, `action="/admin/feedback/8/approve"`)
	assert.Contains(t, html, `action="/admin/feedback/8/delete"`)
	assert.NotContains(t, html, `enctype="multipart/form-data"`)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "0", formatPrice(0))
	assert.Equal(t, "999", formatPrice(999))
	assert.Equal(t, "1 250 000", formatPrice(1250000))
	assert.Equal(t, "-12 500.5", formatPrice(-12500.5))
}

func TestLimit(t *testing.T) {
	assert.Equal(t, []int{1, 2}, limit([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1}, limit([]int{1}, 5))
	assert.Equal(t, "x", limit("x", 1))
}
