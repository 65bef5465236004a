package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/dto"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/services"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/upload"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/utils"
)

// ConsultationView - состояние формы заявки между отправками.
type ConsultationView struct {
	Lang     string
	Action   string
	Form     dto.ConsultationDTO
	Invalid  map[string]bool
	Error    string
	Success  bool
	MaxFiles int
	// Files - прикреплённые файлы, Full - достигнут мягкий лимит MaxFiles.
	Files []upload.File
	Full  bool
}

type FeedbackView struct {
	Lang  string
	Form  dto.FeedbackDTO
	Error string
	Sent  bool
}

type LandingPage struct {
	Landing      services.LandingData
	Consultation ConsultationView
	Feedback     FeedbackView
}

type PublicController struct {
	content  services.ContentServiceInterface
	patients services.PatientServiceInterface
	bundle   *i18n.Bundle
	maxFiles int
	logger   *zap.Logger
}

func NewPublicController(
	content services.ContentServiceInterface,
	patients services.PatientServiceInterface,
	bundle *i18n.Bundle,
	maxFiles int,
	logger *zap.Logger,
) *PublicController {
	return &PublicController{content: content, patients: patients, bundle: bundle, maxFiles: maxFiles, logger: logger}
}

func (ctrl *PublicController) landingPage(c echo.Context) LandingPage {
	lang := currentLang(c)
	return LandingPage{
		Landing:      ctrl.content.Landing(c.Request().Context()),
		Consultation: ConsultationView{Lang: lang, Action: "/consultation", MaxFiles: ctrl.maxFiles},
		Feedback:     FeedbackView{Lang: lang},
	}
}

func (ctrl *PublicController) Landing(c echo.Context) error {
	return render(c, http.StatusOK, "landing", newPage(c, "", ctrl.landingPage(c)))
}

func (ctrl *PublicController) Doctors(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := selectByID(c.QueryParam("id"), ctrl.content.Doctors(ctx),
		func(d entities.Doctor) entities.ID { return d.ID },
		func(id string) (entities.Doctor, error) { return ctrl.content.Doctor(ctx, id) })
	if err != nil {
		return err
	}
	title := ctrl.bundle.T(currentLang(c), "doctors.title")
	if page.Selected != nil {
		title = page.Selected.FullName()
	}
	return render(c, http.StatusOK, "doctors", newPage(c, title, page))
}

func (ctrl *PublicController) Branches(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := selectByID(c.QueryParam("id"), ctrl.content.Branches(ctx),
		func(b entities.Branch) entities.ID { return b.ID },
		func(id string) (entities.Branch, error) { return ctrl.content.Branch(ctx, id) })
	if err != nil {
		return err
	}
	lang := currentLang(c)
	title := ctrl.bundle.T(lang, "branches.title")
	if page.Selected != nil {
		title = i18n.Display(page.Selected, "title", lang)
	}
	return render(c, http.StatusOK, "branches", newPage(c, title, page))
}

func (ctrl *PublicController) News(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := selectByID(c.QueryParam("id"), ctrl.content.News(ctx),
		func(n entities.News) entities.ID { return n.ID },
		func(id string) (entities.News, error) { return ctrl.content.NewsItem(ctx, id) })
	if err != nil {
		return err
	}
	lang := currentLang(c)
	title := ctrl.bundle.T(lang, "news.title")
	if page.Selected != nil {
		title = i18n.Title(page.Selected, lang)
	}
	return render(c, http.StatusOK, "news", newPage(c, title, page))
}

func (ctrl *PublicController) Gallery(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := selectByID(c.QueryParam("id"), ctrl.content.Gallery(ctx),
		func(g entities.GalleryItem) entities.ID { return g.ID },
		func(id string) (entities.GalleryItem, error) { return ctrl.content.GalleryItem(ctx, id) })
	if err != nil {
		return err
	}
	lang := currentLang(c)
	title := ctrl.bundle.T(lang, "gallery.title")
	if page.Selected != nil {
		title = i18n.Title(page.Selected, lang)
	}
	return render(c, http.StatusOK, "gallery", newPage(c, title, page))
}

// selectByID ищет элемент в уже загруженном списке и только потом
// запрашивает его у бэкенда. Пустой id - обычный список.
func selectByID[T any](id string, items []T, idOf func(T) entities.ID, fetch func(string) (T, error)) (ListPage[T], error) {
	page := ListPage[T]{Items: items}
	if id == "" {
		return page, nil
	}
	for i := range items {
		if idOf(items[i]).String() == id {
			page.Selected = &items[i]
			return page, nil
		}
	}
	item, err := fetch(id)
	if err != nil {
		return page, err
	}
	page.Selected = &item
	return page, nil
}

// Consultation принимает заявку с сайта. Успех показывает экран благодарности
// с пустой формой, ошибка возвращает форму с введёнными данными.
func (ctrl *PublicController) Consultation(c echo.Context) error {
	lang := currentLang(c)
	view, staging := readConsultation(c, ctrl.bundle, lang, ctrl.maxFiles)
	view.Action = "/consultation"

	if !staging && view.Error == "" {
		if err := ctrl.patients.SubmitConsultation(c.Request().Context(), view.Form, view.Files); err != nil {
			view.Error = ctrl.bundle.T(lang, "consultation.error")
		} else {
			view = ConsultationView{Lang: lang, Action: view.Action, MaxFiles: ctrl.maxFiles, Success: true, Files: view.Files}
		}
	}

	page := ctrl.landingPage(c)
	page.Consultation = view
	code := http.StatusOK
	if view.Error != "" {
		code = http.StatusUnprocessableEntity
	}
	return render(c, code, "landing", newPage(c, "", page))
}

func (ctrl *PublicController) Feedback(c echo.Context) error {
	lang := currentLang(c)
	view := FeedbackView{Lang: lang}
	code := http.StatusOK

	if err := c.Bind(&view.Form); err != nil {
		view.Error = ctrl.bundle.T(lang, "feedback.invalid")
	} else if err := c.Validate(&view.Form); err != nil {
		ctrl.logger.Debug("Feedback: ошибка валидации", zap.Strings("fields", utils.InvalidFields(err)))
		view.Error = ctrl.bundle.T(lang, "feedback.invalid")
	} else if err := ctrl.patients.LeaveFeedback(c.Request().Context(), view.Form); err != nil {
		view.Error = ctrl.bundle.T(lang, "feedback.error")
	} else {
		view = FeedbackView{Lang: lang, Sent: true}
	}
	if view.Error != "" {
		code = http.StatusUnprocessableEntity
	}

	page := ctrl.landingPage(c)
	page.Feedback = view
	return render(c, code, "landing", newPage(c, "", page))
}

// readConsultation разбирает форму заявки вместе со списком файлов.
// staging=true: нажата кнопка списка файлов (attach, remove_file:<i>),
// заявка не отправляется и не проверяется. Ошибки попадают в view.Error.
func readConsultation(c echo.Context, bundle *i18n.Bundle, lang string, maxFiles int) (view ConsultationView, staging bool) {
	view = ConsultationView{Lang: lang, MaxFiles: maxFiles, Invalid: map[string]bool{}}
	if err := c.Bind(&view.Form); err != nil {
		view.Error = bundle.T(lang, "consultation.invalid")
		return view, false
	}

	list, err := readFileList(c, maxFiles)
	if err != nil {
		view.Error = bundle.T(lang, "consultation.error")
		return view, false
	}
	action := c.FormValue("action")
	if idx, ok := strings.CutPrefix(action, "remove_file:"); ok {
		if i, err := strconv.Atoi(idx); err == nil {
			list.Remove(i)
		}
		staging = true
	} else if action == "attach" {
		staging = true
	}
	view.Files, view.Full = list.Files(), list.Full()
	if staging {
		return view, true
	}

	if err := c.Validate(&view.Form); err != nil {
		for _, f := range utils.InvalidFields(err) {
			view.Invalid[f] = true
		}
		view.Error = bundle.T(lang, "consultation.invalid")
	}
	return view, false
}

// readFileList собирает ранее прикреплённые файлы (staged_media) и новые из поля media.
// Форма без multipart даёт пустой список.
func readFileList(c echo.Context, maxFiles int) (*upload.List, error) {
	list := upload.NewList(maxFiles)
	form, err := c.MultipartForm()
	if err != nil {
		return list, nil
	}
	staged, err := upload.FromTokens(form.Value["staged_media"])
	if err != nil {
		return nil, err
	}
	list.Add(staged...)
	files, err := upload.FromMultipart(form, "media")
	if err != nil {
		return nil, err
	}
	list.Add(files...)
	return list, nil
}
