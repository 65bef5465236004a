package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/dto"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/services"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/upload"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/utils"
)

const (
	tabPatients = ""
	tabHistory  = "history"
	tabFeedback = "feedback"
)

type ReceptionPage struct {
	Tab       string
	Patients  []entities.Patient
	Feedbacks []entities.Feedback
	Confirm   string
	Create    *ConsultationView
}

type ReceptionProfilePage struct {
	Profile entities.Reception
	Editing bool
}

type ReceptionController struct {
	patientService services.PatientServiceInterface
	profileService *services.ProfileService
	bundle         *i18n.Bundle
	maxFiles       int
	logger         *zap.Logger
}

func NewReceptionController(
	patientService services.PatientServiceInterface,
	profileService *services.ProfileService,
	bundle *i18n.Bundle,
	maxFiles int,
	logger *zap.Logger,
) *ReceptionController {
	return &ReceptionController{
		patientService: patientService,
		profileService: profileService,
		bundle:         bundle,
		maxFiles:       maxFiles,
		logger:         logger,
	}
}

// Dashboard - вкладки заявок, истории и отзывов.
func (ctrl *ReceptionController) Dashboard(c echo.Context) error {
	page, err := ctrl.loadTab(c, c.QueryParam("tab"))
	if err != nil {
		return err
	}
	page.Confirm = c.QueryParam("confirm")
	if c.QueryParam("modal") == "create" {
		page.Create = &ConsultationView{Lang: currentLang(c), Action: "/reception/patients", MaxFiles: ctrl.maxFiles}
	}
	return ctrl.renderDashboard(c, http.StatusOK, page, "")
}

func (ctrl *ReceptionController) loadTab(c echo.Context, tab string) (ReceptionPage, error) {
	reqCtx := c.Request().Context()
	page := ReceptionPage{Tab: tab}
	var err error
	switch tab {
	case tabHistory:
		page.Patients, err = ctrl.patientService.History(reqCtx)
	case tabFeedback:
		page.Feedbacks, err = ctrl.patientService.Feedbacks(reqCtx)
	default:
		page.Tab = tabPatients
		page.Patients, err = ctrl.patientService.Patients(reqCtx)
	}
	if err != nil {
		ctrl.logger.Error("Вкладка регистратуры не загружена", zap.String("tab", tab), zap.Error(err))
		return page, err
	}
	return page, nil
}

func (ctrl *ReceptionController) renderDashboard(c echo.Context, code int, page ReceptionPage, errMsg string) error {
	key := "reception.patients"
	switch page.Tab {
	case tabHistory:
		key = "reception.history"
	case tabFeedback:
		key = "reception.feedback"
	}
	p := newPage(c, ctrl.bundle.T(currentLang(c), key), page)
	p.Error = errMsg
	return render(c, code, "reception/dashboard", p)
}

func (ctrl *ReceptionController) Patient(c echo.Context) error {
	patient, err := ctrl.patientService.Patient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "reception/patient", newPage(c, patient.FullName(), patient))
}

// CreatePatient регистрирует пациента той же multipart-заявкой, что и сайт.
func (ctrl *ReceptionController) CreatePatient(c echo.Context) error {
	lang := currentLang(c)
	view, staging := readConsultation(c, ctrl.bundle, lang, ctrl.maxFiles)
	view.Action = "/reception/patients"
	code := http.StatusUnprocessableEntity
	if staging {
		code = http.StatusOK
	} else if view.Error == "" {
		err := ctrl.patientService.SubmitConsultation(c.Request().Context(), view.Form, view.Files)
		if err == nil {
			return utils.Redirect(c, "/reception")
		}
		view.Error = utils.ErrorMessage(err)
	}

	page, err := ctrl.loadTab(c, tabPatients)
	if err != nil {
		return err
	}
	page.Create = &view
	return ctrl.renderDashboard(c, code, page, "")
}

func (ctrl *ReceptionController) DeletePatient(c echo.Context) error {
	if err := ctrl.patientService.DeletePatient(c.Request().Context(), c.Param("id")); err != nil {
		page, loadErr := ctrl.loadTab(c, tabPatients)
		if loadErr != nil {
			return loadErr
		}
		return ctrl.renderDashboard(c, utils.ErrorStatus(err), page, utils.ErrorMessage(err))
	}
	return utils.Redirect(c, "/reception")
}

// ExportPatients отдаёт активные заявки файлом XLSX.
func (ctrl *ReceptionController) ExportPatients(c echo.Context) error {
	var buf bytes.Buffer
	if err := ctrl.patientService.ExportPatients(c.Request().Context(), &buf); err != nil {
		ctrl.logger.Error("Не удалось выгрузить заявки", zap.Error(err))
		return err
	}
	fileName := fmt.Sprintf("patients_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (ctrl *ReceptionController) Profile(c echo.Context) error {
	return ctrl.renderProfile(c, http.StatusOK, c.QueryParam("edit") != "", "", "")
}

func (ctrl *ReceptionController) renderProfile(c echo.Context, code int, editing bool, flash, errMsg string) error {
	profile, err := ctrl.profileService.ReceptionProfile(c.Request().Context())
	if err != nil {
		ctrl.logger.Warn("Профиль регистратора не загружен", zap.Error(err))
	} else if sess := currentSession(c); sess.HasRole(session.RoleReception) {
		if err := sess.SetUser(c.Request().Context(), profile); err != nil {
			ctrl.logger.Warn("Профиль не обновлён в сессии", zap.Error(err))
		}
	}
	p := newPage(c, ctrl.bundle.T(currentLang(c), "reception.profile"), ReceptionProfilePage{Profile: profile, Editing: editing})
	p.Flash = flash
	p.Error = errMsg
	return render(c, code, "reception/profile", p)
}

// EditProfile - имя, фамилия и аватар одной multipart-формой.
func (ctrl *ReceptionController) EditProfile(c echo.Context) error {
	var payload dto.ReceptionProfileDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.renderProfile(c, http.StatusBadRequest, true, "", ctrl.bundle.T(currentLang(c), "feedback.invalid"))
	}
	var files []upload.File
	if form, err := c.MultipartForm(); err == nil {
		if files, err = upload.FromMultipart(form, "media"); err != nil {
			return ctrl.renderProfile(c, http.StatusBadRequest, true, "", utils.ErrorMessage(err))
		}
	}
	if err := ctrl.profileService.EditReceptionProfile(c.Request().Context(), payload, files); err != nil {
		return ctrl.renderProfile(c, http.StatusUnprocessableEntity, true, "", utils.ErrorMessage(err))
	}
	return ctrl.renderProfile(c, http.StatusOK, false, ctrl.bundle.T(currentLang(c), "admin.saved"), "")
}

func (ctrl *ReceptionController) EditUsername(c echo.Context) error {
	var payload dto.EditUsernameDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.renderProfile(c, http.StatusUnprocessableEntity, false, "", utils.ErrorMessage(err))
	}
	if err := ctrl.profileService.EditUsername(c.Request().Context(), currentSession(c).Role(), payload); err != nil {
		return ctrl.renderProfile(c, http.StatusUnprocessableEntity, false, "", utils.ErrorMessage(err))
	}
	return ctrl.renderProfile(c, http.StatusOK, false, ctrl.bundle.T(currentLang(c), "admin.saved"), "")
}

func (ctrl *ReceptionController) EditPassword(c echo.Context) error {
	var payload dto.EditPasswordDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.renderProfile(c, http.StatusUnprocessableEntity, false, "", utils.ErrorMessage(err))
	}
	if err := ctrl.profileService.EditPassword(c.Request().Context(), currentSession(c).Role(), payload); err != nil {
		return ctrl.renderProfile(c, http.StatusUnprocessableEntity, false, "", utils.ErrorMessage(err))
	}
	return ctrl.renderProfile(c, http.StatusOK, false, ctrl.bundle.T(currentLang(c), "admin.saved"), "")
}
