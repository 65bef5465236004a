package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/admin"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/dto"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/services"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	apperrors "github.com/Obkeldiyev/vitality-clinic-hub/pkg/errors"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/i18n"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/session"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/utils"
)

// EntityPage - список сущности с открытой модалкой или подтверждением удаления.
type EntityPage struct {
	Entities []admin.Entity
	Entity   admin.Entity
	Rows     []apiclient.Row
	Modal    *admin.Modal
	Options  map[string][]admin.Option
	Confirm  string
}

type OverviewPage struct {
	Entities []admin.Entity
	Counts   services.Counts
}

type AdminProfilePage struct {
	Entities []admin.Entity
	Profile  apiclient.Row
}

type AdminController struct {
	adminService   *services.AdminService
	contentService services.ContentServiceInterface
	profileService *services.ProfileService
	registry       *admin.Registry
	bundle         *i18n.Bundle
	logger         *zap.Logger
}

func NewAdminController(
	adminService *services.AdminService,
	contentService services.ContentServiceInterface,
	profileService *services.ProfileService,
	registry *admin.Registry,
	bundle *i18n.Bundle,
	logger *zap.Logger,
) *AdminController {
	return &AdminController{
		adminService:   adminService,
		contentService: contentService,
		profileService: profileService,
		registry:       registry,
		bundle:         bundle,
		logger:         logger,
	}
}

func (ctrl *AdminController) entity(c echo.Context) (admin.Entity, error) {
	e, ok := ctrl.registry.Get(c.Param("entity"))
	if !ok {
		return admin.Entity{}, apperrors.NewNotFoundError("раздел не найден")
	}
	return e, nil
}

func (ctrl *AdminController) Overview(c echo.Context) error {
	counts := ctrl.contentService.Overview(c.Request().Context())
	title := ctrl.bundle.T(currentLang(c), "admin.overview")
	return render(c, http.StatusOK, "admin/overview", newPage(c, title, OverviewPage{Entities: ctrl.registry.All(), Counts: counts}))
}

// List показывает таблицу. ?modal=create|edit&id= открывает модалку,
// ?confirm=id - подтверждение удаления.
func (ctrl *AdminController) List(c echo.Context) error {
	e, err := ctrl.entity(c)
	if err != nil {
		return err
	}
	reqCtx := c.Request().Context()

	rows, err := ctrl.adminService.List(reqCtx, e)
	if err != nil {
		return err
	}

	modal := admin.NewModal()
	switch c.QueryParam("modal") {
	case string(admin.ModeCreate):
		if !e.NoCreate {
			_ = modal.OpenCreate()
		}
	case string(admin.ModeEdit):
		if !e.NoEdit {
			if err := ctrl.openEdit(e, rows, c.QueryParam("id"), modal); err != nil {
				return err
			}
		}
	}

	page := EntityPage{Entities: ctrl.registry.All(), Entity: e, Rows: rows, Modal: modal}
	if !e.NoDelete {
		page.Confirm = c.QueryParam("confirm")
	}
	return ctrl.renderEntity(c, http.StatusOK, page, "")
}

// openEdit заполняет модалку строкой таблицы, отдельный GET не нужен.
func (ctrl *AdminController) openEdit(e admin.Entity, rows []apiclient.Row, id string, modal *admin.Modal) error {
	row, ok := admin.FindRow(rows, id)
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("запись %s/%s не найдена", e.Name, id))
	}
	return modal.OpenEdit(id, e.Values(row), e.NestedRows(row))
}

func (ctrl *AdminController) renderEntity(c echo.Context, code int, page EntityPage, errMsg string) error {
	if page.Modal.IsOpen() {
		page.Options = ctrl.adminService.Options(c.Request().Context(), page.Entity, currentLang(c))
	}
	p := newPage(c, page.Entity.Title, page)
	p.Error = errMsg
	return render(c, code, "admin/entity", p)
}

func (ctrl *AdminController) Create(c echo.Context) error {
	return ctrl.save(c, admin.ModeCreate, "")
}

func (ctrl *AdminController) Update(c echo.Context) error {
	return ctrl.save(c, admin.ModeEdit, c.Param("id"))
}

// save обрабатывает отправку модалки. Кнопки добавления и удаления вложенной
// строки только перерисовывают форму, сохранение идёт по action=save.
func (ctrl *AdminController) save(c echo.Context, mode admin.Mode, id string) error {
	e, err := ctrl.entity(c)
	if err != nil {
		return err
	}
	if (mode == admin.ModeCreate && e.NoCreate) || (mode == admin.ModeEdit && e.NoEdit) {
		return apperrors.NewBadRequestError("действие недоступно")
	}
	reqCtx := c.Request().Context()

	sub, err := readSubmission(c)
	if err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "неверная форма", err, nil)
	}

	modal := admin.NewModal()
	values, nested := submittedState(e, sub)
	if mode == admin.ModeCreate {
		err = modal.OpenCreate()
	} else {
		err = modal.OpenEdit(id, nil, nil)
	}
	if err != nil {
		return err
	}
	if err := modal.Edit(values, nested); err != nil {
		return err
	}

	rerender := func(code int) error {
		rows, err := ctrl.adminService.List(reqCtx, e)
		if err != nil {
			ctrl.logger.Warn("Список не загружен при показе формы", zap.String("entity", e.Name), zap.Error(err))
		}
		return ctrl.renderEntity(c, code, EntityPage{Entities: ctrl.registry.All(), Entity: e, Rows: rows, Modal: modal}, "")
	}

	action := sub.Values.Get("action")
	if name, ok := strings.CutPrefix(action, "add:"); ok {
		if _, exists := e.NestedByName(name); exists {
			nested[name] = append(nested[name], admin.NestedRow{Values: map[string]string{}})
		}
		return rerender(http.StatusOK)
	}
	if rest, ok := strings.CutPrefix(action, "remove:"); ok {
		name, idx, _ := strings.Cut(rest, ":")
		if i, err := strconv.Atoi(idx); err == nil && i >= 0 && i < len(nested[name]) {
			nested[name] = append(nested[name][:i:i], nested[name][i+1:]...)
		}
		return rerender(http.StatusOK)
	}

	if err := modal.Submit(); err != nil {
		return err
	}
	if err := e.Validate(sub); err != nil {
		_ = modal.Fail(err.Error())
		return rerender(http.StatusUnprocessableEntity)
	}
	if err := ctrl.adminService.Save(reqCtx, e, mode, id, sub); err != nil {
		_ = modal.Fail(utils.ErrorMessage(err))
		return rerender(http.StatusUnprocessableEntity)
	}
	_ = modal.Succeed()
	return utils.Redirect(c, "/admin/"+e.Name)
}

// submittedState возвращает введённые значения в модалку при повторном показе.
func submittedState(e admin.Entity, sub *admin.Submission) (map[string]string, map[string][]admin.NestedRow) {
	values := make(map[string]string)
	for _, f := range e.FormFields() {
		if f.Kind == admin.KindPassword {
			continue
		}
		values[f.Name] = sub.Values.Get(f.Name)
	}
	nested := make(map[string][]admin.NestedRow, len(e.Nested))
	for _, n := range e.Nested {
		nested[n.Name] = sub.NestedRows(n)
	}
	return values, nested
}

func readSubmission(c echo.Context) (*admin.Submission, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		return admin.ReadSubmission(nil, form)
	}
	values, err := c.FormParams()
	if err != nil {
		return nil, err
	}
	return admin.ReadSubmission(values, nil)
}

// Delete удаляет после подтверждения и перезагружает список.
// Ошибка показывается над таблицей.
func (ctrl *AdminController) Delete(c echo.Context) error {
	e, err := ctrl.entity(c)
	if err != nil {
		return err
	}
	reqCtx := c.Request().Context()
	if err := ctrl.adminService.Delete(reqCtx, e, c.Param("id")); err != nil {
		rows, listErr := ctrl.adminService.List(reqCtx, e)
		if listErr != nil {
			return listErr
		}
		page := EntityPage{Entities: ctrl.registry.All(), Entity: e, Rows: rows, Modal: admin.NewModal()}
		return ctrl.renderEntity(c, utils.ErrorStatus(err), page, utils.ErrorMessage(err))
	}
	return utils.Redirect(c, "/admin/"+e.Name)
}

func (ctrl *AdminController) Approve(c echo.Context) error {
	e, err := ctrl.entity(c)
	if err != nil {
		return err
	}
	if !e.Approve {
		return apperrors.NewBadRequestError("одобрение недоступно")
	}
	if err := ctrl.adminService.Approve(c.Request().Context(), c.Param("id")); err != nil {
		ctrl.logger.Warn("Отзыв не одобрен", zap.String("id", c.Param("id")), zap.Error(err))
		return err
	}
	return utils.Redirect(c, "/admin/"+e.Name)
}

func (ctrl *AdminController) Profile(c echo.Context) error {
	return ctrl.renderProfile(c, http.StatusOK, "", "")
}

func (ctrl *AdminController) renderProfile(c echo.Context, code int, flash, errMsg string) error {
	profile, err := ctrl.profileService.AdminProfile(c.Request().Context())
	if err != nil {
		ctrl.logger.Warn("Профиль администратора не загружен", zap.Error(err))
		profile = currentSession(c).User()
	}
	p := newPage(c, ctrl.bundle.T(currentLang(c), "reception.profile"), AdminProfilePage{Entities: ctrl.registry.All(), Profile: profile})
	p.Flash = flash
	p.Error = errMsg
	return render(c, code, "admin/profile", p)
}

func (ctrl *AdminController) EditUsername(c echo.Context) error {
	var payload dto.EditUsernameDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.renderProfile(c, http.StatusUnprocessableEntity, "", utils.ErrorMessage(err))
	}
	if err := ctrl.profileService.EditUsername(c.Request().Context(), session.RoleAdmin, payload); err != nil {
		return ctrl.renderProfile(c, http.StatusUnprocessableEntity, "", utils.ErrorMessage(err))
	}
	return ctrl.renderProfile(c, http.StatusOK, ctrl.bundle.T(currentLang(c), "admin.saved"), "")
}

func (ctrl *AdminController) EditPassword(c echo.Context) error {
	var payload dto.EditPasswordDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.renderProfile(c, http.StatusUnprocessableEntity, "", utils.ErrorMessage(err))
	}
	if err := ctrl.profileService.EditPassword(c.Request().Context(), session.RoleAdmin, payload); err != nil {
		return ctrl.renderProfile(c, http.StatusUnprocessableEntity, "", utils.ErrorMessage(err))
	}
	return ctrl.renderProfile(c, http.StatusOK, ctrl.bundle.T(currentLang(c), "admin.saved"), "")
}

// bindAndValidate возвращает ошибку со списком неверных полей.
func bindAndValidate(c echo.Context, payload any) error {
	if err := c.Bind(payload); err != nil {
		return apperrors.NewBadRequestError("неверный формат данных")
	}
	if err := c.Validate(payload); err != nil {
		return apperrors.NewBadRequestError("проверьте поля: " + strings.Join(utils.InvalidFields(err), ", "))
	}
	return nil
}
