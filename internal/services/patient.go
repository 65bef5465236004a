package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/dto"
	"github.com/Obkeldiyev/vitality-clinic-hub/internal/entities"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/apiclient"
	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/upload"
)

type PatientServiceInterface interface {
	SubmitConsultation(ctx context.Context, form dto.ConsultationDTO, files []upload.File) error
	LeaveFeedback(ctx context.Context, form dto.FeedbackDTO) error
	Patients(ctx context.Context) ([]entities.Patient, error)
	History(ctx context.Context) ([]entities.Patient, error)
	Patient(ctx context.Context, id string) (entities.Patient, error)
	DeletePatient(ctx context.Context, id string) error
	Feedbacks(ctx context.Context) ([]entities.Feedback, error)
	ExportPatients(ctx context.Context, w io.Writer) error
}

type PatientService struct {
	api    *apiclient.Client
	logger *zap.Logger
}

func NewPatientService(api *apiclient.Client, logger *zap.Logger) PatientServiceInterface {
	return &PatientService{api: api, logger: logger}
}

// ConsultationForm собирает multipart-заявку: по части на каждое непустое
// текстовое поле и по части media на каждый файл.
func ConsultationForm(form dto.ConsultationDTO, files []upload.File) *apiclient.Form {
	body := apiclient.NewForm()
	for _, f := range form.Fields() {
		body.FieldIfNotEmpty(f[0], strings.TrimSpace(f[1]))
	}
	return body.Files("media", files)
}

func (s *PatientService) SubmitConsultation(ctx context.Context, form dto.ConsultationDTO, files []upload.File) error {
	if err := s.api.Public().CreatePatient(ctx, ConsultationForm(form, files)); err != nil {
		s.logger.Error("Не удалось отправить заявку", zap.Error(err), zap.Int("files", len(files)))
		return err
	}
	s.logger.Info("Заявка на консультацию принята", zap.Int("files", len(files)))
	return nil
}

func (s *PatientService) LeaveFeedback(ctx context.Context, form dto.FeedbackDTO) error {
	req := apiclient.FeedbackRequest{
		FullName:    strings.TrimSpace(form.FullName),
		PhoneNumber: strings.TrimSpace(form.PhoneNumber),
		Email:       strings.TrimSpace(form.Email),
		Content:     strings.TrimSpace(form.Content),
	}
	if err := s.api.Public().LeaveFeedback(ctx, req); err != nil {
		s.logger.Error("Не удалось отправить отзыв", zap.Error(err))
		return err
	}
	return nil
}

func (s *PatientService) Patients(ctx context.Context) ([]entities.Patient, error) {
	return s.api.Reception().Patients(ctx)
}

func (s *PatientService) History(ctx context.Context) ([]entities.Patient, error) {
	return s.api.Reception().History(ctx)
}

func (s *PatientService) Patient(ctx context.Context, id string) (entities.Patient, error) {
	return s.api.Reception().Patient(ctx, id)
}

func (s *PatientService) DeletePatient(ctx context.Context, id string) error {
	if err := s.api.Reception().DeletePatient(ctx, id); err != nil {
		s.logger.Error("Не удалось удалить заявку", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("Заявка удалена", zap.String("id", id))
	return nil
}

// Feedbacks - все отзывы, включая неодобренные, только для чтения.
func (s *PatientService) Feedbacks(ctx context.Context) ([]entities.Feedback, error) {
	return s.api.Reception().Feedbacks(ctx)
}

var patientHeaders = []interface{}{
	"ID", "Фамилия", "Имя", "Отчество", "Телефон", "Проблема", "Файлов", "Создана",
}

// ExportPatients пишет активные заявки в XLSX.
func (s *PatientService) ExportPatients(ctx context.Context, w io.Writer) error {
	patients, err := s.api.Reception().Patients(ctx)
	if err != nil {
		return err
	}
	return WritePatientsXLSX(w, patients)
}

func WritePatientsXLSX(w io.Writer, patients []entities.Patient) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Пациенты"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &patientHeaders); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(sheet, "A1", "H1", style)

	for i, p := range patients {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			p.ID.String(), p.SecondName, p.FirstName, p.ThirdName,
			p.PhoneNumber, p.Problem, len(p.Media), p.CreatedAt,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}
	_ = f.SetColWidth(sheet, "B", "D", 18)
	_ = f.SetColWidth(sheet, "E", "E", 18)
	_ = f.SetColWidth(sheet, "F", "F", 50)
	_ = f.SetColWidth(sheet, "H", "H", 22)

	return f.Write(w)
}
