package dto

// ConsultationDTO - заявка на консультацию с сайта и регистрация пациента
// в консоли регистратуры. Файлы приходят отдельным полем media.
type ConsultationDTO struct {
	FirstName   string `form:"first_name" validate:"required,notblank"`
	SecondName  string `form:"second_name" validate:"required,notblank"`
	ThirdName   string `form:"third_name"`
	PhoneNumber string `form:"phone_number" validate:"required,notblank"`
	Problem     string `form:"problem" validate:"required,notblank"`
}

// Fields - текстовые поля в порядке формы.
func (d ConsultationDTO) Fields() [][2]string {
	return [][2]string{
		{"first_name", d.FirstName},
		{"second_name", d.SecondName},
		{"third_name", d.ThirdName},
		{"phone_number", d.PhoneNumber},
		{"problem", d.Problem},
	}
}

// FeedbackDTO - отзыв посетителя, публикуется после одобрения.
type FeedbackDTO struct {
	FullName    string `form:"full_name" validate:"required,notblank"`
	PhoneNumber string `form:"phone_number" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	Content     string `form:"content" validate:"required,notblank"`
}

// ReceptionProfileDTO - редактирование профиля регистратора (multipart).
type ReceptionProfileDTO struct {
	FirstName  string `form:"first_name"`
	SecondName string `form:"second_name"`
}
