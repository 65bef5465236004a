package entities

type News struct {
	ID            ID      `json:"id"`
	TitleEn       string  `json:"title_en"`
	TitleRu       string  `json:"title_ru"`
	TitleUz       string  `json:"title_uz"`
	DescriptionEn string  `json:"description_en"`
	DescriptionRu string  `json:"description_ru"`
	DescriptionUz string  `json:"description_uz"`
	Media         []Media `json:"media"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

type GalleryItem struct {
	ID      ID      `json:"id"`
	TitleEn string  `json:"title_en"`
	TitleRu string  `json:"title_ru"`
	TitleUz string  `json:"title_uz"`
	Media   []Media `json:"media"`
}

type Statistic struct {
	ID      ID      `json:"id"`
	TitleEn string  `json:"title_en"`
	TitleRu string  `json:"title_ru"`
	TitleUz string  `json:"title_uz"`
	Number  float64 `json:"number"`
}

type AboutUs struct {
	ID        ID     `json:"id"`
	TitleEn   string `json:"title_en"`
	TitleRu   string `json:"title_ru"`
	TitleUz   string `json:"title_uz"`
	ContentEn string `json:"content_en"`
	ContentRu string `json:"content_ru"`
	ContentUz string `json:"content_uz"`
}

type AdditionalInfo struct {
	ID            ID     `json:"id"`
	TitleEn       string `json:"title_en"`
	TitleRu       string `json:"title_ru"`
	TitleUz       string `json:"title_uz"`
	DescriptionEn string `json:"description_en"`
	DescriptionRu string `json:"description_ru"`
	DescriptionUz string `json:"description_uz"`
}

// Contact.Type - phone, email или address.
type Contact struct {
	ID      ID     `json:"id"`
	Type    string `json:"type"`
	Contact string `json:"contact"`
}

// Feedback виден на сайте только после одобрения администратором.
type Feedback struct {
	ID          ID     `json:"id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Content     string `json:"content"`
	IsApproved  bool   `json:"isApproved"`
	CreatedAt   string `json:"createdAt,omitempty"`
}
