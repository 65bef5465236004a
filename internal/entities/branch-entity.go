package entities

type Branch struct {
	ID            ID     `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TitleEn       string `json:"title_en,omitempty"`
	TitleRu       string `json:"title_ru,omitempty"`
	TitleUz       string `json:"title_uz,omitempty"`
	DescriptionEn string `json:"description_en,omitempty"`
	DescriptionRu string `json:"description_ru,omitempty"`
	DescriptionUz string `json:"description_uz,omitempty"`

	Media    []Media      `json:"media"`
	Services []Service    `json:"Services"`
	Techs    []BranchTech `json:"Branch_techs"`
	Doctors  []Doctor     `json:"doctors"`
}

// Service всегда принадлежит ровно одному отделению.
type Service struct {
	ID       ID      `json:"id"`
	BranchID ID      `json:"branch_id"`
	TitleEn  string  `json:"title_en"`
	TitleRu  string  `json:"title_ru"`
	TitleUz  string  `json:"title_uz"`
	Price    float64 `json:"price"`
	Media    []Media `json:"media"`
}

// BranchTech - медицинское оборудование отделения.
type BranchTech struct {
	ID          ID      `json:"id"`
	BranchID    ID      `json:"branch_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Media       []Media `json:"media"`
}
