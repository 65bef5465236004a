package entities

// Media - загруженный файл (изображение или видео). После загрузки не меняется.
type Media struct {
	ID   ID     `json:"id"`
	URL  string `json:"url"`
	Type string `json:"type"`
}
