package entities

import "strings"

// Patient - заявка пациента. Активные и завершённые приходят разными списками.
type Patient struct {
	ID          ID      `json:"id"`
	FirstName   string  `json:"first_name"`
	SecondName  string  `json:"second_name"`
	ThirdName   string  `json:"third_name"`
	PhoneNumber string  `json:"phone_number"`
	Problem     string  `json:"problem"`
	Media       []Media `json:"media"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

func (p Patient) FullName() string {
	return strings.TrimSpace(strings.Join([]string{p.SecondName, p.FirstName, p.ThirdName}, " "))
}

type Admin struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
}

type Reception struct {
	ID         ID      `json:"id"`
	FirstName  string  `json:"first_name"`
	SecondName string  `json:"second_name"`
	Username   string  `json:"username"`
	Media      []Media `json:"media"`
}
