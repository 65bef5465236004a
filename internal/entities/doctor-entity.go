package entities

import "strings"

type Doctor struct {
	ID          ID      `json:"id"`
	FirstName   string  `json:"first_name"`
	SecondName  string  `json:"second_name"`
	ThirdName   string  `json:"third_name"`
	Description string  `json:"description"`
	BranchID    ID      `json:"branch_id"`
	Branch      *Branch `json:"branch,omitempty"`
	Media       []Media `json:"media"`
	Awards      []Award `json:"awards"`
}

func (d Doctor) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.SecondName, d.FirstName, d.ThirdName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

type Award struct {
	ID       ID      `json:"id"`
	DoctorID ID      `json:"doctor_id"`
	Title    string  `json:"title"`
	Level    string  `json:"level"`
	Media    []Media `json:"media"`
}
