package models

import (
	"time"
)

// City representa a tabela cities (padronização de cidades)
type City struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" validate:"required,max=100"`
	UF   string `json:"uf" db:"uf" validate:"required,len=2"`
}

// Hospital representa a tabela hospitals
type Hospital struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" validate:"required,max=100"`
	CityID       int64     `json:"city_id" db:"city_id" validate:"required,gt=0"`
	CityName     string    `json:"city_name,omitempty" db:"-"`
	Address      string    `json:"address" db:"address" validate:"max=200"`
	Phone        string    `json:"phone" db:"phone" validate:"max=20"`
	RegisterDate time.Time `json:"register_date" db:"register_date"`
	Observation  string    `json:"observation" db:"observation"`
}

// Specialty representa a tabela specialties
type Specialty struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" validate:"required,max=100"`
	RegisterDate time.Time `json:"register_date" db:"register_date"`
}

// Phone representa um contato telefônico de um médico
type Phone struct {
	ID          int64  `json:"id" db:"id"`
	DoctorID    int64  `json:"doctor_id" db:"doctor_id"`
	DoctorName  string `json:"doctor_name,omitempty" db:"-"`
	Number      string `json:"number" db:"number" validate:"max=20"`
	Observation string `json:"observation" db:"observation"`
}

// CityFilter parâmetros de busca do admin de cidades
type CityFilter struct {
	Search string `query:"search"`
	UF     string `query:"uf"`
}

// HospitalFilter parâmetros de busca do admin de hospitais
type HospitalFilter struct {
	Search string `query:"search"`
	CityID int64  `query:"city"`
}
