package models

import (
	"time"
)

// Tipos de paciente atendidos pelo médico
const (
	PatientPediatrico = "Pediátrico"
	PatientAdulto     = "Adulto"
	PatientAmbos      = "Ambos"
)

// Doctor representa a tabela doctors (médicos cooperadores)
type Doctor struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"name" db:"name" validate:"required,max=100"`
	CityID            int64     `json:"city_id,omitempty" db:"city_id"`
	CityName          string    `json:"city_name,omitempty" db:"-"`
	HospitalID        int64     `json:"hospital_id,omitempty" db:"hospital_id"`
	HospitalName      string    `json:"hospital_name,omitempty" db:"-"`
	Address           string    `json:"address" db:"address" validate:"required,max=100"`
	Email             string    `json:"email" db:"email" validate:"omitempty,email"`
	SpecialtyID       int64     `json:"specialty_id" db:"specialty_id" validate:"required,gt=0"`
	SpecialtyName     string    `json:"specialty_name,omitempty" db:"-"`
	Specialty2ID      int64     `json:"specialty2_id,omitempty" db:"specialty2_id"`
	Specialty3ID      int64     `json:"specialty3_id,omitempty" db:"specialty3_id"`
	Subspecialty      string    `json:"subspecialty" db:"subspecialty" validate:"max=30"`
	CRM               string    `json:"crm" db:"crm" validate:"max=80"`
	TypePatient       string    `json:"type_patient" db:"type_patient" validate:"omitempty,oneof=Pediátrico Adulto Ambos"`
	Status            string    `json:"status" db:"status" validate:"required,max=40"`
	AttendsSUS        bool      `json:"attends_sus" db:"attends_sus"`
	AttendsPrivate    bool      `json:"attends_private" db:"attends_private"`
	PerformsSurgeries bool      `json:"performs_surgeries" db:"performs_surgeries"`
	LastVisit         Date      `json:"last_visit" db:"last_visit"`
	IsJehovahWitness  bool      `json:"is_jehovah_witness" db:"is_jehovah_witness"`
	IsHIDConsultant   bool      `json:"is_hid_consultant" db:"is_hid_consultant"`
	Obs               string    `json:"obs" db:"obs"`
	UserID            int64     `json:"user_id,omitempty" db:"user_id"`
	RegisterDate      time.Time `json:"register_date" db:"register_date"`
}

// Normalize aplica os valores padrão do cadastro
func (d *Doctor) Normalize() {
	if d.TypePatient == "" {
		d.TypePatient = PatientAdulto
	}
}

// DoctorFilter parâmetros da busca de médicos
type DoctorFilter struct {
	Name        string `query:"name"`
	Hospital    string `query:"hospital"`
	City        string `query:"city"`
	SpecialtyID int64  `query:"specialty"`
	// Busca livre do admin (nome, CRM ou e-mail)
	Search string `query:"search"`
	Status string `query:"status"`
}

// DoctorDetail agrupa o médico com seus contatos e visitas
type DoctorDetail struct {
	Doctor Doctor  `json:"doctor"`
	Phones []Phone `json:"phones"`
	Visits []Visit `json:"visits"`
}
