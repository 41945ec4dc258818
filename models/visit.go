package models

import (
	"fmt"
	"time"
)

// Tipos de visita
const (
	VisitPreventiva   = "Preventiva"
	VisitApresentacao = "Apresentacao"
	VisitIntervencao  = "Intervencao"
)

// VisitTypeLabels rótulos exibidos para cada tipo de visita
var VisitTypeLabels = map[string]string{
	VisitPreventiva:   "Preventiva",
	VisitApresentacao: "Apresentação de Artigo",
	VisitIntervencao:  "Intervenção",
}

// Visit representa a tabela visits (visitas da COLIH a médicos)
type Visit struct {
	ID            int64     `json:"id" db:"id"`
	DoctorID      int64     `json:"doctor_id" db:"doctor_id" validate:"required,gt=0"`
	DoctorName    string    `json:"doctor_name,omitempty" db:"-"`
	VisitType     string    `json:"visit_type" db:"visit_type" validate:"omitempty,oneof=Preventiva Apresentacao Intervencao"`
	HospitalID    int64     `json:"hospital_id,omitempty" db:"hospital_id"`
	HospitalName  string    `json:"hospital_name,omitempty" db:"-"`
	Article       string    `json:"article" db:"article" validate:"max=200"`
	SpecialtyID   int64     `json:"specialty_id" db:"specialty_id" validate:"required,gt=0"`
	SpecialtyName string    `json:"specialty_name,omitempty" db:"-"`
	VisitDate     Date      `json:"visit_date" db:"visit_date"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	MemberIDs     []int64   `json:"member_ids" db:"-" validate:"min=1"`
	Outcome       string    `json:"outcome" db:"outcome"`
}

// Normalize aplica os valores padrão
func (v *Visit) Normalize() {
	if v.VisitType == "" {
		v.VisitType = VisitPreventiva
	}
}

// Validate valida as tags e os campos de data
func (v *Visit) Validate() FieldErrors {
	fe := ValidateStruct(v)
	if v.VisitDate.IsZero() {
		fe.Add("visit_date", "Este campo é obrigatório.")
	}
	return fe
}

func (v Visit) String() string {
	label := VisitTypeLabels[v.VisitType]
	if label == "" {
		label = v.VisitType
	}
	return fmt.Sprintf("%s - %s (%s)", label, v.DoctorName, v.VisitDate.Format(DateLayout))
}

// VisitFilter parâmetros da listagem de visitas
type VisitFilter struct {
	DoctorID  int64
	VisitType string
	MemberID  int64
	From      Date
	To        Date
}
