package models

import (
	"time"
)

// StatusGvp situação do acompanhamento GVP de uma planilha
type StatusGvp string

const (
	StatusPendente       StatusGvp = "PEN"
	StatusAcompanhamento StatusGvp = "AND"
	StatusFinalizado     StatusGvp = "FIN"
)

var statusGvpLabels = map[StatusGvp]string{
	StatusPendente:       "Pendente",
	StatusAcompanhamento: "Em Acompanhamento",
	StatusFinalizado:     "Finalizado",
}

// Normalized trata o status vazio (NULL no banco) como pendente
func (s StatusGvp) Normalized() StatusGvp {
	if s == "" {
		return StatusPendente
	}
	return s
}

// Valid indica se o código é um dos status conhecidos
func (s StatusGvp) Valid() bool {
	_, ok := statusGvpLabels[s]
	return ok
}

// Label devolve o nome exibido do status
func (s StatusGvp) Label() string {
	return statusGvpLabels[s.Normalized()]
}

// CanTransitionTo só permite PEN -> AND -> FIN
func (s StatusGvp) CanTransitionTo(next StatusGvp) bool {
	switch s.Normalized() {
	case StatusPendente:
		return next == StatusAcompanhamento
	case StatusAcompanhamento:
		return next == StatusFinalizado
	default:
		return false
	}
}

// GvpVisit representa um registro de acompanhamento do GVP
type GvpVisit struct {
	ID                  int64     `json:"id" db:"id"`
	PlanilhaID          int64     `json:"planilha_id" db:"planilha_id" validate:"required,gt=0"`
	NomePaciente        string    `json:"nome_paciente,omitempty" db:"-"`
	DesignatedMemberIDs []int64   `json:"designated_member_ids" db:"-" validate:"min=1"`
	ActionTaken         string    `json:"action_taken" db:"action_taken" validate:"required"`
	StatusPatient       string    `json:"status_patient" db:"status_patient" validate:"required,max=100"`
	SubmissionDate      time.Time `json:"submission_date" db:"submission_date"`
}

// GvpVisitRequest corpo do registro de acompanhamento
type GvpVisitRequest struct {
	GvpVisit
	// FinalizarCaso encerra o acompanhamento (AND -> FIN) junto com o registro
	FinalizarCaso bool `json:"finalizar_caso"`
}

// GvpActiveCase linha da lista de casos em acompanhamento
type GvpActiveCase struct {
	PlanilhaID      int64      `json:"planilha_id"`
	NomePaciente    string     `json:"nome_paciente"`
	NomeHospital    string     `json:"nome_hospital,omitempty"`
	NumeroQuarto    string     `json:"numero_quarto,omitempty"`
	DataHoraContato time.Time  `json:"data_hora_contato"`
	TotalVisitas    int        `json:"total_visitas"`
	UltimaSubmissao *time.Time `json:"ultima_submissao,omitempty"`
}
