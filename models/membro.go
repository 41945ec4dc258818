package models

// Janela usada na contagem de visitas recentes dos membros
const VisitasRecentesDias = 30

// MembroColih membro da Comissão de Ligação com Hospitais
type MembroColih struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id" validate:"required,gt=0"`
	Ativo  bool  `json:"ativo" db:"ativo"`

	// Somente leitura
	NomeCompleto    string `json:"nome_completo,omitempty" db:"-"`
	VisitasRecentes int    `json:"visitas_30_dias" db:"-"`
}

// MembroGvp membro do Grupo de Visitas a Pacientes
type MembroGvp struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id" validate:"required,gt=0"`
	Ativo  bool  `json:"ativo" db:"ativo"`

	// Somente leitura
	NomeCompleto    string `json:"nome_completo,omitempty" db:"-"`
	Email           string `json:"email,omitempty" db:"-"`
	UserAtivo       bool   `json:"user_ativo" db:"-"`
	VisitasRecentes int    `json:"visitas_30_dias" db:"-"`
}

// MembroFilter filtros laterais e busca do admin de membros
type MembroFilter struct {
	Ativo     *bool
	UserAtivo *bool
	Search    string
}
