package models

import "time"

// Painel totais exibidos na página inicial e no relatório geral
type Painel struct {
	TotalMedicos          int       `json:"total_medicos"`
	MedicosSemVisita      int       `json:"medicos_sem_visita"`
	VisitasUltimos30Dias  int       `json:"visitas_30_dias"`
	PlanilhasPendentes    int       `json:"planilhas_pendentes"`
	CasosEmAcompanhamento int       `json:"casos_em_acompanhamento"`
	CasosFinalizados      int       `json:"casos_finalizados"`
	AcompanhamentosGvp30  int       `json:"acompanhamentos_gvp_30_dias"`
	GeradoEm              time.Time `json:"gerado_em"`
}
