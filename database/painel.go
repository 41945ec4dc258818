package database

import (
	"context"
	"time"

	"github.com/colih/gestao-medicos/models"
)

// GetPainel calcula os totais do painel em uma única consulta
func GetPainel(ctx context.Context) (models.Painel, error) {
	p := models.Painel{GeradoEm: time.Now()}
	err := DB.QueryRow(ctx,
		`SELECT
		 (SELECT COUNT(*) FROM doctors),
		 (SELECT COUNT(*) FROM doctors WHERE last_visit IS NULL),
		 (SELECT COUNT(*) FROM visits WHERE visit_date >= CURRENT_DATE - $1::int),
		 (SELECT COUNT(*) FROM planilhas_emergencia WHERE status_gvp IS NULL OR status_gvp = $2),
		 (SELECT COUNT(*) FROM planilhas_emergencia WHERE status_gvp = $3),
		 (SELECT COUNT(*) FROM planilhas_emergencia WHERE status_gvp = $4),
		 (SELECT COUNT(*) FROM gvp_visits WHERE submission_date >= NOW() - make_interval(days => $1::int))`,
		models.VisitasRecentesDias, string(models.StatusPendente), string(models.StatusAcompanhamento),
		string(models.StatusFinalizado)).
		Scan(&p.TotalMedicos, &p.MedicosSemVisita, &p.VisitasUltimos30Dias, &p.PlanilhasPendentes,
			&p.CasosEmAcompanhamento, &p.CasosFinalizados, &p.AcompanhamentosGvp30)
	return p, wrap("get painel", err)
}
