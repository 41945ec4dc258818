package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/colih/gestao-medicos/models"
)

// SubmitToGvp move a planilha de pendente para em acompanhamento. A troca é
// condicional: duas submissões simultâneas não geram dois alertas.
func SubmitToGvp(ctx context.Context, id int64) (models.PlanilhaEmergencia, error) {
	tag, err := DB.Exec(ctx,
		`UPDATE planilhas_emergencia SET status_gvp = $1, updated_at = NOW()
		 WHERE id = $2 AND (status_gvp IS NULL OR status_gvp = $3)`,
		string(models.StatusAcompanhamento), id, string(models.StatusPendente))
	if err != nil {
		return models.PlanilhaEmergencia{}, wrap("submit gvp", err)
	}
	if tag.RowsAffected() == 0 {
		// Nada mudou: ou a planilha não existe ou já saiu de PEN
		current, err := planilhaStatus(ctx, DB, id, false)
		if err != nil {
			return models.PlanilhaEmergencia{}, wrap("submit gvp", err)
		}
		return models.PlanilhaEmergencia{}, fmt.Errorf("submit gvp: status %s: %w", current, ErrConflict)
	}
	return GetPlanilha(ctx, id)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func planilhaStatus(ctx context.Context, q queryRower, id int64, forUpdate bool) (models.StatusGvp, error) {
	sql := "SELECT COALESCE(status_gvp, '') FROM planilhas_emergencia WHERE id = $1"
	if forUpdate {
		sql += " FOR UPDATE"
	}
	var status string
	if err := q.QueryRow(ctx, sql, id).Scan(&status); err != nil {
		return "", err
	}
	return models.StatusGvp(status).Normalized(), nil
}

// ListActiveCases casos em acompanhamento com o total de visitas do GVP
func ListActiveCases(ctx context.Context) ([]models.GvpActiveCase, error) {
	rows, err := DB.Query(ctx,
		`SELECT p.id, p.nome_paciente, COALESCE(h.name, ''), COALESCE(p.numero_quarto, ''), p.data_hora_contato,
		 COUNT(g.id), MAX(g.submission_date)
		 FROM planilhas_emergencia p
		 LEFT JOIN hospitals h ON h.id = p.nome_hospital_id
		 LEFT JOIN gvp_visits g ON g.planilha_id = p.id
		 WHERE p.status_gvp = $1
		 GROUP BY p.id, h.name
		 ORDER BY p.data_hora_contato DESC`, string(models.StatusAcompanhamento))
	if err != nil {
		return nil, wrap("list active cases", err)
	}
	defer rows.Close()

	cases := []models.GvpActiveCase{}
	for rows.Next() {
		var c models.GvpActiveCase
		if err := rows.Scan(&c.PlanilhaID, &c.NomePaciente, &c.NomeHospital, &c.NumeroQuarto,
			&c.DataHoraContato, &c.TotalVisitas, &c.UltimaSubmissao); err != nil {
			return nil, wrap("scan active case", err)
		}
		cases = append(cases, c)
	}
	return cases, wrap("list active cases", rows.Err())
}

// CreateGvpVisit registra o acompanhamento e, se pedido, finaliza o caso.
// Só casos em acompanhamento aceitam registros; o status é travado com
// FOR UPDATE até o commit.
func CreateGvpVisit(ctx context.Context, v *models.GvpVisit, finalizar bool) error {
	err := pgx.BeginFunc(ctx, DB, func(tx pgx.Tx) error {
		status, err := planilhaStatus(ctx, tx, v.PlanilhaID, true)
		if err != nil {
			return err
		}
		// só AND segue para FIN, então vale também para registros sem finalizar
		if !status.CanTransitionTo(models.StatusFinalizado) {
			return fmt.Errorf("status %s: %w", status, ErrConflict)
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO gvp_visits (planilha_id, action_taken, status_patient)
			 VALUES ($1, $2, $3) RETURNING id, submission_date`,
			v.PlanilhaID, v.ActionTaken, v.StatusPatient).Scan(&v.ID, &v.SubmissionDate)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			"INSERT INTO gvp_visit_members (gvp_visit_id, user_id) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING",
			v.ID, v.DesignatedMemberIDs)
		if err != nil {
			return err
		}

		if finalizar {
			_, err = tx.Exec(ctx,
				"UPDATE planilhas_emergencia SET status_gvp = $1, updated_at = NOW() WHERE id = $2",
				string(models.StatusFinalizado), v.PlanilhaID)
		}
		return err
	})
	return wrap("create gvp visit", err)
}

// ListGvpVisits acompanhamentos de um caso, do mais recente para o mais antigo
func ListGvpVisits(ctx context.Context, planilhaID int64) ([]models.GvpVisit, error) {
	rows, err := DB.Query(ctx,
		`SELECT g.id, g.planilha_id, p.nome_paciente, g.action_taken, g.status_patient, g.submission_date,
		 ARRAY(SELECT m.user_id FROM gvp_visit_members m WHERE m.gvp_visit_id = g.id ORDER BY m.user_id)
		 FROM gvp_visits g JOIN planilhas_emergencia p ON p.id = g.planilha_id
		 WHERE g.planilha_id = $1
		 ORDER BY g.submission_date DESC, g.id DESC`, planilhaID)
	if err != nil {
		return nil, wrap("list gvp visits", err)
	}
	defer rows.Close()

	visits := []models.GvpVisit{}
	for rows.Next() {
		var v models.GvpVisit
		if err := rows.Scan(&v.ID, &v.PlanilhaID, &v.NomePaciente, &v.ActionTaken, &v.StatusPatient,
			&v.SubmissionDate, &v.DesignatedMemberIDs); err != nil {
			return nil, wrap("scan gvp visit", err)
		}
		visits = append(visits, v)
	}
	return visits, wrap("list gvp visits", rows.Err())
}
