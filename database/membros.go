package database

import (
	"context"
	"fmt"

	"github.com/colih/gestao-medicos/models"
)

const nomeCompletoExpr = "COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username)"

func membroWhere(f models.MembroFilter, base []any) whereBuilder {
	w := whereBuilder{args: base}
	if f.Ativo != nil {
		w.add("m.ativo = ?", *f.Ativo)
	}
	if f.UserAtivo != nil {
		w.add("u.is_active = ?", *f.UserAtivo)
	}
	if f.Search != "" {
		s := contains(f.Search)
		w.add("(u.username ILIKE ? OR u.first_name ILIKE ? OR u.last_name ILIKE ?)", s, s, s)
	}
	return w
}

// ListMembrosColih lista os membros com a contagem de visitas a médicos dos últimos 30 dias
func ListMembrosColih(ctx context.Context, f models.MembroFilter) ([]models.MembroColih, error) {
	w := membroWhere(f, []any{models.VisitasRecentesDias})
	rows, err := DB.Query(ctx,
		`SELECT m.id, m.user_id, m.ativo, `+nomeCompletoExpr+`,
		 (SELECT COUNT(*) FROM visit_members vm JOIN visits v ON v.id = vm.visit_id
		  WHERE vm.user_id = m.user_id AND v.visit_date >= CURRENT_DATE - $1::int)
		 FROM membros_colih m JOIN users u ON u.id = m.user_id`+w.sql()+" ORDER BY u.first_name, u.last_name, u.username",
		w.args...)
	if err != nil {
		return nil, wrap("list membros colih", err)
	}
	defer rows.Close()

	membros := []models.MembroColih{}
	for rows.Next() {
		var m models.MembroColih
		if err := rows.Scan(&m.ID, &m.UserID, &m.Ativo, &m.NomeCompleto, &m.VisitasRecentes); err != nil {
			return nil, wrap("scan membro colih", err)
		}
		membros = append(membros, m)
	}
	return membros, wrap("list membros colih", rows.Err())
}

// CreateMembroColih vincula um usuário à COLIH
func CreateMembroColih(ctx context.Context, m *models.MembroColih) error {
	err := DB.QueryRow(ctx,
		"INSERT INTO membros_colih (user_id, ativo) VALUES ($1, $2) RETURNING id", m.UserID, m.Ativo).Scan(&m.ID)
	return wrap("create membro colih", err)
}

// UpdateMembroColih altera o flag ativo
func UpdateMembroColih(ctx context.Context, id int64, ativo bool) error {
	return setAtivo(ctx, "update membro colih", "membros_colih", id, ativo)
}

// DeleteMembroColih remove o vínculo; o usuário continua existindo
func DeleteMembroColih(ctx context.Context, id int64) error {
	return deleteByID(ctx, "delete membro colih", "membros_colih", id)
}

// ListMembrosGvp lista os membros do GVP com os acompanhamentos dos últimos 30 dias
func ListMembrosGvp(ctx context.Context, f models.MembroFilter) ([]models.MembroGvp, error) {
	w := membroWhere(f, []any{models.VisitasRecentesDias})
	rows, err := DB.Query(ctx,
		`SELECT m.id, m.user_id, m.ativo, `+nomeCompletoExpr+`, u.email, u.is_active,
		 (SELECT COUNT(*) FROM gvp_visit_members gm JOIN gvp_visits g ON g.id = gm.gvp_visit_id
		  WHERE gm.user_id = m.user_id AND g.submission_date >= NOW() - make_interval(days => $1::int))
		 FROM membros_gvp m JOIN users u ON u.id = m.user_id`+w.sql()+" ORDER BY u.first_name, u.last_name, u.username",
		w.args...)
	if err != nil {
		return nil, wrap("list membros gvp", err)
	}
	defer rows.Close()

	membros := []models.MembroGvp{}
	for rows.Next() {
		var m models.MembroGvp
		if err := rows.Scan(&m.ID, &m.UserID, &m.Ativo, &m.NomeCompleto, &m.Email, &m.UserAtivo, &m.VisitasRecentes); err != nil {
			return nil, wrap("scan membro gvp", err)
		}
		membros = append(membros, m)
	}
	return membros, wrap("list membros gvp", rows.Err())
}

// CreateMembroGvp vincula um usuário ao GVP
func CreateMembroGvp(ctx context.Context, m *models.MembroGvp) error {
	err := DB.QueryRow(ctx,
		"INSERT INTO membros_gvp (user_id, ativo) VALUES ($1, $2) RETURNING id", m.UserID, m.Ativo).Scan(&m.ID)
	return wrap("create membro gvp", err)
}

// UpdateMembroGvp altera o flag ativo
func UpdateMembroGvp(ctx context.Context, id int64, ativo bool) error {
	return setAtivo(ctx, "update membro gvp", "membros_gvp", id, ativo)
}

// DeleteMembroGvp remove o vínculo com o GVP
func DeleteMembroGvp(ctx context.Context, id int64) error {
	return deleteByID(ctx, "delete membro gvp", "membros_gvp", id)
}

// ActiveGvpEmails e-mails dos membros ativos do GVP, destinatários padrão do alerta
func ActiveGvpEmails(ctx context.Context) ([]string, error) {
	rows, err := DB.Query(ctx,
		`SELECT DISTINCT u.email FROM membros_gvp m JOIN users u ON u.id = m.user_id
		 WHERE m.ativo AND u.is_active AND u.email <> '' ORDER BY u.email`)
	if err != nil {
		return nil, wrap("list gvp emails", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, wrap("scan gvp email", err)
		}
		emails = append(emails, e)
	}
	return emails, wrap("list gvp emails", rows.Err())
}

func setAtivo(ctx context.Context, op, table string, id int64, ativo bool) error {
	tag, err := DB.Exec(ctx, "UPDATE "+table+" SET ativo = $1 WHERE id = $2", ativo, id)
	if err != nil {
		return wrap(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
