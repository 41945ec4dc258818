package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/colih/gestao-medicos/models"
)

const visitSelect = `SELECT v.id, v.doctor_id, d.name, v.visit_type, COALESCE(v.hospital_id, 0), COALESCE(h.name, ''),
	COALESCE(v.article, ''), v.specialty_id, s.name, v.visit_date, v.created_at, COALESCE(v.outcome, ''),
	ARRAY(SELECT vm.user_id FROM visit_members vm WHERE vm.visit_id = v.id ORDER BY vm.user_id)
	FROM visits v
	JOIN doctors d ON d.id = v.doctor_id
	JOIN specialties s ON s.id = v.specialty_id
	LEFT JOIN hospitals h ON h.id = v.hospital_id`

func scanVisit(row scanner) (models.Visit, error) {
	var v models.Visit
	var visitDate pgtype.Date
	err := row.Scan(&v.ID, &v.DoctorID, &v.DoctorName, &v.VisitType, &v.HospitalID, &v.HospitalName,
		&v.Article, &v.SpecialtyID, &v.SpecialtyName, &visitDate, &v.CreatedAt, &v.Outcome, &v.MemberIDs)
	v.VisitDate = models.DateFromPg(visitDate)
	return v, err
}

// ListVisits lista as visitas da mais recente para a mais antiga
func ListVisits(ctx context.Context, f models.VisitFilter) ([]models.Visit, error) {
	var w whereBuilder
	if f.DoctorID > 0 {
		w.add("v.doctor_id = ?", f.DoctorID)
	}
	if f.VisitType != "" {
		w.add("v.visit_type = ?", f.VisitType)
	}
	if f.MemberID > 0 {
		w.add("EXISTS (SELECT 1 FROM visit_members m WHERE m.visit_id = v.id AND m.user_id = ?)", f.MemberID)
	}
	if !f.From.IsZero() {
		w.add("v.visit_date >= ?", f.From.Time)
	}
	if !f.To.IsZero() {
		w.add("v.visit_date <= ?", f.To.Time)
	}

	rows, err := DB.Query(ctx, visitSelect+w.sql()+" ORDER BY v.visit_date DESC, v.id DESC", w.args...)
	if err != nil {
		return nil, wrap("list visits", err)
	}
	defer rows.Close()

	visits := []models.Visit{}
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, wrap("scan visit", err)
		}
		visits = append(visits, v)
	}
	return visits, wrap("list visits", rows.Err())
}

// GetVisit busca uma visita pelo id
func GetVisit(ctx context.Context, id int64) (models.Visit, error) {
	v, err := scanVisit(DB.QueryRow(ctx, visitSelect+" WHERE v.id = $1", id))
	return v, wrap("get visit", err)
}

// CreateVisit grava a visita, os membros visitantes e atualiza a última visita
// do médico na mesma transação
func CreateVisit(ctx context.Context, v *models.Visit) error {
	v.Normalize()
	err := pgx.BeginFunc(ctx, DB, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO visits (doctor_id, visit_type, hospital_id, article, specialty_id, visit_date, outcome)
			 VALUES ($1, $2, NULLIF($3, 0), NULLIF($4, ''), $5, $6, NULLIF($7, ''))
			 RETURNING id, created_at`,
			v.DoctorID, v.VisitType, v.HospitalID, v.Article, v.SpecialtyID, v.VisitDate.Time, v.Outcome).
			Scan(&v.ID, &v.CreatedAt)
		if err != nil {
			return err
		}
		if err := setVisitMembers(ctx, tx, v.ID, v.MemberIDs); err != nil {
			return err
		}
		return touchLastVisit(ctx, tx, v.DoctorID, v.VisitDate)
	})
	return wrap("create visit", err)
}

// UpdateVisit regrava a visita e substitui a lista de membros
func UpdateVisit(ctx context.Context, v *models.Visit) error {
	v.Normalize()
	err := pgx.BeginFunc(ctx, DB, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`UPDATE visits SET doctor_id = $1, visit_type = $2, hospital_id = NULLIF($3, 0), article = NULLIF($4, ''),
			 specialty_id = $5, visit_date = $6, outcome = NULLIF($7, '')
			 WHERE id = $8 RETURNING created_at`,
			v.DoctorID, v.VisitType, v.HospitalID, v.Article, v.SpecialtyID, v.VisitDate.Time, v.Outcome, v.ID).
			Scan(&v.CreatedAt)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, "DELETE FROM visit_members WHERE visit_id = $1", v.ID); err != nil {
			return err
		}
		if err := setVisitMembers(ctx, tx, v.ID, v.MemberIDs); err != nil {
			return err
		}
		return touchLastVisit(ctx, tx, v.DoctorID, v.VisitDate)
	})
	return wrap("update visit", err)
}

// DeleteVisit exclui a visita; a última visita do médico não é recalculada
func DeleteVisit(ctx context.Context, id int64) error {
	return deleteByID(ctx, "delete visit", "visits", id)
}

func setVisitMembers(ctx context.Context, tx pgx.Tx, visitID int64, members []int64) error {
	_, err := tx.Exec(ctx,
		"INSERT INTO visit_members (visit_id, user_id) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING",
		visitID, members)
	return err
}

// touchLastVisit só avança a data: uma visita antiga lançada depois não a recua
func touchLastVisit(ctx context.Context, tx pgx.Tx, doctorID int64, date models.Date) error {
	_, err := tx.Exec(ctx,
		"UPDATE doctors SET last_visit = $1 WHERE id = $2 AND (last_visit IS NULL OR last_visit < $1)",
		date.Time, doctorID)
	return err
}
