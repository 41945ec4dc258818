package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/colih/gestao-medicos/models"
)

const doctorSelect = `SELECT d.id, d.name, COALESCE(d.city_id, 0), COALESCE(c.name, ''),
	COALESCE(d.hospital_id, 0), COALESCE(h.name, ''), d.address, COALESCE(d.email, ''),
	d.specialty_id, s.name, COALESCE(d.specialty2_id, 0), COALESCE(d.specialty3_id, 0),
	COALESCE(d.subspecialty, ''), COALESCE(d.crm, ''), d.type_patient, d.status,
	d.attends_sus, d.attends_private, d.performs_surgeries, d.last_visit,
	d.is_jehovah_witness, d.is_hid_consultant, COALESCE(d.obs, ''), COALESCE(d.user_id, 0), d.register_date
	FROM doctors d
	JOIN specialties s ON s.id = d.specialty_id
	LEFT JOIN cities c ON c.id = d.city_id
	LEFT JOIN hospitals h ON h.id = d.hospital_id`

func scanDoctor(row scanner) (models.Doctor, error) {
	var d models.Doctor
	var lastVisit pgtype.Date
	err := row.Scan(&d.ID, &d.Name, &d.CityID, &d.CityName, &d.HospitalID, &d.HospitalName,
		&d.Address, &d.Email, &d.SpecialtyID, &d.SpecialtyName, &d.Specialty2ID, &d.Specialty3ID,
		&d.Subspecialty, &d.CRM, &d.TypePatient, &d.Status, &d.AttendsSUS, &d.AttendsPrivate,
		&d.PerformsSurgeries, &lastVisit, &d.IsJehovahWitness, &d.IsHIDConsultant, &d.Obs,
		&d.UserID, &d.RegisterDate)
	d.LastVisit = models.DateFromPg(lastVisit)
	return d, err
}

// ListDoctors aplica os filtros da busca de médicos: nome, hospital e cidade
// por trecho do nome; especialidade pelo id
func ListDoctors(ctx context.Context, f models.DoctorFilter) ([]models.Doctor, error) {
	var w whereBuilder
	if f.Name != "" {
		w.add("d.name ILIKE ?", contains(f.Name))
	}
	if f.Hospital != "" {
		w.add("h.name ILIKE ?", contains(f.Hospital))
	}
	if f.City != "" {
		w.add("c.name ILIKE ?", contains(f.City))
	}
	if f.SpecialtyID > 0 {
		w.add("d.specialty_id = ?", f.SpecialtyID)
	}
	if f.Search != "" {
		w.add("(d.name ILIKE ? OR d.crm ILIKE ? OR d.email ILIKE ?)", contains(f.Search), contains(f.Search), contains(f.Search))
	}
	if f.Status != "" {
		w.add("d.status = ?", f.Status)
	}
	return queryDoctors(ctx, doctorSelect+w.sql()+" ORDER BY d.id", w.args...)
}

func queryDoctors(ctx context.Context, sql string, args ...any) ([]models.Doctor, error) {
	rows, err := DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap("list doctors", err)
	}
	defer rows.Close()

	doctors := []models.Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, wrap("scan doctor", err)
		}
		doctors = append(doctors, d)
	}
	return doctors, wrap("list doctors", rows.Err())
}

// GetDoctor busca um médico pelo id
func GetDoctor(ctx context.Context, id int64) (models.Doctor, error) {
	d, err := scanDoctor(DB.QueryRow(ctx, doctorSelect+" WHERE d.id = $1", id))
	return d, wrap("get doctor", err)
}

func doctorArgs(d *models.Doctor) []any {
	return []any{
		d.Name, d.CityID, d.HospitalID, d.Address, d.Email, d.SpecialtyID, d.Specialty2ID, d.Specialty3ID,
		d.Subspecialty, d.CRM, d.TypePatient, d.Status, d.AttendsSUS, d.AttendsPrivate, d.PerformsSurgeries,
		d.LastVisit.Ptr(), d.IsJehovahWitness, d.IsHIDConsultant, d.Obs, d.UserID,
	}
}

// CreateDoctor insere o médico; ids zero e textos vazios viram NULL
func CreateDoctor(ctx context.Context, d *models.Doctor) error {
	d.Normalize()
	err := DB.QueryRow(ctx,
		`INSERT INTO doctors (name, city_id, hospital_id, address, email, specialty_id, specialty2_id, specialty3_id,
		 subspecialty, crm, type_patient, status, attends_sus, attends_private, performs_surgeries, last_visit,
		 is_jehovah_witness, is_hid_consultant, obs, user_id)
		 VALUES ($1, NULLIF($2, 0), NULLIF($3, 0), $4, NULLIF($5, ''), $6, NULLIF($7, 0), NULLIF($8, 0),
		 NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13, $14, $15, $16, $17, $18, NULLIF($19, ''), NULLIF($20, 0))
		 RETURNING id, register_date`,
		doctorArgs(d)...).Scan(&d.ID, &d.RegisterDate)
	return wrap("create doctor", err)
}

// UpdateDoctor grava todos os campos editáveis do médico
func UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	d.Normalize()
	args := append(doctorArgs(d), d.ID)
	err := DB.QueryRow(ctx,
		`UPDATE doctors SET name = $1, city_id = NULLIF($2, 0), hospital_id = NULLIF($3, 0), address = $4,
		 email = NULLIF($5, ''), specialty_id = $6, specialty2_id = NULLIF($7, 0), specialty3_id = NULLIF($8, 0),
		 subspecialty = NULLIF($9, ''), crm = NULLIF($10, ''), type_patient = $11, status = $12,
		 attends_sus = $13, attends_private = $14, performs_surgeries = $15, last_visit = $16,
		 is_jehovah_witness = $17, is_hid_consultant = $18, obs = NULLIF($19, ''), user_id = NULLIF($20, 0)
		 WHERE id = $21 RETURNING register_date`,
		args...).Scan(&d.RegisterDate)
	return wrap("update doctor", err)
}

// DeleteDoctor exclui o médico com seus telefones e visitas (CASCADE)
func DeleteDoctor(ctx context.Context, id int64) error {
	return deleteByID(ctx, "delete doctor", "doctors", id)
}

// --- Telefones ---

// ListPhones lista os telefones de um médico, ou de todos quando doctorID é zero
func ListPhones(ctx context.Context, doctorID int64) ([]models.Phone, error) {
	var w whereBuilder
	if doctorID > 0 {
		w.add("p.doctor_id = ?", doctorID)
	}
	rows, err := DB.Query(ctx,
		`SELECT p.id, p.doctor_id, d.name, COALESCE(p.number, ''), COALESCE(p.observation, '')
		 FROM phones p JOIN doctors d ON d.id = p.doctor_id`+w.sql()+" ORDER BY d.name, p.id", w.args...)
	if err != nil {
		return nil, wrap("list phones", err)
	}
	defer rows.Close()

	phones := []models.Phone{}
	for rows.Next() {
		var p models.Phone
		if err := rows.Scan(&p.ID, &p.DoctorID, &p.DoctorName, &p.Number, &p.Observation); err != nil {
			return nil, wrap("scan phone", err)
		}
		phones = append(phones, p)
	}
	return phones, wrap("list phones", rows.Err())
}

// CreatePhone adiciona um contato telefônico ao médico
func CreatePhone(ctx context.Context, p *models.Phone) error {
	err := DB.QueryRow(ctx,
		"INSERT INTO phones (doctor_id, number, observation) VALUES ($1, $2, NULLIF($3, '')) RETURNING id",
		p.DoctorID, p.Number, p.Observation).Scan(&p.ID)
	return wrap("create phone", err)
}

// DeletePhone remove o telefone, desde que pertença ao médico informado
func DeletePhone(ctx context.Context, doctorID, phoneID int64) error {
	tag, err := DB.Exec(ctx, "DELETE FROM phones WHERE id = $1 AND doctor_id = $2", phoneID, doctorID)
	if err != nil {
		return wrap("delete phone", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete phone: %w", ErrNotFound)
	}
	return nil
}
