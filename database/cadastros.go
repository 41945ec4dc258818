package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/colih/gestao-medicos/models"
)

// whereBuilder monta cláusulas WHERE com parâmetros numerados
type whereBuilder struct {
	conds []string
	args  []any
}

// add recebe a condição com "?" no lugar do parâmetro
func (w *whereBuilder) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// likeEscaper neutraliza curingas do LIKE; o escape padrão do Postgres é a barra invertida
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// --- Especialidades ---

// ListSpecialties lista especialidades filtrando pelo nome (icontains)
func ListSpecialties(ctx context.Context, name string) ([]models.Specialty, error) {
	var w whereBuilder
	if name != "" {
		w.add("name ILIKE ?", contains(name))
	}
	rows, err := DB.Query(ctx, "SELECT id, name, register_date FROM specialties"+w.sql()+" ORDER BY name", w.args...)
	if err != nil {
		return nil, wrap("list specialties", err)
	}
	defer rows.Close()

	specialties := []models.Specialty{}
	for rows.Next() {
		var s models.Specialty
		if err := rows.Scan(&s.ID, &s.Name, &s.RegisterDate); err != nil {
			return nil, wrap("scan specialty", err)
		}
		specialties = append(specialties, s)
	}
	return specialties, wrap("list specialties", rows.Err())
}

// GetSpecialty busca uma especialidade pelo id
func GetSpecialty(ctx context.Context, id int64) (models.Specialty, error) {
	var s models.Specialty
	err := DB.QueryRow(ctx, "SELECT id, name, register_date FROM specialties WHERE id = $1", id).
		Scan(&s.ID, &s.Name, &s.RegisterDate)
	return s, wrap("get specialty", err)
}

// CreateSpecialty insere a especialidade e preenche id e data de cadastro
func CreateSpecialty(ctx context.Context, s *models.Specialty) error {
	err := DB.QueryRow(ctx,
		"INSERT INTO specialties (name) VALUES ($1) RETURNING id, register_date", s.Name).
		Scan(&s.ID, &s.RegisterDate)
	return wrap("create specialty", err)
}

// UpdateSpecialty altera o nome da especialidade
func UpdateSpecialty(ctx context.Context, s *models.Specialty) error {
	err := DB.QueryRow(ctx,
		"UPDATE specialties SET name = $1 WHERE id = $2 RETURNING register_date", s.Name, s.ID).
		Scan(&s.RegisterDate)
	return wrap("update specialty", err)
}

// DeleteSpecialty exclui a especialidade; falha com ErrProtected se houver médicos ou visitas
func DeleteSpecialty(ctx context.Context, id int64) error {
	return deleteByID(ctx, "delete specialty", "specialties", id)
}

// deleteByID exclui uma linha e devolve ErrNotFound quando nada foi apagado
func deleteByID(ctx context.Context, op, table string, id int64) error {
	tag, err := DB.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return wrap(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// --- Cidades ---

// ListCities busca por nome ou UF e filtra por UF
func ListCities(ctx context.Context, f models.CityFilter) ([]models.City, error) {
	var w whereBuilder
	if f.Search != "" {
		w.add("(name ILIKE ? OR uf ILIKE ?)", contains(f.Search), contains(f.Search))
	}
	if f.UF != "" {
		w.add("uf = ?", strings.ToUpper(f.UF))
	}
	rows, err := DB.Query(ctx, "SELECT id, name, uf FROM cities"+w.sql()+" ORDER BY name", w.args...)
	if err != nil {
		return nil, wrap("list cities", err)
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.UF); err != nil {
			return nil, wrap("scan city", err)
		}
		cities = append(cities, c)
	}
	return cities, wrap("list cities", rows.Err())
}

// GetCity busca uma cidade pelo id
func GetCity(ctx context.Context, id int64) (models.City, error) {
	var c models.City
	err := DB.QueryRow(ctx, "SELECT id, name, uf FROM cities WHERE id = $1", id).Scan(&c.ID, &c.Name, &c.UF)
	return c, wrap("get city", err)
}

// CreateCity insere a cidade
func CreateCity(ctx context.Context, c *models.City) error {
	c.UF = strings.ToUpper(c.UF)
	err := DB.QueryRow(ctx, "INSERT INTO cities (name, uf) VALUES ($1, $2) RETURNING id", c.Name, c.UF).Scan(&c.ID)
	return wrap("create city", err)
}

// UpdateCity altera nome e UF
func UpdateCity(ctx context.Context, c *models.City) error {
	c.UF = strings.ToUpper(c.UF)
	tag, err := DB.Exec(ctx, "UPDATE cities SET name = $1, uf = $2 WHERE id = $3", c.Name, c.UF, c.ID)
	if err != nil {
		return wrap("update city", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update city: %w", ErrNotFound)
	}
	return nil
}

// DeleteCity exclui a cidade; hospitais e médicos protegem a exclusão
func DeleteCity(ctx context.Context, id int64) error {
	return deleteByID(ctx, "delete city", "cities", id)
}

// --- Hospitais ---

const hospitalSelect = `SELECT h.id, h.name, h.city_id, c.name, COALESCE(h.address, ''), COALESCE(h.phone, ''),
	h.register_date, COALESCE(h.observation, '')
	FROM hospitals h JOIN cities c ON c.id = h.city_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanHospital(row scanner) (models.Hospital, error) {
	var h models.Hospital
	err := row.Scan(&h.ID, &h.Name, &h.CityID, &h.CityName, &h.Address, &h.Phone, &h.RegisterDate, &h.Observation)
	return h, err
}

// ListHospitals busca por nome do hospital ou da cidade e filtra pela cidade
func ListHospitals(ctx context.Context, f models.HospitalFilter) ([]models.Hospital, error) {
	var w whereBuilder
	if f.Search != "" {
		w.add("(h.name ILIKE ? OR c.name ILIKE ?)", contains(f.Search), contains(f.Search))
	}
	if f.CityID > 0 {
		w.add("h.city_id = ?", f.CityID)
	}
	rows, err := DB.Query(ctx, hospitalSelect+w.sql()+" ORDER BY h.name", w.args...)
	if err != nil {
		return nil, wrap("list hospitals", err)
	}
	defer rows.Close()

	hospitals := []models.Hospital{}
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, wrap("scan hospital", err)
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, wrap("list hospitals", rows.Err())
}

// GetHospital busca um hospital pelo id
func GetHospital(ctx context.Context, id int64) (models.Hospital, error) {
	h, err := scanHospital(DB.QueryRow(ctx, hospitalSelect+" WHERE h.id = $1", id))
	return h, wrap("get hospital", err)
}

// CreateHospital insere o hospital; register_date é preenchido pelo banco
func CreateHospital(ctx context.Context, h *models.Hospital) error {
	err := DB.QueryRow(ctx,
		`INSERT INTO hospitals (name, city_id, address, phone, observation)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		 RETURNING id, register_date`,
		h.Name, h.CityID, h.Address, h.Phone, h.Observation).Scan(&h.ID, &h.RegisterDate)
	return wrap("create hospital", err)
}

// UpdateHospital altera o hospital; register_date é somente leitura
func UpdateHospital(ctx context.Context, h *models.Hospital) error {
	err := DB.QueryRow(ctx,
		`UPDATE hospitals SET name = $1, city_id = $2, address = NULLIF($3, ''), phone = NULLIF($4, ''),
		 observation = NULLIF($5, '') WHERE id = $6 RETURNING register_date`,
		h.Name, h.CityID, h.Address, h.Phone, h.Observation, h.ID).Scan(&h.RegisterDate)
	return wrap("update hospital", err)
}

// DeleteHospital exclui o hospital; médicos protegem a exclusão
func DeleteHospital(ctx context.Context, id int64) error {
	return deleteByID(ctx, "delete hospital", "hospitals", id)
}
