package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateLayout é o formato de data aceito nos formulários (AAAA-MM-DD)
const DateLayout = "2006-01-02"

// Date representa uma coluna DATE que pode estar vazia
type Date struct {
	time.Time
}

// NewDate trunca t para o dia
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateFromPg converte o valor lido do banco
func DateFromPg(d pgtype.Date) Date {
	if !d.Valid {
		return Date{}
	}
	return NewDate(d.Time)
}

// ParseDate interpreta AAAA-MM-DD; texto vazio devolve data vazia
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

// Ptr devolve nil quando a data está vazia, para gravar NULL
func (d Date) Ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		// aceita também data/hora completa
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	*d = NewDate(t)
	return nil
}
