package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colih/gestao-medicos/models"
)

// planilhaRow monta uma linha de planilhaSelect a partir do modelo
func planilhaRow(p models.PlanilhaEmergencia, status string) *pgxmock.Rows {
	values := []any{p.ID}
	for _, f := range planilhaFields(&p) {
		if _, ok := f.ptr.(*models.Date); ok {
			values = append(values, nil)
			continue
		}
		values = append(values, f.value())
	}
	values = append(values, "Hospital Central", "Cardiologia", status, time.Now(), time.Now())

	cols := make([]string, len(values))
	for i := range cols {
		cols[i] = fmt.Sprintf("c%d", i)
	}
	return pgxmock.NewRows(cols).AddRow(values...)
}

func TestSubmitToGvp(t *testing.T) {
	t.Run("pendente vai para acompanhamento", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE planilhas_emergencia SET status_gvp").WithArgs("AND", int64(5), "PEN").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery("FROM planilhas_emergencia p").WithArgs(int64(5)).
			WillReturnRows(planilhaRow(models.PlanilhaEmergencia{ID: 5, NomePaciente: "Maria", NomeHospitalID: 2}, "AND"))

		p, err := SubmitToGvp(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAcompanhamento, p.StatusGvp)
		assert.Equal(t, "Maria", p.NomePaciente)
		assert.Equal(t, "Hospital Central", p.NomeHospital)
		assert.True(t, p.DataNascimento.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("já submetida", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE planilhas_emergencia SET status_gvp").WithArgs("AND", int64(5), "PEN").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery("SELECT COALESCE\\(status_gvp, ''\\) FROM planilhas_emergencia").WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"status_gvp"}).AddRow("AND"))

		_, err := SubmitToGvp(context.Background(), 5)
		assert.ErrorIs(t, err, ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inexistente", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE planilhas_emergencia SET status_gvp").WithArgs("AND", int64(5), "PEN").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery("SELECT COALESCE\\(status_gvp, ''\\)").WithArgs(int64(5)).WillReturnError(pgx.ErrNoRows)

		_, err := SubmitToGvp(context.Background(), 5)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCreateGvpVisit(t *testing.T) {
	t.Run("registra e finaliza", func(t *testing.T) {
		mock := newMock(t)
		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery("FOR UPDATE").WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"status_gvp"}).AddRow("AND"))
		mock.ExpectQuery("INSERT INTO gvp_visits").WithArgs(int64(5), "Visita realizada", "Estável").
			WillReturnRows(pgxmock.NewRows([]string{"id", "submission_date"}).AddRow(int64(2), now))
		mock.ExpectExec("INSERT INTO gvp_visit_members").WithArgs(int64(2), []int64{3}).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("UPDATE planilhas_emergencia SET status_gvp").WithArgs("FIN", int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()
		mock.ExpectRollback()

		v := models.GvpVisit{PlanilhaID: 5, DesignatedMemberIDs: []int64{3}, ActionTaken: "Visita realizada", StatusPatient: "Estável"}
		require.NoError(t, CreateGvpVisit(context.Background(), &v, true))
		assert.Equal(t, int64(2), v.ID)
		assert.Equal(t, now, v.SubmissionDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	for _, status := range []string{"", "PEN", "FIN"} {
		t.Run("recusa status "+status, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectBegin()
			mock.ExpectQuery("FOR UPDATE").WithArgs(int64(5)).
				WillReturnRows(pgxmock.NewRows([]string{"status_gvp"}).AddRow(status))
			mock.ExpectRollback()

			v := models.GvpVisit{PlanilhaID: 5, DesignatedMemberIDs: []int64{3}, ActionTaken: "x", StatusPatient: "y"}
			assert.ErrorIs(t, CreateGvpVisit(context.Background(), &v, false), ErrConflict)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListActiveCases(t *testing.T) {
	mock := newMock(t)
	last := time.Now()
	mock.ExpectQuery("WHERE p.status_gvp = \\$1").WithArgs("AND").
		WillReturnRows(pgxmock.NewRows([]string{"id", "nome", "hospital", "quarto", "contato", "total", "ultima"}).
			AddRow(int64(5), "Maria", "Hospital Central", "12B", last, 2, &last))

	got, err := ListActiveCases(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].TotalVisitas)
	require.NotNil(t, got[0].UltimaSubmissao)
	assert.NoError(t, mock.ExpectationsWereMet())
}
