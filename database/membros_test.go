package database

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colih/gestao-medicos/models"
)

func TestListMembrosGvp_Filters(t *testing.T) {
	mock := newMock(t)
	ativo := true
	mock.ExpectQuery(`(?s)make_interval\(days => \$1::int\).*WHERE m.ativo = \$2 AND \(u.username ILIKE \$3`).
		WithArgs(models.VisitasRecentesDias, true, "%ana%", "%ana%", "%ana%").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "ativo", "nome", "email", "user_ativo", "visitas"}).
			AddRow(int64(1), int64(10), true, "Ana Souza", "ana@example.com", true, 3))

	got, err := ListMembrosGvp(context.Background(), models.MembroFilter{Ativo: &ativo, Search: "ana"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].VisitasRecentes)
	assert.Equal(t, "ana@example.com", got[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMembroColih_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE membros_colih SET ativo").WithArgs(false, int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, UpdateMembroColih(context.Background(), 4, false), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveGvpEmails(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM membros_gvp m JOIN users u").
		WillReturnRows(pgxmock.NewRows([]string{"email"}).AddRow("a@example.com").AddRow("b@example.com"))

	got, err := ActiveGvpEmails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
