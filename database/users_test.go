package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colih/gestao-medicos/models"
)

var userCols = []string{"id", "username", "first_name", "last_name", "email", "password", "is_active",
	"is_superuser", "role_id", "created_at", "updated_at", "mfa_enabled", "mfa_secret"}

func TestGetUserByUsername(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery("FROM users WHERE username = \\$1").WithArgs("ana").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(1), "ana", "Ana", "Souza", "ana@example.com", "hash", true, false, int64(2), now, now, false, ""))

	u, err := GetUserByUsername(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", u.FullName())
	assert.Equal(t, int64(2), u.RoleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPermissions(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("JOIN role_permissions").WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"codename"}).AddRow("doctors_create").AddRow("visits_create"))

	perms, err := UserPermissions(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"doctors_create", "visits_create"}, perms)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRolePermissions(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM roles WHERE id = \\$1 FOR UPDATE").WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectExec("DELETE FROM role_permissions").WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("INSERT INTO role_permissions").WithArgs(int64(2), []string{"gvp_create"}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	require.NoError(t, SetRolePermissions(context.Background(), 2, []string{"gvp_create"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRole_RollbackOnError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO roles").WithArgs("Coordenação").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectExec("INSERT INTO role_permissions").WithArgs(int64(3), []string{"admin_access"}).WillReturnError(errors.New("falha"))
	mock.ExpectRollback()

	r := models.Role{Name: "Coordenação", Permissions: []string{"admin_access"}}
	assert.Error(t, CreateRole(context.Background(), &r))
	assert.NoError(t, mock.ExpectationsWereMet())
}
