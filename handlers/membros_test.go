package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func TestCriarMembroGvpAtivoPorPadrao(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("INSERT INTO membros_gvp").WithArgs(int64(5), true).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	app := fiber.New()
	app.Post("/admin/membros-gvp", CriarMembroGvp)

	status, body := doRequest(t, app, fiber.MethodPost, "/admin/membros-gvp", map[string]interface{}{"user_id": 5})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, msgAdicionado, body["mensagem"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAtualizarMembroColih(t *testing.T) {
	app := fiber.New()
	app.Put("/admin/membros-colih/:id", AtualizarMembroColih)

	t.Run("sem o campo ativo", func(t *testing.T) {
		status, _ := doRequest(t, app, fiber.MethodPut, "/admin/membros-colih/2", map[string]interface{}{})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("desativado", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE membros_colih SET ativo").WithArgs(false, int64(2)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		status, _ := doRequest(t, app, fiber.MethodPut, "/admin/membros-colih/2", map[string]interface{}{"ativo": false})
		assert.Equal(t, fiber.StatusOK, status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inexistente", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE membros_colih SET ativo").WithArgs(true, int64(2)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		status, _ := doRequest(t, app, fiber.MethodPut, "/admin/membros-colih/2", map[string]interface{}{"ativo": true})
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}
