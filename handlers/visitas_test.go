package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListarVisitasDataInvalida(t *testing.T) {
	app := fiber.New()
	app.Get("/visits/list", ListarVisitas)

	status, _ := doRequest(t, app, fiber.MethodGet, "/visits/list?from=10/03/2024", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCriarVisitaValidacao(t *testing.T) {
	app := fiber.New()
	app.Post("/visits/add", CriarVisita)

	status, body := doRequest(t, app, fiber.MethodPost, "/visits/add", map[string]interface{}{
		"doctor_id":    1,
		"specialty_id": 2,
		"visit_type":   "Outra",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	campos, ok := body["campos"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, campos, "visit_date")
	assert.Contains(t, campos, "member_ids")
	assert.Contains(t, campos, "visit_type")
}
