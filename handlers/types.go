package handlers

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/models"
)

// Mensagens de sucesso exibidas pelo frontend
const (
	msgAdicionado = "Registro adicionado com sucesso."
	msgAlterado   = "Registro alterado com sucesso."
	msgExcluido   = "Registro excluído com sucesso."
)

// ListResponse envelope das listagens
type ListResponse struct {
	Total int         `json:"total"`
	Data  interface{} `json:"data"`
}

func list[T any](items []T) ListResponse {
	return ListResponse{Total: len(items), Data: items}
}

// errorJSON responde {"error": msg}
func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// validationError responde 400 com as mensagens por campo
func validationError(c *fiber.Ctx, fe models.FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Dados inválidos",
		"campos": fe,
	})
}

// dbError traduz os erros do pacote database; notFound é a mensagem do 404
func dbError(c *fiber.Ctx, err error, notFound string) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, notFound)
	case errors.Is(err, database.ErrProtected):
		return errorJSON(c, fiber.StatusConflict, "Registro protegido: existem cadastros que dependem dele.")
	case errors.Is(err, database.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, "Registro duplicado.")
	case errors.Is(err, database.ErrInvalidReference):
		return errorJSON(c, fiber.StatusBadRequest, "Referência inválida: o registro selecionado não existe.")
	case errors.Is(err, database.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, "Operação não permitida no estado atual do registro.")
	}
	slog.ErrorContext(c.UserContext(), "erro no banco de dados",
		"error", err, "path", c.Path(), "method", c.Method())
	return errorJSON(c, fiber.StatusInternalServerError, "Erro interno do servidor")
}

// paramID lê um id positivo dos parâmetros da rota
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "ID inválido")
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "Dados inválidos")
}

// queryInt64 lê um id opcional da query string; zero quando ausente ou inválido
func queryInt64(c *fiber.Ctx, key string) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// queryBool lê os filtros laterais (true/false, 1/0, sim/não); nil quando ausente
func queryBool(c *fiber.Ctx, key string) *bool {
	var v bool
	switch strings.ToLower(c.Query(key)) {
	case "true", "1", "sim", "yes":
		v = true
	case "false", "0", "nao", "não", "no":
		v = false
	default:
		return nil
	}
	return &v
}
