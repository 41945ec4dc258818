package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/middleware"
	"github.com/colih/gestao-medicos/models"
)

// logTransicao registra a troca de status_gvp como evento de auditoria
func logTransicao(ctx context.Context, msg string, planilhaID int64, de, para models.StatusGvp) {
	middleware.LogCustomEvent(ctx, models.LogLevelInfo, msg, map[string]interface{}{
		"planilha_id": planilhaID,
		"de":          string(de),
		"para":        string(para),
	})
}

// ListarAcompanhamentos casos em acompanhamento pelo GVP
func ListarAcompanhamentos(c *fiber.Ctx) error {
	cases, err := database.ListActiveCases(c.UserContext())
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(cases))
}

// RegistrarAcompanhamento aceita o caso no corpo (planilha_id) ou na rota
func RegistrarAcompanhamento(c *fiber.Ctx) error {
	var req models.GvpVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if c.Params("planilha_id") != "" {
		id, ok := paramID(c, "planilha_id")
		if !ok {
			return invalidID(c)
		}
		req.PlanilhaID = id
	}

	v := req.GvpVisit
	if fe := models.ValidateStruct(v); len(fe) > 0 {
		return validationError(c, fe)
	}

	ctx := c.UserContext()
	err := database.CreateGvpVisit(ctx, &v, req.FinalizarCaso)
	if errors.Is(err, database.ErrConflict) {
		return errorJSON(c, fiber.StatusConflict, "Somente casos em acompanhamento aceitam novos registros.")
	}
	if err != nil {
		return dbError(c, err, "Planilha não encontrada")
	}

	msg := "Acompanhamento registrado com sucesso."
	if req.FinalizarCaso {
		msg = "Acompanhamento registrado e caso finalizado."
		logTransicao(ctx, "caso finalizado pelo GVP", v.PlanilhaID, models.StatusAcompanhamento, models.StatusFinalizado)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mensagem": msg, "acompanhamento": v})
}

// ListarVisitasGvp acompanhamentos de um caso
func ListarVisitasGvp(c *fiber.Ctx) error {
	id, ok := paramID(c, "planilha_id")
	if !ok {
		return invalidID(c)
	}
	visits, err := database.ListGvpVisits(c.UserContext(), id)
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(visits))
}
