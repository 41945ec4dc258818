package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/models"
)

func visitFilter(c *fiber.Ctx) (models.VisitFilter, error) {
	f := models.VisitFilter{
		DoctorID:  queryInt64(c, "doctor"),
		VisitType: c.Query("visit_type"),
		MemberID:  queryInt64(c, "member"),
	}
	var err error
	if f.From, err = models.ParseDate(c.Query("from")); err != nil {
		return f, err
	}
	f.To, err = models.ParseDate(c.Query("to"))
	return f, err
}

// ListarVisitas filtros: doctor, visit_type, member e intervalo from/to (AAAA-MM-DD)
func ListarVisitas(c *fiber.Ctx) error {
	f, err := visitFilter(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Data inválida, use o formato AAAA-MM-DD")
	}
	visits, err := database.ListVisits(c.UserContext(), f)
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(visits))
}

func ObterVisita(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	v, err := database.GetVisit(c.UserContext(), id)
	if err != nil {
		return dbError(c, err, "Visita não encontrada")
	}
	return c.JSON(v)
}

func CriarVisita(c *fiber.Ctx) error {
	var v models.Visit
	if err := c.BodyParser(&v); err != nil {
		return invalidBody(c)
	}
	v.Normalize()
	if fe := v.Validate(); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.CreateVisit(c.UserContext(), &v); err != nil {
		return dbError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mensagem": msgAdicionado, "visita": v})
}

// AtualizarVisita substitui também a lista de membros visitantes
func AtualizarVisita(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var v models.Visit
	if err := c.BodyParser(&v); err != nil {
		return invalidBody(c)
	}
	v.ID = id
	v.Normalize()
	if fe := v.Validate(); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.UpdateVisit(c.UserContext(), &v); err != nil {
		return dbError(c, err, "Visita não encontrada")
	}
	return c.JSON(fiber.Map{"mensagem": msgAlterado, "visita": v})
}

func ExcluirVisita(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := database.DeleteVisit(c.UserContext(), id); err != nil {
		return dbError(c, err, "Visita não encontrada")
	}
	return c.JSON(fiber.Map{"mensagem": msgExcluido})
}
