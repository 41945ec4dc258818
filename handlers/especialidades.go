package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/models"
)

// ListarEspecialidades filtra pelo trecho do nome (?name=)
func ListarEspecialidades(c *fiber.Ctx) error {
	specialties, err := database.ListSpecialties(c.UserContext(), c.Query("name"))
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(specialties))
}

func CriarEspecialidade(c *fiber.Ctx) error {
	var s models.Specialty
	if err := c.BodyParser(&s); err != nil {
		return invalidBody(c)
	}
	if fe := models.ValidateStruct(s); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.CreateSpecialty(c.UserContext(), &s); err != nil {
		return dbError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mensagem": msgAdicionado, "especialidade": s})
}

func AtualizarEspecialidade(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var s models.Specialty
	if err := c.BodyParser(&s); err != nil {
		return invalidBody(c)
	}
	s.ID = id
	if fe := models.ValidateStruct(s); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.UpdateSpecialty(c.UserContext(), &s); err != nil {
		return dbError(c, err, "Especialidade não encontrada")
	}
	return c.JSON(fiber.Map{"mensagem": msgAlterado, "especialidade": s})
}

// ExcluirEspecialidade falha com 409 quando há médicos ou visitas com a especialidade
func ExcluirEspecialidade(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := database.DeleteSpecialty(c.UserContext(), id); err != nil {
		return dbError(c, err, "Especialidade não encontrada")
	}
	return c.JSON(fiber.Map{"mensagem": msgExcluido})
}
