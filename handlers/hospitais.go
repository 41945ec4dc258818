package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/models"
)

// ListarHospitais ?search= no nome do hospital ou da cidade, ?city= pelo id da cidade
func ListarHospitais(c *fiber.Ctx) error {
	f := models.HospitalFilter{Search: c.Query("search"), CityID: queryInt64(c, "city")}
	hospitals, err := database.ListHospitals(c.UserContext(), f)
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(hospitals))
}

func ObterHospital(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	h, err := database.GetHospital(c.UserContext(), id)
	if err != nil {
		return dbError(c, err, "Hospital não encontrado")
	}
	return c.JSON(h)
}

func CriarHospital(c *fiber.Ctx) error {
	var h models.Hospital
	if err := c.BodyParser(&h); err != nil {
		return invalidBody(c)
	}
	if fe := models.ValidateStruct(h); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.CreateHospital(c.UserContext(), &h); err != nil {
		return dbError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mensagem": msgAdicionado, "hospital": h})
}

// AtualizarHospital register_date não é alterado
func AtualizarHospital(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var h models.Hospital
	if err := c.BodyParser(&h); err != nil {
		return invalidBody(c)
	}
	h.ID = id
	if fe := models.ValidateStruct(h); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.UpdateHospital(c.UserContext(), &h); err != nil {
		return dbError(c, err, "Hospital não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": msgAlterado, "hospital": h})
}

func ExcluirHospital(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := database.DeleteHospital(c.UserContext(), id); err != nil {
		return dbError(c, err, "Hospital não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": msgExcluido})
}
