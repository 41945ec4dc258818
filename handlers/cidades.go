package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/models"
)

// ListarCidades ?search= busca no nome e na UF, ?uf= filtra
func ListarCidades(c *fiber.Ctx) error {
	f := models.CityFilter{Search: c.Query("search"), UF: c.Query("uf")}
	cities, err := database.ListCities(c.UserContext(), f)
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(cities))
}

func ObterCidade(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	city, err := database.GetCity(c.UserContext(), id)
	if err != nil {
		return dbError(c, err, "Cidade não encontrada")
	}
	return c.JSON(city)
}

func CriarCidade(c *fiber.Ctx) error {
	var city models.City
	if err := c.BodyParser(&city); err != nil {
		return invalidBody(c)
	}
	if fe := models.ValidateStruct(city); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.CreateCity(c.UserContext(), &city); err != nil {
		return dbError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mensagem": msgAdicionado, "cidade": city})
}

func AtualizarCidade(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var city models.City
	if err := c.BodyParser(&city); err != nil {
		return invalidBody(c)
	}
	city.ID = id
	if fe := models.ValidateStruct(city); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.UpdateCity(c.UserContext(), &city); err != nil {
		return dbError(c, err, "Cidade não encontrada")
	}
	return c.JSON(fiber.Map{"mensagem": msgAlterado, "cidade": city})
}

// ExcluirCidade hospitais e médicos da cidade impedem a exclusão (409)
func ExcluirCidade(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := database.DeleteCity(c.UserContext(), id); err != nil {
		return dbError(c, err, "Cidade não encontrada")
	}
	return c.JSON(fiber.Map{"mensagem": msgExcluido})
}
