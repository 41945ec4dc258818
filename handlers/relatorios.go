package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/database"
)

// ObterPainel totais de médicos, visitas e casos do GVP
func ObterPainel(c *fiber.Ctx) error {
	p, err := database.GetPainel(c.UserContext())
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(p)
}
