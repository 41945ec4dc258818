package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/models"
)

// ObterConfigEmail a senha nunca é serializada
func ObterConfigEmail(c *fiber.Ctx) error {
	cfg, err := database.GetEmailConfiguration(c.UserContext())
	if err != nil {
		return dbError(c, err, "Nenhuma configuração de e-mail cadastrada")
	}
	return c.JSON(cfg)
}

// SalvarConfigEmail cria ou altera a configuração; senha vazia mantém a atual
func SalvarConfigEmail(c *fiber.Ctx) error {
	ctx := c.UserContext()
	req := models.EmailConfigurationRequest{EmailConfiguration: models.NewEmailConfiguration()}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fe := models.ValidateStruct(req)
	if req.EmailPassword == "" {
		_, err := database.GetEmailConfiguration(ctx)
		switch {
		case errors.Is(err, database.ErrNotFound):
			fe.Add("email_password", "Este campo é obrigatório.")
		case err != nil:
			return dbError(c, err, "")
		}
	}
	if len(fe) > 0 {
		return validationError(c, fe)
	}

	cfg := req.EmailConfiguration
	cfg.EmailPassword = req.EmailPassword
	if err := database.SaveEmailConfiguration(ctx, &cfg); err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(fiber.Map{"mensagem": msgAlterado, "configuracao": cfg})
}

// TestarSMTP envia um e-mail de teste para o próprio email_user
func TestarSMTP(c *fiber.Ctx) error {
	ctx := c.UserContext()
	cfg, err := database.GetEmailConfiguration(ctx)
	if err != nil {
		return dbError(c, err, "Nenhuma configuração de e-mail cadastrada")
	}
	if opts.Mailer == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "Envio de e-mail desabilitado")
	}
	if err := opts.Mailer.SendTest(ctx, cfg); err != nil {
		return errorJSON(c, fiber.StatusBadGateway, err.Error())
	}
	return c.JSON(fiber.Map{"mensagem": "E-mail de teste enviado com sucesso."})
}
