package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/models"
)

// membroRequest corpo do cadastro de membros; ativo é verdadeiro por padrão
type membroRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	Ativo  *bool `json:"ativo"`
}

func (r membroRequest) ativo() bool {
	return r.Ativo == nil || *r.Ativo
}

func parseMembro(c *fiber.Ctx) (membroRequest, bool, error) {
	var req membroRequest
	if err := c.BodyParser(&req); err != nil {
		return req, false, invalidBody(c)
	}
	if fe := models.ValidateStruct(req); len(fe) > 0 {
		return req, false, validationError(c, fe)
	}
	return req, true, nil
}

// parseAtivo corpo {"ativo": bool} da alteração
func parseAtivo(c *fiber.Ctx) (int64, bool, bool, error) {
	id, ok := paramID(c, "id")
	if !ok {
		return 0, false, false, invalidID(c)
	}
	var body struct {
		Ativo *bool `json:"ativo"`
	}
	if err := c.BodyParser(&body); err != nil {
		return 0, false, false, invalidBody(c)
	}
	if body.Ativo == nil {
		fe := models.FieldErrors{}
		fe.Add("ativo", "Este campo é obrigatório.")
		return 0, false, false, validationError(c, fe)
	}
	return id, *body.Ativo, true, nil
}

// --- Membros COLIH ---

// ListarMembrosColih ?ativo= e ?search= no nome ou usuário
func ListarMembrosColih(c *fiber.Ctx) error {
	f := models.MembroFilter{Ativo: queryBool(c, "ativo"), Search: c.Query("search")}
	membros, err := database.ListMembrosColih(c.UserContext(), f)
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(membros))
}

func CriarMembroColih(c *fiber.Ctx) error {
	req, ok, err := parseMembro(c)
	if !ok {
		return err
	}
	m := models.MembroColih{UserID: req.UserID, Ativo: req.ativo()}
	if err := database.CreateMembroColih(c.UserContext(), &m); err != nil {
		return dbError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mensagem": msgAdicionado, "membro": m})
}

func AtualizarMembroColih(c *fiber.Ctx) error {
	id, ativo, ok, err := parseAtivo(c)
	if !ok {
		return err
	}
	if err := database.UpdateMembroColih(c.UserContext(), id, ativo); err != nil {
		return dbError(c, err, "Membro não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": msgAlterado})
}

func ExcluirMembroColih(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := database.DeleteMembroColih(c.UserContext(), id); err != nil {
		return dbError(c, err, "Membro não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": msgExcluido})
}

// --- Membros GVP ---

// ListarMembrosGvp ?ativo=, ?user_ativo= e ?search= no nome, usuário ou e-mail
func ListarMembrosGvp(c *fiber.Ctx) error {
	f := models.MembroFilter{
		Ativo:     queryBool(c, "ativo"),
		UserAtivo: queryBool(c, "user_ativo"),
		Search:    c.Query("search"),
	}
	membros, err := database.ListMembrosGvp(c.UserContext(), f)
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(membros))
}

func CriarMembroGvp(c *fiber.Ctx) error {
	req, ok, err := parseMembro(c)
	if !ok {
		return err
	}
	m := models.MembroGvp{UserID: req.UserID, Ativo: req.ativo()}
	if err := database.CreateMembroGvp(c.UserContext(), &m); err != nil {
		return dbError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mensagem": msgAdicionado, "membro": m})
}

func AtualizarMembroGvp(c *fiber.Ctx) error {
	id, ativo, ok, err := parseAtivo(c)
	if !ok {
		return err
	}
	if err := database.UpdateMembroGvp(c.UserContext(), id, ativo); err != nil {
		return dbError(c, err, "Membro não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": msgAlterado})
}

func ExcluirMembroGvp(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := database.DeleteMembroGvp(c.UserContext(), id); err != nil {
		return dbError(c, err, "Membro não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": msgExcluido})
}
