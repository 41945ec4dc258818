package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/middleware"
	"github.com/colih/gestao-medicos/models"
)

const tituloIndex = "Gestão de Médicos Cooperadores da Colih"

func doctorFilter(c *fiber.Ctx) (models.DoctorFilter, error) {
	var f models.DoctorFilter
	err := c.QueryParser(&f)
	return f, err
}

// Index página inicial: título, usuário logado e todos os médicos por id
func Index(c *fiber.Ctx) error {
	doctors, err := database.ListDoctors(c.UserContext(), models.DoctorFilter{})
	if err != nil {
		return dbError(c, err, "")
	}

	var usuario string
	if claims, ok := middleware.GetClaims(c); ok {
		usuario = claims.FullName
		if usuario == "" {
			usuario = claims.Username
		}
	}

	return c.JSON(fiber.Map{
		"titulo":  tituloIndex,
		"usuario": usuario,
		"total":   len(doctors),
		"medicos": doctors,
	})
}

// ListarMedicos filtra por nome, hospital e cidade (trecho) e especialidade (id)
func ListarMedicos(c *fiber.Ctx) error {
	f, err := doctorFilter(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Filtro inválido")
	}
	doctors, err := database.ListDoctors(c.UserContext(), f)
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(doctors))
}

// ObterMedico devolve o médico com telefones e visitas
func ObterMedico(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	ctx := c.UserContext()

	doctor, err := database.GetDoctor(ctx, id)
	if err != nil {
		return dbError(c, err, "Médico não encontrado")
	}
	phones, err := database.ListPhones(ctx, id)
	if err != nil {
		return dbError(c, err, "")
	}
	visits, err := database.ListVisits(ctx, models.VisitFilter{DoctorID: id})
	if err != nil {
		return dbError(c, err, "")
	}

	return c.JSON(models.DoctorDetail{Doctor: doctor, Phones: phones, Visits: visits})
}

func CriarMedico(c *fiber.Ctx) error {
	var d models.Doctor
	if err := c.BodyParser(&d); err != nil {
		return invalidBody(c)
	}
	d.Normalize()
	if fe := models.ValidateStruct(d); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.CreateDoctor(c.UserContext(), &d); err != nil {
		return dbError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mensagem": msgAdicionado, "medico": d})
}

func AtualizarMedico(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var d models.Doctor
	if err := c.BodyParser(&d); err != nil {
		return invalidBody(c)
	}
	d.ID = id
	d.Normalize()
	if fe := models.ValidateStruct(d); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.UpdateDoctor(c.UserContext(), &d); err != nil {
		return dbError(c, err, "Médico não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": msgAlterado, "medico": d})
}

// ExcluirMedico remove também telefones e visitas do médico
func ExcluirMedico(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := database.DeleteDoctor(c.UserContext(), id); err != nil {
		return dbError(c, err, "Médico não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": msgExcluido})
}

// --- Telefones ---

// AdicionarTelefone inclui um contato no médico da rota
func AdicionarTelefone(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var p models.Phone
	if err := c.BodyParser(&p); err != nil {
		return invalidBody(c)
	}
	p.DoctorID = id
	p.Number = strings.TrimSpace(p.Number)
	if p.Number == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Informe o número de telefone a ser adicionado!")
	}
	if fe := models.ValidateStruct(p); len(fe) > 0 {
		return validationError(c, fe)
	}

	err := database.CreatePhone(c.UserContext(), &p)
	if errors.Is(err, database.ErrInvalidReference) {
		return errorJSON(c, fiber.StatusNotFound, "Médico não encontrado")
	}
	if err != nil {
		return dbError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensagem": "Contato telefônico adicionado com sucesso.",
		"telefone": p,
	})
}

// ExcluirTelefone o telefone precisa pertencer ao médico da rota
func ExcluirTelefone(c *fiber.Ctx) error {
	doctorID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	phoneID, ok := paramID(c, "phone_id")
	if !ok {
		return invalidID(c)
	}
	if err := database.DeletePhone(c.UserContext(), doctorID, phoneID); err != nil {
		return dbError(c, err, "Telefone não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": "Contato telefônico removido com sucesso."})
}

// ListarTelefones todos os telefones com o nome do médico
func ListarTelefones(c *fiber.Ctx) error {
	phones, err := database.ListPhones(c.UserContext(), 0)
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(phones))
}
