package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/models"
)

// ListarPlanilhas ?paciente= trecho do nome, ?status= PEN, AND ou FIN
func ListarPlanilhas(c *fiber.Ctx) error {
	var f models.PlanilhaFilter
	if err := c.QueryParser(&f); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Filtro inválido")
	}
	if f.Status != "" && !models.StatusGvp(strings.ToUpper(f.Status)).Valid() {
		return errorJSON(c, fiber.StatusBadRequest, "Status inválido, use PEN, AND ou FIN")
	}
	planilhas, err := database.ListPlanilhas(c.UserContext(), f)
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(planilhas))
}

func ObterPlanilha(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	p, err := database.GetPlanilha(c.UserContext(), id)
	if err != nil {
		return dbError(c, err, "Planilha não encontrada")
	}
	return c.JSON(p)
}

// CriarPlanilha a planilha nasce pendente, qualquer status enviado é ignorado
func CriarPlanilha(c *fiber.Ctx) error {
	p := models.NewPlanilha()
	if err := c.BodyParser(&p); err != nil {
		return invalidBody(c)
	}
	if fe := p.Validate(); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.CreatePlanilha(c.UserContext(), &p); err != nil {
		return dbError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mensagem": msgAdicionado, "planilha": p})
}

// AtualizarPlanilha grava o formulário; o status do GVP é mantido
func AtualizarPlanilha(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var p models.PlanilhaEmergencia
	if err := c.BodyParser(&p); err != nil {
		return invalidBody(c)
	}
	p.ID = id
	if fe := p.Validate(); len(fe) > 0 {
		return validationError(c, fe)
	}
	if err := database.UpdatePlanilha(c.UserContext(), &p); err != nil {
		return dbError(c, err, "Planilha não encontrada")
	}
	return c.JSON(fiber.Map{"mensagem": msgAlterado, "planilha": p})
}

// SubmeterGvp encaminha o caso ao GVP (PEN -> AND) e dispara o alerta.
// Falha no e-mail não desfaz a transição.
func SubmeterGvp(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	ctx := c.UserContext()

	p, err := database.SubmitToGvp(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return errorJSON(c, fiber.StatusConflict, "Este caso já foi encaminhado ao GVP.")
		}
		return dbError(c, err, "Planilha não encontrada")
	}
	logTransicao(ctx, "planilha encaminhada ao GVP", id, models.StatusPendente, models.StatusAcompanhamento)

	alerta := notifyGvp(ctx, p)
	resp := fiber.Map{
		"mensagem":      fmt.Sprintf("Caso de %s encaminhado ao GVP.", p.NomePaciente),
		"planilha":      p,
		"email_enviado": alerta.sent,
	}
	if alerta.warning != "" {
		resp["aviso"] = alerta.warning
	}
	return c.JSON(resp)
}

// BoletimPlanilha texto do caso pronto para compartilhar no WhatsApp
func BoletimPlanilha(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	ctx := c.UserContext()

	p, err := database.GetPlanilha(ctx, id)
	if err != nil {
		return dbError(c, err, "Planilha não encontrada")
	}
	visits, err := database.ListGvpVisits(ctx, id)
	if err != nil {
		return dbError(c, err, "")
	}
	var ultima *models.GvpVisit
	if len(visits) > 0 {
		ultima = &visits[0]
	}

	texto := boletim(p, ultima)
	return c.JSON(fiber.Map{
		"boletim":      texto,
		"whatsapp_url": whatsappURL(texto),
	})
}

func boletim(p models.PlanilhaEmergencia, ultima *models.GvpVisit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*BOLETIM COLIH - %s*\n", p.NomePaciente)
	fmt.Fprintf(&b, "Contato em: %s\n", p.DataHoraContato.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Paciente: %s (%s, %s)\n", p.NomePaciente, p.Idade, p.Sexo)

	hospital := p.NomeHospital
	if hospital == "" {
		hospital = "Não informado"
	}
	if p.NumeroQuarto != "" {
		hospital += " - Quarto " + p.NumeroQuarto
	}
	fmt.Fprintf(&b, "Hospital: %s\n", hospital)

	medico := p.MedicoResponsavel
	if p.EspecialidadeResponsavel != "" {
		medico += " (" + p.EspecialidadeResponsavel + ")"
	}
	fmt.Fprintf(&b, "Médico responsável: %s\n", medico)
	fmt.Fprintf(&b, "Problema: %s\n", p.ProblemaEspecifico)
	fmt.Fprintf(&b, "Plano de tratamento: %s\n", p.PlanoTratamento)
	fmt.Fprintf(&b, "Status GVP: %s\n", p.StatusGvp.Label())

	if ultima != nil {
		fmt.Fprintf(&b, "Último acompanhamento (%s): %s - %s\n",
			ultima.SubmissionDate.Format("02/01/2006 15:04"), ultima.StatusPatient, ultima.ActionTaken)
	} else {
		b.WriteString("Último acompanhamento: nenhum registro\n")
	}
	return b.String()
}

// whatsappURL link de compartilhamento; espaços como %20
func whatsappURL(texto string) string {
	return "https://wa.me/?text=" + strings.ReplaceAll(url.QueryEscape(texto), "+", "%20")
}
