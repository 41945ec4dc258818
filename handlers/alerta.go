package handlers

import (
	"context"
	"errors"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/middleware"
	"github.com/colih/gestao-medicos/models"
)

// Resultados do alerta registrados nas métricas
const (
	alertSent    = "sent"
	alertFailed  = "failed"
	alertSkipped = "skipped"
)

type alertResult struct {
	sent    bool
	warning string
}

// alertRecipients a lista configurada tem precedência sobre os membros ativos
func alertRecipients(ctx context.Context) ([]string, error) {
	if len(opts.AlertRecipients) > 0 {
		return opts.AlertRecipients, nil
	}
	return database.ActiveGvpEmails(ctx)
}

// notifyGvp envia o alerta do caso encaminhado; nunca falha a requisição
func notifyGvp(ctx context.Context, p models.PlanilhaEmergencia) alertResult {
	attrs := map[string]interface{}{"planilha_id": p.ID, "status_gvp": string(p.StatusGvp)}

	skip := func(warning string) alertResult {
		opts.Metrics.AlertOutcome(alertSkipped)
		attrs["motivo"] = warning
		middleware.LogCustomEvent(ctx, models.LogLevelWarning, "alerta GVP não enviado", attrs)
		return alertResult{warning: warning}
	}
	fail := func(err error) alertResult {
		opts.Metrics.AlertOutcome(alertFailed)
		attrs["error"] = err.Error()
		middleware.LogCustomEvent(ctx, models.LogLevelError, "falha ao enviar alerta GVP", attrs)
		return alertResult{warning: "Caso encaminhado, mas houve erro ao enviar o e-mail de alerta: " + err.Error()}
	}

	if opts.Mailer == nil {
		return skip("Envio de e-mail desabilitado.")
	}

	cfg, err := database.GetEmailConfiguration(ctx)
	if errors.Is(err, database.ErrNotFound) {
		return skip("Nenhuma configuração de e-mail cadastrada; o alerta não foi enviado.")
	}
	if err != nil {
		return fail(err)
	}

	recipients, err := alertRecipients(ctx)
	if err != nil {
		return fail(err)
	}

	sent, err := opts.Mailer.SendGvpAlert(ctx, cfg, p, recipients, opts.SiteURL)
	if err != nil {
		return fail(err)
	}
	if !sent {
		return skip("Nenhum membro ativo do GVP com e-mail; o alerta não foi enviado.")
	}

	opts.Metrics.AlertOutcome(alertSent)
	attrs["destinatarios"] = len(recipients)
	middleware.LogCustomEvent(ctx, models.LogLevelInfo, "alerta GVP enviado", attrs)
	return alertResult{sent: true}
}
