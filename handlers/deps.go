package handlers

import (
	"context"

	"github.com/colih/gestao-medicos/middleware"
	"github.com/colih/gestao-medicos/models"
)

// Mailer envia o alerta do GVP e o e-mail de teste; *mail.MailService o implementa
type Mailer interface {
	SendGvpAlert(ctx context.Context, cfg models.EmailConfiguration, p models.PlanilhaEmergencia, recipients []string, siteURL string) (bool, error)
	SendTest(ctx context.Context, cfg models.EmailConfiguration) error
}

// Options dependências dos handlers além do banco
type Options struct {
	Mailer  Mailer
	Metrics *middleware.Metrics
	// SiteURL base dos links enviados por e-mail, sem "/" final
	SiteURL string
	// AlertRecipients tem precedência sobre os e-mails dos membros do GVP
	AlertRecipients []string
}

var opts Options

// Configure define as dependências usadas pelos handlers
func Configure(o Options) {
	opts = o
}
