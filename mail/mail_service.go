package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"gopkg.in/gomail.v2"

	"github.com/colih/gestao-medicos/models"
)

//go:embed templates/*
var templatesFS embed.FS

var (
	alertHTML = htmltemplate.Must(htmltemplate.ParseFS(templatesFS, "templates/alerta_gvp.html"))
	alertText = texttemplate.Must(texttemplate.ParseFS(templatesFS, "templates/alerta_gvp.txt"))
)

// Sender envia mensagens já montadas; *gomail.Dialer satisfaz a interface
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailService envia os e-mails do sistema pelo servidor cadastrado em EmailConfiguration
type MailService struct {
	dial func(cfg models.EmailConfiguration) Sender
}

func NewMailService() *MailService {
	return &MailService{dial: newDialer}
}

// NewMailServiceWithSender usa sempre o mesmo Sender, qualquer que seja a configuração
func NewMailServiceWithSender(s Sender) *MailService {
	return &MailService{dial: func(models.EmailConfiguration) Sender { return s }}
}

func newDialer(cfg models.EmailConfiguration) Sender {
	d := gomail.NewDialer(cfg.SMTPServer, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPassword)
	// 465 é TLS implícito; nas demais portas o gomail negocia STARTTLS
	// sempre que o servidor oferece, mesmo com use_tls desligado
	d.SSL = cfg.UseTLS && cfg.SMTPPort == 465
	if cfg.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: cfg.SMTPServer, MinVersion: tls.VersionTLS12}
	}
	return d
}

type alertData struct {
	Planilha models.PlanilhaEmergencia
	Status   string
	Link     string
}

// AlertSubject assunto do alerta enviado ao GVP
func AlertSubject(p models.PlanilhaEmergencia) string {
	return "🚨 GVP: Acompanhamento Urgente - " + p.NomePaciente
}

// RegisterLink endereço do formulário de acompanhamento do caso
func RegisterLink(siteURL string, planilhaID int64) string {
	return fmt.Sprintf("%s/gvp/%d/register", siteURL, planilhaID)
}

func renderAlert(p models.PlanilhaEmergencia, siteURL string) (html, text string, err error) {
	data := alertData{Planilha: p, Status: p.StatusGvp.Label(), Link: RegisterLink(siteURL, p.ID)}

	var h, t bytes.Buffer
	if err := alertHTML.Execute(&h, data); err != nil {
		return "", "", fmt.Errorf("render html: %w", err)
	}
	if err := alertText.Execute(&t, data); err != nil {
		return "", "", fmt.Errorf("render text: %w", err)
	}
	return h.String(), t.String(), nil
}

func (m *MailService) buildAlert(cfg models.EmailConfiguration, p models.PlanilhaEmergencia, recipients []string, siteURL string) (*gomail.Message, error) {
	html, text, err := renderAlert(p, siteURL)
	if err != nil {
		return nil, err
	}
	message := gomail.NewMessage()
	message.SetHeader("From", cfg.EmailUser)
	message.SetHeader("To", recipients...)
	message.SetHeader("Subject", AlertSubject(p))
	message.SetBody("text/plain", text)
	message.AddAlternative("text/html", html)
	return message, nil
}

// SendGvpAlert avisa o GVP de um novo caso em acompanhamento. Sem destinatários
// nada é enviado e o retorno é (false, nil).
func (m *MailService) SendGvpAlert(ctx context.Context, cfg models.EmailConfiguration, p models.PlanilhaEmergencia, recipients []string, siteURL string) (bool, error) {
	if len(recipients) == 0 {
		return false, nil
	}
	message, err := m.buildAlert(cfg, p, recipients, siteURL)
	if err != nil {
		return false, err
	}
	if err := m.send(ctx, cfg, message); err != nil {
		return false, err
	}
	return true, nil
}

// SendTest envia uma mensagem de teste para o próprio usuário da configuração
func (m *MailService) SendTest(ctx context.Context, cfg models.EmailConfiguration) error {
	message := gomail.NewMessage()
	message.SetHeader("From", cfg.EmailUser)
	message.SetHeader("To", cfg.EmailUser)
	message.SetHeader("Subject", "Teste de configuração SMTP - COLIH")
	message.SetBody("text/plain", fmt.Sprintf(
		"Este é um e-mail de teste enviado pelo sistema da COLIH.\n\n%s\n\nSe você recebeu esta mensagem, a configuração está correta.",
		cfg.String()))
	return m.send(ctx, cfg, message)
}

// send respeita o cancelamento do contexto; o gomail não recebe contexto
// e a tentativa em andamento termina sozinha
func (m *MailService) send(ctx context.Context, cfg models.EmailConfiguration, message *gomail.Message) error {
	done := make(chan error, 1)
	go func() {
		done <- m.dial(cfg).DialAndSend(message)
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("erro ao enviar e-mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("erro ao enviar e-mail: %w", ctx.Err())
	}
}
