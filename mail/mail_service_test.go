package mail

import (
	"context"
	"errors"
	"mime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/colih/gestao-medicos/models"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []*gomail.Message
	err      error
	delay    time.Duration
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, m...)
	return f.err
}

func testConfig() models.EmailConfiguration {
	cfg := models.NewEmailConfiguration()
	cfg.SMTPServer = "smtp.example.com"
	cfg.EmailUser = "colih@example.com"
	cfg.EmailPassword = "segredo"
	return cfg
}

func testPlanilha() models.PlanilhaEmergencia {
	p := models.NewPlanilha()
	p.ID = 42
	p.NomePaciente = "Maria <Silva>"
	p.NomeHospital = "Hospital Central"
	p.NumeroQuarto = "12B"
	p.Congregacao = "Centro"
	p.StatusGvp = models.StatusAcompanhamento
	return p
}

func TestRenderAlert(t *testing.T) {
	html, text, err := renderAlert(testPlanilha(), "https://colih.example.com")
	require.NoError(t, err)

	assert.Contains(t, html, `href="https://colih.example.com/gvp/42/register"`)
	assert.Contains(t, html, "Maria &lt;Silva&gt;")
	assert.Contains(t, html, "Hospital Central - Quarto 12B")
	assert.Contains(t, html, "Em Acompanhamento")

	assert.Contains(t, text, "Paciente: Maria <Silva>")
	assert.Contains(t, text, "Registrar acompanhamento: https://colih.example.com/gvp/42/register")
	assert.NotContains(t, text, "<div")
}

func TestRenderAlert_WithoutHospital(t *testing.T) {
	p := testPlanilha()
	p.NomeHospital = ""
	_, text, err := renderAlert(p, "")
	require.NoError(t, err)
	assert.NotContains(t, text, "Hospital:")
	assert.Contains(t, text, "/gvp/42/register")
}

func TestSendGvpAlert(t *testing.T) {
	sender := &fakeSender{}
	svc := NewMailServiceWithSender(sender)

	sent, err := svc.SendGvpAlert(context.Background(), testConfig(), testPlanilha(), []string{"gvp@example.com"}, "https://colih.example.com")
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	// o gomail codifica o assunto em RFC 2047 por causa do emoji
	subject := msg.GetHeader("Subject")
	require.Len(t, subject, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	require.NoError(t, err)
	assert.Equal(t, "🚨 GVP: Acompanhamento Urgente - Maria <Silva>", decoded)
	assert.Equal(t, []string{"gvp@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"colih@example.com"}, msg.GetHeader("From"))
}

func TestSendGvpAlert_NoRecipients(t *testing.T) {
	sender := &fakeSender{}
	sent, err := NewMailServiceWithSender(sender).SendGvpAlert(context.Background(), testConfig(), testPlanilha(), nil, "")
	assert.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, sender.messages)
}

func TestSendGvpAlert_SMTPFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("535 autenticação falhou")}
	sent, err := NewMailServiceWithSender(sender).SendGvpAlert(context.Background(), testConfig(), testPlanilha(), []string{"gvp@example.com"}, "")
	assert.False(t, sent)
	assert.ErrorContains(t, err, "535")
}

func TestSendTest(t *testing.T) {
	sender := &fakeSender{}
	require.NoError(t, NewMailServiceWithSender(sender).SendTest(context.Background(), testConfig()))
	require.Len(t, sender.messages, 1)
	assert.Equal(t, []string{"colih@example.com"}, sender.messages[0].GetHeader("To"))
}

func TestSend_ContextCanceled(t *testing.T) {
	sender := &fakeSender{delay: 200 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := NewMailServiceWithSender(sender).SendTest(ctx, testConfig())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewDialer(t *testing.T) {
	cfg := testConfig()
	d, ok := newDialer(cfg).(*gomail.Dialer)
	require.True(t, ok)
	assert.False(t, d.SSL)

	require.NotNil(t, d.TLSConfig)
	assert.Equal(t, "smtp.example.com", d.TLSConfig.ServerName)

	cfg.SMTPPort = 465
	d = newDialer(cfg).(*gomail.Dialer)
	assert.True(t, d.SSL)
	assert.Equal(t, "smtp.example.com", d.Host)

	// sem use_tls não há TLS implícito nem configuração fixa
	cfg.UseTLS = false
	d = newDialer(cfg).(*gomail.Dialer)
	assert.False(t, d.SSL)
	assert.Nil(t, d.TLSConfig)
}
