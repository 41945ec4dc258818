package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/models"
)

// newMock troca o pool do pacote database por um mock durante o teste
func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	prev := database.DB
	database.DB = mock
	t.Cleanup(func() {
		database.DB = prev
		mock.Close()
	})
	return mock
}

// captureLogs redireciona o slog padrão para um buffer JSON durante o teste
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// withOptions aplica as dependências e restaura as anteriores no fim do teste
func withOptions(t *testing.T, o Options) {
	t.Helper()
	prev := opts
	Configure(o)
	t.Cleanup(func() { opts = prev })
}

type fakeMailer struct {
	alertErr   error
	testErr    error
	recipients []string
	alerts     int
}

func (m *fakeMailer) SendGvpAlert(_ context.Context, _ models.EmailConfiguration, _ models.PlanilhaEmergencia, recipients []string, _ string) (bool, error) {
	m.alerts++
	m.recipients = recipients
	if m.alertErr != nil {
		return false, m.alertErr
	}
	return len(recipients) > 0, nil
}

func (m *fakeMailer) SendTest(context.Context, models.EmailConfiguration) error {
	return m.testErr
}

// doRequest executa a requisição e devolve o status e o corpo JSON decodificado
func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func emailConfigRow() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "nome_config", "smtp_server", "smtp_port", "use_tls", "email_user", "email_password", "imap_server"}).
		AddRow(int64(1), "Padrao", "smtp.exemplo.org", 587, true, "colih@exemplo.org", "segredo", "")
}
