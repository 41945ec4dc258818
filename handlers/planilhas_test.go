package handlers

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colih/gestao-medicos/middleware"
	"github.com/colih/gestao-medicos/models"
)

func TestCriarPlanilhaValidacao(t *testing.T) {
	app := fiber.New()
	app.Post("/emergencia/add", CriarPlanilha)

	status, body := doRequest(t, app, fiber.MethodPost, "/emergencia/add", map[string]string{
		"nome_paciente": "Maria",
		"sexo":          "X",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	campos, ok := body["campos"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, campos, "data_hora_contato")
	assert.Contains(t, campos, "sexo")
	assert.Contains(t, campos, "plano_tratamento")
	assert.NotContains(t, campos, "nome_paciente")
}

func TestListarPlanilhasStatusInvalido(t *testing.T) {
	app := fiber.New()
	app.Get("/emergencia/list", ListarPlanilhas)

	status, _ := doRequest(t, app, fiber.MethodGet, "/emergencia/list?status=XYZ", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSubmeterGvpConflito(t *testing.T) {
	app := fiber.New()
	app.Post("/emergencia/:id/submeter-gvp", SubmeterGvp)

	tests := []struct {
		name       string
		statusRows func() *pgxmock.Rows
		rowErr     error
		want       int
	}{
		{
			name:       "já em acompanhamento",
			statusRows: func() *pgxmock.Rows { return pgxmock.NewRows([]string{"status_gvp"}).AddRow("AND") },
			want:       fiber.StatusConflict,
		},
		{
			name:       "finalizada",
			statusRows: func() *pgxmock.Rows { return pgxmock.NewRows([]string{"status_gvp"}).AddRow("FIN") },
			want:       fiber.StatusConflict,
		},
		{
			name:   "inexistente",
			rowErr: pgx.ErrNoRows,
			want:   fiber.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			mailer := &fakeMailer{}
			withOptions(t, Options{Mailer: mailer})

			mock.ExpectExec("UPDATE planilhas_emergencia SET status_gvp").WithArgs("AND", int64(7), "PEN").
				WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			q := mock.ExpectQuery("SELECT COALESCE\\(status_gvp, ''\\)").WithArgs(int64(7))
			if tt.rowErr != nil {
				q.WillReturnError(tt.rowErr)
			} else {
				q.WillReturnRows(tt.statusRows())
			}

			status, _ := doRequest(t, app, fiber.MethodPost, "/emergencia/7/submeter-gvp", nil)
			assert.Equal(t, tt.want, status)
			assert.Zero(t, mailer.alerts)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotifyGvp(t *testing.T) {
	p := models.PlanilhaEmergencia{ID: 7, NomePaciente: "Maria", StatusGvp: models.StatusAcompanhamento}

	t.Run("sem mailer", func(t *testing.T) {
		withOptions(t, Options{})
		res := notifyGvp(context.Background(), p)
		assert.False(t, res.sent)
		assert.NotEmpty(t, res.warning)
	})

	t.Run("sem configuração de e-mail", func(t *testing.T) {
		mock := newMock(t)
		mailer := &fakeMailer{}
		withOptions(t, Options{Mailer: mailer, Metrics: middleware.NewMetrics()})
		mock.ExpectQuery("FROM email_configurations").WillReturnError(pgx.ErrNoRows)

		res := notifyGvp(context.Background(), p)
		assert.False(t, res.sent)
		assert.Contains(t, res.warning, "configuração de e-mail")
		assert.Zero(t, mailer.alerts)
	})

	t.Run("falha no envio", func(t *testing.T) {
		mock := newMock(t)
		mailer := &fakeMailer{alertErr: errors.New("dial tcp: connection refused")}
		withOptions(t, Options{Mailer: mailer, AlertRecipients: []string{"gvp@exemplo.org"}})
		mock.ExpectQuery("FROM email_configurations").WillReturnRows(emailConfigRow())

		res := notifyGvp(context.Background(), p)
		assert.False(t, res.sent)
		assert.Contains(t, res.warning, "connection refused")
		assert.Equal(t, []string{"gvp@exemplo.org"}, mailer.recipients)
	})

	t.Run("destinatários dos membros ativos", func(t *testing.T) {
		mock := newMock(t)
		mailer := &fakeMailer{}
		withOptions(t, Options{Mailer: mailer})
		mock.ExpectQuery("FROM email_configurations").WillReturnRows(emailConfigRow())
		mock.ExpectQuery("FROM membros_gvp m JOIN users u").
			WillReturnRows(pgxmock.NewRows([]string{"email"}).AddRow("ana@exemplo.org").AddRow("joao@exemplo.org"))

		res := notifyGvp(context.Background(), p)
		assert.True(t, res.sent)
		assert.Empty(t, res.warning)
		assert.Equal(t, []string{"ana@exemplo.org", "joao@exemplo.org"}, mailer.recipients)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nenhum membro ativo", func(t *testing.T) {
		mock := newMock(t)
		mailer := &fakeMailer{}
		withOptions(t, Options{Mailer: mailer})
		mock.ExpectQuery("FROM email_configurations").WillReturnRows(emailConfigRow())
		mock.ExpectQuery("FROM membros_gvp m JOIN users u").WillReturnRows(pgxmock.NewRows([]string{"email"}))

		res := notifyGvp(context.Background(), p)
		assert.False(t, res.sent)
		assert.Contains(t, res.warning, "Nenhum membro ativo")
	})
}

func TestBoletim(t *testing.T) {
	p := models.PlanilhaEmergencia{
		NomePaciente:             "Maria Souza",
		Idade:                    "54 anos",
		Sexo:                     "F",
		DataHoraContato:          time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC),
		NomeHospital:             "Hospital Central",
		NumeroQuarto:             "204",
		MedicoResponsavel:        "Dr. Paulo",
		EspecialidadeResponsavel: "Cardiologia",
		ProblemaEspecifico:       "Anemia grave",
		PlanoTratamento:          "Eritropoetina",
		StatusGvp:                models.StatusAcompanhamento,
	}

	t.Run("sem acompanhamento", func(t *testing.T) {
		texto := boletim(p, nil)
		assert.Contains(t, texto, "*BOLETIM COLIH - Maria Souza*")
		assert.Contains(t, texto, "Hospital: Hospital Central - Quarto 204")
		assert.Contains(t, texto, "Médico responsável: Dr. Paulo (Cardiologia)")
		assert.Contains(t, texto, "Status GVP: Em Acompanhamento")
		assert.Contains(t, texto, "Último acompanhamento: nenhum registro")
	})

	t.Run("com o último acompanhamento", func(t *testing.T) {
		ultima := &models.GvpVisit{
			StatusPatient:  "Estável",
			ActionTaken:    "Visita ao quarto",
			SubmissionDate: time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
		}
		texto := boletim(p, ultima)
		assert.Contains(t, texto, "Último acompanhamento (11/03/2024 09:00): Estável - Visita ao quarto")
	})
}

func TestWhatsappURL(t *testing.T) {
	link := whatsappURL("Paciente: Maria & João")
	require.True(t, strings.HasPrefix(link, "https://wa.me/?text="))
	assert.NotContains(t, link, "+")
	assert.NotContains(t, link, " ")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Paciente: Maria & João", parsed.Query().Get("text"))
}
