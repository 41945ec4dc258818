package routes

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colih/gestao-medicos/config"
	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/middleware"
	"github.com/colih/gestao-medicos/models"
)

// memStorage storage do rate limit em mapa, como o Redis compartilhado dos limitadores
type memStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (s *memStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), val...)
	return nil
}

func (s *memStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string][]byte{}
	return nil
}

func (s *memStorage) Close() error { return nil }

func newApp(t *testing.T) *fiber.App {
	app, _ := newAppWithMock(t, nil)
	return app
}

func newAppWithMock(t *testing.T, storage fiber.Storage) (*fiber.App, pgxmock.PgxPoolIface) {
	t.Helper()
	middleware.SetJWTConfig("segredo-de-teste", time.Hour)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	prev := database.DB
	database.DB = mock
	t.Cleanup(func() {
		database.DB = prev
		mock.Close()
	})

	app := fiber.New()
	SetupRoutes(app, Deps{
		Config:  &config.Config{Environment: "test", CORSOrigins: "*"},
		Metrics: middleware.NewMetrics(),
		Storage: storage,
	})
	return app, mock
}

func token(t *testing.T, superuser bool, perms ...string) string {
	t.Helper()
	tok, err := middleware.GenerateJWT(models.Usuario{ID: 1, Username: "ana", IsSuperuser: superuser}, perms)
	require.NoError(t, err)
	return tok
}

func send(t *testing.T, app *fiber.App, method, path, tok, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if tok != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode
}

func TestHealthAndMetrics(t *testing.T) {
	app, mock := newAppWithMock(t, nil)
	mock.ExpectPing()

	assert.Equal(t, fiber.StatusOK, send(t, app, fiber.MethodGet, "/health", "", ""))
	assert.Equal(t, fiber.StatusOK, send(t, app, fiber.MethodGet, "/metrics", "", ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealth_DatabaseDown(t *testing.T) {
	app, mock := newAppWithMock(t, nil)
	mock.ExpectPing().WillReturnError(errors.New("conexão recusada"))

	assert.Equal(t, fiber.StatusServiceUnavailable, send(t, app, fiber.MethodGet, "/health", "", ""))
}

func TestRateLimit_LoginNotStarvedByApiTraffic(t *testing.T) {
	app, _ := newAppWithMock(t, &memStorage{data: map[string][]byte{}})

	// a listagem passa pelo limitador geral e devolve 401 sem token
	for i := 0; i < middleware.AuthRateLimit.Max+5; i++ {
		require.Equal(t, fiber.StatusUnauthorized, send(t, app, fiber.MethodGet, "/api/v1/doctors/list", "", ""))
	}
	// corpo vazio falha na validação antes de consultar o banco
	assert.Equal(t, fiber.StatusBadRequest, send(t, app, fiber.MethodPost, "/api/v1/auth/login", "", "{}"))
}

func TestProtectedRoutes(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"sem token", fiber.MethodGet, "/api/v1/doctors/list", "", fiber.StatusUnauthorized},
		{"token inválido", fiber.MethodGet, "/api/v1/doctors/list", "abc.def.ghi", fiber.StatusUnauthorized},
		{"sem permissão para criar médico", fiber.MethodPost, "/api/v1/doctors/add", token(t, false), fiber.StatusForbidden},
		{"permissão de outra entidade", fiber.MethodPost, "/api/v1/doctors/add", token(t, false, "visits_create"), fiber.StatusForbidden},
		{"submeter sem gvp_submit", fiber.MethodPost, "/api/v1/emergencia/1/submeter-gvp", token(t, false, "planilhas_update"), fiber.StatusForbidden},
		{"admin sem admin_access", fiber.MethodGet, "/api/v1/admin/users", token(t, false, "doctors_create"), fiber.StatusForbidden},
		{"teste de smtp sem permissão", fiber.MethodPost, "/api/v1/config/email/testar", token(t, false), fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, send(t, app, tt.method, tt.path, tt.token, "{}"))
		})
	}
}

func TestPermissionGrantedReachesHandler(t *testing.T) {
	app := newApp(t)

	// com a permissão o handler valida o corpo e responde 400, não 403
	status := send(t, app, fiber.MethodPost, "/api/v1/doctors/add", token(t, false, "doctors_create"), "{}")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = send(t, app, fiber.MethodPost, "/api/v1/doctors/add", token(t, true), "{}")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
