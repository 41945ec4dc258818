package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/colih/gestao-medicos/config"
	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/handlers"
	"github.com/colih/gestao-medicos/middleware"
)

const (
	maxBodySize    = 2 * 1024 * 1024
	requestTimeout = 30 * time.Second
)

// Deps dependências das rotas
type Deps struct {
	Config  *config.Config
	Metrics *middleware.Metrics
	// Storage dos contadores do rate limit; nil mantém em memória
	Storage fiber.Storage
}

// SetupRoutes configura todas as rotas da aplicação
func SetupRoutes(app *fiber.App, deps Deps) {
	cfg := deps.Config
	perm := middleware.RequirePermission

	// Middleware global
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if cfg.IsDevelopment() {
		app.Use(logger.New())
	}
	app.Use(middleware.LoggingMiddleware(cfg.Environment))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.BodySizeLimit(maxBodySize))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Use(middleware.RequestTimeout(requestTimeout))

	// Estado do sistema
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "error",
				"database": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "COLIH - Gestão de Médicos Cooperadores",
		})
	})

	api := app.Group("/api/v1", middleware.DefaultRateLimiter(deps.Storage))

	// === ROTAS PÚBLICAS ===
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(deps.Storage), handlers.Login)

	// === ROTAS PROTEGIDAS ===
	protected := api.Group("/", middleware.JWTMiddleware())

	protected.Get("/", handlers.Index)
	protected.Get("/painel", handlers.ObterPainel)
	protected.Get("/auth/me", handlers.Perfil)

	// --- MFA ---
	mfa := protected.Group("/mfa")
	mfa.Post("/setup", handlers.SetupMFA)
	mfa.Post("/verify", handlers.VerifyMFA)
	mfa.Post("/disable", handlers.DisableMFA)

	// --- ESPECIALIDADES ---
	specialties := protected.Group("/specialties")
	specialties.Get("/list", handlers.ListarEspecialidades)
	specialties.Post("/add", perm("specialties_create"), handlers.CriarEspecialidade)
	specialties.Put("/:id/edit", perm("specialties_update"), handlers.AtualizarEspecialidade)
	specialties.Delete("/:id", perm("specialties_delete"), handlers.ExcluirEspecialidade)

	// --- MÉDICOS E TELEFONES ---
	doctors := protected.Group("/doctors")
	doctors.Get("/list", handlers.ListarMedicos)
	doctors.Get("/export/xlsx", handlers.ExportarMedicosXLSX)
	doctors.Post("/add", perm("doctors_create"), handlers.CriarMedico)
	doctors.Get("/:id", handlers.ObterMedico)
	doctors.Put("/:id/edit", perm("doctors_update"), handlers.AtualizarMedico)
	doctors.Delete("/:id", perm("doctors_delete"), handlers.ExcluirMedico)
	doctors.Post("/:id/phones", perm("phones_create"), handlers.AdicionarTelefone)
	doctors.Delete("/:id/phone/:phone_id/delete", perm("phones_delete"), handlers.ExcluirTelefone)
	protected.Get("/phones/list", handlers.ListarTelefones)

	// --- VISITAS ---
	visits := protected.Group("/visits")
	visits.Get("/list", handlers.ListarVisitas)
	visits.Post("/add", perm("visits_create"), handlers.CriarVisita)
	visits.Get("/:id", handlers.ObterVisita)
	visits.Put("/:id/edit", perm("visits_update"), handlers.AtualizarVisita)
	visits.Delete("/:id/delete", perm("visits_delete"), handlers.ExcluirVisita)

	// --- PLANILHAS DE EMERGÊNCIA ---
	emergencia := protected.Group("/emergencia")
	emergencia.Get("/list", handlers.ListarPlanilhas)
	emergencia.Post("/add", perm("planilhas_create"), handlers.CriarPlanilha)
	emergencia.Get("/:id", handlers.ObterPlanilha)
	emergencia.Put("/:id/edit", perm("planilhas_update"), handlers.AtualizarPlanilha)
	emergencia.Get("/:id/boletim", handlers.BoletimPlanilha)
	emergencia.Post("/:id/submeter-gvp", perm("gvp_submit"), handlers.SubmeterGvp)

	// --- GVP ---
	gvp := protected.Group("/gvp")
	gvp.Get("/acompanhamentos", handlers.ListarAcompanhamentos)
	gvp.Post("/register", perm("gvp_create"), handlers.RegistrarAcompanhamento)
	gvp.Post("/:planilha_id/register", perm("gvp_create"), handlers.RegistrarAcompanhamento)
	gvp.Get("/:planilha_id/visits", handlers.ListarVisitasGvp)

	// --- CONFIGURAÇÃO DE E-MAIL ---
	email := protected.Group("/config/email")
	email.Get("/", handlers.ObterConfigEmail)
	email.Put("/", perm("emailconfig_update"), handlers.SalvarConfigEmail)
	email.Post("/testar", middleware.StrictRateLimiter(deps.Storage), perm("emailconfig_update"), handlers.TestarSMTP)

	// --- ADMIN ---
	admin := protected.Group("/admin")
	admin.Get("/cities", handlers.ListarCidades)
	admin.Get("/cities/:id", handlers.ObterCidade)
	admin.Get("/hospitals", handlers.ListarHospitais)
	admin.Get("/hospitals/:id", handlers.ObterHospital)

	adminOnly := perm(middleware.PermAdminAccess)
	admin.Post("/cities", adminOnly, handlers.CriarCidade)
	admin.Put("/cities/:id", adminOnly, handlers.AtualizarCidade)
	admin.Delete("/cities/:id", adminOnly, handlers.ExcluirCidade)
	admin.Post("/hospitals", adminOnly, handlers.CriarHospital)
	admin.Put("/hospitals/:id", adminOnly, handlers.AtualizarHospital)
	admin.Delete("/hospitals/:id", adminOnly, handlers.ExcluirHospital)

	admin.Get("/users", adminOnly, handlers.ListarUsuarios)
	admin.Post("/users", adminOnly, handlers.CriarUsuario)
	admin.Get("/users/:id", adminOnly, handlers.ObterUsuario)
	admin.Put("/users/:id", adminOnly, handlers.AtualizarUsuario)
	admin.Delete("/users/:id", adminOnly, handlers.ExcluirUsuario)
	admin.Get("/roles", adminOnly, handlers.ListarPapeis)
	admin.Post("/roles", adminOnly, handlers.CriarPapel)
	admin.Put("/roles/:id/permissions", adminOnly, handlers.DefinirPermissoesPapel)

	admin.Get("/membros-colih", adminOnly, handlers.ListarMembrosColih)
	admin.Post("/membros-colih", adminOnly, handlers.CriarMembroColih)
	admin.Put("/membros-colih/:id", adminOnly, handlers.AtualizarMembroColih)
	admin.Delete("/membros-colih/:id", adminOnly, handlers.ExcluirMembroColih)
	admin.Get("/membros-gvp", adminOnly, handlers.ListarMembrosGvp)
	admin.Post("/membros-gvp", adminOnly, handlers.CriarMembroGvp)
	admin.Put("/membros-gvp/:id", adminOnly, handlers.AtualizarMembroGvp)
	admin.Delete("/membros-gvp/:id", adminOnly, handlers.ExcluirMembroGvp)
}
