package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/colih/gestao-medicos/config"
	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/handlers"
	"github.com/colih/gestao-medicos/mail"
	"github.com/colih/gestao-medicos/middleware"
	"github.com/colih/gestao-medicos/routes"
)

func main() {
	// Carrega variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		slog.Warn("Arquivo .env não carregado")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("Erro ao carregar a configuração", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuração inválida", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	middleware.SetJWTConfig(cfg.JWTSecret, cfg.JWTTTL)

	ctx := context.Background()
	if err := database.ConnectDB(ctx, database.PoolConfig{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}); err != nil {
		slog.Error("Erro ao conectar ao banco de dados", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB()

	if err := database.Migrate(ctx); err != nil {
		slog.Error("Erro ao aplicar o schema", "error", err)
		os.Exit(1)
	}

	// Redis é opcional; sem ele os contadores do rate limit ficam em memória
	var storage fiber.Storage
	if cfg.RedisAddr != "" {
		rs, err := middleware.NewRedisStorage(middleware.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			slog.Warn("Redis indisponível, rate limit em memória", "error", err)
		} else {
			storage = rs
			defer rs.Close()
		}
	}

	metrics := middleware.NewMetrics()
	handlers.Configure(handlers.Options{
		Mailer:          mail.NewMailService(),
		Metrics:         metrics,
		SiteURL:         cfg.SiteURL,
		AlertRecipients: cfg.GvpAlertRecipients,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
		AppName: "COLIH - Gestão de Médicos Cooperadores",
	})

	routes.SetupRoutes(app, routes.Deps{Config: cfg, Metrics: metrics, Storage: storage})

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Rota não encontrada",
			"message": "A rota solicitada não existe neste servidor",
			"path":    c.Path(),
			"method":  c.Method(),
		})
	})

	go func() {
		slog.Info("Servidor iniciado", "port", cfg.Port, "environment", cfg.Environment)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Servidor encerrado com erro", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Encerrando o servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Erro ao encerrar o servidor", "error", err)
	}
}
