package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitConfig configuração do rate limiting
type RateLimitConfig struct {
	Name       string        // Prefixo da chave; separa os contadores no storage compartilhado
	Max        int           // Número máximo de requisições
	Expiration time.Duration // Janela de tempo
	Message    string
}

// DefaultRateLimit aplicado a toda a API
var DefaultRateLimit = RateLimitConfig{
	Name:       "api",
	Max:        300,
	Expiration: 15 * time.Minute,
	Message:    "Muitas requisições, tente novamente mais tarde",
}

// StrictRateLimit endpoints sensíveis, como o teste de SMTP
var StrictRateLimit = RateLimitConfig{
	Name:       "strict",
	Max:        10,
	Expiration: 15 * time.Minute,
	Message:    "Limite de requisições excedido para este endpoint",
}

// AuthRateLimit tentativas de login
var AuthRateLimit = RateLimitConfig{
	Name:       "auth",
	Max:        20,
	Expiration: 30 * time.Minute,
	Message:    "Muitas tentativas de login, tente novamente mais tarde",
}

// CreateRateLimiter cria o limitador; storage nil guarda os contadores em memória
func CreateRateLimiter(config RateLimitConfig, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.Max,
		Expiration: config.Expiration,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return config.Name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       config.Message,
				"retry_after": int(config.Expiration.Seconds()),
			})
		},
	})
}

func DefaultRateLimiter(storage fiber.Storage) fiber.Handler {
	return CreateRateLimiter(DefaultRateLimit, storage)
}

func StrictRateLimiter(storage fiber.Storage) fiber.Handler {
	return CreateRateLimiter(StrictRateLimit, storage)
}

func AuthRateLimiter(storage fiber.Storage) fiber.Handler {
	return CreateRateLimiter(AuthRateLimit, storage)
}

// BodySizeLimit rejeita corpos maiores que maxSize bytes
func BodySizeLimit(maxSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(c.Body()) > maxSize {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error":    "O tamanho da requisição excede o limite permitido",
				"max_size": maxSize,
			})
		}
		return c.Next()
	}
}

// RequestTimeout limita o contexto usado pelas consultas ao banco e pelo SMTP
func RequestTimeout(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// SecurityHeaders adiciona os headers de segurança
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Content-Security-Policy", "default-src 'self'")
		c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		return c.Next()
	}
}
