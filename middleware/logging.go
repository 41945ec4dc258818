package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/colih/gestao-medicos/models"
)

const maxLoggedBody = 1000

var sensitiveFields = []string{"password", "email_password", "mfa_code", "code", "secret", "token", "access_token"}

// LoggingMiddleware registra cada requisição HTTP como um registro slog
func LoggingMiddleware(environment string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// deixa o ErrorHandler definir o status antes do log
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		entry := createLogEntry(c, time.Since(start), environment)
		slog.Log(c.UserContext(), slogLevel(entry.LogLevel), "request",
			"request_id", entry.RequestID,
			"method", entry.Method,
			"path", entry.Path,
			"status", entry.StatusCode,
			"latency_ms", entry.ResponseTime.Milliseconds(),
			"ip", entry.IP,
			"user_agent", entry.UserAgent,
			"user", entry.Username,
			"query", entry.Query,
			"body", entry.Body,
			"environment", entry.Environment,
		)
		return nil
	}
}

func createLogEntry(c *fiber.Ctx, responseTime time.Duration, environment string) models.RequestLog {
	var username string
	if u, ok := c.Locals("username").(string); ok {
		username = u
	}

	// IP real do cliente atrás de proxy
	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		ip = realIP
	}

	var body string
	switch c.Method() {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
		body = filterSensitiveData(string(c.Body()))
	}

	var requestID string
	if id, ok := c.Locals("requestid").(string); ok {
		requestID = id
	}

	if environment == "" {
		environment = models.EnvironmentDevelopment
	}

	return models.RequestLog{
		RequestID:    requestID,
		Method:       c.Method(),
		Path:         c.Path(),
		StatusCode:   c.Response().StatusCode(),
		ResponseTime: responseTime,
		UserAgent:    c.Get(fiber.HeaderUserAgent),
		IP:           ip,
		Body:         body,
		Query:        string(c.Request().URI().QueryString()),
		Username:     username,
		LogLevel:     determineLogLevel(c.Response().StatusCode()),
		Environment:  environment,
	}
}

// filterSensitiveData mascara senhas e tokens do body JSON e trunca o resultado
func filterSensitiveData(body string) string {
	if body == "" {
		return ""
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return truncate(body)
	}

	for _, field := range sensitiveFields {
		if _, exists := data[field]; exists {
			data[field] = "[FILTERED]"
		}
	}

	filtered, _ := json.Marshal(data)
	return truncate(string(filtered))
}

func truncate(s string) string {
	if len(s) > maxLoggedBody {
		return s[:maxLoggedBody] + "...[truncated]"
	}
	return s
}

// determineLogLevel nível do log a partir do status HTTP
func determineLogLevel(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return models.LogLevelSuccess
	case statusCode >= 300 && statusCode < 400:
		return models.LogLevelInfo
	case statusCode >= 400 && statusCode < 500:
		return models.LogLevelWarning
	case statusCode >= 500:
		return models.LogLevelError
	default:
		return models.LogLevelInfo
	}
}

func slogLevel(level string) slog.Level {
	switch level {
	case models.LogLevelDebug:
		return slog.LevelDebug
	case models.LogLevelWarning:
		return slog.LevelWarn
	case models.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogCustomEvent registra eventos de domínio, como transições de status e envio de alertas
func LogCustomEvent(ctx context.Context, level, message string, attrs map[string]interface{}) {
	args := make([]any, 0, len(attrs)*2+2)
	args = append(args, "event", true)
	for k, v := range attrs {
		args = append(args, k, v)
	}
	slog.Log(ctx, slogLevel(level), message, args...)
}
