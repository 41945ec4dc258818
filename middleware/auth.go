package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/colih/gestao-medicos/models"
)

// Chave para assinar os tokens JWT, definida em SetJWTConfig
var (
	jwtSecret []byte
	jwtTTL    = 24 * time.Hour
)

// Permissão exigida pelas rotas /admin
const PermAdminAccess = "admin_access"

// Claims personalizados do JWT
type Claims struct {
	UserID      int64    `json:"user_id"`
	Username    string   `json:"username"`
	FullName    string   `json:"full_name,omitempty"`
	IsSuperuser bool     `json:"is_superuser"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// HasPermission superusuários têm todas as permissões
func (c *Claims) HasPermission(code string) bool {
	if c.IsSuperuser {
		return true
	}
	for _, p := range c.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// SetJWTConfig define a chave e a validade dos tokens
func SetJWTConfig(secret string, ttl time.Duration) {
	jwtSecret = []byte(secret)
	if ttl > 0 {
		jwtTTL = ttl
	}
}

// TokenTTL validade configurada dos tokens
func TokenTTL() time.Duration {
	return jwtTTL
}

// GenerateJWT gera o token de acesso do usuário com suas permissões
func GenerateJWT(u models.Usuario, permissions []string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", errors.New("chave JWT não configurada")
	}
	now := time.Now()
	claims := Claims{
		UserID:      u.ID,
		Username:    u.Username,
		FullName:    u.FullName(),
		IsSuperuser: u.IsSuperuser,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}

// JWTMiddleware valida o token Bearer e guarda os claims no contexto
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token de autorização obrigatório",
			})
		}

		// Formato "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Formato de token inválido",
			})
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido",
			})
		}

		c.Locals("claims", claims)
		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)

		return c.Next()
	}
}

// GetClaims devolve os claims do usuário autenticado
func GetClaims(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals("claims").(*Claims)
	return claims, ok && claims != nil
}

// RequirePermission exige o código de permissão (ex.: doctors_create)
func RequirePermission(code string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetClaims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Usuário não autenticado",
			})
		}
		if !claims.HasPermission(code) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":     "Acesso negado: permissão insuficiente",
				"permissao": code,
			})
		}
		return c.Next()
	}
}
