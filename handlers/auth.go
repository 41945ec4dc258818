package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/middleware"
	"github.com/colih/gestao-medicos/models"
)

const mfaIssuer = "COLIH"

// Login autentica o usuário e devolve o token JWT com as permissões do papel
func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if fe := models.ValidateStruct(req); len(fe) > 0 {
		return validationError(c, fe)
	}

	ctx := c.UserContext()
	usuario, err := database.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, database.ErrNotFound) {
		return errorJSON(c, fiber.StatusUnauthorized, "Credenciais inválidas")
	}
	if err != nil {
		return dbError(c, err, "Credenciais inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(req.Password)); err != nil {
		middleware.LogCustomEvent(ctx, models.LogLevelWarning, "login recusado", map[string]interface{}{"username": req.Username})
		return errorJSON(c, fiber.StatusUnauthorized, "Credenciais inválidas")
	}
	if !usuario.IsActive {
		return errorJSON(c, fiber.StatusUnauthorized, "Usuário inativo")
	}

	if usuario.MFAEnabled {
		if req.MFACode == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":        "Código MFA obrigatório",
				"mfa_required": true,
			})
		}
		if !totp.Validate(req.MFACode, usuario.MFASecret) {
			return errorJSON(c, fiber.StatusUnauthorized, "Código MFA inválido")
		}
	}

	perms, err := database.UserPermissions(ctx, usuario.ID)
	if err != nil {
		return dbError(c, err, "Usuário não encontrado")
	}

	token, err := middleware.GenerateJWT(usuario, perms)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao gerar o token")
	}

	middleware.LogCustomEvent(ctx, models.LogLevelInfo, "login", map[string]interface{}{"user_id": usuario.ID})
	return c.JSON(models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(middleware.TokenTTL().Seconds()),
		Usuario:     usuario.ToResponse(perms),
	})
}

// currentUser carrega o usuário autenticado a partir dos claims
func currentUser(c *fiber.Ctx) (models.Usuario, error) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return models.Usuario{}, database.ErrNotFound
	}
	return database.GetUserByID(c.UserContext(), claims.UserID)
}

// Perfil devolve o usuário autenticado
func Perfil(c *fiber.Ctx) error {
	usuario, err := currentUser(c)
	if err != nil {
		return dbError(c, err, "Usuário não encontrado")
	}
	perms, err := database.UserPermissions(c.UserContext(), usuario.ID)
	if err != nil {
		return dbError(c, err, "Usuário não encontrado")
	}
	return c.JSON(usuario.ToResponse(perms))
}

// SetupMFA gera um novo segredo TOTP; o MFA só é ativado após VerifyMFA
func SetupMFA(c *fiber.Ctx) error {
	var req models.MFASetupRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if fe := models.ValidateStruct(req); len(fe) > 0 {
		return validationError(c, fe)
	}

	usuario, err := currentUser(c)
	if err != nil {
		return dbError(c, err, "Usuário não encontrado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(req.Password)); err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Senha incorreta")
	}
	if usuario.MFAEnabled {
		return errorJSON(c, fiber.StatusConflict, "MFA já está ativado")
	}

	key, err := totp.Generate(totp.GenerateOpts{Issuer: mfaIssuer, AccountName: usuario.Username})
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao gerar o segredo MFA")
	}
	if err := database.SetMFA(c.UserContext(), usuario.ID, key.Secret(), false); err != nil {
		return dbError(c, err, "Usuário não encontrado")
	}

	return c.JSON(models.MFASetupResponse{Secret: key.Secret(), QRCodeURL: key.URL()})
}

// VerifyMFA confirma o primeiro código e ativa o MFA
func VerifyMFA(c *fiber.Ctx) error {
	usuario, code, ok, err := mfaRequest(c)
	if !ok {
		return err
	}
	if usuario.MFASecret == "" {
		return errorJSON(c, fiber.StatusBadRequest, "MFA não configurado")
	}
	if !totp.Validate(code, usuario.MFASecret) {
		return errorJSON(c, fiber.StatusUnauthorized, "Código MFA inválido")
	}
	if err := database.SetMFA(c.UserContext(), usuario.ID, usuario.MFASecret, true); err != nil {
		return dbError(c, err, "Usuário não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": "MFA ativado com sucesso."})
}

// DisableMFA exige um código válido para desativar
func DisableMFA(c *fiber.Ctx) error {
	usuario, code, ok, err := mfaRequest(c)
	if !ok {
		return err
	}
	if !usuario.MFAEnabled {
		return errorJSON(c, fiber.StatusBadRequest, "MFA não está ativado")
	}
	if !totp.Validate(code, usuario.MFASecret) {
		return errorJSON(c, fiber.StatusUnauthorized, "Código MFA inválido")
	}
	if err := database.SetMFA(c.UserContext(), usuario.ID, "", false); err != nil {
		return dbError(c, err, "Usuário não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": "MFA desativado com sucesso."})
}

// mfaRequest lê o código e o usuário; com ok falso a resposta de erro já foi escrita
func mfaRequest(c *fiber.Ctx) (usuario models.Usuario, code string, ok bool, err error) {
	var req models.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return usuario, "", false, invalidBody(c)
	}
	if fe := models.ValidateStruct(req); len(fe) > 0 {
		return usuario, "", false, validationError(c, fe)
	}
	usuario, err = currentUser(c)
	if err != nil {
		return usuario, "", false, dbError(c, err, "Usuário não encontrado")
	}
	return usuario, req.Code, true, nil
}
