package handlers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/colih/gestao-medicos/database"
	"github.com/colih/gestao-medicos/middleware"
	"github.com/colih/gestao-medicos/models"
)

const minPasswordLen = 8

// usuarioRequest is_active ausente no corpo vale true
type usuarioRequest struct {
	models.Usuario
	IsActive *bool `json:"is_active"`
}

func (r usuarioRequest) usuario() models.Usuario {
	u := r.Usuario
	u.IsActive = r.IsActive == nil || *r.IsActive
	return u
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func toResponses(users []models.Usuario) []models.UsuarioResponse {
	out := make([]models.UsuarioResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse(nil))
	}
	return out
}

// ListarUsuarios lista os usuários com busca por nome, username ou e-mail
func ListarUsuarios(c *fiber.Ctx) error {
	users, err := database.ListUsers(c.UserContext(), c.Query("search"))
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(toResponses(users)))
}

// ObterUsuario busca um usuário pelo id
func ObterUsuario(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	u, err := database.GetUserByID(c.UserContext(), id)
	if err != nil {
		return dbError(c, err, "Usuário não encontrado")
	}
	perms, err := database.UserPermissions(c.UserContext(), id)
	if err != nil {
		return dbError(c, err, "Usuário não encontrado")
	}
	return c.JSON(u.ToResponse(perms))
}

// CriarUsuario cadastra o usuário com a senha em bcrypt
func CriarUsuario(c *fiber.Ctx) error {
	var req usuarioRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	u := req.usuario()

	fe := models.ValidateStruct(u)
	if len(u.Password) < minPasswordLen {
		fe.Add("password", "A senha deve ter pelo menos 8 caracteres.")
	}
	if len(fe) > 0 {
		return validationError(c, fe)
	}

	hashed, err := hashPassword(u.Password)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao processar a senha")
	}
	u.Password = hashed

	if err := database.CreateUser(c.UserContext(), &u); err != nil {
		return dbError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensagem": msgAdicionado,
		"usuario":  u.ToResponse(nil),
	})
}

// AtualizarUsuario altera o cadastro; a senha só muda quando informada
func AtualizarUsuario(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req usuarioRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	u := req.usuario()
	u.ID = id

	fe := models.ValidateStruct(u)
	if u.Password != "" && len(u.Password) < minPasswordLen {
		fe.Add("password", "A senha deve ter pelo menos 8 caracteres.")
	}
	if len(fe) > 0 {
		return validationError(c, fe)
	}

	if u.Password != "" {
		hashed, err := hashPassword(u.Password)
		if err != nil {
			return errorJSON(c, fiber.StatusInternalServerError, "Erro ao processar a senha")
		}
		u.Password = hashed
	}

	if err := database.UpdateUser(c.UserContext(), &u); err != nil {
		return dbError(c, err, "Usuário não encontrado")
	}
	return c.JSON(fiber.Map{
		"mensagem": msgAlterado,
		"usuario":  u.ToResponse(nil),
	})
}

// ExcluirUsuario não permite que o usuário exclua a si mesmo
func ExcluirUsuario(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if claims, ok := middleware.GetClaims(c); ok && claims.UserID == id {
		return errorJSON(c, fiber.StatusConflict, "Você não pode excluir o próprio usuário.")
	}
	if err := database.DeleteUser(c.UserContext(), id); err != nil {
		return dbError(c, err, "Usuário não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": msgExcluido})
}

// --- Papéis ---

func ListarPapeis(c *fiber.Ctx) error {
	roles, err := database.ListRoles(c.UserContext())
	if err != nil {
		return dbError(c, err, "")
	}
	return c.JSON(list(roles))
}

func CriarPapel(c *fiber.Ctx) error {
	var r models.Role
	if err := c.BodyParser(&r); err != nil {
		return invalidBody(c)
	}
	if fe := models.ValidateStruct(r); len(fe) > 0 {
		return validationError(c, fe)
	}
	if r.Permissions == nil {
		r.Permissions = []string{}
	}
	if err := database.CreateRole(c.UserContext(), &r); err != nil {
		return dbError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mensagem": msgAdicionado, "papel": r})
}

// DefinirPermissoesPapel substitui a lista de permissões do papel
func DefinirPermissoesPapel(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var body struct {
		Permissions []string `json:"permissions"`
	}
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}
	if err := database.SetRolePermissions(c.UserContext(), id, body.Permissions); err != nil {
		return dbError(c, err, "Papel não encontrado")
	}
	return c.JSON(fiber.Map{"mensagem": msgAlterado, "permissions": body.Permissions})
}
