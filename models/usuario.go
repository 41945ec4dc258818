package models

import (
	"strings"
	"time"
)

// Usuario representa a tabela users
type Usuario struct {
	ID          int64     `json:"id" db:"id"`
	Username    string    `json:"username" db:"username" validate:"required,max=150"`
	FirstName   string    `json:"first_name" db:"first_name" validate:"max=150"`
	LastName    string    `json:"last_name" db:"last_name" validate:"max=150"`
	Email       string    `json:"email" db:"email" validate:"omitempty,email"`
	Password    string    `json:"password,omitempty" db:"password"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	IsSuperuser bool      `json:"is_superuser" db:"is_superuser"`
	RoleID      int64     `json:"role_id,omitempty" db:"role_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	MFAEnabled  bool      `json:"mfa_enabled" db:"mfa_enabled"`
	MFASecret   string    `json:"-" db:"mfa_secret"`
}

// FullName nome completo; vazio quando o usuário não tem nome cadastrado
func (u Usuario) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName nome completo ou, na falta dele, o username
func (u Usuario) DisplayName() string {
	if n := u.FullName(); n != "" {
		return n
	}
	return u.Username
}

// UsuarioResponse representa a resposta sem dados sensíveis
type UsuarioResponse struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	IsActive    bool     `json:"is_active"`
	IsSuperuser bool     `json:"is_superuser"`
	RoleID      int64    `json:"role_id,omitempty"`
	MFAEnabled  bool     `json:"mfa_enabled"`
	Permissions []string `json:"permissions,omitempty"`
}

// ToResponse remove a senha e o segredo MFA
func (u Usuario) ToResponse(perms []string) UsuarioResponse {
	return UsuarioResponse{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		RoleID:      u.RoleID,
		MFAEnabled:  u.MFAEnabled,
		Permissions: perms,
	}
}

// Role agrupa permissões atribuídas aos usuários
type Role struct {
	ID          int64    `json:"id" db:"id"`
	Name        string   `json:"name" db:"name" validate:"required,max=80"`
	Permissions []string `json:"permissions" db:"-"`
}

// LoginRequest representa a solicitação de login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	MFACode  string `json:"mfa_code,omitempty"`
}

// LoginResponse representa a resposta do login
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int             `json:"expires_in"` // segundos
	Usuario     UsuarioResponse `json:"usuario"`
}

type MFASetupRequest struct {
	Password string `json:"password" validate:"required"`
}

type MFASetupResponse struct {
	Secret    string `json:"secret"`
	QRCodeURL string `json:"qr_code_url"`
}

type MFAVerifyRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}
