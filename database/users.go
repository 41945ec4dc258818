package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/colih/gestao-medicos/models"
)

const userSelect = `SELECT id, username, first_name, last_name, email, password, is_active, is_superuser,
	COALESCE(role_id, 0), created_at, updated_at, mfa_enabled, COALESCE(mfa_secret, '')
	FROM users`

func scanUser(row scanner) (models.Usuario, error) {
	var u models.Usuario
	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.IsActive,
		&u.IsSuperuser, &u.RoleID, &u.CreatedAt, &u.UpdatedAt, &u.MFAEnabled, &u.MFASecret)
	return u, err
}

// GetUserByUsername usado no login
func GetUserByUsername(ctx context.Context, username string) (models.Usuario, error) {
	u, err := scanUser(DB.QueryRow(ctx, userSelect+" WHERE username = $1", username))
	return u, wrap("get user", err)
}

// GetUserByID busca o usuário pelo id
func GetUserByID(ctx context.Context, id int64) (models.Usuario, error) {
	u, err := scanUser(DB.QueryRow(ctx, userSelect+" WHERE id = $1", id))
	return u, wrap("get user", err)
}

// ListUsers lista os usuários por username
func ListUsers(ctx context.Context, search string) ([]models.Usuario, error) {
	var w whereBuilder
	if search != "" {
		s := contains(search)
		w.add("(username ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)", s, s, s, s)
	}
	rows, err := DB.Query(ctx, userSelect+w.sql()+" ORDER BY username", w.args...)
	if err != nil {
		return nil, wrap("list users", err)
	}
	defer rows.Close()

	users := []models.Usuario{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap("scan user", err)
		}
		users = append(users, u)
	}
	return users, wrap("list users", rows.Err())
}

// CreateUser insere o usuário; Password já deve vir com o hash bcrypt
func CreateUser(ctx context.Context, u *models.Usuario) error {
	err := DB.QueryRow(ctx,
		`INSERT INTO users (username, first_name, last_name, email, password, is_active, is_superuser, role_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, 0)) RETURNING id, created_at, updated_at`,
		u.Username, u.FirstName, u.LastName, u.Email, u.Password, u.IsActive, u.IsSuperuser, u.RoleID).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return wrap("create user", err)
}

// UpdateUser grava o cadastro; Password vazio mantém a senha atual
func UpdateUser(ctx context.Context, u *models.Usuario) error {
	err := DB.QueryRow(ctx,
		`UPDATE users SET username = $1, first_name = $2, last_name = $3, email = $4,
		 password = COALESCE(NULLIF($5, ''), password), is_active = $6, is_superuser = $7,
		 role_id = NULLIF($8, 0), updated_at = NOW()
		 WHERE id = $9 RETURNING created_at, updated_at`,
		u.Username, u.FirstName, u.LastName, u.Email, u.Password, u.IsActive, u.IsSuperuser, u.RoleID, u.ID).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	return wrap("update user", err)
}

// DeleteUser exclui o usuário; médicos vinculados protegem a exclusão
func DeleteUser(ctx context.Context, id int64) error {
	return deleteByID(ctx, "delete user", "users", id)
}

// SetMFA grava o segredo TOTP e o estado do MFA
func SetMFA(ctx context.Context, userID int64, secret string, enabled bool) error {
	tag, err := DB.Exec(ctx,
		"UPDATE users SET mfa_secret = NULLIF($1, ''), mfa_enabled = $2, updated_at = NOW() WHERE id = $3",
		secret, enabled, userID)
	if err != nil {
		return wrap("set mfa", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set mfa: %w", ErrNotFound)
	}
	return nil
}

// UserPermissions códigos de permissão herdados do papel do usuário
func UserPermissions(ctx context.Context, userID int64) ([]string, error) {
	rows, err := DB.Query(ctx,
		`SELECT rp.codename FROM users u JOIN role_permissions rp ON rp.role_id = u.role_id
		 WHERE u.id = $1 ORDER BY rp.codename`, userID)
	if err != nil {
		return nil, wrap("user permissions", err)
	}
	defer rows.Close()

	perms := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, wrap("scan permission", err)
		}
		perms = append(perms, p)
	}
	return perms, wrap("user permissions", rows.Err())
}

// --- Papéis ---

// ListRoles lista os papéis com suas permissões
func ListRoles(ctx context.Context) ([]models.Role, error) {
	rows, err := DB.Query(ctx,
		`SELECT r.id, r.name,
		 ARRAY(SELECT rp.codename FROM role_permissions rp WHERE rp.role_id = r.id ORDER BY rp.codename)
		 FROM roles r ORDER BY r.name`)
	if err != nil {
		return nil, wrap("list roles", err)
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Permissions); err != nil {
			return nil, wrap("scan role", err)
		}
		roles = append(roles, r)
	}
	return roles, wrap("list roles", rows.Err())
}

// CreateRole cria o papel com as permissões informadas
func CreateRole(ctx context.Context, r *models.Role) error {
	err := pgx.BeginFunc(ctx, DB, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, "INSERT INTO roles (name) VALUES ($1) RETURNING id", r.Name).Scan(&r.ID); err != nil {
			return err
		}
		return insertPermissions(ctx, tx, r.ID, r.Permissions)
	})
	return wrap("create role", err)
}

// SetRolePermissions substitui as permissões do papel
func SetRolePermissions(ctx context.Context, roleID int64, perms []string) error {
	err := pgx.BeginFunc(ctx, DB, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, "SELECT id FROM roles WHERE id = $1 FOR UPDATE", roleID).Scan(&id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, "DELETE FROM role_permissions WHERE role_id = $1", roleID); err != nil {
			return err
		}
		return insertPermissions(ctx, tx, roleID, perms)
	})
	return wrap("set role permissions", err)
}

func insertPermissions(ctx context.Context, tx pgx.Tx, roleID int64, perms []string) error {
	if len(perms) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx,
		"INSERT INTO role_permissions (role_id, codename) SELECT $1, unnest($2::text[]) ON CONFLICT DO NOTHING",
		roleID, perms)
	return err
}
