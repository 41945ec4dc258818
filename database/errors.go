package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound o registro não existe
	ErrNotFound = errors.New("registro não encontrado")
	// ErrProtected a exclusão violaria uma chave estrangeira protegida
	ErrProtected = errors.New("registro protegido por outros cadastros")
	// ErrDuplicate violação de unicidade
	ErrDuplicate = errors.New("registro duplicado")
	// ErrInvalidReference um id informado não existe
	ErrInvalidReference = errors.New("referência inválida")
	// ErrConflict a operação não é permitida no estado atual do registro
	ErrConflict = errors.New("operação não permitida no estado atual")
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// wrap traduz erros do pgx para os erros do pacote, preservando a causa
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			// DELETE bloqueado ou INSERT/UPDATE apontando para id inexistente
			if isDeleteViolation(pgErr) {
				return fmt.Errorf("%s: %w", op, ErrProtected)
			}
			return fmt.Errorf("%s: %w", op, ErrInvalidReference)
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// O Postgres informa "update or delete on table ... violates foreign key"
// quando a violação vem de um registro referenciado
func isDeleteViolation(pgErr *pgconn.PgError) bool {
	return strings.HasPrefix(pgErr.Message, "update or delete")
}
