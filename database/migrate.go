package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed schema.sql
var schemaSQL string

// Migrate cria as tabelas que ainda não existem
func Migrate(ctx context.Context) error {
	if _, err := DB.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("erro ao aplicar o schema: %w", err)
	}
	slog.Info("Schema do banco verificado")
	return nil
}
