package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX é o subconjunto do pool usado pelas consultas; permite trocar o pool
// por um mock nos testes
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// DB é a instância global do pool de conexões
var DB DBTX

var pool *pgxpool.Pool

// PoolConfig parâmetros do pool
type PoolConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// ConnectDB estabelece a conexão com o banco usando um pool
func ConnectDB(ctx context.Context, cfg PoolConfig) error {
	config, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return fmt.Errorf("erro ao interpretar a URL do banco: %w", err)
	}
	config.MaxConns = cfg.MaxConns
	config.MinConns = cfg.MinConns
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30

	p, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("erro ao criar o pool de conexões: %w", err)
	}

	// Testa se o banco está vivo com uma consulta rápida
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var version string
	if err := p.QueryRow(pingCtx, "SELECT version()").Scan(&version); err != nil {
		p.Close()
		return fmt.Errorf("erro ao testar a conexão: %w", err)
	}

	pool = p
	DB = p
	slog.Info("Conectado ao banco de dados", "version", version)
	return nil
}

// CloseDB fecha o pool de conexões
func CloseDB() {
	if pool != nil {
		pool.Close()
		slog.Info("Pool de conexões fechado")
	}
}

// Ping verifica a conexão, usado pelo /health
func Ping(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("conexão com o banco não inicializada")
	}
	return DB.Ping(ctx)
}
