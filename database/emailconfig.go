package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/colih/gestao-medicos/models"
)

// GetEmailConfiguration devolve a primeira configuração cadastrada; é a única usada
func GetEmailConfiguration(ctx context.Context) (models.EmailConfiguration, error) {
	var c models.EmailConfiguration
	err := DB.QueryRow(ctx,
		`SELECT id, nome_config, smtp_server, smtp_port, use_tls, email_user, email_password, COALESCE(imap_server, '')
		 FROM email_configurations ORDER BY id LIMIT 1`).
		Scan(&c.ID, &c.NomeConfig, &c.SMTPServer, &c.SMTPPort, &c.UseTLS, &c.EmailUser, &c.EmailPassword, &c.IMAPServer)
	return c, wrap("get email configuration", err)
}

// SaveEmailConfiguration grava a configuração, criando-a se ainda não existir.
// Senha vazia mantém a senha atual.
func SaveEmailConfiguration(ctx context.Context, c *models.EmailConfiguration) error {
	err := pgx.BeginFunc(ctx, DB, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, "SELECT id FROM email_configurations ORDER BY id LIMIT 1 FOR UPDATE").Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return tx.QueryRow(ctx,
				`INSERT INTO email_configurations (nome_config, smtp_server, smtp_port, use_tls, email_user, email_password, imap_server)
				 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')) RETURNING id`,
				c.NomeConfig, c.SMTPServer, c.SMTPPort, c.UseTLS, c.EmailUser, c.EmailPassword, c.IMAPServer).Scan(&c.ID)
		}
		if err != nil {
			return err
		}
		c.ID = id
		_, err = tx.Exec(ctx,
			`UPDATE email_configurations SET nome_config = $1, smtp_server = $2, smtp_port = $3, use_tls = $4,
			 email_user = $5, email_password = COALESCE(NULLIF($6, ''), email_password), imap_server = NULLIF($7, '')
			 WHERE id = $8`,
			c.NomeConfig, c.SMTPServer, c.SMTPPort, c.UseTLS, c.EmailUser, c.EmailPassword, c.IMAPServer, id)
		return err
	})
	return wrap("save email configuration", err)
}
