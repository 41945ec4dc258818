package models

import "fmt"

// EmailConfiguration configuração do servidor de e-mail usado nos alertas
type EmailConfiguration struct {
	ID            int64  `json:"id" db:"id"`
	NomeConfig    string `json:"nome_config" db:"nome_config" validate:"max=50"`
	SMTPServer    string `json:"smtp_server" db:"smtp_server" validate:"required,max=255"`
	SMTPPort      int    `json:"smtp_port" db:"smtp_port" validate:"gte=1,lte=65535"`
	UseTLS        bool   `json:"use_tls" db:"use_tls"`
	EmailUser     string `json:"email_user" db:"email_user" validate:"required,email"`
	EmailPassword string `json:"-" db:"email_password"`
	IMAPServer    string `json:"imap_server" db:"imap_server" validate:"max=255"`
}

// EmailConfigurationRequest aceita a senha, que nunca é devolvida nas respostas
type EmailConfigurationRequest struct {
	EmailConfiguration
	EmailPassword string `json:"email_password" validate:"max=255"`
}

// NewEmailConfiguration valores padrão do formulário
func NewEmailConfiguration() EmailConfiguration {
	return EmailConfiguration{NomeConfig: "Padrao", SMTPPort: 587, UseTLS: true}
}

func (c EmailConfiguration) String() string {
	return fmt.Sprintf("Servidor: %s (%s)", c.SMTPServer, c.EmailUser)
}
