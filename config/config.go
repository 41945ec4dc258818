package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config reúne a configuração da aplicação
type Config struct {
	Port        string        `mapstructure:"port"`
	DatabaseURL string        `mapstructure:"database_url"`
	DBMaxConns  int32         `mapstructure:"db_max_conns"`
	DBMinConns  int32         `mapstructure:"db_min_conns"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	JWTTTL      time.Duration `mapstructure:"jwt_ttl"`
	Environment string        `mapstructure:"environment"`
	SiteURL     string        `mapstructure:"site_url"`
	CORSOrigins string        `mapstructure:"cors_origins"`

	// Destinatários do alerta GVP; vazio usa os membros ativos do GVP
	GvpAlertRecipients []string `mapstructure:"gvp_alert_recipients"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

var keys = []string{
	"port", "database_url", "db_max_conns", "db_min_conns", "jwt_secret", "jwt_ttl",
	"environment", "site_url", "cors_origins", "gvp_alert_recipients",
	"redis_addr", "redis_password", "redis_db",
}

// Load lê o arquivo de configuração opcional e as variáveis de ambiente
// (PORT, DATABASE_URL, ...), que têm precedência.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("port", "3000")
	v.SetDefault("db_max_conns", 30)
	v.SetDefault("db_min_conns", 5)
	v.SetDefault("jwt_ttl", 24*time.Hour)
	v.SetDefault("environment", "development")
	v.SetDefault("site_url", "http://localhost:3000")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("redis_db", 0)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file, path = %s: %w", path, err)
		}
	}

	v.AutomaticEnv()
	// AutomaticEnv só é consultado por chaves conhecidas no Unmarshal
	for _, k := range keys {
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", k, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.GvpAlertRecipients = splitList(v.GetString("gvp_alert_recipients"), cfg.GvpAlertRecipients)
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	return &cfg, nil
}

// Validate devolve erro citando a primeira chave obrigatória ausente
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}

// IsDevelopment indica ambiente de desenvolvimento
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func splitList(raw string, fallback []string) []string {
	// o arquivo pode trazer uma lista; a variável de ambiente vem separada por vírgula
	if raw == "" || strings.HasPrefix(raw, "[") {
		return cleanList(fallback)
	}
	return cleanList(strings.Split(raw, ","))
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
