package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/colih")
	t.Setenv("JWT_SECRET", "segredo")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, int32(30), cfg.DBMaxConns)
	assert.Equal(t, int32(5), cfg.DBMinConns)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.GvpAlertRecipients)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/colih")
	t.Setenv("JWT_SECRET", "segredo")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("SITE_URL", "https://colih.example.org/")
	t.Setenv("GVP_ALERT_RECIPIENTS", "gvp@example.org, coordenador@example.org ,")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "https://colih.example.org", cfg.SiteURL)
	assert.Equal(t, []string{"gvp@example.org", "coordenador@example.org"}, cfg.GvpAlertRecipients)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("port: \"4000\"\nenvironment: production\ndatabase_url: postgres://file/colih\njwt_secret: abc\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "postgres://file/colih", cfg.DatabaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nao-existe.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{DatabaseURL: "x", JWTSecret: "y", JWTTTL: time.Hour}},
		{name: "missing database", cfg: Config{JWTSecret: "y", JWTTTL: time.Hour}, wantErr: "DATABASE_URL"},
		{name: "missing secret", cfg: Config{DatabaseURL: "x", JWTTTL: time.Hour}, wantErr: "JWT_SECRET"},
		{name: "zero ttl", cfg: Config{DatabaseURL: "x", JWTSecret: "y"}, wantErr: "JWT_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
