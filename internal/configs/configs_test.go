package configs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS",
		"TLS_CERT_FILE", "TLS_KEY_FILE", "STATIC_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	clearEnv(t)

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal("development", cfg.Environment)
	req.Equal(8080, cfg.Port)
	req.Empty(cfg.AllowedOrigins)
	req.False(cfg.TLSEnabled())
	req.Empty(cfg.StaticDir)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	req := require.New(t)
	clearEnv(t)

	t.Setenv("PORT", "not-a-number")
	_, err := LoadConfig()
	req.Error(err)

	t.Setenv("PORT", "80")
	_, err = LoadConfig()
	req.Error(err)
}

func TestLoadConfig_AllowedOrigins(t *testing.T) {
	req := require.New(t)
	clearEnv(t)

	t.Setenv("ALLOWED_ORIGINS", " https://a.local , https://b.local ,")
	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal([]string{"https://a.local", "https://b.local"}, cfg.AllowedOrigins)
}

func TestLoadConfig_TLSFilesMustBePaired(t *testing.T) {
	req := require.New(t)
	clearEnv(t)

	t.Setenv("TLS_CERT_FILE", "/tmp/cert.pem")
	_, err := LoadConfig()
	req.Error(err)
}

func TestLoadConfig_StaticDirMustExist(t *testing.T) {
	req := require.New(t)
	clearEnv(t)

	t.Setenv("STATIC_DIR", "/definitely/not/a/real/dir")
	_, err := LoadConfig()
	req.Error(err)

	t.Setenv("STATIC_DIR", t.TempDir())
	cfg, err := LoadConfig()
	req.NoError(err)
	req.NotEmpty(cfg.StaticDir)
}
