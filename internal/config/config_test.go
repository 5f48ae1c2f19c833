package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db.local"
port = 5432
user = "ekicare"
password = "secret"
dbname = "ekicare"
sslmode = "disable"

[auth]
jwt_secret = "from-file"

[booking]
default_duration = 45
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, 45, cfg.Booking.DefaultDuration)
	assert.Equal(t, 5, cfg.Booking.MinDuration)
	assert.Equal(t, 480, cfg.Booking.MaxDuration)
	assert.Equal(t, "08:00", cfg.Booking.DefaultDayStart)
	assert.Equal(t, "sb-access-token", cfg.Auth.CookieName)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "host=db.local port=5432 user=ekicare password=secret dbname=ekicare sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "db.local:5432/ekicare", cfg.Database.Target())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "from-env")
	t.Setenv("DATABASE_URL", "postgres://u:p@supabase.co:5432/postgres")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
	t.Setenv("NEXT_PUBLIC_SITE_URL", "https://ekicare.fr/")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "postgres://u:p@supabase.co:5432/postgres", cfg.Database.DSN())
	assert.Equal(t, "supabase.co:5432/postgres", cfg.Database.Target())
	assert.True(t, cfg.Stripe.Enabled())
	assert.Equal(t, "https://ekicare.fr", cfg.Stripe.SiteURL)
}

func TestLoad_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "env-only")
	t.Setenv("DATABASE_URL", "postgres://localhost/ekicare")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
}

func TestLoad_InvalidToml(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nhttp_port = "))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Database.URL = "postgres://localhost/ekicare"
		c.Auth.JWTSecret = "secret"
		c.setDefaults()
		return c
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing database", func(c *Config) { c.Database.URL = "" }},
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"bad port", func(c *Config) { c.Server.HTTPPort = 70000 }},
		{"min above max", func(c *Config) { c.Booking.MinDuration = 600 }},
		{"default out of bounds", func(c *Config) { c.Booking.DefaultDuration = 1000 }},
		{"stripe without webhook secret", func(c *Config) { c.Stripe.SecretKey = "sk" }},
		{"mail without host", func(c *Config) { c.Mail.Enabled = true }},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig+"\n[ratelimit]\ntrusted_proxies = [\"10.0.0.0/8\"]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.RateLimit.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,172.16.0.1")
	cfg, err = Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, cfg.RateLimit.TrustedProxies)
}
