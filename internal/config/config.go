package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envFiles chargés avant les surcharges d'environnement, les fichiers absents sont ignorés
var envFiles = []string{".env.local", ".env"}

// Config configuration de l'application
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Stripe    StripeConfig    `toml:"stripe"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Redis     RedisConfig     `toml:"redis"`
	Cache     CacheConfig     `toml:"cache"`
	Mail      MailConfig      `toml:"mail"`
	Tracing   TracingConfig   `toml:"tracing"`
	Booking   BookingConfig   `toml:"booking"`
}

// ServerConfig paramètres du serveur HTTP, timeouts en secondes
type ServerConfig struct {
	HTTPPort        int   `toml:"http_port" envconfig:"PORT"`
	ReadTimeout     int   `toml:"read_timeout"`
	WriteTimeout    int   `toml:"write_timeout"`
	IdleTimeout     int   `toml:"idle_timeout"`
	ShutdownTimeout int   `toml:"shutdown_timeout"`
	MaxBodyBytes    int64 `toml:"max_body_bytes"`
}

// DatabaseConfig connexion Postgres.
// URL est prioritaire sur les champs séparés.
type DatabaseConfig struct {
	URL             string `toml:"url" envconfig:"DATABASE_URL"`
	Host            string `toml:"host" envconfig:"DB_HOST"`
	Port            int    `toml:"port" envconfig:"DB_PORT"`
	User            string `toml:"user" envconfig:"DB_USER"`
	Password        string `toml:"password" envconfig:"DB_PASSWORD"`
	DBName          string `toml:"dbname" envconfig:"DB_NAME"`
	SSLMode         string `toml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN chaîne de connexion pour lib/pq
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Target couple host/db pour les logs, sans identifiants
func (c DatabaseConfig) Target() string {
	if c.URL != "" {
		if u, err := url.Parse(c.URL); err == nil {
			return u.Host + u.Path
		}
		return "database_url"
	}
	return fmt.Sprintf("%s:%d/%s", c.Host, c.Port, c.DBName)
}

type LogsConfig struct {
	File  string `toml:"file" envconfig:"LOG_FILE"`
	Level string `toml:"level" envconfig:"LOG_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"METRICS_ENABLED"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// AuthConfig paramètres du projet Supabase. Les access tokens sont des JWT HS256 signés avec JWTSecret.
type AuthConfig struct {
	JWTSecret  string `toml:"jwt_secret" envconfig:"SUPABASE_JWT_SECRET"`
	CookieName string `toml:"cookie_name"`
}

type StripeConfig struct {
	SecretKey     string `toml:"secret_key" envconfig:"STRIPE_SECRET_KEY"`
	WebhookSecret string `toml:"webhook_secret" envconfig:"STRIPE_WEBHOOK_SECRET"`
	PriceID       string `toml:"price_id" envconfig:"STRIPE_PRICE_ID"`
	SiteURL       string `toml:"site_url" envconfig:"NEXT_PUBLIC_SITE_URL"`

	// WebhookTolerance âge maximal de la signature en secondes
	WebhookTolerance int `toml:"webhook_tolerance"`
}

// Enabled les endpoints de facturation peuvent joindre Stripe
func (c StripeConfig) Enabled() bool {
	return c.SecretKey != ""
}

// RateLimitConfig limites par client. Avec Redis, une fenêtre fixe de
// WindowLimit requêtes par WindowSeconds est partagée entre les instances.
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" envconfig:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	WindowLimit       int     `toml:"window_limit"`
	WindowSeconds     int     `toml:"window_seconds"`
	// TrustedProxies CIDR ou adresses dont le X-Forwarded-For est pris en compte
	TrustedProxies []string `toml:"trusted_proxies" envconfig:"TRUSTED_PROXIES"`
}

type RedisConfig struct {
	Addr     string `toml:"addr" envconfig:"REDIS_ADDR"`
	Password string `toml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `toml:"db" envconfig:"REDIS_DB"`
}

// Enabled un serveur Redis est configuré
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// CacheConfig caches en mémoire, durées en secondes
type CacheConfig struct {
	WorkingHoursTTL int `toml:"working_hours_ttl"`
	CleanupInterval int `toml:"cleanup_interval"`
}

type MailConfig struct {
	Enabled  bool   `toml:"enabled" envconfig:"MAIL_ENABLED"`
	Host     string `toml:"host" envconfig:"SMTP_HOST"`
	Port     int    `toml:"port" envconfig:"SMTP_PORT"`
	Username string `toml:"username" envconfig:"SMTP_USERNAME"`
	Password string `toml:"password" envconfig:"SMTP_PASSWORD"`
	From     string `toml:"from" envconfig:"MAIL_FROM"`
}

type TracingConfig struct {
	Enabled     bool    `toml:"enabled" envconfig:"OTEL_ENABLED"`
	Endpoint    string  `toml:"endpoint" envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SampleRatio float64 `toml:"sample_ratio" envconfig:"OTEL_SAMPLING_RATIO"`
}

// BookingConfig valeurs par défaut des rendez-vous.
// DefaultDayStart/DefaultDayEnd bornent chaque jour d'un pro sans horaires.
type BookingConfig struct {
	DefaultDuration int    `toml:"default_duration"`
	MinDuration     int    `toml:"min_duration"`
	MaxDuration     int    `toml:"max_duration"`
	DefaultDayStart string `toml:"default_day_start"`
	DefaultDayEnd   string `toml:"default_day_end"`
}

// Load lit le fichier TOML, puis les fichiers .env, puis les surcharges d'environnement.
// Un fichier TOML absent n'est pas une erreur : le service peut tourner avec l'environnement seul.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	for _, f := range envFiles {
		// godotenv n'écrase jamais une variable déjà présente dans l'environnement
		_ = godotenv.Load(f)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "require"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "ekicare-api"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "sb-access-token"
	}

	if c.Stripe.WebhookTolerance == 0 {
		c.Stripe.WebhookTolerance = 300
	}
	c.Stripe.SiteURL = strings.TrimRight(c.Stripe.SiteURL, "/")

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
	if c.RateLimit.WindowLimit == 0 {
		c.RateLimit.WindowLimit = 600
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}

	if c.Cache.WorkingHoursTTL == 0 {
		c.Cache.WorkingHoursTTL = 300
	}
	if c.Cache.CleanupInterval == 0 {
		c.Cache.CleanupInterval = 600
	}

	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}

	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4317"
	}
	if c.Tracing.SampleRatio == 0 {
		c.Tracing.SampleRatio = 1
	}

	if c.Booking.DefaultDuration == 0 {
		c.Booking.DefaultDuration = 60
	}
	if c.Booking.MinDuration == 0 {
		c.Booking.MinDuration = 5
	}
	if c.Booking.MaxDuration == 0 {
		c.Booking.MaxDuration = 480
	}
	if c.Booking.DefaultDayStart == "" {
		c.Booking.DefaultDayStart = "08:00"
	}
	if c.Booking.DefaultDayEnd == "" {
		c.Booking.DefaultDayEnd = "18:00"
	}
}

// Validate vérifie les paramètres sans lesquels le service ne démarre pas
func (c *Config) Validate() error {
	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("%w: database url or host is required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: SUPABASE_JWT_SECRET is required", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: invalid http port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	if c.Booking.MinDuration > c.Booking.MaxDuration {
		return fmt.Errorf("%w: booking min_duration exceeds max_duration", ErrInvalidConfig)
	}
	if c.Booking.DefaultDuration < c.Booking.MinDuration || c.Booking.DefaultDuration > c.Booking.MaxDuration {
		return fmt.Errorf("%w: booking default_duration out of bounds", ErrInvalidConfig)
	}
	if c.Stripe.Enabled() && c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("%w: STRIPE_WEBHOOK_SECRET is required with STRIPE_SECRET_KEY", ErrInvalidConfig)
	}
	if c.Mail.Enabled && (c.Mail.Host == "" || c.Mail.From == "") {
		return fmt.Errorf("%w: mail host and from are required when mail is enabled", ErrInvalidConfig)
	}
	return nil
}

// ErrInvalidConfig retourné par Validate
var ErrInvalidConfig = errors.New("config: invalid configuration")
