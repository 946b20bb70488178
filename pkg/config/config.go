package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API        APIConfig
	Tenant     TenantConfig
	Demo       DemoConfig
	Token      TokenConfig
	Log        LogConfig
	DemoServer DemoServerConfig
}

// APIConfig describes how the client reaches the platform backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TenantConfig controls tenant slug resolution.
type TenantConfig struct {
	// Override pins the tenant slug, bypassing hostname resolution.
	// Used for local development against a shared backend.
	Override           string
	ReservedSubdomains []string
}

// DemoConfig toggles the fixture-backed authentication path.
type DemoConfig struct {
	Enabled     bool
	FixturePath string
}

// TokenConfig locates the durable token file.
type TokenConfig struct {
	Path string
}

type LogConfig struct {
	Level  string
	Format string
}

// DemoServerConfig configures the bundled demo backend.
type DemoServerConfig struct {
	Port           int
	JWTSecret      string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	AllowedOrigins []string
	ReportDir      string
	SignedURLKey   string
	SignedURLTTL   time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("API_TIMEOUT"), 15*time.Second),
	}

	cfg.Tenant = TenantConfig{
		Override:           v.GetString("TENANT_OVERRIDE"),
		ReservedSubdomains: splitAndTrim(v.GetString("TENANT_RESERVED_SUBDOMAINS")),
	}

	cfg.Demo = DemoConfig{
		Enabled:     v.GetBool("DEMO_MODE"),
		FixturePath: v.GetString("DEMO_FIXTURE_PATH"),
	}

	cfg.Token = TokenConfig{
		Path: v.GetString("TOKEN_PATH"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.DemoServer = DemoServerConfig{
		Port:           v.GetInt("DEMO_SERVER_PORT"),
		JWTSecret:      v.GetString("DEMO_SERVER_JWT_SECRET"),
		AccessTTL:      parseDuration(v.GetString("DEMO_SERVER_ACCESS_TTL"), 15*time.Minute),
		RefreshTTL:     parseDuration(v.GetString("DEMO_SERVER_REFRESH_TTL"), 7*24*time.Hour),
		RedisAddr:      v.GetString("DEMO_SERVER_REDIS_ADDR"),
		RedisPassword:  v.GetString("DEMO_SERVER_REDIS_PASSWORD"),
		RedisDB:        v.GetInt("DEMO_SERVER_REDIS_DB"),
		AllowedOrigins: splitAndTrim(v.GetString("DEMO_SERVER_ALLOWED_ORIGINS")),
		ReportDir:      v.GetString("DEMO_SERVER_REPORT_DIR"),
		SignedURLKey:   v.GetString("DEMO_SERVER_SIGNED_URL_KEY"),
		SignedURLTTL:   parseDuration(v.GetString("DEMO_SERVER_SIGNED_URL_TTL"), 30*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_TIMEOUT", "15s")

	v.SetDefault("TENANT_OVERRIDE", "")
	v.SetDefault("TENANT_RESERVED_SUBDOMAINS", "www,api,admin,app")

	v.SetDefault("DEMO_MODE", false)
	v.SetDefault("DEMO_FIXTURE_PATH", ".console-demo-user.json")

	v.SetDefault("TOKEN_PATH", ".console-tokens.json")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DEMO_SERVER_PORT", 8080)
	v.SetDefault("DEMO_SERVER_JWT_SECRET", "dev_secret")
	v.SetDefault("DEMO_SERVER_ACCESS_TTL", "15m")
	v.SetDefault("DEMO_SERVER_REFRESH_TTL", "168h")
	v.SetDefault("DEMO_SERVER_REDIS_ADDR", "")
	v.SetDefault("DEMO_SERVER_REDIS_PASSWORD", "")
	v.SetDefault("DEMO_SERVER_REDIS_DB", 0)
	v.SetDefault("DEMO_SERVER_ALLOWED_ORIGINS", "")
	v.SetDefault("DEMO_SERVER_REPORT_DIR", "./exports")
	v.SetDefault("DEMO_SERVER_SIGNED_URL_KEY", "dev_signed_url_key")
	v.SetDefault("DEMO_SERVER_SIGNED_URL_TTL", "30m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
