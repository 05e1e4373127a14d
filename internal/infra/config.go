package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	JWTSecret        string
	AllowedOrigins   []string
	GeoIPDBPath      string
	GoogleClientID   string
	GoogleIssuer     string
	FirebaseAPIKey   string
	IdentityBaseURL  string
	GeminiAPIKey     string
	GeminiProAPIKey  string
	GeminiBaseURL    string
	AdminEmails      []string
	StripeSecretKey  string
	StripeWebhookKey string
	ConfigTimeout    time.Duration
	DBMaxConns       int32
	DBMinConns       int32
	DBConnLifetime   time.Duration
	DBConnIdleTime   time.Duration
	DBConnectTimeout time.Duration
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		GoogleClientID:   os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleIssuer:     getEnv("GOOGLE_ISSUER", "https://accounts.google.com"),
		FirebaseAPIKey:   os.Getenv("FIREBASE_API_KEY"),
		IdentityBaseURL:  getEnv("IDENTITY_BASE_URL", "https://identitytoolkit.googleapis.com/v1"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiProAPIKey:  getEnv("GEMINI_PRO_API_KEY", os.Getenv("GEMINI_API_KEY")),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		AdminEmails:      splitList(getEnv("ADMIN_EMAILS", "tkproject@gmail.com")),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookKey: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		ConfigTimeout:    time.Second * time.Duration(getEnvInt("CONFIG_LOAD_TIMEOUT_SECONDS", 2)),
		DBMaxConns:       int32(getEnvInt("DB_MAX_CONNS", 8)),
		DBMinConns:       int32(getEnvInt("DB_MIN_CONNS", 1)),
		DBConnLifetime:   time.Minute * time.Duration(getEnvInt("DB_CONN_LIFETIME_MINUTES", 60)),
		DBConnIdleTime:   time.Minute * time.Duration(getEnvInt("DB_CONN_IDLE_MINUTES", 30)),
		DBConnectTimeout: time.Second * time.Duration(getEnvInt("DB_CONNECT_TIMEOUT_SECONDS", 10)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
