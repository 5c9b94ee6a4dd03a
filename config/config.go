package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBUrl          string
	Environment    string
	Port           string
	JWTSecret      string
	AllowedOrigins []string

	EmailProvider   string
	EmailFrom       string
	EmailFromName   string
	SESRegion       string
	SESAccessKey    string
	SESSecretKey    string
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
// Missing database settings or JWT_SECRET are an error so the process fails
// fast at startup instead of serving against a broken store.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production .env might not exist and we rely on system environment
	// variables, so a load failure is only a warning.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:   env,
		Port:          os.Getenv("PORT"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		EmailProvider: os.Getenv("EMAIL_PROVIDER"),
		EmailFrom:     os.Getenv("EMAIL_FROM"),
		EmailFromName: os.Getenv("EMAIL_FROM_NAME"),
		SESRegion:     os.Getenv("SES_REGION"),
		SESAccessKey:  os.Getenv("SES_ACCESS_KEY_ID"),
		SESSecretKey:  os.Getenv("SES_SECRET_ACCESS_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required environment variable JWT_SECRET")
	}

	dbURL, err := databaseURL()
	if err != nil {
		return nil, err
	}
	cfg.DBUrl = dbURL

	origins := os.Getenv("CLIENT_URL")
	if origins == "" {
		origins = "http://localhost:8080"
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg, nil
}

// databaseURL builds a postgres connection string from DATABASE_URL, or from
// the discrete DB_* variables when DATABASE_URL is unset.
func databaseURL() (string, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL, nil
	}

	required := []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"}
	var missing []string
	for _, v := range required {
		if os.Getenv(v) == "" {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")),
		Host:     fmt.Sprintf("%s:%s", os.Getenv("DB_HOST"), port),
		Path:     os.Getenv("DB_NAME"),
		RawQuery: "sslmode=" + sslMode,
	}
	return u.String(), nil
}
