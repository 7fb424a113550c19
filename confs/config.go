package confs

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every process-level setting. It is built once in main and
// passed down explicitly; nothing else reads the environment after Load
// returns.
type Config struct {
	Port         string
	Environment  string
	JWTSecret    string
	OpenAIAPIKey string
	DatabaseURL  string
	CORSOrigins  []string
}

// Load reads .env (if present) and the process environment into a Config.
// A missing required secret is an error so the server refuses to start
// half-configured.
func Load() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	cfg := &Config{
		Port:        envOrDefault("PORT", "8000"),
		Environment: envOrDefault("APP_ENV", "development"),
	}

	var err error
	if cfg.JWTSecret, err = requiredEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.OpenAIAPIKey, err = requiredEnv("OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.DatabaseURL, err = requiredEnv("DB_URL"); err != nil {
		return nil, err
	}

	cfg.CORSOrigins = splitOrigins(envOrDefault("CORS_ORIGIN", "http://localhost:3000"))

	return cfg, nil
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requiredEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return v, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
