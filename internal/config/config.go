package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const minSecretLength = 32

// Default allowed origins for development
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	JWTSecret   string
	StaticDir   string
	KafkaBroker string
	GroqAPIKey  string

	AllowedOrigins []string
}

// Load reads configuration from the environment and validates the values
// the auth core cannot run without. A missing database URL or a signing
// key shorter than 32 bytes is a startup error, not a runtime one.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Env:         v.GetString("APP_ENV"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		StaticDir:   v.GetString("STATIC_DIR"),
		KafkaBroker: v.GetString("KAFKA_BROKER"),
		GroqAPIKey:  v.GetString("GROQ_API_KEY"),
	}

	cfg.AllowedOrigins = allowedOrigins(v)

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func allowedOrigins(v *viper.Viper) []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := v.GetString("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowed := v.GetString("ALLOWED_ORIGINS"); allowed != "" {
		for _, origin := range strings.Split(allowed, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
