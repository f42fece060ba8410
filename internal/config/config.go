package config

import "github.com/kelseyhightower/envconfig"

// Config holds all environment-driven settings for the server.
type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	JWTSecret string `envconfig:"JWT_SECRET" default:"noor-staging-signing-key-2026"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"noor_user"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"noor_password"`
	DBName     string `envconfig:"DB_NAME" default:"noor"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`

	PrayerAPIBaseURL string `envconfig:"PRAYER_API_BASE_URL" default:"https://api.aladhan.com/v1"`

	AnthropicModel string `envconfig:"ANTHROPIC_MODEL" default:""`
	MockGenerator  bool   `envconfig:"MOCK_GENERATOR" default:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
