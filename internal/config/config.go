package config

import (
	"github.com/caarlos0/env/v11"
)

// Config holds everything the server reads from the environment.
// Secrets (DSN, JWT key, Toss secret key) have no defaults on purpose.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DatabaseDSN string `env:"DB_DSN,required"`

	JWTSecret string `env:"JWT_SECRET,required"`

	// Toss payment gateway. The base URL is overridable so tests and
	// sandbox environments can point the client elsewhere.
	TossBaseURL   string `env:"TOSS_BASE_URL" envDefault:"https://api.tosspayments.com"`
	TossSecretKey string `env:"TOSS_SECRET_KEY,required"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
