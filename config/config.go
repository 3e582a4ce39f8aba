package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultPort               = "8080"
	DefaultAccessTokenExpiry  = "15m"
	DefaultRefreshTokenExpiry = "7d"
)

// Config holds everything the service reads from its environment.
// It is built once in main and passed down explicitly.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	LogLevel    int    `env:"LOG_LEVEL" envDefault:"0"`
	JWT         JWT    `envPrefix:"JWT_"`
	Argon2      Argon2 `envPrefix:"ARGON2_"`
}

// JWT contains token signing parameters.
type JWT struct {
	AccessSecret  string   `env:"ACCESS_SECRET,required,notEmpty"`
	RefreshSecret string   `env:"REFRESH_SECRET,required,notEmpty"`
	AccessExpiry  Duration `env:"ACCESS_EXPIRESIN" envDefault:"15m"`
	RefreshExpiry Duration `env:"REFRESH_EXPIRESIN" envDefault:"7d"`
	// RejectReused makes refresh compare the presented token with the
	// stored hash, so only the most recently issued token can rotate.
	RejectReused bool `env:"REFRESH_REJECT_REUSED" envDefault:"true"`
}

// Argon2 contains password hashing cost parameters.
type Argon2 struct {
	Memory      uint32 `env:"MEMORY" envDefault:"65536"`
	Time        uint32 `env:"TIME" envDefault:"3"`
	Parallelism uint8  `env:"PARALLELISM" envDefault:"4"`
}

// Load reads an optional .env file from the working directory and then
// parses the process environment. Variables already set in the
// environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks constraints env tags cannot express.
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("invalid config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.JWT.AccessExpiry.Duration() <= 0 {
		return errors.New("invalid config: JWT_ACCESS_EXPIRESIN must be positive")
	}
	if c.JWT.RefreshExpiry.Duration() <= 0 {
		return errors.New("invalid config: JWT_REFRESH_EXPIRESIN must be positive")
	}
	if c.Argon2.Memory == 0 || c.Argon2.Time == 0 || c.Argon2.Parallelism == 0 {
		return errors.New("invalid config: argon2 parameters must be positive")
	}
	return nil
}
