package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	GinMode  string `env:"GIN_MODE,  default=debug"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// LogPretty switches to human-friendly console output for local development.
	LogPretty bool `env:"LOG_PRETTY, default=false"`

	JWTSecret string        `env:"JWT_SECRET, default=your-secret-key"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	// DBDriver selects the SQL dialect: "mysql" or "postgres".
	DBDriver       string `env:"DB_DRIVER,   default=mysql"`
	DBHost         string `env:"DB_HOST,     default=localhost"`
	DBPort         string `env:"DB_PORT,     default=3306"`
	DBUser         string `env:"DB_USER,     default=taskuser"`
	DBPassword     string `env:"DB_PASSWORD, default=taskpassword"`
	DBName         string `env:"DB_NAME,     default=task_tracker"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
}

// Load reads configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
