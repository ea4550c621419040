package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is the bearer token validity window.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=168h"`

	// UnassignResetsStatus controls whether a programmer's self-unassignment
	// resets the bug status to New instead of keeping the submitted status.
	UnassignResetsStatus bool `env:"BUG_UNASSIGN_RESETS_STATUS, default=false"`

	Bootstrap BootstrapConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

// BootstrapConfig seeds the first Administrator account when the store holds
// none, so the at-least-one-Administrator invariant is satisfiable from an
// empty database. Seeding is skipped when the password is empty.
type BootstrapConfig struct {
	AdminUsername string `env:"BOOTSTRAP_ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bug_tracking"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
