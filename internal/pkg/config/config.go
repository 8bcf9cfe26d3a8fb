package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// DevJWTSecret is the fallback signing key used when JWT_SECRET is unset.
// It exists so local development works out of the box; production must set
// a real secret.
const DevJWTSecret = "dev-secret"

type Config struct {
	Port      string `env:"PORT,      default=3000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=account_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// SigningSecret returns the configured JWT secret, falling back to the
// insecure development default when unset. Callers should warn on fallback.
func (c *Config) SigningSecret() (secret string, isFallback bool) {
	if c.JWTSecret == "" {
		return DevJWTSecret, true
	}
	return c.JWTSecret, false
}
