package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config carries every process-level setting. It is loaded once in main and
// injected into the components that need it.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Stripe StripeConfig
}

type ServerConfig struct {
	Addr            string        `env:"HTTP_ADDR,default=:5000"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT,default=15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT,default=30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT,default=10s"`
	AllowedOrigins  string        `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,default=bistroDb"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT,default=10s"`
}

// RedisConfig is optional: an empty Addr disables the menu cache.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,default="`
	Password string        `env:"REDIS_PASSWORD,default="`
	DB       int           `env:"REDIS_DB,default=0"`
	MenuTTL  time.Duration `env:"REDIS_MENU_TTL,default=5m"`
}

type JWTConfig struct {
	Secret     string        `env:"ACCESS_TOKEN_SECRET,required"`
	Expiration time.Duration `env:"ACCESS_TOKEN_EXPIRATION,default=1h"`
}

type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY,default="`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
