package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	SequenceStore = "store"
	SequenceRedis = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	Store     StoreConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Bootstrap BootstrapConfig
}

type AuthConfig struct {
	// Secret signs every token. The process refuses to start without it.
	Secret      string        `env:"AUTH_SECRET, required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
	Issuer      string        `env:"TOKEN_ISSUER, default=personnel-api"`
	BcryptCost  int           `env:"BCRYPT_COST,  default=12"`
	HashWorkers int           `env:"HASH_WORKERS, default=0"`
}

type StoreConfig struct {
	Driver         string        `env:"STORE_DRIVER,    default=mongo"`
	Timeout        time.Duration `env:"STORE_TIMEOUT,   default=5s"`
	SequenceDriver string        `env:"SEQUENCE_DRIVER, default=store"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=personnel"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// BootstrapConfig names the admin created on an empty store. Both fields
// must be set for bootstrapping to run.
type BootstrapConfig struct {
	AdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	AdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

func (b BootstrapConfig) Enabled() bool {
	return b.AdminEmail != "" && b.AdminPassword != ""
}

// IsProduction reports whether ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadFrom is Load over an explicit lookuper, for tests.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	switch c.Store.Driver {
	case StoreMongo, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q: want %s or %s", c.Store.Driver, StoreMongo, StoreMemory))
	}
	switch c.Store.SequenceDriver {
	case SequenceStore, SequenceRedis:
	default:
		errs = append(errs, fmt.Errorf("SEQUENCE_DRIVER %q: want %s or %s", c.Store.SequenceDriver, SequenceStore, SequenceRedis))
	}
	return errors.Join(errs...)
}
