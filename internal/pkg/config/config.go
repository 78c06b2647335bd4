package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	AuthModeDirectory = "directory"
	AuthModeRemote    = "remote"

	BackendExternal = "external"
	BackendMemory   = "memory"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL"`

	TokenTTL        time.Duration `env:"TOKEN_TTL,          default=24h"`
	AuthMode        string        `env:"AUTH_MODE,          default=directory"`
	StorageBackend  string        `env:"STORAGE_BACKEND,    default=external"`
	SeedFile        string        `env:"SEED_ACCOUNTS_FILE"`
	ActivityWorkers int           `env:"ACTIVITY_WORKERS,   default=4"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Identity IdentityConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=property_console"`
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password   string        `env:"REDIS_PASSWORD"`
	DB         int           `env:"REDIS_DB,       default=0"`
	SessionTTL time.Duration `env:"SESSION_TTL,    default=24h"`
	KeyPrefix  string        `env:"REDIS_KEY_PREFIX, default=console:"`
}

// IdentityConfig points at the external identity service used when
// AUTH_MODE=remote.
type IdentityConfig struct {
	TokenURL     string   `env:"IDP_TOKEN_URL"`
	ClientID     string   `env:"IDP_CLIENT_ID"`
	ClientSecret string   `env:"IDP_CLIENT_SECRET"`
	Scopes       []string `env:"IDP_SCOPES, default=openid,profile"`
	ClaimsSecret string   `env:"IDP_CLAIMS_SECRET"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.Env == "production" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		c.JWTSecret = "dev-secret-change-me"
	}
	switch c.AuthMode {
	case AuthModeDirectory:
	case AuthModeRemote:
		if c.Identity.TokenURL == "" || c.Identity.ClaimsSecret == "" {
			return fmt.Errorf("AUTH_MODE=remote requires IDP_TOKEN_URL and IDP_CLAIMS_SECRET")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}
	switch c.StorageBackend {
	case BackendExternal, BackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}
