package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/dual-count/internal/common"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// DUALCOUNT_STORAGE_BACKEND.
const EnvPrefix = "DUALCOUNT"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
	Storage StorageConfig `mapstructure:"storage"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string        `mapstructure:"backend"`
	Path    string        `mapstructure:"path"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	Prefix   string `mapstructure:"prefix"`
	DB       int    `mapstructure:"db"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme         string `mapstructure:"theme"`
	Variant       string `mapstructure:"variant"`
	LeftCurrency  string `mapstructure:"left_currency"`
	RightCurrency string `mapstructure:"right_currency"`
}

// LoggingConfig holds slog settings. File is used while the TUI owns the
// terminal.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.path", filepath.Join(DataDir(), "dualcount.db"))
	v.SetDefault("storage.timeout", 5*time.Second)
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "")
	v.SetDefault("ui.variant", "dual")
	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.left_currency", "CAD")
	v.SetDefault("ui.right_currency", "RMB")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", filepath.Join(DataDir(), "dualcount.log"))
}

// BindEnv enables DUALCOUNT_* overrides with "." mapped to "_".
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	c.Storage.Path = ExpandPath(c.Storage.Path)
	c.Logging.File = ExpandPath(c.Logging.File)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("%w: storage.path", common.ErrMissingConfig)
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("%w: storage.redis.addr", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, c.Storage.Backend)
	}

	switch c.UI.Variant {
	case "dual", "counter":
	default:
		return fmt.Errorf("%w: unknown ui variant %q", common.ErrInvalidConfig, c.UI.Variant)
	}

	if c.Storage.Timeout <= 0 {
		return fmt.Errorf("%w: storage.timeout must be positive", common.ErrInvalidConfig)
	}
	return nil
}
