package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	IdentityNameOrCode = "name_or_code"
	IdentityCode       = "code"

	envPrefix = "EMPLOYEE_TOOL"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"db"`
	Identity IdentityConfig `mapstructure:"identity"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Driver        string        `mapstructure:"driver"`
	Path          string        `mapstructure:"path"`
	DSN           string        `mapstructure:"dsn"`
	MaxOpenConns  int           `mapstructure:"max_open_conns"`
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
}

// IdentityConfig selects how an incoming employee is matched against stored ones.
type IdentityConfig struct {
	Match string `mapstructure:"match"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads configuration with precedence env > config file > defaults.
// An empty path searches for employee-tool.yaml in the working directory and the user config dir.
func Load(path string) (Config, error) {
	LoadDotEnv()

	v := viper.New()

	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "employees.sqlite")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 5)
	v.SetDefault("db.slow_threshold", "1s")

	v.SetDefault("identity.match", IdentityNameOrCode)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("employee-tool")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "employee-tool"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Identity.Match = strings.ToLower(strings.TrimSpace(cfg.Identity.Match))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("db.path required for driver %s", DriverSQLite)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("db.dsn required for driver %s", DriverPostgres)
		}
	default:
		return fmt.Errorf("db.driver must be one of: %s, %s", DriverSQLite, DriverPostgres)
	}

	switch c.Identity.Match {
	case IdentityNameOrCode, IdentityCode:
	default:
		return fmt.Errorf("identity.match must be one of: %s, %s", IdentityNameOrCode, IdentityCode)
	}

	return nil
}

// LoadDotEnv loads .env.local then .env. Variables already set in the
// environment are never overwritten. Returns the files actually loaded.
func LoadDotEnv() []string {
	var loaded []string
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}
