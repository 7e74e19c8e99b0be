// Package config provides Viper-based configuration loading for the
// land-of-mist binaries.
package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Allowed values for the enumerated settings.
var (
	logLevels    = []string{"debug", "info", "warn", "error"}
	logFormats   = []string{"json", "console"}
	sslModes     = []string{"disable", "require", "verify-ca", "verify-full"}
	difficulties = []string{"easy", "normal", "hard"}
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (d DatabaseConfig) check(v *violations) {
	if d.Host == "" {
		v.addf("database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		v.addf("database.port must be within 1-65535, got %d", d.Port)
	}
	if d.User == "" {
		v.addf("database.user must not be empty")
	}
	if d.Name == "" {
		v.addf("database.name must not be empty")
	}
	if !slices.Contains(sslModes, d.SSLMode) {
		v.addf("database.sslmode must be one of %v, got %q", sslModes, d.SSLMode)
	}
	if d.MaxConns < 1 {
		v.addf("database.max_conns must be at least 1, got %d", d.MaxConns)
	}
	if d.MinConns < 0 {
		v.addf("database.min_conns must not be negative, got %d", d.MinConns)
	}
	if d.MinConns > d.MaxConns {
		v.addf("database.min_conns (%d) must not exceed database.max_conns (%d)", d.MinConns, d.MaxConns)
	}
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

func (l LoggingConfig) check(v *violations) {
	if !slices.Contains(logLevels, l.Level) {
		v.addf("logging.level must be one of %v, got %q", logLevels, l.Level)
	}
	if !slices.Contains(logFormats, l.Format) {
		v.addf("logging.format must be one of %v, got %q", logFormats, l.Format)
	}
}

// ContentConfig locates the game content: a root directory plus the
// per-kind subdirectory names beneath it.
type ContentConfig struct {
	// Dir is the content root directory.
	Dir string `mapstructure:"dir"`

	Weapons string `mapstructure:"weapons"`
	Armor   string `mapstructure:"armor"`
	Shields string `mapstructure:"shields"`
	Spells  string `mapstructure:"spells"`
	Enemies string `mapstructure:"enemies"`
	Classes string `mapstructure:"classes"`
	// Scripts holds the Lua spell hooks.
	Scripts string `mapstructure:"scripts"`
}

// WeaponsDir returns the weapon definition directory.
func (c ContentConfig) WeaponsDir() string { return filepath.Join(c.Dir, c.Weapons) }

// ArmorDir returns the armor definition directory.
func (c ContentConfig) ArmorDir() string { return filepath.Join(c.Dir, c.Armor) }

// ShieldsDir returns the shield definition directory.
func (c ContentConfig) ShieldsDir() string { return filepath.Join(c.Dir, c.Shields) }

// SpellsDir returns the spell definition directory.
func (c ContentConfig) SpellsDir() string { return filepath.Join(c.Dir, c.Spells) }

// EnemiesDir returns the enemy definition directory.
func (c ContentConfig) EnemiesDir() string { return filepath.Join(c.Dir, c.Enemies) }

// ClassesDir returns the class definition directory.
func (c ContentConfig) ClassesDir() string { return filepath.Join(c.Dir, c.Classes) }

// ScriptsDir returns the Lua script directory.
func (c ContentConfig) ScriptsDir() string { return filepath.Join(c.Dir, c.Scripts) }

func (c ContentConfig) check(v *violations) {
	if c.Dir == "" {
		v.addf("content.dir must not be empty")
	}
	subdirs := []struct {
		key string
		val string
	}{
		{"weapons", c.Weapons}, {"armor", c.Armor}, {"shields", c.Shields},
		{"spells", c.Spells}, {"enemies", c.Enemies}, {"classes", c.Classes},
		{"scripts", c.Scripts},
	}
	for _, s := range subdirs {
		if s.val == "" {
			v.addf("content.%s must not be empty", s.key)
		}
	}
}

// BalanceConfig locates the balance document and names the default
// difficulty profile.
type BalanceConfig struct {
	// File is the path to the balance JSON document.
	File string `mapstructure:"file"`
	// Difficulty is the default profile: "easy", "normal", or "hard".
	Difficulty string `mapstructure:"difficulty"`
}

func (b BalanceConfig) check(v *violations) {
	if b.File == "" {
		v.addf("balance.file must not be empty")
	}
	if !slices.Contains(difficulties, b.Difficulty) {
		v.addf("balance.difficulty must be one of %v, got %q", difficulties, b.Difficulty)
	}
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Content  ContentConfig  `mapstructure:"content"`
	Balance  BalanceConfig  `mapstructure:"balance"`
}

// Validate checks every configuration invariant at once.
//
// Postcondition: Returns nil if the configuration is valid, or a single
// error naming all violated settings.
func (c Config) Validate() error {
	var v violations
	c.Logging.check(&v)
	c.Database.check(&v)
	c.Content.check(&v)
	c.Balance.check(&v)
	return v.err()
}

// violations accumulates settings that failed validation so a bad config
// file is reported in one pass instead of one error per run.
type violations []string

func (v *violations) addf(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return fmt.Errorf("configuration validation failed: %s", strings.Join(v, "; "))
}

// Load reads configuration from the given YAML file, applies MIST_-prefixed
// environment overrides, and validates the result.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	// MIST_DATABASE_PASSWORD overrides database.password, and so on.
	v.SetEnvPrefix("MIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "mist")
	v.SetDefault("database.password", "mist")
	v.SetDefault("database.name", "mist")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("content.dir", "content")
	v.SetDefault("content.weapons", "weapons")
	v.SetDefault("content.armor", "armor")
	v.SetDefault("content.shields", "shields")
	v.SetDefault("content.spells", "spells")
	v.SetDefault("content.enemies", "enemies")
	v.SetDefault("content.classes", "classes")
	v.SetDefault("content.scripts", "scripts")

	v.SetDefault("balance.file", "content/balance.json")
	v.SetDefault("balance.difficulty", "normal")
}
