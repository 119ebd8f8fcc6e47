// Package config loads buildcost settings. Precedence, highest first:
// flags, BUILDCOST_* environment variables, the YAML config file, defaults.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/buildcost/internal/estimator"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix         = "BUILDCOST_"
	DefaultConfigFile = "buildcost.yaml"
	DefaultAddr       = ":8080"
)

type Config struct {
	DBPath      string           `koanf:"db_path"`
	CatalogPath string           `koanf:"catalog_path"`
	Server      ServerConfig     `koanf:"server"`
	Log         LogConfig        `koanf:"log"`
	Validation  ValidationConfig `koanf:"validation"`
	Tiers       TierConfig       `koanf:"tiers"`
	Engine      EngineConfig     `koanf:"engine"`

	// File is the config file that was read, empty when none was.
	File string `koanf:"-"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type ValidationConfig struct {
	LargeSquareFootage float64 `koanf:"large_square_footage"`
	MaxRooms           int     `koanf:"max_rooms"`
	MaxBedrooms        int     `koanf:"max_bedrooms"`
}

type TierConfig struct {
	LuxuryMinSqft      float64 `koanf:"luxury_min_sqft"`
	UltraLuxuryMinSqft float64 `koanf:"ultra_luxury_min_sqft"`
}

type EngineConfig struct {
	Workers int `koanf:"workers"`
}

// defaults lists every key with its default value.
func defaults() map[string]any {
	policy := estimator.DefaultPolicy()
	bands := estimator.DefaultTierBands()
	return map[string]any{
		"db_path":                         defaultDBPath(),
		"catalog_path":                    "",
		"server.addr":                     DefaultAddr,
		"log.level":                       "warn",
		"log.format":                      "text",
		"validation.large_square_footage": policy.LargeSquareFootage,
		"validation.max_rooms":            policy.MaxRooms,
		"validation.max_bedrooms":         policy.MaxBedrooms,
		"tiers.luxury_min_sqft":           bands.LuxuryMinSqft,
		"tiers.ultra_luxury_min_sqft":     bands.UltraLuxuryMinSqft,
		"engine.workers":                  0,
	}
}

// defaultDBPath is ~/.buildcost/buildcost.db, or a relative file when the
// home directory is unknown.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "buildcost.db"
	}
	return filepath.Join(home, ".buildcost", "buildcost.db")
}

// flagKeys maps CLI flag names to config keys. Flags not listed are not
// configuration.
var flagKeys = map[string]string{
	"db":         "db_path",
	"catalog":    "catalog_path",
	"addr":       "server.addr",
	"log-level":  "log.level",
	"log-format": "log.format",
	"workers":    "engine.workers",
}

// Default returns the configuration with nothing loaded on top.
func Default() *Config {
	k, err := newKoanf(defaults())
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

// newKoanf starts a koanf instance with base as its lowest layer.
func newKoanf(base map[string]any) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(base, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	return k, nil
}

// Load builds the configuration. An explicit path must exist; without one,
// buildcost.yaml in the working directory is read when present. Only flags
// the user changed override lower layers.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k, err := newKoanf(defaults())
	if err != nil {
		return nil, err
	}

	used := path
	if used == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			used = DefaultConfigFile
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", used, err)
		}
	}

	// BUILDCOST_SERVER__ADDR -> server.addr, BUILDCOST_DB_PATH -> db_path
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if flags != nil {
		err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings the engine or logger cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "db_path must not be empty")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		problems = append(problems, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Validation.LargeSquareFootage <= 0 {
		problems = append(problems, "validation.large_square_footage must be positive")
	}
	if c.Validation.MaxRooms < 1 {
		problems = append(problems, "validation.max_rooms must be at least 1")
	}
	if c.Validation.MaxBedrooms < 0 {
		problems = append(problems, "validation.max_bedrooms must not be negative")
	}
	if c.Tiers.LuxuryMinSqft <= 0 || c.Tiers.UltraLuxuryMinSqft <= c.Tiers.LuxuryMinSqft {
		problems = append(problems, fmt.Sprintf("tiers: need 0 < luxury_min_sqft < ultra_luxury_min_sqft, got %v and %v",
			c.Tiers.LuxuryMinSqft, c.Tiers.UltraLuxuryMinSqft))
	}
	if c.Engine.Workers < 0 {
		problems = append(problems, "engine.workers must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// EngineOptions turns the validation, tier and engine sections into
// estimator options.
func (c *Config) EngineOptions() []estimator.Option {
	return []estimator.Option{
		estimator.WithPolicy(estimator.Policy{
			LargeSquareFootage: c.Validation.LargeSquareFootage,
			MaxRooms:           c.Validation.MaxRooms,
			MaxBedrooms:        c.Validation.MaxBedrooms,
		}),
		estimator.WithTierBands(estimator.TierBands{
			LuxuryMinSqft:      c.Tiers.LuxuryMinSqft,
			UltraLuxuryMinSqft: c.Tiers.UltraLuxuryMinSqft,
		}),
		estimator.WithWorkers(c.Engine.Workers),
	}
}

// NewLogger builds the slog logger described by the log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: unknown level %q", s)
	}
	return level, nil
}
