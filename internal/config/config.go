// Package config loads the optional mend configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/mend/config.toml (falling
// back to ~/.config/mend/config.toml) unless --config names another path:
//
//	[synth]
//	anchor_x = 640
//	anchor_y = 360
//	keep_orphans = false
//	concurrency = 4
//
//	[layout]
//	gap = 30
//	iterations = 50
//	skip = false
//
//	[patch]
//	threshold = 0.8
//
//	[cache]
//	backend = "file"      # file, none or redis
//	dir = "~/.cache/mend"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//	namespace = "notes:"
//
// Every key is optional. Zero values fall through to the pipeline defaults,
// and command-line flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/mend/pkg/canvas"
	mendErrors "github.com/matzehuels/mend/pkg/errors"
	"github.com/matzehuels/mend/pkg/pipeline"
)

const (
	appName  = "mend"
	fileName = "config.toml"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendNone  = "none"
	BackendRedis = "redis"
)

// Config mirrors the configuration file.
type Config struct {
	Synth  Synth  `toml:"synth"`
	Layout Layout `toml:"layout"`
	Patch  Patch  `toml:"patch"`
	Cache  Cache  `toml:"cache"`
}

// Synth holds graph synthesis settings.
type Synth struct {
	AnchorX     float64 `toml:"anchor_x"`
	AnchorY     float64 `toml:"anchor_y"`
	KeepOrphans bool    `toml:"keep_orphans"`
	Concurrency int     `toml:"concurrency" validate:"gte=0"`
}

// Layout holds layout optimizer settings.
type Layout struct {
	Gap        float64 `toml:"gap" validate:"gte=0"`
	Iterations int     `toml:"iterations" validate:"gte=0"`
	Skip       bool    `toml:"skip"`
}

// Patch holds patch applier settings.
type Patch struct {
	Threshold float64 `toml:"threshold" validate:"gte=0,lte=1"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend       string   `toml:"backend" validate:"omitempty,oneof=file none redis"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db" validate:"gte=0"`
	TTL           Duration `toml:"ttl"`
	Namespace     string   `toml:"namespace"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Cache: Cache{Backend: BackendFile}}
}

// Path returns the default configuration file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the configuration at path. An empty path means the default
// location, which may be absent; an explicit path must exist. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return nil, mendErrors.Wrap(mendErrors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return Default(), nil
		}
		return nil, mendErrors.Wrap(mendErrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, mendErrors.New(mendErrors.ErrCodeInvalidConfig,
			"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = BackendFile
	}
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks value ranges and backend requirements.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return mendErrors.Wrap(mendErrors.ErrCodeInvalidConfig, err, "validate config")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return mendErrors.New(mendErrors.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	// Namespace is "Config.Cache.RedisAddr"; drop the root type.
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	field = strings.ToLower(field)
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", field, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, strings.ToLower(strings.Replace(fe.Param(), " ", " is ", 1)))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Options converts the file settings into pipeline options. Zero values are
// left for [pipeline.Options.SetDefaults].
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		Anchor:        canvas.Point{X: c.Synth.AnchorX, Y: c.Synth.AnchorY},
		KeepOrphans:   c.Synth.KeepOrphans,
		Concurrency:   c.Synth.Concurrency,
		SkipLayout:    c.Layout.Skip,
		Gap:           c.Layout.Gap,
		MaxIterations: c.Layout.Iterations,
		Threshold:     c.Patch.Threshold,
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
