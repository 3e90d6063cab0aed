// Package config loads citymap settings with viper: built-in defaults,
// overridden by an optional YAML/TOML/JSON file, overridden by CITYMAP_*
// environment variables, overridden by bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/citymap/hud"
	"github.com/katalvlaran/citymap/trip"
)

// EnvPrefix prefixes every environment override, e.g. CITYMAP_TRIP_SPEED.
const EnvPrefix = "CITYMAP"

// ErrInvalid indicates a setting out of range.
var ErrInvalid = errors.New("config: invalid setting")

// Window is the desktop window.
type Window struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// Assets locates city photos.
type Assets struct {
	Dir string `mapstructure:"dir"`
}

// Serve is the HTTP server.
type Serve struct {
	Addr      string `mapstructure:"addr"`
	CacheSize int    `mapstructure:"cache_size"`
	MaxPixels int    `mapstructure:"max_pixels"`
}

// Log selects the zap logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
}

// Config is the full settings tree.
type Config struct {
	Window Window      `mapstructure:"window"`
	Trip   trip.Tariff `mapstructure:"trip"`
	HUD    hud.Style   `mapstructure:"hud"`
	Assets Assets      `mapstructure:"assets"`
	Serve  Serve       `mapstructure:"serve"`
	Log    Log         `mapstructure:"log"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	style := hud.DefaultStyle()
	tariff := trip.DefaultTariff()

	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.title", "Map (click two nodes for shortest path)")

	v.SetDefault("trip.speed", tariff.SpeedPerHour)
	v.SetDefault("trip.cost_per_unit", tariff.CostPerUnit)
	v.SetDefault("trip.currency", tariff.Currency)

	v.SetDefault("hud.text_scale", style.TextScale)
	v.SetDefault("hud.margin_left", style.MarginLeft)
	v.SetDefault("hud.margin_bottom", style.MarginBottom)
	v.SetDefault("hud.padding", style.Padding)
	v.SetDefault("hud.line_gap", style.LineGap)
	v.SetDefault("hud.panel_alpha", style.PanelAlpha)
	v.SetDefault("hud.panel_gray", style.PanelGray)

	v.SetDefault("assets.dir", "assets")

	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("serve.cache_size", 64)
	v.SetDefault("serve.max_pixels", 4096*4096)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// New returns a viper instance with defaults and environment overrides set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads file (when non-empty), binds flags (when non-nil) and decodes
// the result. Flags are bound by name with dashes mapped to dots, so
// --log-level overrides log.level; flags naming no known key are skipped.
func Load(v *viper.Viper, file string, flags *pflag.FlagSet) (Config, error) {
	if v == nil {
		v = New()
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}
	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", ".")
			if !v.IsSet(key) {
				return
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return Config{}, fmt.Errorf("config: bind flags: %w", bindErr)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Default returns the built-in settings, ignoring files and environment.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)

	return c
}

// Validate checks ranges that would otherwise surface as odd rendering.
func (c Config) Validate() error {
	if err := c.Trip.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.HUD.PanelAlpha < 0 || c.HUD.PanelAlpha > 1 {
		return fmt.Errorf("%w: hud.panel_alpha %g outside [0,1]", ErrInvalid, c.HUD.PanelAlpha)
	}
	if c.HUD.PanelGray < 0 || c.HUD.PanelGray > 1 {
		return fmt.Errorf("%w: hud.panel_gray %g outside [0,1]", ErrInvalid, c.HUD.PanelGray)
	}
	if c.HUD.TextScale < 0 {
		return fmt.Errorf("%w: hud.text_scale %g is negative", ErrInvalid, c.HUD.TextScale)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Serve.CacheSize < 0 || c.Serve.MaxPixels <= 0 {
		return fmt.Errorf("%w: serve cache_size %d max_pixels %d", ErrInvalid, c.Serve.CacheSize, c.Serve.MaxPixels)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}

	return nil
}
