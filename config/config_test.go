package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/citymap/config"
	"github.com/katalvlaran/citymap/hud"
	"github.com/katalvlaran/citymap/trip"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, 600, c.Window.Height)
	assert.Equal(t, "Map (click two nodes for shortest path)", c.Window.Title)
	assert.Equal(t, trip.DefaultTariff(), c.Trip)
	assert.Equal(t, hud.DefaultStyle(), c.HUD)
	assert.Equal(t, "assets", c.Assets.Dir)
	assert.Equal(t, ":8080", c.Serve.Addr)
	assert.Equal(t, "info", c.Log.Level)
	require.NoError(t, c.Validate())
}

func TestLoad_FileEnvFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citymap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
trip:
  speed: 60
  currency: USD
hud:
  text_scale: 1
log:
  level: debug
`), 0o600))

	t.Setenv("CITYMAP_TRIP_COST_PER_UNIT", "0.5")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.String("serve-addr", ":8080", "")
	flags.String("unrelated", "", "")
	require.NoError(t, flags.Parse([]string{"--serve-addr", ":9090"}))

	c, err := config.Load(config.New(), path, flags)
	require.NoError(t, err)

	assert.Equal(t, 60.0, c.Trip.SpeedPerHour)
	assert.Equal(t, 0.5, c.Trip.CostPerUnit)
	assert.Equal(t, "USD", c.Trip.Currency)
	assert.Equal(t, 1.0, c.HUD.TextScale)
	assert.Equal(t, 12.0, c.HUD.MarginLeft)
	// An unchanged flag does not shadow the file.
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, ":9090", c.Serve.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(nil, filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hud:\n  panel_alpha: 2\n"), 0o600))

	_, err := config.Load(nil, path, nil)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestValidate(t *testing.T) {
	mutate := map[string]func(*config.Config){
		"negative speed": func(c *config.Config) { c.Trip.SpeedPerHour = -1 },
		"gray":           func(c *config.Config) { c.HUD.PanelGray = 1.5 },
		"scale":          func(c *config.Config) { c.HUD.TextScale = -1 },
		"window":         func(c *config.Config) { c.Window.Width = -5 },
		"zero width":     func(c *config.Config) { c.Window.Width = 0 },
		"zero height":    func(c *config.Config) { c.Window.Height = 0 },
		"cache":          func(c *config.Config) { c.Serve.CacheSize = -1 },
		"format":         func(c *config.Config) { c.Log.Format = "xml" },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			c := config.Default()
			fn(&c)
			require.ErrorIs(t, c.Validate(), config.ErrInvalid)
		})
	}
}

func TestNewLogger(t *testing.T) {
	l, err := config.NewLogger(config.Log{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = config.NewLogger(config.Log{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = config.NewLogger(config.Log{Level: "loud", Format: "console"})
	require.ErrorIs(t, err, config.ErrInvalid)
	_, err = config.NewLogger(config.Log{Level: "info", Format: "xml"})
	require.ErrorIs(t, err, config.ErrInvalid)
}
