package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/citymap/atlas"
	"github.com/katalvlaran/citymap/config"
	"github.com/katalvlaran/citymap/gallery"
	"github.com/katalvlaran/citymap/render"
)

// app is the state shared by every subcommand, filled in by the root's
// PersistentPreRunE.
type app struct {
	configFile string
	mapFile    string

	cfg config.Config
	log *zap.Logger
	m   *atlas.Map
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "citymap",
		Short:         "City road map with shortest routes, trip cost and photos",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (yaml, toml or json)")
	pf.StringVar(&a.mapFile, "map", "", "city dataset in YAML (default: built-in map)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("assets-dir", gallery.DefaultDir, "directory holding city photos")

	root.AddCommand(
		newViewCmd(a),
		newRouteCmd(a),
		newRenderCmd(a),
		newImagesCmd(a),
		newServeCmd(a),
	)

	return root
}

// setup loads settings, the logger and the map.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.New(), a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	m := atlas.Default()
	if a.mapFile != "" {
		data, err := os.ReadFile(a.mapFile)
		if err != nil {
			return fmt.Errorf("read map: %w", err)
		}
		if m, err = atlas.Parse(data); err != nil {
			return err
		}
	}

	a.cfg, a.log, a.m = cfg, log, m
	log.Debug("setup",
		zap.String("config", a.configFile),
		zap.Int("cities", m.Len()),
		zap.Float64("speed", cfg.Trip.SpeedPerHour),
		zap.String("currency", cfg.Trip.Currency),
	)

	return nil
}

func (a *app) renderer() (*render.Renderer, error) {
	return render.New(render.WithStyle(a.cfg.HUD))
}

func (a *app) browser(cmd *cobra.Command) (*gallery.Browser, error) {
	lib, err := gallery.NewLibrary(a.cfg.Assets.Dir, gallery.CatalogFromMap(a.m))
	if err != nil {
		return nil, err
	}

	return gallery.NewBrowser(lib, gallery.ShellOpener{}, cmd.OutOrStdout(), a.log), nil
}

// route resolves two city names by distance, or by road count when fewest is set.
func (a *app) route(from, to string, fewest bool) (atlas.Route, error) {
	if !fewest {
		return a.m.RouteByName(from, to)
	}
	i, err := a.m.Index(from)
	if err != nil {
		return atlas.Route{}, err
	}
	j, err := a.m.Index(to)
	if err != nil {
		return atlas.Route{}, err
	}

	return a.m.FewestStops(i, j)
}
