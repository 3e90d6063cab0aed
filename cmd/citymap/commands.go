package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/citymap/atlas"
	"github.com/katalvlaran/citymap/hud"
	"github.com/katalvlaran/citymap/render"
	"github.com/katalvlaran/citymap/server"
	"github.com/katalvlaran/citymap/trip"
	"github.com/katalvlaran/citymap/viewer"
	"github.com/katalvlaran/citymap/window"
)

func newViewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive map window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.renderer()
			if err != nil {
				return err
			}
			b, err := a.browser(cmd)
			if err != nil {
				return err
			}
			s := viewer.NewSession(a.m,
				viewer.WithTariff(a.cfg.Trip),
				viewer.WithBrowser(b),
				viewer.WithOutput(cmd.OutOrStdout()),
				viewer.WithLogger(a.log),
			)
			g := window.NewGame(cmd.Context(), s, r, a.log)

			return window.Run(g, a.cfg.Window.Width, a.cfg.Window.Height, a.cfg.Window.Title)
		},
	}
	cmd.Flags().Int("window-width", 800, "initial window width")
	cmd.Flags().Int("window-height", 600, "initial window height")

	return cmd
}

func newRouteCmd(a *app) *cobra.Command {
	var fewest bool
	cmd := &cobra.Command{
		Use:   "route FROM TO",
		Short: "Print the shortest route between two cities with time and cost",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			r, err := a.route(args[0], args[1], fewest)
			if errors.Is(err, atlas.ErrNoRoute) {
				fmt.Fprintf(out, "No path found between %s and %s\n", args[0], args[1])

				return nil
			}
			if err != nil {
				return err
			}

			sum := trip.Summarize(r.Distance, a.cfg.Trip)
			fmt.Fprintf(out, "Path: %s\n", strings.Join(a.m.Names(r.Stops), " -> "))
			fmt.Fprintf(out, "Total distance: %s\n", strconv.FormatFloat(r.Distance, 'f', -1, 64))
			for _, line := range sum.Lines() {
				fmt.Fprintln(out, line)
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&fewest, "fewest-stops", false, "minimize the number of roads instead of distance")

	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		from, to, output string
		width, height    int
		help             string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the map, optionally with a highlighted route, to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (from == "") != (to == "") {
				return errors.New("--from and --to go together")
			}
			r, err := a.renderer()
			if err != nil {
				return err
			}

			scene := render.NewScene(a.m)
			scene.Help = help
			if from != "" {
				rt, err := a.m.RouteByName(from, to)
				if err != nil && !errors.Is(err, atlas.ErrNoRoute) {
					return err
				}
				if rt.Drawable() {
					scene = scene.WithRoute(rt, trip.Summarize(rt.Distance, a.cfg.Trip))
				}
			}

			if err := r.SavePNG(output, scene, hud.NewViewport(width, height)); err != nil {
				return err
			}
			a.log.Info("rendered", zap.String("file", output), zap.Ints("path", scene.Path))

			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&from, "from", "", "start city")
	f.StringVar(&to, "to", "", "destination city")
	f.StringVarP(&output, "output", "o", "map.png", "output PNG file")
	f.IntVar(&width, "width", 800, "image width in pixels")
	f.IntVar(&height, "height", 600, "image height in pixels")
	f.StringVar(&help, "caption", "", "caption drawn in the top-left corner")

	return cmd
}

func newImagesCmd(a *app) *cobra.Command {
	var (
		open int
		all  bool
	)
	cmd := &cobra.Command{
		Use:   "images CITY",
		Short: "List a city's photos, or open one or all of them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := args[0]
			if _, err := a.m.Index(city); err != nil {
				return err
			}
			b, err := a.browser(cmd)
			if err != nil {
				return err
			}

			switch {
			case all:
				return b.OpenAll(cmd.Context(), city)
			case open > 0:
				return b.Open(cmd.Context(), city, open-1)
			default:
				return b.PrintList(city)
			}
		},
	}
	cmd.Flags().IntVar(&open, "open", 0, "open photo N (1-based)")
	cmd.Flags().BoolVar(&all, "all", false, "open every photo")
	cmd.MarkFlagsMutuallyExclusive("open", "all")

	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve cities, routes, map images and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.renderer()
			if err != nil {
				return err
			}
			srv := server.New(a.m, r,
				server.WithTariff(a.cfg.Trip),
				server.WithLogger(a.log),
				server.WithCacheSize(a.cfg.Serve.CacheSize),
				server.WithMaxPixels(a.cfg.Serve.MaxPixels),
			)

			return srv.ListenAndServe(cmd.Context(), a.cfg.Serve.Addr)
		},
	}
	cmd.Flags().String("serve-addr", ":8080", "listen address")

	return cmd
}
