// Package window runs a viewer.Session inside an ebiten window.
//
// Each tick polls the left mouse button and the image keys, feeds presses to
// the session, and redraws through render only when the scene or the window
// size changed. Esc (or context cancellation) closes the window.
package window

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/katalvlaran/citymap/hud"
	"github.com/katalvlaran/citymap/render"
	"github.com/katalvlaran/citymap/viewer"
)

// HelpText is the status line drawn in the top-left corner.
const HelpText = "Click two cities for the shortest route.  Image keys: 1-9  ] [  O  A  L.  Esc quits."

var keymap = map[rune]ebiten.Key{
	'1': ebiten.KeyDigit1,
	'2': ebiten.KeyDigit2,
	'3': ebiten.KeyDigit3,
	'4': ebiten.KeyDigit4,
	'5': ebiten.KeyDigit5,
	'6': ebiten.KeyDigit6,
	'7': ebiten.KeyDigit7,
	'8': ebiten.KeyDigit8,
	'9': ebiten.KeyDigit9,
	']': ebiten.KeyBracketRight,
	'[': ebiten.KeyBracketLeft,
	'O': ebiten.KeyO,
	'A': ebiten.KeyA,
	'L': ebiten.KeyL,
}

// Game implements ebiten.Game.
type Game struct {
	ctx      context.Context
	session  *viewer.Session
	renderer *render.Renderer
	log      *zap.Logger
	help     string

	edges    viewer.KeyEdges
	viewport hud.Viewport

	frame     *ebiten.Image
	frameVP   hud.Viewport
	framePath []int
}

// NewGame binds a session to a renderer. A nil log is replaced by a no-op logger.
func NewGame(ctx context.Context, s *viewer.Session, r *render.Renderer, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}

	return &Game{
		ctx:      ctx,
		session:  s,
		renderer: r,
		log:      log,
		help:     HelpText,
		viewport: hud.NewViewport(1, 1),
	}
}

// Update handles input for one tick.
func (g *Game) Update() error {
	if g.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if !ebiten.IsFocused() {
		g.edges.Reset()

		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if hit := g.session.Click(float64(x), float64(y), g.viewport); hit != viewer.None {
			g.log.Debug("click", zap.Int("x", x), zap.Int("y", y), zap.Int("city", hit))
		}
	}

	for _, k := range viewer.Keys {
		if !g.edges.Press(k, ebiten.IsKeyPressed(keymap[k])) {
			continue
		}
		if err := g.session.Key(g.ctx, k); err != nil {
			g.log.Debug("key", zap.String("key", string(k)), zap.Error(err))
		}
	}

	return nil
}

// Draw blits the cached frame, re-rendering it first when stale.
func (g *Game) Draw(screen *ebiten.Image) {
	scene := g.session.Scene()
	scene.Help = g.help

	if g.frame == nil || g.frameVP != g.viewport || !slices.Equal(g.framePath, scene.Path) {
		img := g.renderer.Render(scene, g.viewport)
		if g.frame == nil || g.frameVP != g.viewport {
			if g.frame != nil {
				g.frame.Deallocate()
			}
			g.frame = ebiten.NewImage(g.viewport.W, g.viewport.H)
		}
		g.frame.WritePixels(img.Pix)
		g.frameVP = g.viewport
		g.framePath = scene.Path
	}

	screen.DrawImage(g.frame, nil)
}

// Layout tracks the window size one-to-one; a minimised window clamps to 1x1.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewport = hud.NewViewport(outsideWidth, outsideHeight)

	return g.viewport.W, g.viewport.H
}

// Run opens a resizable window and blocks until it closes.
func Run(g *Game, width, height int, title string) error {
	vp := hud.NewViewport(width, height)
	ebiten.SetWindowSize(vp.W, vp.H)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.session.PrintControls()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}

	return nil
}
