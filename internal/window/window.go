// Package window presents a mesh in a desktop window, drawing the render
// frame buffer as a live pixel buffer.
package window

import (
	"errors"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/toyrender/internal/viewer"
	"go.uber.org/zap"
)

// Options configures the window.
type Options struct {
	Title string
	FPS   int
	Scale int // window pixels per frame-buffer pixel
}

// Run opens a window showing the scene. It blocks until the window is
// closed or a quit key is pressed.
func Run(scene *viewer.Scene, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	g := NewGame(scene)
	width, height := g.size()

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(width*opts.Scale, height*opts.Scale)
	ebiten.SetTPS(opts.FPS)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Game adapts a viewer.Scene to ebiten.Game. Each tick renders one frame;
// Draw uploads the last frame to the screen.
type Game struct {
	scene  *viewer.Scene
	fbImg  *ebiten.Image
	pix    []byte
	keys   []ebiten.Key
	width  int
	height int

	// justPressed reports keys pressed since the previous tick.
	justPressed func([]ebiten.Key) []ebiten.Key

	Logger *zap.Logger
}

// NewGame creates a game rendering scene.
func NewGame(scene *viewer.Scene) *Game {
	return &Game{
		scene:       scene,
		justPressed: inpututil.AppendJustPressedKeys,
		Logger:      zap.NewNop(),
	}
}

func (g *Game) size() (int, int) {
	if g.width == 0 {
		fb := g.scene.Frame()
		g.width, g.height = fb.Width, fb.Height
		g.pix = fb.Pix
	}
	return g.width, g.height
}

// Update handles key presses and renders the next frame.
func (g *Game) Update() error {
	g.keys = g.justPressed(g.keys[:0])
	for _, k := range g.keys {
		a := viewer.KeyAction(KeyName(k))
		if a == viewer.ActionNone {
			continue
		}
		if !g.scene.Apply(a) {
			g.Logger.Debug("quit requested", zap.String("key", k.String()))
			return ebiten.Termination
		}
	}

	fb := g.scene.Frame()
	g.width, g.height = fb.Width, fb.Height
	g.pix = fb.Pix
	return nil
}

// Draw copies the frame buffer to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	width, height := g.size()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != width || g.fbImg.Bounds().Dy() != height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(width, height)
	}

	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

// Layout keeps the logical screen at the frame-buffer size; ebiten scales
// it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.size()
}

// KeyName translates an ebiten key to the names used by viewer.KeyBindings.
func KeyName(k ebiten.Key) string {
	switch k {
	case ebiten.KeyEscape:
		return "esc"
	case ebiten.KeyArrowLeft:
		return "left"
	case ebiten.KeyArrowRight:
		return "right"
	case ebiten.KeyArrowUp:
		return "up"
	case ebiten.KeyArrowDown:
		return "down"
	case ebiten.KeyH, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyX:
		return strings.ToLower(k.String())
	default:
		return ""
	}
}
