package viewer

import (
	"context"
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/toyrender/pkg/render"
)

// Options configures the terminal viewer.
type Options struct {
	Title string // shown in the HUD
	FPS   int
}

var (
	hudStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1e1e28")).
			Foreground(lipgloss.Color("#e0e0e0"))
	hudAccent = hudStyle.Foreground(lipgloss.Color("#5fd787")).Bold(true)
)

// Run shows the scene in the terminal until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, scene *Scene, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	if err := scene.Resize(render.TerminalFramebufferSize(width, height)); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resized := make(chan uv.WindowSizeEvent, 1)
	actions := make(chan Action, 16)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case resized <- ev:
				default:
				}
			case uv.KeyPressEvent:
				if a := KeyAction(ev.String()); a != ActionNone {
					actions <- a
				}
			}
		}
	}()

	hud := newHUD(opts.Title)
	targetDuration := time.Second / time.Duration(opts.FPS)

	for {
		now := time.Now()

	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-resized:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				if err := scene.Resize(render.TerminalFramebufferSize(width, height)); err != nil {
					return err
				}
			case a := <-actions:
				if !scene.Apply(a) {
					return nil
				}
			default:
				break drain
			}
		}

		fb := scene.Frame()
		term.Draw(fb)
		if scene.ShowHUD {
			hud.update()
			hud.draw(term, width, scene)
		}
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(targetDuration - elapsed):
			}
		}
	}
}

// hud renders a one-line overlay with frame rate and mesh statistics.
type hud struct {
	title     string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD(title string) *hud {
	return &hud{title: title, fpsTime: time.Now()}
}

// update updates the FPS counter (call once per frame).
func (h *hud) update() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func (h *hud) draw(scr uv.Screen, width int, scene *Scene) {
	line := hudLine(h.title, h.fps, scene)
	uv.NewStyledString(line).Draw(scr, uv.Rect(0, 0, width, 1))
}

func hudLine(title string, fps float64, scene *Scene) string {
	mode := "filled"
	if scene.Wireframe() {
		mode = "wireframe"
	}
	stats := scene.Stats()
	light := scene.Light()
	return hudAccent.Render(fmt.Sprintf(" %.0f FPS ", fps)) +
		hudStyle.Render(fmt.Sprintf(" %s  %s  %d/%d tris  light %.2f,%.2f,%.2f ",
			title, mode, stats.TrianglesDrawn, stats.TrianglesTested, light.X, light.Y, light.Z))
}
