package display

import (
	"fmt"
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/orbs/internal/frame"
)

const textSpacing = 1

// Window is a raylib window. Raylib keeps its GL context on the calling
// thread, so every method must run on the goroutine that opened it.
type Window struct {
	font     rl.Font
	fontSize float32
	ownFont  bool
	drawing  bool
	log      hclog.Logger

	// released holds text targets whose draws may still be queued in the
	// render batch. They are unloaded once the batch is flushed.
	released []rl.RenderTexture2D
	unload   func(rl.RenderTexture2D)
}

type windowText struct {
	target rl.RenderTexture2D
	w, h   int32
	win    *Window
}

func (t *windowText) Release() {
	if t.target.ID != 0 {
		t.win.released = append(t.win.released, t.target)
		t.target = rl.RenderTexture2D{}
	}
}

// unloadReleased frees every released text target. Call only after the
// render batch has been flushed.
func (w *Window) unloadReleased() {
	for _, target := range w.released {
		w.unload(target)
	}
	w.released = w.released[:0]
}

// OpenWindow creates the window and loads the counter font. An empty
// fontPath selects raylib's built-in font.
func OpenWindow(title string, w, h int, fontPath string, fontSize int, logger hclog.Logger) (*Window, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(w), int32(h), title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("%w: %dx%d %q", ErrWindow, w, h, title)
	}
	rl.SetTargetFPS(0)
	rl.SetExitKey(0)

	win := &Window{fontSize: float32(fontSize), log: logger, unload: rl.UnloadRenderTexture}
	if fontPath == "" {
		win.font = rl.GetFontDefault()
	} else {
		win.font = rl.LoadFontEx(fontPath, int32(fontSize), nil, 0)
		win.ownFont = true
	}
	if win.font.Texture.ID == 0 {
		rl.CloseWindow()
		return nil, fmt.Errorf("%w: %s", ErrFont, fontPath)
	}
	rl.SetTextureFilter(win.font.Texture, rl.FilterBilinear)

	logger.Debug("window ready", "width", w, "height", h, "font", fontPath)
	return win, nil
}

func (w *Window) Close() {
	if w.drawing {
		rl.EndDrawing()
		w.drawing = false
	}
	w.unloadReleased()
	if w.ownFont {
		rl.UnloadFont(w.font)
	}
	rl.CloseWindow()
}

func (w *Window) PollEvents() []frame.Event {
	var out []frame.Event
	if rl.WindowShouldClose() {
		out = append(out, frame.Event{Kind: frame.EventQuit})
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		ev := frame.Event{Kind: frame.EventKeyDown}
		if key == rl.KeyEscape {
			ev.Key = frame.KeyEscape
		}
		out = append(out, ev)
	}
	return out
}

func (w *Window) begin() {
	if !w.drawing {
		rl.BeginDrawing()
		w.drawing = true
	}
}

func (w *Window) Clear(c color.RGBA) error {
	w.begin()
	rl.ClearBackground(c)
	return nil
}

func (w *Window) DrawPoints(pts []image.Point, c color.RGBA) error {
	w.begin()
	for _, p := range pts {
		rl.DrawPixel(int32(p.X), int32(p.Y), c)
	}
	return nil
}

// Render rasterizes text into an offscreen texture sized to fit it.
func (w *Window) Render(text string, c color.RGBA) (frame.Texture, error) {
	size := rl.MeasureTextEx(w.font, text, w.fontSize, textSpacing)
	tw, th := int32(size.X), int32(size.Y)
	if tw <= 0 || th <= 0 {
		tw, th = 1, 1
	}
	target := rl.LoadRenderTexture(tw, th)
	if target.ID == 0 {
		return nil, fmt.Errorf("%w: render target %dx%d", ErrTexture, tw, th)
	}

	rl.BeginTextureMode(target)
	rl.ClearBackground(color.RGBA{})
	rl.DrawTextEx(w.font, text, rl.NewVector2(0, 0), w.fontSize, textSpacing, c)
	rl.EndTextureMode()

	return &windowText{target: target, w: tw, h: th, win: w}, nil
}

// Copy stretches tex over dst. The draw is only queued, so the texture must
// stay loaded until Present flushes the batch; Release defers the unload.
func (w *Window) Copy(tex frame.Texture, dst image.Rectangle) error {
	wt, ok := tex.(*windowText)
	if !ok || wt.target.ID == 0 {
		return fmt.Errorf("%w: %T", ErrTexture, tex)
	}
	w.begin()
	// render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(wt.w), -float32(wt.h))
	dr := rl.NewRectangle(float32(dst.Min.X), float32(dst.Min.Y), float32(dst.Dx()), float32(dst.Dy()))
	rl.DrawTexturePro(wt.target.Texture, src, dr, rl.NewVector2(0, 0), 0, color.RGBA{255, 255, 255, 255})
	return nil
}

func (w *Window) Present() error {
	w.begin()
	rl.EndDrawing()
	w.drawing = false
	w.unloadReleased()
	return nil
}
