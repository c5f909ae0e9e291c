package cadview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	hudWidth    = 160
	hudHeight   = 64
	hudInterval = 0.5
)

// hudState caches the overlay image. The text is refreshed every
// hudInterval seconds or when the camera mode changes.
type hudState struct {
	img     *ebiten.Image
	elapsed float64
	dirty   bool
	mode    InteractionMode
}

func (h *hudState) update(dt float64) {
	h.elapsed += dt
	if h.elapsed >= hudInterval {
		h.elapsed = 0
		h.dirty = true
	}
}

// hudText formats the overlay lines.
func hudText(fps, tps float64, mode InteractionMode, distance float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nMode: %s\nDist: %.4g", fps, tps, mode, distance)
}

func (v *Viewer) drawHUD(screen *ebiten.Image) {
	h := &v.hud
	if h.img == nil {
		h.img = ebiten.NewImage(hudWidth, hudHeight)
		h.dirty = true
	}
	if mode := v.camera.Mode(); mode != h.mode {
		h.mode = mode
		h.dirty = true
	}
	if h.dirty {
		h.dirty = false
		h.img.Clear()
		h.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(h.img, hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), h.mode, v.camera.Distance()))
	}
	screen.DrawImage(h.img, nil)
}
