package guish

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudLineHeight matches the ebitenutil debug font.
const hudLineHeight = 16

// hudFPSInterval is how often the FPS line is refreshed, in seconds.
const hudFPSInterval = 0.5

// HUD is a plain text overlay drawn on top of the scene with the
// ebitenutil debug font.
type HUD struct {
	// X and Y are the screen position of the first line.
	X, Y int
	// ShowFPS prepends a line with the current FPS and TPS.
	ShowFPS bool

	lines   []string
	fpsLine string
	elapsed float64
}

// SetLine sets line i, growing the line list as needed.
func (h *HUD) SetLine(i int, text string) {
	for len(h.lines) <= i {
		h.lines = append(h.lines, "")
	}
	h.lines[i] = text
}

// SetLines replaces all lines.
func (h *HUD) SetLines(lines ...string) {
	h.lines = append(h.lines[:0], lines...)
}

// Lines returns the current lines. The returned slice MUST NOT be mutated.
func (h *HUD) Lines() []string {
	return h.lines
}

func (h *HUD) update(dt float32) {
	if !h.ShowFPS {
		return
	}
	h.elapsed += float64(dt)
	if h.fpsLine != "" && h.elapsed < hudFPSInterval {
		return
	}
	h.elapsed = 0
	h.fpsLine = fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (h *HUD) draw(screen *ebiten.Image) {
	y := h.Y
	if h.ShowFPS && h.fpsLine != "" {
		ebitenutil.DebugPrintAt(screen, h.fpsLine, h.X, y)
		y += hudLineHeight
	}
	for _, line := range h.lines {
		ebitenutil.DebugPrintAt(screen, line, h.X, y)
		y += hudLineHeight
	}
}
