package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Drop-Siege/internal/render"
)

const (
	panelWidth      = 360
	panelMaxEntries = 60
	panelLineHeight = 14
)

// EventPanel is a ring buffer of render log entries drawn on-screen.
type EventPanel struct {
	entries []render.LogEntry
	head    int
	count   int
	seen    int // RenderLog.Total at the last Sync
}

// NewEventPanel creates a panel with a fixed capacity.
func NewEventPanel() *EventPanel {
	return &EventPanel{
		entries: make([]render.LogEntry, panelMaxEntries),
	}
}

// Add appends an entry to the panel.
func (p *EventPanel) Add(e render.LogEntry) {
	p.entries[p.head] = e
	p.head = (p.head + 1) % panelMaxEntries
	if p.count < panelMaxEntries {
		p.count++
	}
}

// Sync copies entries added to log since the previous call.
func (p *EventPanel) Sync(log *render.RenderLog) {
	for _, e := range log.Since(p.seen) {
		p.Add(e)
	}
	p.seen = log.Total()
}

// Recent returns entries in chronological order (oldest first).
func (p *EventPanel) Recent() []render.LogEntry {
	result := make([]render.LogEntry, p.count)
	for i := 0; i < p.count; i++ {
		idx := (p.head - p.count + i + panelMaxEntries) % panelMaxEntries
		result[i] = p.entries[idx]
	}
	return result
}

func categoryColor(cat string) color.RGBA {
	switch cat {
	case render.LogTerrain:
		return color.RGBA{R: 120, G: 200, B: 120, A: 255}
	case render.LogLOD:
		return color.RGBA{R: 230, G: 190, B: 80, A: 255}
	case render.LogCache:
		return color.RGBA{R: 110, G: 160, B: 230, A: 255}
	default:
		return color.RGBA{R: 200, G: 120, B: 220, A: 255}
	}
}

// Draw renders the panel on the right side of the screen.
func (p *EventPanel) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(panelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 14, A: 235}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(panelWidth), 16, color.RGBA{R: 20, G: 26, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "RENDER EVENTS", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+panelWidth), 16, 1.0, color.RGBA{R: 50, G: 70, B: 90, A: 200}, false)

	entries := p.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / panelLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(panelWidth-4), float32(panelLineHeight), color.RGBA{R: 28, G: 36, B: 48, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, categoryColor(e.Category), false)
		line := fmt.Sprintf("%5d %-7s %s", e.Frame, e.Category, e.Value)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y-1)
		y += panelLineHeight
	}
}
