// Package render composes a telemetry snapshot, the active animation frame
// and the rotating info panel into one display frame.
package render

import (
	"fmt"
	"strings"

	"github.com/oledtop/oledtop/internal/anim"
	"github.com/oledtop/oledtop/internal/pixel"
	"github.com/oledtop/oledtop/internal/stats"
)

// Panel geometry. The layout is fixed for a 128×64 display: an inverted
// status bar across the top, the animation on the left below it, the info
// panel on the right of the divider.
const (
	Width  = 128
	Height = 64

	barH     = 15
	barSep1X = 42
	barSep2X = 85

	contentY = 15
	dividerX = 64
	panelX   = 66

	indicatorX = 115
	indicatorY = 55

	lineStep = 8
)

// Compose draws one full frame into buf: status bar, animation frame at the
// bottom left, divider, the active info page and the page indicator.
func Compose(buf *pixel.Buffer, snap stats.Snapshot, frame *pixel.Buffer, page anim.Page) {
	buf.Clear()
	drawStatusBar(buf, snap)
	if frame != nil {
		buf.DrawBuffer(0, contentY, frame)
	}
	drawInfoPanel(buf, snap, page)
}

// Goodbye paints the shutdown frame shown just before the panel blanks.
func Goodbye(buf *pixel.Buffer) {
	buf.Clear()
	msg := "BYE!"
	x := (Width - pixel.TextWidth(pixel.Small, msg)) / 2
	buf.DrawText(x, 27, msg, pixel.Small, true)
}

// drawStatusBar fills the top rows and carves the three readouts out of the
// fill in dark pixels.
func drawStatusBar(buf *pixel.Buffer, s stats.Snapshot) {
	buf.FillRect(0, 0, Width, barH, true)

	buf.DrawText(2, 4, fmt.Sprintf("CPU %4.1f%%", s.CPUPercent), pixel.Tiny, false)
	buf.DrawText(44, 4, fmt.Sprintf("RAM %4.1f%%", s.MemoryPercent), pixel.Tiny, false)

	net := "NET " + FormatSpeed(s.NetUpKBps+s.NetDownKBps)
	buf.DrawText(Width-2-pixel.TextWidth(pixel.Tiny, net), 4, net, pixel.Tiny, false)

	buf.VLine(barSep1X, 1, barH-2, false)
	buf.VLine(barSep2X, 1, barH-2, false)
}

func drawInfoPanel(buf *pixel.Buffer, s stats.Snapshot, page anim.Page) {
	buf.VLine(dividerX, contentY, Height-contentY, true)

	switch page {
	case anim.PageStorage:
		drawStoragePage(buf, s)
	case anim.PageNetwork:
		drawNetworkPage(buf, s)
	case anim.PageProcesses:
		drawProcessesPage(buf, s)
	default:
		drawSystemPage(buf, s)
	}

	indicator := fmt.Sprintf("%d/%d", int(page)+1, anim.PageCount)
	buf.DrawText(indicatorX, indicatorY, indicator, pixel.Tiny, true)
}

func drawSystemPage(buf *pixel.Buffer, s stats.Snapshot) {
	y := contentY + 3
	buf.DrawText(panelX, y, "SYS", pixel.Small, true)
	y += 10
	buf.DrawText(panelX, y, fmt.Sprintf("T:%2.0f°C", s.CPUTempC), pixel.Tiny, true)
	y += lineStep
	buf.DrawText(panelX, y, fmt.Sprintf("L:%4.2f", s.LoadAvg1), pixel.Tiny, true)
	y += lineStep
	buf.DrawText(panelX, y, fmt.Sprintf("P:%d", s.ProcessCount), pixel.Tiny, true)
}

func drawStoragePage(buf *pixel.Buffer, s stats.Snapshot) {
	y := contentY + 3
	buf.DrawText(panelX, y, "DISK", pixel.Small, true)
	y += 10
	buf.DrawText(panelX, y, fmt.Sprintf("U:%2.0f%%", s.DiskPercent), pixel.Tiny, true)
	y += lineStep

	fill := int(s.DiskPercent / 100 * 40)
	buf.FillRect(panelX, y, fill, 5, true)
	buf.Rect(panelX, y, 41, 5, true)
	y += lineStep

	freeGB := float64(s.DiskFree) / (1 << 30)
	buf.DrawText(panelX, y, fmt.Sprintf("F:%.1fG", freeGB), pixel.Tiny, true)
}

func drawNetworkPage(buf *pixel.Buffer, s stats.Snapshot) {
	y := contentY + 3
	buf.DrawText(panelX, y, "NET", pixel.Small, true)
	y += 10
	buf.DrawText(panelX, y, "U:"+FormatSpeed(s.NetUpKBps), pixel.Tiny, true)
	y += lineStep
	buf.DrawText(panelX, y, "D:"+FormatSpeed(s.NetDownKBps), pixel.Tiny, true)
}

func drawProcessesPage(buf *pixel.Buffer, s stats.Snapshot) {
	y := contentY + 3
	buf.DrawText(panelX, y, "PROC", pixel.Small, true)
	y += 10
	for _, p := range s.TopProcesses {
		name := truncate(strings.ToUpper(p.Name), 7)
		buf.DrawText(panelX, y, fmt.Sprintf("%s:%.0f%%", name, p.CPUPercent), pixel.Tiny, true)
		y += lineStep
	}
}

// FormatSpeed renders a KB/s figure with unit promotion: one decimal below
// 10K, whole kilobytes to 1023K, one-decimal megabytes beyond.
func FormatSpeed(kbps float64) string {
	switch {
	case kbps >= 1024:
		return fmt.Sprintf("%.1fM", kbps/1024)
	case kbps >= 10:
		return fmt.Sprintf("%.0fK", kbps)
	default:
		return fmt.Sprintf("%.1fK", kbps)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
