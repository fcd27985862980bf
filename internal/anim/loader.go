package anim

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/oledtop/oledtop/internal/pixel"
	"github.com/oledtop/oledtop/internal/usage"
)

// LoadSets prepares one frame set per usage level from dir, looking for
// <level>.gif. A missing or undecodable file is replaced by the synthesized
// fallback for that level alone; the result always holds a non-empty set
// for every level.
func LoadSets(dir string, logger *zap.Logger) map[usage.Level]*Set {
	sets := make(map[usage.Level]*Set, len(usage.Levels()))
	for _, level := range usage.Levels() {
		path := filepath.Join(dir, level.String()+".gif")
		set, err := loadGIF(path)
		switch {
		case err == nil:
			logger.Info("animation loaded",
				zap.String("path", path),
				zap.Int("frames", len(set.Frames)),
				zap.Duration("frame_interval", set.FrameInterval))
		case errors.Is(err, os.ErrNotExist):
			logger.Info("animation file missing, using fallback", zap.String("path", path))
			set = FallbackSet(level)
		default:
			logger.Warn("animation file unusable, using fallback",
				zap.String("path", path), zap.Error(err))
			set = FallbackSet(level)
		}
		sets[level] = set
	}
	return sets
}

// loadGIF decodes every frame of the file, composites partial frames onto
// the running canvas, scales to FrameW×FrameH and thresholds to 1-bit.
func loadGIF(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("decoding %s: no frames", filepath.Base(path))
	}

	interval := defaultFrameInterval
	if len(g.Delay) > 0 && g.Delay[0] > 0 {
		// GIF delays are in hundredths of a second.
		interval = time.Duration(g.Delay[0]) * 10 * time.Millisecond
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}

	// Frames may cover only the region that changed, so each is drawn over
	// the accumulated canvas before scaling.
	canvas := image.NewRGBA(bounds)
	frames := make([]*pixel.Buffer, 0, len(g.Image))
	for _, src := range g.Image {
		xdraw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, xdraw.Over)
		frame := pixel.New(FrameW, FrameH)
		xdraw.CatmullRom.Scale(frame, frame.Bounds(), canvas, bounds, xdraw.Src, nil)
		frames = append(frames, frame)
	}
	return &Set{Frames: frames, FrameInterval: interval}, nil
}

// blinkPatterns drives which fallback frames show the box, per level.
// Busier levels blink more.
var blinkPatterns = map[usage.Level][4]bool{
	usage.Low:    {true, false, false, false},
	usage.Medium: {true, false, true, false},
	usage.High:   {true, true, false, false},
}

// FallbackSet builds the deterministic stand-in for a level: four frames
// blinking a centered box above the uppercased level label.
func FallbackSet(level usage.Level) *Set {
	pattern := blinkPatterns[level]
	label := strings.ToUpper(level.String())
	if len(label) > 4 {
		label = label[:4]
	}

	frames := make([]*pixel.Buffer, 0, len(pattern))
	for _, lit := range pattern {
		frame := pixel.New(FrameW, FrameH)
		if lit {
			frame.FillRect(20, 10, 25, 25, true)
		}
		frame.DrawText(15, 36, label, pixel.Small, true)
		frames = append(frames, frame)
	}
	return &Set{Frames: frames, FrameInterval: defaultFrameInterval}
}
