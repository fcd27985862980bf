// Package anim owns the animation state: per-level frame sets, the frame
// cursor and the info-page rotation cursor.
package anim

import (
	"time"

	"github.com/oledtop/oledtop/internal/pixel"
	"github.com/oledtop/oledtop/internal/usage"
)

// Every animation frame is scaled to this size before display.
const (
	FrameW = 64
	FrameH = 48
)

// defaultFrameInterval paces sets whose file declared no usable per-frame
// delay.
const defaultFrameInterval = 100 * time.Millisecond

// pageInterval is the fixed info-page rotation cadence.
const pageInterval = 3 * time.Second

// Set is an ordered, non-empty frame sequence for one usage level. Sets are
// immutable after load; the scheduler references frames without copying.
type Set struct {
	Frames        []*pixel.Buffer
	FrameInterval time.Duration
}

// Page identifies one of the rotating info panels.
type Page int

const (
	PageSystem Page = iota
	PageStorage
	PageNetwork
	PageProcesses

	// PageCount is the length of the fixed rotation.
	PageCount = 4
)

func (p Page) String() string {
	switch p {
	case PageStorage:
		return "storage"
	case PageNetwork:
		return "network"
	case PageProcesses:
		return "processes"
	default:
		return "system"
	}
}

// Scheduler advances the two animation clocks. Frame stepping and page
// rotation are independent: each moves only when its own interval has
// elapsed, no matter how often Advance is called.
type Scheduler struct {
	sets map[usage.Level]*Set

	active     usage.Level
	frameIndex int
	lastFrame  time.Time

	pageIndex int
	lastPage  time.Time
}

// NewScheduler wires a scheduler over the loaded sets. sets must hold a
// non-empty Set for every usage level; LoadSets guarantees that.
func NewScheduler(sets map[usage.Level]*Set) *Scheduler {
	return &Scheduler{sets: sets}
}

// Advance moves both clocks to now and returns the frame to draw plus the
// page to show. A level change restarts the new set at frame zero so a
// switch never lands mid-cycle. The returned index is always inside the
// active set, whatever its length.
func (s *Scheduler) Advance(now time.Time, level usage.Level) (*pixel.Buffer, Page) {
	if s.lastFrame.IsZero() {
		s.lastFrame, s.lastPage = now, now
	}

	set := s.sets[level]
	switch {
	case level != s.active:
		s.active = level
		s.frameIndex = 0
		s.lastFrame = now
	case now.Sub(s.lastFrame) >= s.interval(set):
		s.frameIndex++
		s.lastFrame = now
	}
	if s.frameIndex >= len(set.Frames) {
		s.frameIndex = 0
	}

	if now.Sub(s.lastPage) >= pageInterval {
		s.pageIndex = (s.pageIndex + 1) % PageCount
		s.lastPage = now
	}

	return set.Frames[s.frameIndex], Page(s.pageIndex)
}

// Page returns the page currently shown without advancing the rotation.
// The sampler consults it before the tick's clocks move.
func (s *Scheduler) Page() Page { return Page(s.pageIndex) }

func (s *Scheduler) interval(set *Set) time.Duration {
	if set.FrameInterval > 0 {
		return set.FrameInterval
	}
	return defaultFrameInterval
}
