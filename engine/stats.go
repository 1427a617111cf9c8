package engine

import (
	"time"
)

// statsWindow is how many frame times the FPS average covers
const statsWindow = 30

// FrameCounter keeps a rolling average of frame intervals and render cost
type FrameCounter struct {
	intervals [statsWindow]time.Duration
	costs     [statsWindow]time.Duration
	next      int
	filled    int
	last      time.Time
	frames    uint64
}

// Record registers a frame that started at start and took cost to produce
func (f *FrameCounter) Record(start time.Time, cost time.Duration) {
	if !f.last.IsZero() {
		f.intervals[f.next] = start.Sub(f.last)
		f.costs[f.next] = cost
		f.next = (f.next + 1) % statsWindow
		if f.filled < statsWindow {
			f.filled++
		}
	}
	f.last = start
	f.frames++
}

// FPS returns frames per second over the window, 0 until two frames are seen
func (f *FrameCounter) FPS() float64 {
	var sum time.Duration
	for i := 0; i < f.filled; i++ {
		sum += f.intervals[i]
	}
	if sum <= 0 {
		return 0
	}
	return float64(f.filled) / sum.Seconds()
}

// FrameTime returns the mean render cost over the window
func (f *FrameCounter) FrameTime() time.Duration {
	if f.filled == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < f.filled; i++ {
		sum += f.costs[i]
	}
	return sum / time.Duration(f.filled)
}

// Frames returns the total frames recorded
func (f *FrameCounter) Frames() uint64 {
	return f.frames
}
