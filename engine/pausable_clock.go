package engine

import (
	"sync"
	"time"
)

// PausableClock measures scene time: real time elapsed since start minus
// the time spent paused
type PausableClock struct {
	mu sync.RWMutex

	provider  TimeProvider
	startTime time.Time

	paused          bool
	pauseStartTime  time.Time
	totalPausedTime time.Duration
}

// NewPausableClock starts a clock on real time
func NewPausableClock() *PausableClock {
	return NewPausableClockWith(NewMonotonicTimeProvider())
}

// NewPausableClockWith starts a clock on the given time source
func NewPausableClockWith(p TimeProvider) *PausableClock {
	return &PausableClock{
		provider:  p,
		startTime: p.Now(),
	}
}

// Elapsed returns scene time; frozen while paused
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	now := pc.provider.Now()
	if pc.paused {
		now = pc.pauseStartTime
	}
	return now.Sub(pc.startTime) - pc.totalPausedTime
}

// Seconds returns Elapsed as the float the pose evaluator takes
func (pc *PausableClock) Seconds() float64 {
	return pc.Elapsed().Seconds()
}

// Pause stops scene time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStartTime = pc.provider.Now()
}

// Resume continues scene time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
	pc.paused = false
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// CurrentPauseDuration returns how long the clock has been paused, 0 when running
func (pc *PausableClock) CurrentPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if !pc.paused {
		return 0
	}
	return pc.provider.Now().Sub(pc.pauseStartTime)
}

// TotalPauseDuration returns cumulative pause time including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.paused {
		total += pc.provider.Now().Sub(pc.pauseStartTime)
	}
	return total
}
