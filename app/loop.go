package app

import (
	"sync/atomic"
	"time"
)

// FrameLoop calls a frame function once per host tick between Start and Stop.
//
// Tick is called from one goroutine (the host's display loop). Start, Stop,
// Running and Frames are safe from any goroutine.
type FrameLoop struct {
	frame   func() error
	observe func(time.Duration)
	now     func() time.Time

	running atomic.Bool
	stopped atomic.Bool
	frames  atomic.Uint64
}

// NewFrameLoop returns a stopped loop around frame.
func NewFrameLoop(frame func() error) *FrameLoop {
	return &FrameLoop{frame: frame, now: time.Now}
}

// OnFrame registers fn to receive each frame's duration.
func (l *FrameLoop) OnFrame(fn func(time.Duration)) { l.observe = fn }

// Start begins running frames on subsequent ticks. Start after Stop is a
// no-op.
func (l *FrameLoop) Start() {
	if l.stopped.Load() {
		return
	}
	l.running.Store(true)
}

// Stop cancels all future frames.
func (l *FrameLoop) Stop() {
	l.stopped.Store(true)
	l.running.Store(false)
}

func (l *FrameLoop) Running() bool  { return l.running.Load() }
func (l *FrameLoop) Frames() uint64 { return l.frames.Load() }

// Tick runs one frame if the loop is running.
func (l *FrameLoop) Tick() error {
	if !l.running.Load() || l.frame == nil {
		return nil
	}
	start := l.now()
	err := l.frame()
	l.frames.Add(1)
	if l.observe != nil {
		l.observe(l.now().Sub(start))
	}
	return err
}
