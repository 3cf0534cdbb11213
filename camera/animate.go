package camera

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// QuadraticInOut accelerates over the first half and decelerates over the
// second.
func QuadraticInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// Channel is one independently animated part of a Pose.
type Channel uint8

const (
	ChannelPosition Channel = iota
	ChannelRotation
	ChannelTarget

	channelCount
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelPosition:
		return "position"
	case ChannelRotation:
		return "rotation"
	case ChannelTarget:
		return "target"
	default:
		return "unknown"
	}
}

type task struct {
	from, to mgl64.Vec3
	duration time.Duration
	easing   Easing
	apply    func(mgl64.Vec3)

	start   time.Time
	started bool
}

// sample returns the eased value at now and whether the task is done.
func (t *task) sample(now time.Time) (mgl64.Vec3, bool) {
	if !t.started {
		t.start = now
		t.started = true
	}
	if t.duration <= 0 {
		return t.to, true
	}
	p := float64(now.Sub(t.start)) / float64(t.duration)
	if p >= 1 {
		return t.to, true
	}
	if p < 0 {
		p = 0
	}
	k := t.easing(p)
	return t.from.Add(t.to.Sub(t.from).Mul(k)), false
}

// Animator runs at most one interpolation task per channel. Tasks start on
// the first Advance after they are scheduled.
//
// Animator is not safe for concurrent use.
type Animator struct {
	tasks [channelCount]*task
}

// Start schedules an animation of ch from from to to, replacing any task in
// flight on that channel. apply receives every sampled value, including
// the final one.
func (a *Animator) Start(ch Channel, from, to mgl64.Vec3, d time.Duration, easing Easing, apply func(mgl64.Vec3)) {
	if ch >= channelCount || apply == nil {
		return
	}
	if easing == nil {
		easing = Linear
	}
	a.tasks[ch] = &task{from: from, to: to, duration: d, easing: easing, apply: apply}
}

// Advance samples every running task at now, applies the values, and retires
// finished tasks. It reports whether any task was applied.
func (a *Animator) Advance(now time.Time) bool {
	ran := false
	for i, t := range a.tasks {
		if t == nil {
			continue
		}
		v, done := t.sample(now)
		t.apply(v)
		if done {
			a.tasks[i] = nil
		}
		ran = true
	}
	return ran
}

// Active reports whether any channel has a task.
func (a *Animator) Active() bool {
	for _, t := range a.tasks {
		if t != nil {
			return true
		}
	}
	return false
}

// Running reports whether ch has a task.
func (a *Animator) Running(ch Channel) bool {
	return ch < channelCount && a.tasks[ch] != nil
}

// Stop drops every task without applying it.
func (a *Animator) Stop() {
	a.tasks = [channelCount]*task{}
}
