package camera

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestQuadraticInOut(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.125},
		{0.5, 0.5},
		{0.75, 0.875},
		{1, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, QuadraticInOut(tt.in), 1e-12, "t=%v", tt.in)
	}
}

func TestAnimatorSamplesAndRetires(t *testing.T) {
	var a Animator
	var got mgl64.Vec3
	a.Start(ChannelPosition, mgl64.Vec3{}, mgl64.Vec3{10, 0, 0}, 100*time.Millisecond, Linear, func(v mgl64.Vec3) {
		got = v
	})

	t0 := time.Unix(100, 0)
	assert.True(t, a.Advance(t0))
	assert.Equal(t, mgl64.Vec3{}, got)

	a.Advance(t0.Add(50 * time.Millisecond))
	assert.InDelta(t, 5, got[0], 1e-9)
	assert.True(t, a.Running(ChannelPosition))

	a.Advance(t0.Add(150 * time.Millisecond))
	assert.Equal(t, mgl64.Vec3{10, 0, 0}, got)
	assert.False(t, a.Active())
	assert.False(t, a.Advance(t0.Add(200*time.Millisecond)))
}

func TestAnimatorSupersedesChannel(t *testing.T) {
	var a Animator
	var first, second int
	a.Start(ChannelTarget, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, time.Second, nil, func(mgl64.Vec3) { first++ })
	a.Start(ChannelTarget, mgl64.Vec3{}, mgl64.Vec3{2, 2, 2}, time.Second, nil, func(mgl64.Vec3) { second++ })

	a.Advance(time.Unix(0, 0))
	assert.Zero(t, first)
	assert.Equal(t, 1, second)
}

func TestAnimatorChannelsIndependent(t *testing.T) {
	var a Animator
	var pos, rot mgl64.Vec3
	a.Start(ChannelPosition, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 10*time.Millisecond, Linear, func(v mgl64.Vec3) { pos = v })
	a.Start(ChannelRotation, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, 100*time.Millisecond, Linear, func(v mgl64.Vec3) { rot = v })

	t0 := time.Unix(0, 0)
	a.Advance(t0)
	a.Advance(t0.Add(20 * time.Millisecond))

	assert.Equal(t, mgl64.Vec3{1, 0, 0}, pos)
	assert.InDelta(t, 0.2, rot[1], 1e-9)
	assert.False(t, a.Running(ChannelPosition))
	assert.True(t, a.Running(ChannelRotation))

	a.Stop()
	assert.False(t, a.Active())
}

func TestAnimatorZeroDuration(t *testing.T) {
	var a Animator
	var got mgl64.Vec3
	a.Start(ChannelPosition, mgl64.Vec3{}, mgl64.Vec3{3, 3, 3}, 0, QuadraticInOut, func(v mgl64.Vec3) { got = v })
	a.Advance(time.Now())
	assert.Equal(t, mgl64.Vec3{3, 3, 3}, got)
	assert.False(t, a.Active())
}
