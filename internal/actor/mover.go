package actor

import (
	"errors"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/udisondev/tilepath/internal/grid"
)

// DefaultSpeed is the movement speed in world units per second.
const DefaultSpeed = 100.0

// arriveDist is the distance under which a waypoint counts as reached
// without animating.
const arriveDist = 1.0

// ErrInvalidSpeed is returned for a non-positive speed.
var ErrInvalidSpeed = errors.New("actor: speed must be positive")

// Mover walks a position through world-space waypoints in order, one
// linear tween per leg. Not safe for concurrent use; drive it from a
// single update loop.
type Mover struct {
	pos       grid.Point
	speed     float64
	waypoints []grid.Point
	next      int

	tweenX *gween.Tween
	tweenY *gween.Tween
}

// NewMover starts at from and heads for waypoints[0]. The waypoint slice
// is copied.
func NewMover(from grid.Point, waypoints []grid.Point, speed float64) (*Mover, error) {
	if !(speed > 0) {
		return nil, ErrInvalidSpeed
	}
	return &Mover{
		pos:       from,
		speed:     speed,
		waypoints: append([]grid.Point(nil), waypoints...),
	}, nil
}

// Position returns the current position.
func (m *Mover) Position() grid.Point {
	return m.pos
}

// Done reports whether every waypoint has been reached.
func (m *Mover) Done() bool {
	return m.next >= len(m.waypoints)
}

// Remaining returns the number of waypoints not yet reached.
func (m *Mover) Remaining() int {
	return len(m.waypoints) - m.next
}

// Update advances the mover by dt seconds and returns the new position
// and whether the route is finished.
func (m *Mover) Update(dt float64) (grid.Point, bool) {
	for !m.Done() && m.tweenX == nil {
		if !m.startLeg() {
			m.next++
		}
	}
	if m.Done() {
		return m.pos, true
	}

	x, doneX := m.tweenX.Update(float32(dt))
	y, doneY := m.tweenY.Update(float32(dt))
	m.pos = grid.Point{X: float64(x), Y: float64(y)}

	if doneX && doneY {
		m.pos = m.waypoints[m.next]
		m.tweenX, m.tweenY = nil, nil
		m.next++
	}
	return m.pos, m.Done()
}

// startLeg prepares tweens toward the next waypoint. It returns false and
// snaps to the waypoint when it is already within arriveDist.
func (m *Mover) startLeg() bool {
	target := m.waypoints[m.next]
	dist := math.Hypot(target.X-m.pos.X, target.Y-m.pos.Y)
	if dist < arriveDist {
		m.pos = target
		return false
	}
	duration := float32(dist / m.speed)
	m.tweenX = gween.New(float32(m.pos.X), float32(target.X), duration, ease.Linear)
	m.tweenY = gween.New(float32(m.pos.Y), float32(target.Y), duration, ease.Linear)
	return true
}
