// Package engine is a minimal 2D rigid-body world: verlet point masses,
// distance constraints solved by positional relaxation, a ground plane, and a
// fixed-timestep scheduler. Units are pixels and ticks (60 ticks per second);
// y points down. The session layer drives everything through this surface
// and nothing else, so tests can substitute synthetic worlds freely.
package engine

import (
	"context"
	"time"

	"github.com/san-kum/trusslab/internal/geom"
)

// GravityScale converts World.Gravity into per-tick acceleration. Injected
// forces that should balance body gravity must use the same constant.
const GravityScale = 0.001

const (
	TicksPerSecond    = 60
	defaultIterations = 2
	defaultAirDrag    = 0.01
)

// World owns all bodies and constraints and advances them one fixed tick at a
// time. Not safe for concurrent use; Run drives Step from a single goroutine
// and the pre-step hook executes synchronously inside the tick.
type World struct {
	Gravity geom.Vec2
	GroundY float64 // bodies whose mask includes the ground stop here

	bodies      []*Body
	constraints []*Constraint

	iterations int
	airDrag    float64
	preStep    func()
	ticks      uint64
}

func NewWorld() *World {
	return &World{
		Gravity:    geom.V(0, 1),
		GroundY:    600,
		iterations: defaultIterations,
		airDrag:    defaultAirDrag,
	}
}

// SetPreStep registers fn to run synchronously at the start of every tick,
// before integration. Pass nil to unregister.
func (w *World) SetPreStep(fn func()) { w.preStep = fn }

func (w *World) Ticks() uint64 { return w.ticks }

func (w *World) NewBody(def BodyDef) *Body {
	b := newBody(def)
	w.bodies = append(w.bodies, b)
	return b
}

func (w *World) NewConstraint(def ConstraintDef) *Constraint {
	c := newConstraint(def)
	w.constraints = append(w.constraints, c)
	return c
}

func (w *World) RemoveBody(b *Body) {
	for i, x := range w.bodies {
		if x == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

func (w *World) RemoveConstraint(c *Constraint) {
	for i, x := range w.constraints {
		if x == c {
			w.constraints = append(w.constraints[:i], w.constraints[i+1:]...)
			return
		}
	}
}

// Step advances the world one tick: pre-step hook, gravity, verlet
// integration, constraint relaxation, ground contact.
func (w *World) Step() {
	if w.preStep != nil {
		w.preStep()
	}

	for _, b := range w.bodies {
		if b.static {
			continue
		}
		b.force = b.force.Add(w.Gravity.Scale(GravityScale * b.mass))

		vel := b.pos.Sub(b.prev).Scale(1 - w.airDrag)
		accel := b.force.Scale(1 / b.mass)
		next := b.pos.Add(vel).Add(accel)
		b.prev = b.pos
		b.pos = next
		b.force = geom.Vec2{}
	}

	for i := 0; i < w.iterations; i++ {
		for _, c := range w.constraints {
			c.solve()
		}
	}

	for _, b := range w.bodies {
		if b.static || b.mask&CategoryGround == 0 {
			continue
		}
		if b.pos.Y > w.GroundY {
			vel := b.pos.Sub(b.prev)
			b.pos.Y = w.GroundY
			b.prev.Y = w.GroundY + vel.Y*b.restitution
			b.prev.X = b.pos.X - vel.X*(1-b.friction)
		}
	}

	w.ticks++
}

// Run drives Step at the fixed tick rate until ctx is cancelled.
func (w *World) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / TicksPerSecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Step()
		}
	}
}
