package engine

import "github.com/san-kum/trusslab/internal/geom"

const minConstraintDist = 1e-6

type ConstraintDef struct {
	A, B       *Body     // B nil anchors A to WorldPoint
	WorldPoint geom.Vec2 // used when B is nil
	Length     float64
	Stiffness  float64 // [0,1]; 0 disables the constraint entirely
	Damping    float64 // [0,1] relative-velocity damping along the axis
}

// Constraint is a distance constraint between two bodies, or between a body
// and a fixed world point. Length and Stiffness are mutable while the world
// runs; the session uses that for slack handling and muscle contraction.
type Constraint struct {
	A, B       *Body
	WorldPoint geom.Vec2
	Length     float64
	Stiffness  float64
	Damping    float64
}

func newConstraint(def ConstraintDef) *Constraint {
	return &Constraint{
		A:          def.A,
		B:          def.B,
		WorldPoint: def.WorldPoint,
		Length:     def.Length,
		Stiffness:  geom.Clamp(def.Stiffness, 0, 1),
		Damping:    geom.Clamp(def.Damping, 0, 1),
	}
}

func (c *Constraint) SetStiffness(k float64) { c.Stiffness = geom.Clamp(k, 0, 1) }

func (c *Constraint) SetLength(l float64) { c.Length = l }

func (c *Constraint) anchorB() geom.Vec2 {
	if c.B != nil {
		return c.B.pos
	}
	return c.WorldPoint
}

// CurrentLength is the live distance between the constraint's endpoints.
func (c *Constraint) CurrentLength() float64 {
	return geom.Dist(c.A.pos, c.anchorB())
}

// solve applies one inverse-mass-weighted positional relaxation pass, then
// damps relative velocity along the constraint axis.
func (c *Constraint) solve() {
	if c.Stiffness <= 0 {
		return
	}

	wa := c.A.invMass()
	wb := 0.0
	if c.B != nil {
		wb = c.B.invMass()
	}
	wsum := wa + wb
	if wsum == 0 {
		return
	}

	delta := c.anchorB().Sub(c.A.pos)
	dist := delta.Len()
	if dist < minConstraintDist {
		dist = minConstraintDist
		delta = geom.V(dist, 0)
	}

	diff := (dist - c.Length) / dist
	correction := delta.Scale(diff * c.Stiffness)

	c.A.pos = c.A.pos.Add(correction.Scale(wa / wsum))
	if c.B != nil {
		c.B.pos = c.B.pos.Sub(correction.Scale(wb / wsum))
	}

	if c.Damping <= 0 {
		return
	}
	axis := delta.Scale(1 / dist)
	velA := c.A.Velocity()
	velB := geom.Vec2{}
	if c.B != nil {
		velB = c.B.Velocity()
	}
	rel := velB.Sub(velA).Dot(axis)
	impulse := axis.Scale(rel * c.Damping)

	// Shifting prev adjusts implicit velocity without moving the body.
	c.A.prev = c.A.prev.Sub(impulse.Scale(wa / wsum))
	if c.B != nil {
		c.B.prev = c.B.prev.Add(impulse.Scale(wb / wsum))
	}
}
