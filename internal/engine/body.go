package engine

import "github.com/san-kum/trusslab/internal/geom"

// Category is a collision filter bit. A pair of bodies interacts only when
// each body's mask includes the other's category. The session puts nodes and
// weights in disjoint categories whose masks cover only the ground, so they
// never collide with each other.
type Category uint16

const (
	CategoryGround Category = 1 << iota
	CategoryNode
	CategoryWeight
)

type BodyDef struct {
	Position    geom.Vec2
	Static      bool
	Mass        float64
	Friction    float64
	Restitution float64
	Category    Category
	Mask        Category
}

// Body is a verlet point mass. Velocity is implicit in pos−prev, one tick
// apart.
type Body struct {
	pos, prev geom.Vec2
	force     geom.Vec2

	mass        float64
	static      bool
	friction    float64
	restitution float64
	category    Category
	mask        Category
}

func newBody(def BodyDef) *Body {
	mass := def.Mass
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		pos:         def.Position,
		prev:        def.Position,
		mass:        mass,
		static:      def.Static,
		friction:    def.Friction,
		restitution: def.Restitution,
		category:    def.Category,
		mask:        def.Mask,
	}
}

func (b *Body) Position() geom.Vec2 { return b.pos }

// SetPosition teleports the body with zero resulting velocity.
func (b *Body) SetPosition(p geom.Vec2) {
	b.pos = p
	b.prev = p
}

func (b *Body) Velocity() geom.Vec2 { return b.pos.Sub(b.prev) }

func (b *Body) Mass() float64 { return b.mass }

func (b *Body) SetMass(mass float64) {
	if mass > 0 {
		b.mass = mass
	}
}

func (b *Body) Static() bool { return b.static }

// SetStatic pins or releases the body in place. Pinning kills its velocity.
func (b *Body) SetStatic(static bool) {
	b.static = static
	if static {
		b.prev = b.pos
		b.force = geom.Vec2{}
	}
}

func (b *Body) invMass() float64 {
	if b.static {
		return 0
	}
	return 1 / b.mass
}

// ApplyForce accumulates an instantaneous force for the next step. The point
// of application is accepted for interface completeness; point masses carry
// no angular state, so only the linear component acts.
func (b *Body) ApplyForce(f, at geom.Vec2) {
	if b.static {
		return
	}
	_ = at
	b.force = b.force.Add(f)
}
