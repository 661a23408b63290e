package structure

import "github.com/san-kum/trusslab/internal/geom"

const (
	MinMass = 0.1
	MaxMass = 50.0

	DefaultMass             = 1.0
	DefaultAngularStiffness = 0.2

	groundAnchorMass = 10.0
)

// Node is a point mass / pin in the structure. Position X,Y is the authored
// (design-time) position; LiveX,LiveY mirror the engine body while a session
// is running and are meaningless otherwise.
type Node struct {
	X, Y float64

	fixed            bool
	mass             float64
	angularStiffness float64

	editable     bool
	deletable    bool
	groundAnchor bool

	LiveX, LiveY float64
}

func newNode(x, y float64) *Node {
	return &Node{
		X:                x,
		Y:                y,
		mass:             DefaultMass,
		angularStiffness: DefaultAngularStiffness,
		editable:         true,
		deletable:        true,
	}
}

// newGroundAnchor builds the immutable fixed-node variant. Its mass and
// angular stiffness never change; property setters are no-ops.
func newGroundAnchor(x, y float64) *Node {
	return &Node{
		X:            x,
		Y:            y,
		fixed:        true,
		mass:         groundAnchorMass,
		angularStiffness: 0,
		groundAnchor: true,
	}
}

func (n *Node) Fixed() bool              { return n.fixed }
func (n *Node) Mass() float64            { return n.mass }
func (n *Node) AngularStiffness() float64 { return n.angularStiffness }
func (n *Node) Editable() bool           { return n.editable }
func (n *Node) Deletable() bool          { return n.deletable }
func (n *Node) IsGroundAnchor() bool     { return n.groundAnchor }

func (n *Node) SetFixed(fixed bool) {
	if n.groundAnchor {
		return
	}
	n.fixed = fixed
}

func (n *Node) SetMass(mass float64) {
	if n.groundAnchor {
		return
	}
	n.mass = geom.Clamp(mass, MinMass, MaxMass)
}

func (n *Node) SetAngularStiffness(k float64) {
	if n.groundAnchor {
		return
	}
	n.angularStiffness = geom.Clamp(k, 0, 1)
}

// Pos returns the authored position.
func (n *Node) Pos() geom.Vec2 { return geom.V(n.X, n.Y) }

// LivePos returns the simulated position. Valid only while a session runs.
func (n *Node) LivePos() geom.Vec2 { return geom.V(n.LiveX, n.LiveY) }

// Position returns the live position while simulating, authored otherwise.
func (n *Node) Position(simulating bool) geom.Vec2 {
	if simulating {
		return n.LivePos()
	}
	return n.Pos()
}
