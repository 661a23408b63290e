package structure

import "github.com/san-kum/trusslab/internal/geom"

const (
	MinContractionRatio = 0.2
	MaxContractionRatio = 1.0

	DefaultContractionRatio = 0.5
)

// Segment is a structural member between two distinct nodes. The fields up to
// BreakOnOverload are authored state; the remainder is runtime state owned by
// the physics session and only meaningful while one is active.
type Segment struct {
	A, B *Node

	Material        Material
	Stiffness       float64
	Damping         float64
	TensionOnly     bool
	CompressionOnly bool

	// Contractile-only parameters, ignored for other materials.
	ContractionRatio float64
	BreakOnOverload  bool

	restLength float64

	CurrentLength float64
	Stress        float64
	Slack         bool
	Broken        bool
	InTension     bool
	InCompression bool
	Contracting   bool
}

func newSegment(a, b *Node, mat Material) *Segment {
	props := mat.Defaults()
	return &Segment{
		A:                a,
		B:                b,
		Material:         mat,
		Stiffness:        props.Stiffness,
		Damping:          props.Damping,
		TensionOnly:      props.TensionOnly,
		CompressionOnly:  props.CompressionOnly,
		ContractionRatio: DefaultContractionRatio,
		restLength:       geom.Dist(a.Pos(), b.Pos()),
	}
}

// RestLength is the undeformed length, frozen at creation.
func (s *Segment) RestLength() float64 { return s.restLength }

// RecomputeRestLength refreezes the rest length from the current authored
// endpoint positions. Called after a manual node drag, never automatically.
func (s *Segment) RecomputeRestLength() {
	s.restLength = geom.Dist(s.A.Pos(), s.B.Pos())
}

// SetContractionRatio clamps the target shrink fraction to its valid range.
func (s *Segment) SetContractionRatio(r float64) {
	s.ContractionRatio = geom.Clamp(r, MinContractionRatio, MaxContractionRatio)
}

// Touches reports whether n is one of the segment's endpoints.
func (s *Segment) Touches(n *Node) bool { return s.A == n || s.B == n }

// Other returns the endpoint opposite n, or nil if n is not an endpoint.
func (s *Segment) Other(n *Node) *Node {
	switch n {
	case s.A:
		return s.B
	case s.B:
		return s.A
	}
	return nil
}

// PointAt returns the world position at fraction t from A toward B.
func (s *Segment) PointAt(t float64, simulating bool) geom.Vec2 {
	return geom.Lerp(s.A.Position(simulating), s.B.Position(simulating), t)
}

// ResetRuntime clears all session-owned fields back to their idle values.
func (s *Segment) ResetRuntime() {
	s.CurrentLength = 0
	s.Stress = 0
	s.Slack = false
	s.Broken = false
	s.InTension = false
	s.InCompression = false
	s.Contracting = false
}
