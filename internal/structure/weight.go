package structure

import (
	"math"

	"github.com/san-kum/trusslab/internal/geom"
)

// Display radius scale: area grows linearly with mass.
const weightRadiusScale = 3.0

// Weight is a point load attached to exactly one of a node or a segment.
// The attachment is fixed at construction; only the along-segment position
// may later change (reassigned by SplitSegment).
type Weight struct {
	Mass float64

	// Position is the fractional distance from the parent segment's A
	// endpoint, in [0,1]. Unused for node-attached weights.
	Position float64

	node    *Node
	segment *Segment
}

func newWeight(node *Node, segment *Segment, position, mass float64) *Weight {
	if (node == nil) == (segment == nil) {
		panic("structure: weight must attach to exactly one of node or segment")
	}
	return &Weight{
		Mass:     math.Max(mass, MinMass),
		Position: geom.Clamp(position, 0, 1),
		node:     node,
		segment:  segment,
	}
}

func (w *Weight) Node() *Node       { return w.node }
func (w *Weight) Segment() *Segment { return w.segment }
func (w *Weight) OnSegment() bool   { return w.segment != nil }

// reattach moves a segment weight to a new parent during a split.
func (w *Weight) reattach(s *Segment, position float64) {
	w.segment = s
	w.Position = geom.Clamp(position, 0, 1)
}

// Radius is the display radius, scaled so disc area tracks mass.
func (w *Weight) Radius() float64 {
	return weightRadiusScale * math.Sqrt(w.Mass)
}

// WorldPos resolves the weight's attachment point.
func (w *Weight) WorldPos(simulating bool) geom.Vec2 {
	if w.node != nil {
		return w.node.Position(simulating)
	}
	return w.segment.PointAt(w.Position, simulating)
}
