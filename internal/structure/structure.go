// Package structure holds the editable truss graph: nodes, segments, weights
// and the invariants that keep them consistent across edits.
//
// All topology mutations go through Structure methods. Expected-invalid
// operations (duplicate segments, removing a ground anchor) are rejected
// silently by returning nil/false; only caller programming errors panic.
package structure

import "github.com/san-kum/trusslab/internal/geom"

const (
	splitMin = 0.1
	splitMax = 0.9
)

// Structure owns the graph. Collections keep insertion order so serialized
// index references are stable.
type Structure struct {
	Nodes    []*Node
	Segments []*Segment
	Weights  []*Weight

	selection map[any]struct{}
	locked    bool
}

func New() *Structure {
	return &Structure{selection: make(map[any]struct{})}
}

// SetTopologyLocked toggles the running-session topology lock. While locked,
// every operation that adds or removes graph entities is rejected, keeping
// authored state and live engine state from drifting apart.
func (st *Structure) SetTopologyLocked(locked bool) { st.locked = locked }

func (st *Structure) TopologyLocked() bool { return st.locked }

func (st *Structure) AddNode(x, y float64) *Node {
	if st.locked {
		return nil
	}
	n := newNode(x, y)
	st.Nodes = append(st.Nodes, n)
	return n
}

func (st *Structure) AddGroundAnchor(x, y float64) *Node {
	if st.locked {
		return nil
	}
	n := newGroundAnchor(x, y)
	st.Nodes = append(st.Nodes, n)
	return n
}

// RemoveNode removes n and cascades: every segment touching n goes, and every
// weight attached to n or to a removed segment goes. Removing a ground anchor
// (or any non-deletable node) is a no-op returning false.
func (st *Structure) RemoveNode(n *Node) bool {
	if st.locked || n == nil || !n.deletable || !st.hasNode(n) {
		return false
	}

	removed := make(map[*Segment]bool)
	kept := st.Segments[:0]
	for _, s := range st.Segments {
		if s.Touches(n) {
			removed[s] = true
			st.deselect(s)
		} else {
			kept = append(kept, s)
		}
	}
	st.Segments = kept

	keptW := st.Weights[:0]
	for _, w := range st.Weights {
		if w.node == n || (w.segment != nil && removed[w.segment]) {
			st.deselect(w)
			continue
		}
		keptW = append(keptW, w)
	}
	st.Weights = keptW

	st.deselect(n)
	st.Nodes = deleteItem(st.Nodes, n)
	return true
}

// AddSegment connects a and b. Self-pairs, duplicate unordered pairs,
// unknown endpoints and zero-length spans are rejected with nil.
func (st *Structure) AddSegment(a, b *Node, mat Material) *Segment {
	if st.locked || a == nil || b == nil || a == b {
		return nil
	}
	if !st.hasNode(a) || !st.hasNode(b) {
		return nil
	}
	if st.FindSegment(a, b) != nil {
		return nil
	}
	if geom.Dist(a.Pos(), b.Pos()) == 0 {
		return nil
	}
	s := newSegment(a, b, mat)
	st.Segments = append(st.Segments, s)
	return s
}

// RemoveSegment removes s and every weight attached to it.
func (st *Structure) RemoveSegment(s *Segment) bool {
	if st.locked || s == nil || !st.hasSegment(s) {
		return false
	}
	kept := st.Weights[:0]
	for _, w := range st.Weights {
		if w.segment == s {
			st.deselect(w)
			continue
		}
		kept = append(kept, w)
	}
	st.Weights = kept
	st.deselect(s)
	st.Segments = deleteItem(st.Segments, s)
	return true
}

// AddWeight attaches a load to target, which must be a *Node or a *Segment
// belonging to this structure. Any other target type is a programming error
// and panics. position is the along-segment fraction, ignored for nodes.
func (st *Structure) AddWeight(target any, position, mass float64) *Weight {
	if st.locked {
		return nil
	}
	var w *Weight
	switch t := target.(type) {
	case *Node:
		if !st.hasNode(t) {
			return nil
		}
		w = newWeight(t, nil, 0, mass)
	case *Segment:
		if !st.hasSegment(t) {
			return nil
		}
		w = newWeight(nil, t, position, mass)
	default:
		panic("structure: weight target must be *Node or *Segment")
	}
	st.Weights = append(st.Weights, w)
	return w
}

func (st *Structure) RemoveWeight(w *Weight) bool {
	if st.locked || w == nil || !st.hasWeight(w) {
		return false
	}
	st.deselect(w)
	st.Weights = deleteItem(st.Weights, w)
	return true
}

// SplitSegment inserts a node at fraction t along s (clamped to [0.1,0.9])
// and replaces s with two segments carrying the same material properties.
// Weights on s move to whichever half contains them, with their position
// renormalized into the new parent's [0,1] range.
func (st *Structure) SplitSegment(s *Segment, t float64) (*Node, *Segment, *Segment) {
	if st.locked || s == nil || !st.hasSegment(s) {
		return nil, nil, nil
	}
	t = geom.Clamp(t, splitMin, splitMax)

	p := geom.Lerp(s.A.Pos(), s.B.Pos(), t)
	mid := st.AddNode(p.X, p.Y)

	s1 := st.AddSegment(s.A, mid, s.Material)
	s2 := st.AddSegment(mid, s.B, s.Material)
	copyProperties(s, s1)
	copyProperties(s, s2)

	for _, w := range st.Weights {
		if w.segment != s {
			continue
		}
		if w.Position <= t {
			w.reattach(s1, w.Position/t)
		} else {
			w.reattach(s2, (w.Position-t)/(1-t))
		}
	}

	st.deselect(s)
	st.Segments = deleteItem(st.Segments, s)
	return mid, s1, s2
}

func copyProperties(from, to *Segment) {
	to.Stiffness = from.Stiffness
	to.Damping = from.Damping
	to.TensionOnly = from.TensionOnly
	to.CompressionOnly = from.CompressionOnly
	to.ContractionRatio = from.ContractionRatio
	to.BreakOnOverload = from.BreakOnOverload
}

// FindSegment returns the segment joining a and b in either order.
func (st *Structure) FindSegment(a, b *Node) *Segment {
	for _, s := range st.Segments {
		if (s.A == a && s.B == b) || (s.A == b && s.B == a) {
			return s
		}
	}
	return nil
}

// IncidentSegments returns all segments touching n, in insertion order.
func (st *Structure) IncidentSegments(n *Node) []*Segment {
	var out []*Segment
	for _, s := range st.Segments {
		if s.Touches(n) {
			out = append(out, s)
		}
	}
	return out
}

// Stats summarizes the structure for the host application.
type Stats struct {
	NodeCount    int
	SegmentCount int
	WeightCount  int
	MaxStress    float64
}

func (st *Structure) Stats() Stats {
	s := Stats{
		NodeCount:    len(st.Nodes),
		SegmentCount: len(st.Segments),
		WeightCount:  len(st.Weights),
	}
	for _, seg := range st.Segments {
		if seg.Stress > s.MaxStress {
			s.MaxStress = seg.Stress
		}
	}
	return s
}

func (st *Structure) hasNode(n *Node) bool {
	for _, x := range st.Nodes {
		if x == n {
			return true
		}
	}
	return false
}

func (st *Structure) hasSegment(s *Segment) bool {
	for _, x := range st.Segments {
		if x == s {
			return true
		}
	}
	return false
}

func (st *Structure) hasWeight(w *Weight) bool {
	for _, x := range st.Weights {
		if x == w {
			return true
		}
	}
	return false
}

func deleteItem[T comparable](xs []T, x T) []T {
	for i, v := range xs {
		if v == x {
			return append(xs[:i], xs[i+1:]...)
		}
	}
	return xs
}
