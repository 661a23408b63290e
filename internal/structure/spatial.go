package structure

import "github.com/san-kum/trusslab/internal/geom"

// Hit-test tolerances in pixels.
const (
	nodePickRadius    = 8.0
	segmentPickMargin = 5.0
)

// FindNodeAt returns the nearest node within pick radius of (x,y), or nil.
// Later (topmost) nodes win ties.
func (st *Structure) FindNodeAt(x, y float64) *Node {
	p := geom.V(x, y)
	var best *Node
	bestDist := nodePickRadius
	for _, n := range st.Nodes {
		if d := geom.Dist(p, n.Pos()); d <= bestDist {
			best = n
			bestDist = d
		}
	}
	return best
}

// FindSegmentAt returns the nearest segment whose span passes within the pick
// margin of (x,y), or nil.
func (st *Structure) FindSegmentAt(x, y float64) *Segment {
	p := geom.V(x, y)
	var best *Segment
	bestDist := segmentPickMargin
	for _, s := range st.Segments {
		if d := geom.PointSegmentDist(p, s.A.Pos(), s.B.Pos()); d <= bestDist {
			best = s
			bestDist = d
		}
	}
	return best
}

// FindWeightAt returns the topmost weight whose display disc contains (x,y).
func (st *Structure) FindWeightAt(x, y float64) *Weight {
	p := geom.V(x, y)
	for i := len(st.Weights) - 1; i >= 0; i-- {
		w := st.Weights[i]
		if geom.Dist(p, w.WorldPos(false)) <= w.Radius() {
			return w
		}
	}
	return nil
}
