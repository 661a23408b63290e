// Package joints computes angle and torque analytics at multi-segment
// junctions. It is a read-only pass over the structure graph; nothing here
// mutates graph or engine state.
package joints

import (
	"math"

	"github.com/san-kum/trusslab/internal/geom"
	"github.com/san-kum/trusslab/internal/structure"
)

// PairResult describes one unordered pair of segments meeting at a joint.
// Angle uses current positions (live while simulating), RestAngle always uses
// authored positions, and Torque models a linear torsional spring.
type PairResult struct {
	SegmentA  *structure.Segment
	SegmentB  *structure.Segment
	Angle     float64
	RestAngle float64
	Torque    float64
}

// Compute returns, for every node with at least two incident segments, all
// C(n,2) segment-pair results. The map is rebuilt from scratch on every call;
// joint counts are small relative to the frame budget, so no caching.
func Compute(st *structure.Structure, simulating bool) map[*structure.Node][]PairResult {
	out := make(map[*structure.Node][]PairResult)

	for _, n := range st.Nodes {
		incident := st.IncidentSegments(n)
		if len(incident) < 2 {
			continue
		}

		results := make([]PairResult, 0, len(incident)*(len(incident)-1)/2)
		for i := 0; i < len(incident); i++ {
			for j := i + 1; j < len(incident); j++ {
				a, b := incident[i], incident[j]
				angle := jointAngle(n, a, b, simulating)
				rest := jointAngle(n, a, b, false)
				results = append(results, PairResult{
					SegmentA:  a,
					SegmentB:  b,
					Angle:     angle,
					RestAngle: rest,
					Torque:    n.AngularStiffness() * math.Abs(angle-rest),
				})
			}
		}
		out[n] = results
	}

	return out
}

// jointAngle measures the angle at joint between the rays toward the far
// endpoints of a and b. Degenerate rays yield 0.
func jointAngle(joint *structure.Node, a, b *structure.Segment, simulating bool) float64 {
	origin := joint.Position(simulating)
	va := a.Other(joint).Position(simulating).Sub(origin)
	vb := b.Other(joint).Position(simulating).Sub(origin)
	return geom.Angle(va, vb)
}
