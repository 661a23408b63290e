package session

import (
	"math"

	"github.com/san-kum/trusslab/internal/structure"
)

// UpdateStress refreshes every segment's stress proxy. Called once per
// display refresh, which need not line up with physics ticks.
//
// Stress is a bounded visualization value, not an engineering quantity:
// strain times stiffness, amplified by stressGain and clamped to [0,1].
// Passive materials strain against their frozen rest length; muscles strain
// against the constraint's current (shrinking) target length. Slack and
// broken segments report zero.
func (s *Session) UpdateStress() {
	for seg, c := range s.segmentConstraints {
		if seg.Broken || seg.Slack {
			seg.Stress = 0
			continue
		}

		ref := seg.RestLength()
		if seg.Material == structure.Contractile {
			ref = c.Length
		}
		if ref <= 0 {
			seg.Stress = 0
			continue
		}

		strain := math.Abs(c.CurrentLength()-ref) / ref
		seg.Stress = math.Min(strain*effectiveStiffness(seg)*stressGain, 1)

		if seg.Material == structure.Contractile && seg.BreakOnOverload && seg.Stress >= 1 {
			seg.Broken = true
			c.SetStiffness(0)
		}
	}
}

// MaxStress returns the current peak stress across all live segments.
func (s *Session) MaxStress() float64 {
	max := 0.0
	for seg := range s.segmentConstraints {
		if seg.Stress > max {
			max = seg.Stress
		}
	}
	return max
}
