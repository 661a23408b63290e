package session

import (
	"github.com/san-kum/trusslab/internal/engine"
	"github.com/san-kum/trusslab/internal/structure"
)

// UpdateConstraintModes applies the non-native force semantics the engine
// lacks: tension-only and compression-only members go slack (constraint
// stiffness soft-zeroed) when the force they would exert has the wrong sign.
// Soft-disable is cheaper and more stable than creating and destroying
// constraint objects every tick.
func (s *Session) UpdateConstraintModes() {
	for seg, c := range s.segmentConstraints {
		cur := c.CurrentLength()
		seg.CurrentLength = cur

		if seg.Broken {
			c.SetStiffness(0)
			seg.Slack = false
			continue
		}

		// Muscles are tension-only against their moving target length, not
		// the original rest length.
		if seg.Material == structure.Contractile {
			slack := cur <= c.Length
			seg.InTension = !slack
			seg.InCompression = slack
			s.setSlack(seg, c, slack)
			continue
		}

		if !seg.TensionOnly && !seg.CompressionOnly {
			seg.Slack = false
			seg.InTension = false
			seg.InCompression = false
			continue
		}

		tol := seg.RestLength() * slackToleranceRatio
		seg.InTension = cur > seg.RestLength()+tol
		seg.InCompression = cur < seg.RestLength()-tol

		slack := (seg.TensionOnly && seg.InCompression) ||
			(seg.CompressionOnly && seg.InTension)
		s.setSlack(seg, c, slack)
	}
}

func (s *Session) setSlack(seg *structure.Segment, c *engine.Constraint, slack bool) {
	seg.Slack = slack
	if slack {
		c.SetStiffness(0)
	} else {
		c.SetStiffness(effectiveStiffness(seg))
	}
}

// AdvanceContraction walks every muscle's constraint target toward
// restLength × contractionRatio and maintains the Contracting flag.
func (s *Session) AdvanceContraction() {
	for seg, c := range s.segmentConstraints {
		if seg.Material != structure.Contractile || seg.Broken {
			continue
		}
		goal := seg.RestLength() * seg.ContractionRatio
		if c.Length > goal {
			c.SetLength(c.Length + (goal-c.Length)*contractionRate)
		}
		seg.Contracting = c.Length-goal > contractionEpsilon
	}
}

// ApplySegmentWeightForces injects each segment-attached weight's load as
// forces on the two endpoint bodies, split (1−t)/t by attachment position.
// Uses the engine's own gravity scale so these loads agree visually with
// node-attached weights of the same mass.
func (s *Session) ApplySegmentWeightForces() {
	if s.st == nil {
		return
	}
	for _, w := range s.st.Weights {
		if !w.OnSegment() {
			continue
		}
		seg := w.Segment()
		ba := s.nodeBodies[seg.A]
		bb := s.nodeBodies[seg.B]
		if ba == nil || bb == nil {
			continue
		}

		t := w.Position
		at := ba.Position().Add(bb.Position().Sub(ba.Position()).Scale(t))
		f := weightForce(s.world.Gravity, w.Mass)

		ba.ApplyForce(f.Scale(1-t), at)
		bb.ApplyForce(f.Scale(t), at)
	}
}
