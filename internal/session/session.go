// Package session mirrors a structure graph into a live engine world and back.
//
// The session owns every engine object it creates, held in side tables keyed
// by domain entity; domain types never hold engine handles. While running, the
// session is the sole writer of engine state and the structure's topology is
// locked. Stop copies live positions back into authored state and discards
// all engine objects, making the graph the single source of truth again.
package session

import (
	"github.com/san-kum/trusslab/internal/engine"
	"github.com/san-kum/trusslab/internal/geom"
	"github.com/san-kum/trusslab/internal/structure"
)

const (
	// Dead band around rest length, as a fraction of rest length. Keeps
	// tension/compression classification from flickering at the rest point.
	slackToleranceRatio = 0.005

	// Visualization amplifier for the stress proxy. Empirical; retune
	// deliberately or colors wash out.
	stressGain = 400.0

	// Fraction of the remaining contraction gap closed per tick.
	contractionRate = 0.05

	// A muscle still counts as contracting while its target exceeds the
	// contraction goal by more than this many length units.
	contractionEpsilon = 0.5

	weightAnchorStiffness = 1.0
	weightAnchorDamping   = 0.1

	nodeFriction      = 0.4
	nodeRestitution   = 0.1
	weightFriction    = 0.6
	weightRestitution = 0.05
)

// Session drives the Idle → Running → Idle lifecycle. Start and Stop are
// idempotent; double calls are benign no-ops.
type Session struct {
	world   *engine.World
	st      *structure.Structure
	running bool

	nodeBodies         map[*structure.Node]*engine.Body
	segmentConstraints map[*structure.Segment]*engine.Constraint
	weightBodies       map[*structure.Weight]*engine.Body
	weightConstraints  map[*structure.Weight]*engine.Constraint
}

func New(world *engine.World) *Session {
	return &Session{world: world}
}

func (s *Session) Running() bool { return s.running }

func (s *Session) World() *engine.World { return s.world }

// Start mirrors st into the engine and begins a session. No-op if one is
// already running.
func (s *Session) Start(st *structure.Structure) {
	if s.running {
		return
	}
	s.st = st
	s.nodeBodies = make(map[*structure.Node]*engine.Body, len(st.Nodes))
	s.segmentConstraints = make(map[*structure.Segment]*engine.Constraint, len(st.Segments))
	s.weightBodies = make(map[*structure.Weight]*engine.Body)
	s.weightConstraints = make(map[*structure.Weight]*engine.Constraint)

	for _, n := range st.Nodes {
		s.nodeBodies[n] = s.world.NewBody(engine.BodyDef{
			Position:    n.Pos(),
			Static:      n.Fixed(),
			Mass:        n.Mass(),
			Friction:    nodeFriction,
			Restitution: nodeRestitution,
			Category:    engine.CategoryNode,
			Mask:        engine.CategoryGround,
		})
		n.LiveX, n.LiveY = n.X, n.Y
	}

	for _, seg := range st.Segments {
		seg.ResetRuntime()
		seg.CurrentLength = seg.RestLength()
		s.segmentConstraints[seg] = s.world.NewConstraint(engine.ConstraintDef{
			A:         s.nodeBodies[seg.A],
			B:         s.nodeBodies[seg.B],
			Length:    seg.RestLength(),
			Stiffness: effectiveStiffness(seg),
			Damping:   effectiveDamping(seg),
		})
	}

	// Node-attached weights become real bodies tied to their node. Weights on
	// segments get no body at all: a solver-arbitrated point mass sliding on a
	// flexible span destabilizes under large masses, so their load is injected
	// as per-tick forces instead (see ApplySegmentWeightForces).
	for _, w := range st.Weights {
		if w.OnSegment() {
			continue
		}
		body := s.world.NewBody(engine.BodyDef{
			Position:    w.WorldPos(false),
			Mass:        w.Mass,
			Friction:    weightFriction,
			Restitution: weightRestitution,
			Category:    engine.CategoryWeight,
			Mask:        engine.CategoryGround,
		})
		s.weightBodies[w] = body
		s.weightConstraints[w] = s.world.NewConstraint(engine.ConstraintDef{
			A:         body,
			B:         s.nodeBodies[w.Node()],
			Length:    0,
			Stiffness: weightAnchorStiffness,
			Damping:   weightAnchorDamping,
		})
	}

	st.SetTopologyLocked(true)
	s.world.SetPreStep(s.preStep)
	s.running = true
}

// Stop ends the session: live body positions become the new authored node
// positions, every runtime field resets, and all engine objects are released.
// No-op if idle.
func (s *Session) Stop() {
	if !s.running {
		return
	}

	for n, body := range s.nodeBodies {
		p := body.Position()
		n.X, n.Y = p.X, p.Y
		n.LiveX, n.LiveY = p.X, p.Y
		s.world.RemoveBody(body)
	}
	for seg, c := range s.segmentConstraints {
		seg.ResetRuntime()
		s.world.RemoveConstraint(c)
	}
	for _, c := range s.weightConstraints {
		s.world.RemoveConstraint(c)
	}
	for _, body := range s.weightBodies {
		s.world.RemoveBody(body)
	}

	s.nodeBodies = nil
	s.segmentConstraints = nil
	s.weightBodies = nil
	s.weightConstraints = nil

	s.world.SetPreStep(nil)
	s.st.SetTopologyLocked(false)
	s.st = nil
	s.running = false
}

// Step advances the world one tick. The session's pre-step work (constraint
// modes, force injection, live-position mirroring) runs inside the tick.
func (s *Session) Step() {
	s.world.Step()
}

// preStep runs synchronously at the start of every engine tick. It must stay
// cheap: it executes on the critical simulation path.
func (s *Session) preStep() {
	s.AdvanceContraction()
	s.UpdateConstraintModes()
	s.ApplySegmentWeightForces()

	for n, body := range s.nodeBodies {
		p := body.Position()
		n.LiveX, n.LiveY = p.X, p.Y
	}
}

// SyncNode pushes a node's authored properties onto its live body, if any.
// Mid-session edits take effect immediately; nothing is queued.
func (s *Session) SyncNode(n *structure.Node) {
	body := s.nodeBodies[n]
	if body == nil {
		return
	}
	body.SetMass(n.Mass())
	body.SetStatic(n.Fixed())
}

// SyncSegment pushes a segment's authored properties onto its live
// constraint, if any. A material swap away from contractile restores the
// original rest target.
func (s *Session) SyncSegment(seg *structure.Segment) {
	c := s.segmentConstraints[seg]
	if c == nil {
		return
	}
	c.Damping = effectiveDamping(seg)
	if seg.Material != structure.Contractile {
		c.SetLength(seg.RestLength())
	}
	if !seg.Slack && !seg.Broken {
		c.SetStiffness(effectiveStiffness(seg))
	}
}

// SyncWeight pushes a weight's mass onto its live body, if any.
func (s *Session) SyncWeight(w *structure.Weight) {
	if body := s.weightBodies[w]; body != nil {
		body.SetMass(w.Mass)
	}
}

// Constraint exposes the live constraint for a segment, nil when idle.
// Test harnesses use this to poke at session internals directly.
func (s *Session) Constraint(seg *structure.Segment) *engine.Constraint {
	return s.segmentConstraints[seg]
}

// Body exposes the live body for a node, nil when idle.
func (s *Session) Body(n *structure.Node) *engine.Body {
	return s.nodeBodies[n]
}

// WeightBodyCount reports how many weights own live bodies. Only
// node-attached weights do; segment weights act through injected forces.
func (s *Session) WeightBodyCount() int {
	return len(s.weightBodies)
}

func effectiveStiffness(seg *structure.Segment) float64 {
	if seg.Broken {
		return 0
	}
	if seg.Stiffness > 0 {
		return seg.Stiffness
	}
	return seg.Material.Defaults().Stiffness
}

func effectiveDamping(seg *structure.Segment) float64 {
	if seg.Damping > 0 {
		return seg.Damping
	}
	return seg.Material.Defaults().Damping
}

func weightForce(gravity geom.Vec2, mass float64) geom.Vec2 {
	return gravity.Scale(engine.GravityScale * mass)
}
