package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trusslab/internal/engine"
	"github.com/san-kum/trusslab/internal/geom"
	"github.com/san-kum/trusslab/internal/session"
	"github.com/san-kum/trusslab/internal/structure"
)

var _ = Describe("Session lifecycle", func() {
	var (
		world *engine.World
		sess  *session.Session
		st    *structure.Structure
		fixed *structure.Node
		free  *structure.Node
		seg   *structure.Segment
	)

	BeforeEach(func() {
		world = engine.NewWorld()
		sess = session.New(world)
		st = structure.New()
		fixed = st.AddNode(100, 100)
		fixed.SetFixed(true)
		free = st.AddNode(200, 100)
		seg = st.AddSegment(fixed, free, structure.Rigid)
	})

	It("mirrors the graph into engine objects on start", func() {
		sess.Start(st)

		Expect(sess.Running()).To(BeTrue())
		Expect(sess.Body(fixed).Static()).To(BeTrue())
		Expect(sess.Body(free).Static()).To(BeFalse())
		Expect(sess.Body(free).Mass()).To(Equal(free.Mass()))
		Expect(sess.Constraint(seg)).NotTo(BeNil())
		Expect(sess.Constraint(seg).Length).To(Equal(seg.RestLength()))
		Expect(st.TopologyLocked()).To(BeTrue())
	})

	It("treats double start and double stop as no-ops", func() {
		sess.Start(st)
		body := sess.Body(free)
		sess.Start(st)
		Expect(sess.Body(free)).To(BeIdenticalTo(body))

		sess.Stop()
		Expect(sess.Running()).To(BeFalse())
		sess.Stop()
		Expect(sess.Running()).To(BeFalse())
	})

	It("copies live positions back into authored state on stop", func() {
		sess.Start(st)
		for i := 0; i < 120; i++ {
			sess.Step()
		}
		endPos := sess.Body(free).Position()

		sess.Stop()

		Expect(free.X).To(Equal(endPos.X))
		Expect(free.Y).To(Equal(endPos.Y))
		Expect(seg.Slack).To(BeFalse())
		Expect(sess.Constraint(seg)).To(BeNil())
		Expect(sess.Body(free)).To(BeNil())
		Expect(sess.Running()).To(BeFalse())
		Expect(st.TopologyLocked()).To(BeFalse())

		// Fixed nodes end where they started.
		Expect(fixed.X).To(Equal(100.0))
		Expect(fixed.Y).To(Equal(100.0))
	})

	It("rejects topology mutations while running", func() {
		sess.Start(st)
		Expect(st.AddNode(5, 5)).To(BeNil())
		Expect(st.RemoveNode(free)).To(BeFalse())
		sess.Stop()
		Expect(st.AddNode(5, 5)).NotTo(BeNil())
	})

	It("propagates mid-session property edits immediately", func() {
		sess.Start(st)

		free.SetMass(7)
		sess.SyncNode(free)
		Expect(sess.Body(free).Mass()).To(Equal(7.0))

		free.SetFixed(true)
		sess.SyncNode(free)
		Expect(sess.Body(free).Static()).To(BeTrue())

		seg.Damping = 0.33
		sess.SyncSegment(seg)
		Expect(sess.Constraint(seg).Damping).To(Equal(0.33))
	})
})

var _ = Describe("Constraint modes", func() {
	var (
		world *engine.World
		sess  *session.Session
		st    *structure.Structure
		a, b  *structure.Node
		seg   *structure.Segment
	)

	// Builds a horizontal member with rest length 100 and parks both
	// endpoint bodies at a chosen span.
	setSpan := func(length float64) {
		sess.Body(a).SetPosition(geom.V(0, 0))
		sess.Body(b).SetPosition(geom.V(length, 0))
	}

	BeforeEach(func() {
		world = engine.NewWorld()
		sess = session.New(world)
		st = structure.New()
		a = st.AddNode(0, 0)
		a.SetFixed(true)
		b = st.AddNode(100, 0)
		b.SetFixed(true)
		seg = st.AddSegment(a, b, structure.Cable) // tension-only
		sess.Start(st)
	})

	It("stays taut inside the tolerance band", func() {
		setSpan(100.4) // within 0.5% of rest length 100
		sess.UpdateConstraintModes()

		Expect(seg.Slack).To(BeFalse())
		Expect(seg.CurrentLength).To(BeNumerically("~", 100.4, 1e-9))
	})

	It("goes slack in compression beyond tolerance", func() {
		setSpan(99.0)
		sess.UpdateConstraintModes()

		Expect(seg.Slack).To(BeTrue())
		Expect(seg.InCompression).To(BeTrue())
		Expect(sess.Constraint(seg).Stiffness).To(BeZero())
	})

	It("restores stiffness when tension returns", func() {
		setSpan(99.0)
		sess.UpdateConstraintModes()
		Expect(sess.Constraint(seg).Stiffness).To(BeZero())

		setSpan(103)
		sess.UpdateConstraintModes()
		Expect(seg.Slack).To(BeFalse())
		Expect(seg.InTension).To(BeTrue())
		Expect(sess.Constraint(seg).Stiffness).To(Equal(seg.Stiffness))
	})

	It("mirrors the rule for compression-only members", func() {
		seg.TensionOnly = false
		seg.CompressionOnly = true

		setSpan(103)
		sess.UpdateConstraintModes()
		Expect(seg.Slack).To(BeTrue())

		setSpan(97)
		sess.UpdateConstraintModes()
		Expect(seg.Slack).To(BeFalse())
	})

	It("skips classification for plain members", func() {
		seg.TensionOnly = false
		setSpan(80)
		sess.UpdateConstraintModes()

		Expect(seg.Slack).To(BeFalse())
		Expect(seg.InCompression).To(BeFalse())
	})
})

var _ = Describe("Segment weight forces", func() {
	It("splits the load (1−t)/t between endpoint bodies", func() {
		world := engine.NewWorld()
		sess := session.New(world)
		st := structure.New()
		a := st.AddNode(0, 0)
		b := st.AddNode(100, 0)
		seg := st.AddSegment(a, b, structure.Rigid)
		w := st.AddWeight(seg, 0.25, 10)

		sess.Start(st)
		sess.Step()

		// After one tick from rest, displacement equals acceleration:
		// gravity on the node itself plus its share of the weight's load.
		gravity := engine.GravityScale * world.Gravity.Y
		share := engine.GravityScale * world.Gravity.Y * w.Mass
		wantA := gravity + share*(1-w.Position)/a.Mass()
		wantB := gravity + share*w.Position/b.Mass()

		// Tolerance absorbs the constraint solver's sub-nanometer correction
		// on the nearly-horizontal member.
		Expect(sess.Body(a).Position().Y).To(BeNumerically("~", wantA, 1e-6))
		Expect(sess.Body(b).Position().Y).To(BeNumerically("~", wantB, 1e-6))
	})

	It("gives segment weights no engine body", func() {
		world := engine.NewWorld()
		sess := session.New(world)
		st := structure.New()
		a := st.AddNode(0, 0)
		b := st.AddNode(100, 0)
		seg := st.AddSegment(a, b, structure.Rigid)
		st.AddWeight(seg, 0.5, 10)
		onNode := st.AddWeight(a, 0, 5)

		sess.Start(st)

		// Only the node-attached weight shows up as a live body.
		Expect(sess.WeightBodyCount()).To(Equal(1))
		_ = onNode
	})
})
