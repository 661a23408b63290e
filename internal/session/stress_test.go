package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trusslab/internal/engine"
	"github.com/san-kum/trusslab/internal/geom"
	"github.com/san-kum/trusslab/internal/session"
	"github.com/san-kum/trusslab/internal/structure"
)

// fixedPair builds a structure with two pinned nodes 100 apart joined by one
// segment of the given material, started in a fresh session.
func fixedPair(mat structure.Material) (*session.Session, *structure.Structure, *structure.Segment) {
	world := engine.NewWorld()
	sess := session.New(world)
	st := structure.New()
	a := st.AddNode(0, 0)
	a.SetFixed(true)
	b := st.AddNode(100, 0)
	b.SetFixed(true)
	seg := st.AddSegment(a, b, mat)
	sess.Start(st)
	return sess, st, seg
}

func stretchTo(sess *session.Session, st *structure.Structure, length float64) {
	sess.Body(st.Nodes[0]).SetPosition(geom.V(0, 0))
	sess.Body(st.Nodes[1]).SetPosition(geom.V(length, 0))
}

var _ = Describe("Stress model", func() {
	It("computes strain × stiffness × gain for passive members", func() {
		sess, st, seg := fixedPair(structure.Rigid)
		seg.Stiffness = 0.9

		stretchTo(sess, st, 100.1)
		sess.UpdateConstraintModes()
		sess.UpdateStress()

		// strain 0.001 × stiffness 0.9 × 400
		Expect(seg.Stress).To(BeNumerically("~", 0.36, 1e-9))
	})

	It("clamps stress to 1", func() {
		sess, st, seg := fixedPair(structure.Rigid)

		stretchTo(sess, st, 120)
		sess.UpdateConstraintModes()
		sess.UpdateStress()

		Expect(seg.Stress).To(Equal(1.0))
	})

	It("reports zero for slack members", func() {
		sess, st, seg := fixedPair(structure.Cable)

		stretchTo(sess, st, 95)
		sess.UpdateConstraintModes()
		sess.UpdateStress()

		Expect(seg.Slack).To(BeTrue())
		Expect(seg.Stress).To(BeZero())
	})

	It("reports zero and stays inert once broken", func() {
		sess, st, seg := fixedPair(structure.Contractile)
		seg.BreakOnOverload = true
		seg.SetContractionRatio(0.5)

		// Walk the target down while the span cannot shorten; strain
		// against the shrinking target eventually overloads the muscle.
		for i := 0; i < 600 && !seg.Broken; i++ {
			sess.AdvanceContraction()
			sess.UpdateConstraintModes()
			sess.UpdateStress()
		}

		Expect(seg.Broken).To(BeTrue())
		Expect(sess.Constraint(seg).Stiffness).To(BeZero())

		sess.UpdateStress()
		Expect(seg.Stress).To(BeZero())

		_ = st
	})
})

var _ = Describe("Muscle contraction", func() {
	It("walks the target toward restLength × ratio and clears the flag", func() {
		sess, _, seg := fixedPair(structure.Contractile)
		seg.SetContractionRatio(0.5)
		c := sess.Constraint(seg)

		Expect(c.Length).To(Equal(100.0))

		sess.AdvanceContraction()
		Expect(c.Length).To(BeNumerically("<", 100))
		Expect(seg.Contracting).To(BeTrue())

		for i := 0; i < 400; i++ {
			sess.AdvanceContraction()
		}

		Expect(c.Length).To(BeNumerically("~", 50, 0.6))
		Expect(seg.Contracting).To(BeFalse())
	})

	It("is slack while the span sits at or under the target", func() {
		sess, st, seg := fixedPair(structure.Contractile)
		c := sess.Constraint(seg)

		// Span equal to target: no pull available from a muscle.
		stretchTo(sess, st, 100)
		sess.UpdateConstraintModes()
		Expect(seg.Slack).To(BeTrue())

		// Target below span: the muscle pulls.
		c.SetLength(80)
		sess.UpdateConstraintModes()
		Expect(seg.Slack).To(BeFalse())
		Expect(seg.InTension).To(BeTrue())
	})
})
