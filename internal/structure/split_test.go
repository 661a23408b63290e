package structure

import (
	"math"
	"testing"
)

func TestSplitSegmentMidpoint(t *testing.T) {
	st := New()
	a := st.AddNode(0, 100)
	b := st.AddNode(200, 100)
	s := st.AddSegment(a, b, Spring)
	s.Stiffness = 0.42
	s.Damping = 0.07
	s.TensionOnly = true
	orig := s.RestLength()

	mid, s1, s2 := st.SplitSegment(s, 0.5)
	if mid == nil || s1 == nil || s2 == nil {
		t.Fatal("split failed")
	}

	if mid.X != 100 || mid.Y != 100 {
		t.Errorf("split node at (%f,%f), want (100,100)", mid.X, mid.Y)
	}
	if math.Abs(s1.RestLength()+s2.RestLength()-orig) > 1e-9 {
		t.Errorf("combined rest lengths %f, want %f",
			s1.RestLength()+s2.RestLength(), orig)
	}
	if st.hasSegment(s) {
		t.Error("original segment still present")
	}
	if len(st.Segments) != 2 {
		t.Errorf("segment count = %d, want 2", len(st.Segments))
	}

	for _, half := range []*Segment{s1, s2} {
		if half.Material != Spring || half.Stiffness != 0.42 ||
			half.Damping != 0.07 || !half.TensionOnly {
			t.Error("split halves must inherit segment properties")
		}
	}
}

func TestSplitReassignsWeights(t *testing.T) {
	st := New()
	a := st.AddNode(0, 100)
	b := st.AddNode(200, 100)
	s := st.AddSegment(a, b, Rigid)

	early := st.AddWeight(s, 0.25, 1)
	late := st.AddWeight(s, 0.75, 1)

	_, s1, s2 := st.SplitSegment(s, 0.5)

	if early.Segment() != s1 {
		t.Error("weight at 0.25 should land on the first half")
	}
	if math.Abs(early.Position-0.5) > 1e-9 {
		t.Errorf("renormalized position = %f, want 0.5", early.Position)
	}

	if late.Segment() != s2 {
		t.Error("weight at 0.75 should land on the second half")
	}
	if math.Abs(late.Position-0.5) > 1e-9 {
		t.Errorf("renormalized position = %f, want 0.5", late.Position)
	}
}

func TestSplitPositionClamped(t *testing.T) {
	tests := []struct {
		name  string
		t     float64
		wantX float64
	}{
		{"below min", 0.02, 20},
		{"above max", 0.99, 180},
		{"in range", 0.3, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := New()
			a := st.AddNode(0, 0)
			b := st.AddNode(200, 0)
			s := st.AddSegment(a, b, Rigid)

			mid, _, _ := st.SplitSegment(s, tt.t)
			if mid == nil {
				t.Fatal("split failed")
			}
			if math.Abs(mid.X-tt.wantX) > 1e-9 {
				t.Errorf("split at t=%f placed node at x=%f, want %f", tt.t, mid.X, tt.wantX)
			}
		})
	}
}
