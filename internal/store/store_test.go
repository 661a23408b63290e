package store

import (
	"math"
	"testing"

	"github.com/san-kum/trusslab/internal/structure"
)

func sample() *structure.Structure {
	st := structure.New()
	g := st.AddGroundAnchor(0, 300)
	n := st.AddNode(100, 100)
	st.AddSegment(g, n, structure.Cable)
	st.AddWeight(n, 0, 5)
	return st
}

func TestSaveLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	trace := []float64{0, 0.2, 0.6, 0.4}
	runID, err := s.Save("swing", 2.0, 60, sample(), trace)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Name != "swing" || meta.Duration != 2.0 || meta.TickRate != 60 {
		t.Errorf("metadata wrong: %+v", meta)
	}
	if meta.MaxStress != 0.6 {
		t.Errorf("peak stress = %f, want 0.6", meta.MaxStress)
	}
	if meta.NodeCount != 2 || meta.SegmentCount != 1 || meta.WeightCount != 1 {
		t.Errorf("counts wrong: %+v", meta)
	}
}

func TestLoadTrace(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	trace := []float64{0.1, 0.5, 0.3}
	runID, err := s.Save("bridge", 1.0, 60, sample(), trace)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	times, values, err := s.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace: %v", err)
	}
	if len(times) != 3 || len(values) != 3 {
		t.Fatalf("trace length %d/%d, want 3/3", len(times), len(values))
	}
	if math.Abs(values[1]-0.5) > 1e-9 {
		t.Errorf("values[1] = %f, want 0.5", values[1])
	}
	if math.Abs(times[2]-2.0/60.0) > 1e-9 {
		t.Errorf("times[2] = %f, want %f", times[2], 2.0/60.0)
	}
}

func TestLoadStructure(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	st := sample()
	runID, err := s.Save("tower", 1.0, 60, st, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadStructure(runID)
	if err != nil {
		t.Fatalf("load structure: %v", err)
	}
	if got.Stats() != st.Stats() {
		t.Errorf("structure stats differ: %+v vs %+v", got.Stats(), st.Stats())
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, name := range []string{"a", "b", "c"} {
		if _, err := s.Save(name, 1.0, 60, sample(), nil); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("run count = %d, want 3", len(runs))
	}
}

func TestListEmptyDir(t *testing.T) {
	s := New("/nonexistent/trusslab-test")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list on missing dir: %v", err)
	}
	if runs != nil {
		t.Error("expected nil run list")
	}
}
