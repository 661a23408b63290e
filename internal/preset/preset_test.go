package preset

import (
	"testing"

	"github.com/san-kum/trusslab/internal/structure"
)

func TestListMatchesBuilders(t *testing.T) {
	names := List()
	if len(names) != 4 {
		t.Fatalf("preset count = %d, want 4", len(names))
	}
	for _, name := range names {
		if Get(name) == nil {
			t.Errorf("preset %q did not build", name)
		}
	}
	if Get("nope") != nil {
		t.Error("unknown preset should return nil")
	}
}

func TestPresetsAreWellFormed(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			st := Get(name)
			stats := st.Stats()
			if stats.NodeCount < 2 || stats.SegmentCount < 1 {
				t.Fatalf("degenerate preset: %+v", stats)
			}

			anchored := false
			for _, n := range st.Nodes {
				if n.IsGroundAnchor() {
					anchored = true
				}
			}
			if !anchored {
				t.Error("preset has no ground anchor")
			}

			for _, s := range st.Segments {
				if s.RestLength() <= 0 {
					t.Error("segment with non-positive rest length")
				}
			}

			// Every preset must survive the wire format.
			data, err := structure.Marshal(st)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			back, err := structure.Unmarshal(data)
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back.Stats() != stats {
				t.Errorf("round trip changed stats: %+v vs %+v", back.Stats(), stats)
			}
		})
	}
}
