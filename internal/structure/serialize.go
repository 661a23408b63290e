package structure

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// FormatVersion is the current wire-format version.
const FormatVersion = 1

// Serialized is the index-referenced plain-data form of a structure: nodes as
// an array, segments and weights referencing their targets by integer index.
// This is the only externally visible representation of the graph.
type Serialized struct {
	Version  int             `json:"version"`
	Nodes    []NodeRecord    `json:"nodes"`
	Segments []SegmentRecord `json:"segments"`
	Weights  []WeightRecord  `json:"weights"`
}

type NodeRecord struct {
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Fixed            bool    `json:"fixed,omitempty"`
	Mass             float64 `json:"mass,omitempty"`
	AngularStiffness float64 `json:"angularStiffness,omitempty"`
	IsGroundAnchor   bool    `json:"isGroundAnchor,omitempty"`
}

type SegmentRecord struct {
	NodeAIndex       int     `json:"nodeAIndex"`
	NodeBIndex       int     `json:"nodeBIndex"`
	Material         string  `json:"material"`
	Stiffness        float64 `json:"stiffness"`
	Damping          float64 `json:"damping"`
	CompressionOnly  bool    `json:"compressionOnly,omitempty"`
	TensionOnly      bool    `json:"tensionOnly,omitempty"`
	ContractionRatio float64 `json:"contractionRatio,omitempty"`
	BreakOnOverload  bool    `json:"breakOnOverload,omitempty"`
}

type WeightRecord struct {
	Mass                   float64 `json:"mass"`
	Position               float64 `json:"position,omitempty"`
	AttachedToNodeIndex    *int    `json:"attachedToNodeIndex,omitempty"`
	AttachedToSegmentIndex *int    `json:"attachedToSegmentIndex,omitempty"`
}

// Serialize converts the structure to its wire form. Runtime fields are not
// part of the format; rest lengths are implied by node positions.
func (st *Structure) Serialize() *Serialized {
	out := &Serialized{Version: FormatVersion}

	nodeIndex := make(map[*Node]int, len(st.Nodes))
	for i, n := range st.Nodes {
		nodeIndex[n] = i
		if n.groundAnchor {
			out.Nodes = append(out.Nodes, NodeRecord{X: n.X, Y: n.Y, IsGroundAnchor: true})
			continue
		}
		out.Nodes = append(out.Nodes, NodeRecord{
			X:                n.X,
			Y:                n.Y,
			Fixed:            n.fixed,
			Mass:             n.mass,
			AngularStiffness: n.angularStiffness,
		})
	}

	segIndex := make(map[*Segment]int, len(st.Segments))
	for i, s := range st.Segments {
		segIndex[s] = i
		out.Segments = append(out.Segments, SegmentRecord{
			NodeAIndex:       nodeIndex[s.A],
			NodeBIndex:       nodeIndex[s.B],
			Material:         s.Material.String(),
			Stiffness:        s.Stiffness,
			Damping:          s.Damping,
			CompressionOnly:  s.CompressionOnly,
			TensionOnly:      s.TensionOnly,
			ContractionRatio: s.ContractionRatio,
			BreakOnOverload:  s.BreakOnOverload,
		})
	}

	for _, w := range st.Weights {
		rec := WeightRecord{Mass: w.Mass}
		if w.node != nil {
			i := nodeIndex[w.node]
			rec.AttachedToNodeIndex = &i
		} else {
			i := segIndex[w.segment]
			rec.AttachedToSegmentIndex = &i
			rec.Position = w.Position
		}
		out.Weights = append(out.Weights, rec)
	}

	return out
}

// Deserialize rebuilds a structure from its wire form. Rest lengths are
// recomputed from endpoint distance, since the format carries none.
func Deserialize(data *Serialized) (*Structure, error) {
	if data == nil {
		return nil, fmt.Errorf("structure: nil data")
	}
	if data.Version > FormatVersion {
		return nil, fmt.Errorf("structure: unsupported format version %d", data.Version)
	}

	st := New()
	for _, rec := range data.Nodes {
		if rec.IsGroundAnchor {
			st.AddGroundAnchor(rec.X, rec.Y)
			continue
		}
		n := st.AddNode(rec.X, rec.Y)
		n.SetFixed(rec.Fixed)
		if rec.Mass != 0 {
			n.SetMass(rec.Mass)
		}
		n.SetAngularStiffness(rec.AngularStiffness)
	}

	for i, rec := range data.Segments {
		a, err := nodeAt(st, rec.NodeAIndex)
		if err != nil {
			return nil, fmt.Errorf("structure: segment %d: %w", i, err)
		}
		b, err := nodeAt(st, rec.NodeBIndex)
		if err != nil {
			return nil, fmt.Errorf("structure: segment %d: %w", i, err)
		}
		mat, err := ParseMaterial(rec.Material)
		if err != nil {
			return nil, fmt.Errorf("structure: segment %d: %w", i, err)
		}
		s := st.AddSegment(a, b, mat)
		if s == nil {
			return nil, fmt.Errorf("structure: segment %d: invalid endpoint pair", i)
		}
		s.Stiffness = rec.Stiffness
		s.Damping = rec.Damping
		s.CompressionOnly = rec.CompressionOnly
		s.TensionOnly = rec.TensionOnly
		if rec.ContractionRatio != 0 {
			s.SetContractionRatio(rec.ContractionRatio)
		}
		s.BreakOnOverload = rec.BreakOnOverload
	}

	for i, rec := range data.Weights {
		switch {
		case rec.AttachedToNodeIndex != nil:
			n, err := nodeAt(st, *rec.AttachedToNodeIndex)
			if err != nil {
				return nil, fmt.Errorf("structure: weight %d: %w", i, err)
			}
			st.AddWeight(n, 0, rec.Mass)
		case rec.AttachedToSegmentIndex != nil:
			idx := *rec.AttachedToSegmentIndex
			if idx < 0 || idx >= len(st.Segments) {
				return nil, fmt.Errorf("structure: weight %d: segment index %d out of range", i, idx)
			}
			st.AddWeight(st.Segments[idx], rec.Position, rec.Mass)
		default:
			return nil, fmt.Errorf("structure: weight %d: no attachment", i)
		}
	}

	return st, nil
}

func nodeAt(st *Structure, i int) (*Node, error) {
	if i < 0 || i >= len(st.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", i)
	}
	return st.Nodes[i], nil
}

// Marshal encodes the structure as indented JSON.
func Marshal(st *Structure) ([]byte, error) {
	return json.MarshalIndent(st.Serialize(), "", "  ")
}

// Unmarshal decodes a structure from JSON.
func Unmarshal(data []byte) (*Structure, error) {
	var s Serialized
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("structure: decode: %w", err)
	}
	return Deserialize(&s)
}

// WriteFile writes the structure to path as JSON.
func WriteFile(st *Structure, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("structure: create %s: %w", path, err)
	}
	defer f.Close()
	return Write(st, f)
}

// Write writes the structure as JSON to w.
func Write(st *Structure, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st.Serialize()); err != nil {
		return fmt.Errorf("structure: encode: %w", err)
	}
	return nil
}

// ReadFile reads a structure from a JSON file.
func ReadFile(path string) (*Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("structure: read %s: %w", path, err)
	}
	return Unmarshal(data)
}
