package structure

import "fmt"

// Material selects a segment's mechanical behavior.
type Material int

const (
	Rigid Material = iota
	Spring
	Cable
	Contractile
)

var materialNames = map[Material]string{
	Rigid:       "rigid",
	Spring:      "spring",
	Cable:       "cable",
	Contractile: "contractile",
}

func (m Material) String() string {
	if s, ok := materialNames[m]; ok {
		return s
	}
	return fmt.Sprintf("material(%d)", int(m))
}

func ParseMaterial(s string) (Material, error) {
	for m, name := range materialNames {
		if name == s {
			return m, nil
		}
	}
	return Rigid, fmt.Errorf("unknown material %q", s)
}

// MaterialProps are the per-material defaults a new segment starts from.
// Segments may override every field independently afterwards.
type MaterialProps struct {
	Stiffness       float64
	Damping         float64
	TensionOnly     bool
	CompressionOnly bool
}

func (m Material) Defaults() MaterialProps {
	switch m {
	case Spring:
		return MaterialProps{Stiffness: 0.05, Damping: 0.05}
	case Cable:
		return MaterialProps{Stiffness: 0.9, Damping: 0.1, TensionOnly: true}
	case Contractile:
		return MaterialProps{Stiffness: 0.9, Damping: 0.1, TensionOnly: true}
	default:
		return MaterialProps{Stiffness: 0.9, Damping: 0.1}
	}
}
