// Package preset ships ready-made demo structures.
package preset

import (
	"sort"

	"github.com/san-kum/trusslab/internal/structure"
)

var builders = map[string]func() *structure.Structure{
	"bridge": Bridge,
	"tower":  Tower,
	"crane":  Crane,
	"swing":  Swing,
}

// Get returns a freshly built preset, or nil for an unknown name.
func Get(name string) *structure.Structure {
	b, ok := builders[name]
	if !ok {
		return nil
	}
	return b()
}

// List returns all preset names, sorted.
func List() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bridge is a Pratt-style deck between two ground anchors, with a midspan
// load on the deck.
func Bridge() *structure.Structure {
	st := structure.New()

	left := st.AddGroundAnchor(100, 400)
	right := st.AddGroundAnchor(500, 400)

	deck := []*structure.Node{left}
	for x := 200.0; x <= 400; x += 100 {
		deck = append(deck, st.AddNode(x, 400))
	}
	deck = append(deck, right)

	top := make([]*structure.Node, 0, 3)
	for x := 200.0; x <= 400; x += 100 {
		top = append(top, st.AddNode(x, 320))
	}

	for i := 0; i < len(deck)-1; i++ {
		st.AddSegment(deck[i], deck[i+1], structure.Rigid)
	}
	for i := 0; i < len(top)-1; i++ {
		st.AddSegment(top[i], top[i+1], structure.Rigid)
	}
	for i, t := range top {
		st.AddSegment(deck[i+1], t, structure.Rigid)
	}
	st.AddSegment(left, top[0], structure.Rigid)
	st.AddSegment(right, top[len(top)-1], structure.Rigid)
	// Diagonals take tension only.
	st.AddSegment(deck[1], top[1], structure.Cable)
	st.AddSegment(deck[3], top[1], structure.Cable)

	mid := st.FindSegment(deck[1], deck[2])
	st.AddWeight(mid, 0.9, 20)
	return st
}

// Tower is a braced column of stacked bays with a tip load.
func Tower() *structure.Structure {
	st := structure.New()

	baseL := st.AddGroundAnchor(260, 500)
	baseR := st.AddGroundAnchor(340, 500)

	prevL, prevR := baseL, baseR
	for i := 1; i <= 4; i++ {
		y := 500 - float64(i)*80
		l := st.AddNode(260, y)
		r := st.AddNode(340, y)

		st.AddSegment(prevL, l, structure.Rigid)
		st.AddSegment(prevR, r, structure.Rigid)
		st.AddSegment(l, r, structure.Rigid)
		st.AddSegment(prevL, r, structure.Cable)
		st.AddSegment(prevR, l, structure.Cable)

		prevL, prevR = l, r
	}

	st.AddWeight(prevR, 0, 15)
	return st
}

// Crane is a mast and jib with a contractile hoist line carrying a hook load.
func Crane() *structure.Structure {
	st := structure.New()

	base := st.AddGroundAnchor(150, 500)
	mastMid := st.AddNode(150, 380)
	mastTop := st.AddNode(150, 260)
	st.AddSegment(base, mastMid, structure.Rigid)
	st.AddSegment(mastMid, mastTop, structure.Rigid)

	jibEnd := st.AddNode(360, 380)
	st.AddSegment(mastMid, jibEnd, structure.Rigid)
	st.AddSegment(mastTop, jibEnd, structure.Cable)

	hook := st.AddNode(360, 470)
	hoist := st.AddSegment(jibEnd, hook, structure.Contractile)
	hoist.SetContractionRatio(0.5)

	st.AddWeight(hook, 0, 10)
	return st
}

// Swing is a weighted rope span, good for watching cables go slack.
func Swing() *structure.Structure {
	st := structure.New()

	left := st.AddGroundAnchor(150, 150)
	right := st.AddGroundAnchor(450, 150)
	seat := st.AddNode(300, 300)

	st.AddSegment(left, seat, structure.Cable)
	st.AddSegment(right, seat, structure.Cable)
	span := st.AddSegment(left, right, structure.Cable)

	st.AddWeight(seat, 0, 8)
	st.AddWeight(span, 0.5, 3)
	return st
}
