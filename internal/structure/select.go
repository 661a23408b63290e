package structure

// Selection management. Items are *Node, *Segment or *Weight; the set is
// cleaned up automatically when entities are removed.

// Select replaces the selection with item.
func (st *Structure) Select(item any) {
	st.ClearSelection()
	st.AddToSelection(item)
}

// AddToSelection grows the selection (multi-select).
func (st *Structure) AddToSelection(item any) {
	if item == nil {
		return
	}
	st.selection[item] = struct{}{}
}

// ToggleSelection flips item's membership.
func (st *Structure) ToggleSelection(item any) {
	if item == nil {
		return
	}
	if _, ok := st.selection[item]; ok {
		delete(st.selection, item)
	} else {
		st.selection[item] = struct{}{}
	}
}

func (st *Structure) IsSelected(item any) bool {
	_, ok := st.selection[item]
	return ok
}

func (st *Structure) ClearSelection() {
	for k := range st.selection {
		delete(st.selection, k)
	}
}

func (st *Structure) SelectionCount() int { return len(st.selection) }

// SelectInRect selects all nodes inside the rectangle spanned by the two
// corners, plus segments with both endpoints inside and weights whose
// attachment point lies inside.
func (st *Structure) SelectInRect(x1, y1, x2, y2 float64) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	inside := func(x, y float64) bool {
		return x >= x1 && x <= x2 && y >= y1 && y <= y2
	}

	st.ClearSelection()
	for _, n := range st.Nodes {
		if inside(n.X, n.Y) {
			st.selection[n] = struct{}{}
		}
	}
	for _, s := range st.Segments {
		if inside(s.A.X, s.A.Y) && inside(s.B.X, s.B.Y) {
			st.selection[s] = struct{}{}
		}
	}
	for _, w := range st.Weights {
		p := w.WorldPos(false)
		if inside(p.X, p.Y) {
			st.selection[w] = struct{}{}
		}
	}
}

func (st *Structure) deselect(item any) {
	delete(st.selection, item)
}
