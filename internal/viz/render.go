// Package viz renders structures to the terminal: a braille canvas for
// geometry plus lipgloss-styled summaries.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/trusslab/internal/structure"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	stressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Renderer projects world coordinates onto a fixed-size canvas.
type Renderer struct {
	canvas *Canvas

	minX, minY float64
	scale      float64
	subW, subH int
	margin     float64
}

// NewRenderer sizes the projection to fit the structure's authored bounding
// box into a w×h character canvas.
func NewRenderer(w, h int, st *structure.Structure) *Renderer {
	r := &Renderer{
		canvas: NewCanvas(w, h),
		subW:   w * 2,
		subH:   h * 4,
		margin: 20,
	}
	r.fit(st)
	return r
}

func (r *Renderer) fit(st *structure.Structure) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range st.Nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	if len(st.Nodes) == 0 {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}

	minX -= r.margin
	minY -= r.margin
	maxX += r.margin
	maxY += r.margin

	sx := float64(r.subW) / (maxX - minX)
	sy := float64(r.subH) / (maxY - minY)
	r.scale = math.Min(sx, sy)
	if r.scale <= 0 || math.IsInf(r.scale, 0) {
		r.scale = 1
	}
	r.minX, r.minY = minX, minY
}

func (r *Renderer) project(x, y float64) (int, int) {
	return int((x - r.minX) * r.scale), int((y - r.minY) * r.scale)
}

// Render draws the structure. While simulating, live positions are used but
// the projection stays frozen at the authored fit so the view doesn't jitter.
func (r *Renderer) Render(st *structure.Structure, simulating bool) string {
	r.canvas.Clear()

	for _, s := range st.Segments {
		if s.Broken {
			continue
		}
		a := s.A.Position(simulating)
		b := s.B.Position(simulating)
		x0, y0 := r.project(a.X, a.Y)
		x1, y1 := r.project(b.X, b.Y)
		if s.Slack {
			r.drawDashed(x0, y0, x1, y1)
		} else {
			r.canvas.DrawLine(x0, y0, x1, y1)
		}
	}

	for _, n := range st.Nodes {
		p := n.Position(simulating)
		x, y := r.project(p.X, p.Y)
		if n.Fixed() {
			r.canvas.DrawCircle(x, y, 2)
		} else {
			r.canvas.Set(x, y)
		}
	}

	for _, w := range st.Weights {
		p := w.WorldPos(simulating)
		x, y := r.project(p.X, p.Y)
		r.canvas.DrawCircle(x, y, int(math.Max(1, w.Radius()*r.scale)))
	}

	return r.canvas.String()
}

// drawDashed draws every other pixel, marking slack members.
func (r *Renderer) drawDashed(x0, y0, x1, y1 int) {
	steps := absInt(x1-x0) + absInt(y1-y0)
	if steps == 0 {
		return
	}
	for i := 0; i <= steps; i += 2 {
		t := float64(i) / float64(steps)
		x := x0 + int(t*float64(x1-x0))
		y := y0 + int(t*float64(y1-y0))
		r.canvas.Set(x, y)
	}
}

// Summary formats structure stats as a one-line styled block.
func Summary(st *structure.Structure) string {
	stats := st.Stats()
	parts := []string{
		labelStyle.Render("nodes ") + valueStyle.Render(fmt.Sprintf("%d", stats.NodeCount)),
		labelStyle.Render("segments ") + valueStyle.Render(fmt.Sprintf("%d", stats.SegmentCount)),
		labelStyle.Render("weights ") + valueStyle.Render(fmt.Sprintf("%d", stats.WeightCount)),
	}
	if stats.MaxStress > 0 {
		parts = append(parts, labelStyle.Render("max stress ")+
			stressStyle.Render(fmt.Sprintf("%.2f", stats.MaxStress)))
	}
	return strings.Join(parts, labelStyle.Render(" · "))
}

// Title renders a styled heading.
func Title(s string) string {
	return titleStyle.Render(s)
}
