package geom

import "math"

// Vec2 is a 2D vector in pixel coordinates, y pointing down.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func Dist(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// Lerp interpolates from a to b by t (t=0 yields a, t=1 yields b).
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Angle returns the angle between two vectors in [0, π].
// Degenerate (zero-length) inputs yield 0 rather than NaN.
func Angle(a, b Vec2) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := a.Dot(b) / (la * lb)
	return math.Acos(Clamp(cos, -1, 1))
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PointSegmentDist returns the distance from p to the segment a-b.
func PointSegmentDist(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.LenSq()
	if l2 == 0 {
		return Dist(p, a)
	}
	t := Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return Dist(p, a.Add(ab.Scale(t)))
}
