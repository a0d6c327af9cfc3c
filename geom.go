// seehuhn.de/go/snap - a spatial snapping index for 2D drawings
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package snap

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

const (
	// cubicFlatness is the sampling tolerance for cubic curves, relative to
	// the size of the control polygon's bounding box.
	cubicFlatness = 1e-3

	minCubicSamples = 8
	maxCubicSamples = 256

	// cubicParamTolerance is the width of the parameter interval at which
	// the closest point refinement on a cubic stops.
	cubicParamTolerance = 1e-10

	// parallelThreshold is the relative size of the cross product of two
	// segment directions below which the segments are treated as parallel.
	parallelThreshold = 1e-12
)

var invPhi = (math.Sqrt(5) - 1) / 2

// Primitive is a piece of drawing geometry which can be stored in an
// [Index].  The only implementations are [Line] and [Cubic].
type Primitive interface {
	// Bounds returns an axis-aligned box containing the primitive.
	Bounds() rect.Rect

	// ClosestPoint returns the point on the primitive nearest to q.
	ClosestPoint(q vec.Vec2) vec.Vec2

	// Endpoints returns the two vertices of the primitive.
	Endpoints() (vec.Vec2, vec.Vec2)

	isPrimitive()
}

// Line is a straight line segment.
type Line struct {
	Start, End vec.Vec2
}

func (Line) isPrimitive() {}

// Bounds returns the smallest box containing both end points.
func (l Line) Bounds() rect.Rect {
	return pointBounds(l.Start, l.End)
}

// ClosestPoint returns the orthogonal projection of q onto the segment,
// clamped to the end points.
func (l Line) ClosestPoint(q vec.Vec2) vec.Vec2 {
	return closestPointOnLine(l.Start, l.End, q)
}

// Endpoints returns the start and end point of the segment.
func (l Line) Endpoints() (vec.Vec2, vec.Vec2) {
	return l.Start, l.End
}

// Transform applies the affine transformation m to both end points.
func (l Line) Transform(m matrix.Matrix) Line {
	return Line{Start: apply(m, l.Start), End: apply(m, l.End)}
}

func (l Line) isFinite() bool {
	return isFinite(l.Start) && isFinite(l.End)
}

// Cubic is a cubic Bézier curve with control points P0, ..., P3.
type Cubic struct {
	P0, P1, P2, P3 vec.Vec2
}

func (Cubic) isPrimitive() {}

// Bounds returns the box around the four control points.  The box contains
// the curve, but may be larger than the curve's tight extent.
func (c Cubic) Bounds() rect.Rect {
	return pointBounds(c.P0, c.P1, c.P2, c.P3)
}

// Endpoints returns P0 and P3.
func (c Cubic) Endpoints() (vec.Vec2, vec.Vec2) {
	return c.P0, c.P3
}

// At evaluates the curve at parameter t in [0, 1].
func (c Cubic) At(t float64) vec.Vec2 {
	// B(t) = (1-t)³P0 + 3(1-t)²tP1 + 3(1-t)t²P2 + t³P3
	omt := 1 - t
	omt2 := omt * omt
	omt3 := omt2 * omt
	t2 := t * t
	t3 := t2 * t
	return c.P0.Mul(omt3).Add(c.P1.Mul(3 * omt2 * t)).Add(c.P2.Mul(3 * omt * t2)).Add(c.P3.Mul(t3))
}

// Transform applies the affine transformation m to all control points.
func (c Cubic) Transform(m matrix.Matrix) Cubic {
	return Cubic{
		P0: apply(m, c.P0),
		P1: apply(m, c.P1),
		P2: apply(m, c.P2),
		P3: apply(m, c.P3),
	}
}

func (c Cubic) isFinite() bool {
	return isFinite(c.P0) && isFinite(c.P1) && isFinite(c.P2) && isFinite(c.P3)
}

// ClosestPoint returns the point on the curve nearest to q.
//
// The curve is first sampled uniformly.  Every local minimum of the sampled
// distances is then refined by golden-section search inside the
// neighbouring parameter interval, and the best refined point is returned.
// The result is deterministic for given inputs.
func (c Cubic) ClosestPoint(q vec.Vec2) vec.Vec2 {
	return c.At(c.closestParam(q))
}

func (c Cubic) closestParam(q vec.Vec2) float64 {
	n := c.sampleCount()
	step := 1 / float64(n)

	bestT, bestD := 0.0, math.Inf(1)
	refine := func(i int, d float64) {
		t := float64(i) * step
		if d < bestD {
			bestT, bestD = t, d
		}
		t, d = c.goldenSection(q, max(0, t-step), min(1, t+step))
		if d < bestD {
			bestT, bestD = t, d
		}
	}

	prev2, prev := math.Inf(1), dist2(c.P0, q)
	for i := 1; i <= n; i++ {
		cur := dist2(c.At(float64(i)*step), q)
		if prev <= prev2 && prev <= cur {
			refine(i-1, prev)
		}
		prev2, prev = prev, cur
	}
	if prev <= prev2 {
		refine(n, prev)
	}
	return bestT
}

// goldenSection minimises the squared distance from the curve to q over
// the parameter interval [lo, hi].
func (c Cubic) goldenSection(q vec.Vec2, lo, hi float64) (float64, float64) {
	m1 := hi - invPhi*(hi-lo)
	m2 := lo + invPhi*(hi-lo)
	d1 := dist2(c.At(m1), q)
	d2 := dist2(c.At(m2), q)
	for hi-lo > cubicParamTolerance {
		if d1 < d2 {
			hi, m2, d2 = m2, m1, d1
			m1 = hi - invPhi*(hi-lo)
			d1 = dist2(c.At(m1), q)
		} else {
			lo, m1, d1 = m1, m2, d2
			m2 = lo + invPhi*(hi-lo)
			d2 = dist2(c.At(m2), q)
		}
	}
	t := (lo + hi) / 2
	return t, dist2(c.At(t), q)
}

// sampleCount uses Wang's formula to choose the number of uniform samples
// for the initial closest point search.
func (c Cubic) sampleCount() int {
	d1 := c.P0.Sub(c.P1.Mul(2)).Add(c.P2) // P0 - 2*P1 + P2
	d2 := c.P1.Sub(c.P2.Mul(2)).Add(c.P3) // P1 - 2*P2 + P3
	m := max(d1.Length(), d2.Length())

	b := c.Bounds()
	tol := cubicFlatness * max(width(b), height(b))
	if m == 0 || tol == 0 {
		return minCubicSamples
	}

	// n = ceil(sqrt(3 * m / (4 * ε)))
	n := int(math.Ceil(math.Sqrt(3 * m / (4 * tol))))
	return max(minCubicSamples, min(maxCubicSamples, n))
}

// Intersect returns the intersection point of two primitives.
//
// Only line/line intersections are computed.  For all other combinations
// the second return value is false.
func Intersect(a, b Primitive) (vec.Vec2, bool) {
	la, ok := a.(Line)
	if !ok {
		return vec.Vec2{}, false
	}
	lb, ok := b.(Line)
	if !ok {
		return vec.Vec2{}, false
	}
	return intersectLines(la.Start, la.End, lb.Start, lb.End)
}

// closestPointOnLine projects q onto the segment a-b.
func closestPointOnLine(a, b, q vec.Vec2) vec.Vec2 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return a
	}
	t := q.Sub(a).Dot(d) / l2
	t = max(0, min(1, t))
	return a.Add(d.Mul(t))
}

// intersectLines returns the intersection of the segments a0-a1 and b0-b1.
// Parallel segments, including collinear overlapping ones, do not
// intersect.
func intersectLines(a0, a1, b0, b1 vec.Vec2) (vec.Vec2, bool) {
	r := a1.Sub(a0)
	s := b1.Sub(b0)
	denom := cross(r, s)
	if math.Abs(denom) <= parallelThreshold*r.Length()*s.Length() {
		return vec.Vec2{}, false
	}

	qp := b0.Sub(a0)
	t := cross(qp, s) / denom
	u := cross(qp, r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return vec.Vec2{}, false
	}
	return a0.Add(r.Mul(t)), true
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func dist2(a, b vec.Vec2) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

func isFinite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// apply maps p through the affine transformation m.
func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
