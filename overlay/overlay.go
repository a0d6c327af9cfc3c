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

// Package overlay draws the structure of a snapping index and the results
// of snap queries into an alpha mask, for debugging.
//
// The overlay only reads from the index.
package overlay

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/snap"
)

// flatness controls curve approximation accuracy in pixels.
const flatness = 0.25

// Canvas draws into an [image.Alpha].
//
// Drawing coordinates are mapped to pixels by px = Scale*(p - Origin).
// The y-axis points down, as in the test drawings.
type Canvas struct {
	Img *image.Alpha

	Scale  float64
	Origin vec.Vec2

	// LineWidth is the width of lines in pixels.
	LineWidth float64

	// MarkerSize is the size of snap markers in pixels.
	MarkerSize float64

	r   *vector.Rasterizer
	src image.Image
}

// New returns a Canvas which maps view onto img, preserving the aspect
// ratio.
func New(img *image.Alpha, view rect.Rect) *Canvas {
	size := img.Bounds().Size()

	scale := 1.0
	w, h := view.URx-view.LLx, view.URy-view.LLy
	if w > 0 || h > 0 {
		scale = math.Inf(1)
		if w > 0 {
			scale = float64(size.X) / w
		}
		if h > 0 {
			scale = min(scale, float64(size.Y)/h)
		}
	}

	return &Canvas{
		Img:        img,
		Scale:      scale,
		Origin:     vec.Vec2{X: view.LLx, Y: view.LLy},
		LineWidth:  1,
		MarkerSize: 5,
		r:          vector.NewRasterizer(size.X, size.Y),
		src:        image.NewUniform(color.Alpha{A: 255}),
	}
}

// Nodes draws the outlines of all internal nodes of the index.
func (c *Canvas) Nodes(idx *snap.Index) {
	idx.Walk(func(n snap.Node, depth int) bool {
		if _, ok := n.(*snap.Internal); !ok {
			return false
		}
		b := n.Bounds()
		ll := c.toPixel(vec.Vec2{X: b.LLx, Y: b.LLy})
		ur := c.toPixel(vec.Vec2{X: b.URx, Y: b.URy})
		lr := vec.Vec2{X: ur.X, Y: ll.Y}
		ul := vec.Vec2{X: ll.X, Y: ur.Y}
		c.segment(ll, lr)
		c.segment(lr, ur)
		c.segment(ur, ul)
		c.segment(ul, ll)
		return true
	})
	c.flush()
}

// Geometry draws every line and curve stored in the index.
func (c *Canvas) Geometry(idx *snap.Index) {
	idx.Walk(func(n snap.Node, depth int) bool {
		leaf, ok := n.(*snap.Leaf)
		if !ok {
			return true
		}
		switch p := leaf.Primitive().(type) {
		case snap.Line:
			c.segment(c.toPixel(p.Start), c.toPixel(p.End))
		case snap.Cubic:
			c.cubic(p)
		}
		return false
	})
	c.flush()
}

// Result draws markers for the snap targets of a query result: a square
// for the vertex, a diamond for the intersection and a small square for
// the edge point.
func (c *Canvas) Result(res snap.Result) {
	s := c.MarkerSize / 2
	if res.Vertex != nil {
		c.square(c.toPixel(*res.Vertex), s)
	}
	if res.Intersection != nil {
		c.diamond(c.toPixel(*res.Intersection), s)
	}
	if res.Edge != nil {
		c.square(c.toPixel(*res.Edge), s/2)
	}
	c.flush()
}

func (c *Canvas) toPixel(p vec.Vec2) vec.Vec2 {
	return p.Sub(c.Origin).Mul(c.Scale)
}

// segment adds the outline of a line of width LineWidth from a to b
// (in pixels) to the rasterizer.
func (c *Canvas) segment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		c.square(a, c.LineWidth/2)
		return
	}
	t := d.Mul(1 / length)
	n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(c.LineWidth / 2)
	c.moveTo(a.Add(n))
	c.lineTo(b.Add(n))
	c.lineTo(b.Sub(n))
	c.lineTo(a.Sub(n))
	c.r.ClosePath()
}

// cubic flattens the curve in pixel space, using Wang's formula for the
// number of segments.
func (c *Canvas) cubic(cv snap.Cubic) {
	p0, p1, p2, p3 := c.toPixel(cv.P0), c.toPixel(cv.P1), c.toPixel(cv.P2), c.toPixel(cv.P3)
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)
	m := max(d1.Length(), d2.Length())
	n := 1
	if nFloat := math.Sqrt(3 * m / (4 * flatness)); nFloat > 1 {
		n = int(math.Ceil(nFloat))
	}

	prev := cv.P0
	for i := 1; i <= n; i++ {
		pt := cv.At(float64(i) / float64(n))
		c.segment(c.toPixel(prev), c.toPixel(pt))
		prev = pt
	}
}

func (c *Canvas) square(center vec.Vec2, s float64) {
	c.moveTo(vec.Vec2{X: center.X - s, Y: center.Y - s})
	c.lineTo(vec.Vec2{X: center.X + s, Y: center.Y - s})
	c.lineTo(vec.Vec2{X: center.X + s, Y: center.Y + s})
	c.lineTo(vec.Vec2{X: center.X - s, Y: center.Y + s})
	c.r.ClosePath()
}

func (c *Canvas) diamond(center vec.Vec2, s float64) {
	c.moveTo(vec.Vec2{X: center.X, Y: center.Y - s})
	c.lineTo(vec.Vec2{X: center.X + s, Y: center.Y})
	c.lineTo(vec.Vec2{X: center.X, Y: center.Y + s})
	c.lineTo(vec.Vec2{X: center.X - s, Y: center.Y})
	c.r.ClosePath()
}

func (c *Canvas) moveTo(p vec.Vec2) {
	c.r.MoveTo(float32(p.X), float32(p.Y))
}

func (c *Canvas) lineTo(p vec.Vec2) {
	c.r.LineTo(float32(p.X), float32(p.Y))
}

// flush composites the accumulated shapes onto the image.
func (c *Canvas) flush() {
	b := c.Img.Bounds()
	c.r.Draw(c.Img, b, c.src, image.Point{})
	c.r.Reset(b.Dx(), b.Dy())
}
