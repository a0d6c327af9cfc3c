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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// pointBounds returns the smallest box containing all given points.
func pointBounds(pts ...vec.Vec2) rect.Rect {
	b := rect.Rect{LLx: pts[0].X, LLy: pts[0].Y, URx: pts[0].X, URy: pts[0].Y}
	for _, p := range pts[1:] {
		b.LLx = math.Min(b.LLx, p.X)
		b.LLy = math.Min(b.LLy, p.Y)
		b.URx = math.Max(b.URx, p.X)
		b.URy = math.Max(b.URy, p.Y)
	}
	return b
}

// union gives the smallest box containing both a and b.
func union(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: math.Min(a.LLx, b.LLx),
		LLy: math.Min(a.LLy, b.LLy),
		URx: math.Max(a.URx, b.URx),
		URy: math.Max(a.URy, b.URy),
	}
}

func overlaps(a, b rect.Rect) bool {
	return a.LLx <= b.URx && a.URx >= b.LLx &&
		a.LLy <= b.URy && a.URy >= b.LLy
}

// nearby reports whether p lies inside b grown by radius on both axes.
// This admits every box within distance radius of p, and some boxes near
// the corners which are further away.
func nearby(b rect.Rect, p vec.Vec2, radius float64) bool {
	return b.LLx-radius <= p.X && p.X <= b.URx+radius &&
		b.LLy-radius <= p.Y && p.Y <= b.URy+radius
}

// boxDist2 is the squared distance from p to the nearest point of b.
func boxDist2(b rect.Rect, p vec.Vec2) float64 {
	dx := axisDist(p.X, b.LLx, b.URx)
	dy := axisDist(p.Y, b.LLy, b.URy)
	return dx*dx + dy*dy
}

func axisDist(k, lo, hi float64) float64 {
	if k < lo {
		return lo - k
	}
	if k <= hi {
		return 0
	}
	return k - hi
}

func center(b rect.Rect) vec.Vec2 {
	return vec.Vec2{X: (b.LLx + b.URx) / 2, Y: (b.LLy + b.URy) / 2}
}

func width(b rect.Rect) float64 {
	return b.URx - b.LLx
}

func height(b rect.Rect) float64 {
	return b.URy - b.LLy
}
