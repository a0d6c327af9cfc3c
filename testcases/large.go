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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
)

// largeCases contains drawings with many primitives, to exercise deep
// trees and the candidate limit for intersection search.
var largeCases = []TestCase{
	{
		Name:   "large_grid",
		Path:   rectangleGrid(16, 16, 512, 512, 4),
		Width:  512,
		Height: 512,
		Probes: append(probeGrid(512, 512, 12, 12), probe(4, 4, 3), probe(256, 256, 10)),
	},
	{
		Name:   "large_hatch",
		Path:   hatch(40, 512, 512),
		Width:  512,
		Height: 512,
		Probes: append(probeGrid(512, 512, 12, 8), probe(12.8, 12.8, 2)),
	},
	{
		Name:   "large_circles",
		Path:   circleGrid(10, 10, 512, 512),
		Width:  512,
		Height: 512,
		Probes: probeGrid(512, 512, 12, 16),
	},
	{
		// more spokes than MaxIntersectionCandidates meet at the centre
		Name:   "large_starburst",
		Path:   starburst(256, 256, 200, 600),
		Width:  512,
		Height: 512,
		Probes: []Probe{
			probe(256, 256, 5),
			probe(256.5, 256, 1),
			probe(400, 256, 3),
			probe(500, 500, 10),
		},
	},
}

// rectangleGrid builds a grid of rectangles.
func rectangleGrid(rows, cols, width, height int, gap float64) *path.Data {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			x1 := float64(col)*cellW + gap
			y1 := float64(row)*cellH + gap
			x2 := float64(col+1)*cellW - gap
			y2 := float64(row+1)*cellH - gap

			p = p.
				MoveTo(pt(x1, y1)).
				LineTo(pt(x2, y1)).
				LineTo(pt(x2, y2)).
				LineTo(pt(x1, y2)).
				Close()
		}
	}

	return p
}

// hatch builds n horizontal and n vertical lines crossing the whole
// drawing.
func hatch(n, width, height int) *path.Data {
	w, h := float64(width), float64(height)
	p := &path.Data{}
	for i := range n {
		t := (float64(i) + 0.5) / float64(n)
		p = p.MoveTo(pt(0, t*h)).LineTo(pt(w, t*h))
		p = p.MoveTo(pt(t*w, 0)).LineTo(pt(t*w, h))
	}
	return p
}

// circleGrid builds a grid of circles, each inscribed in its cell.
func circleGrid(rows, cols, width, height int) *path.Data {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)
	r := 0.4 * min(cellW, cellH)
	k := r * kappa

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			cx := (float64(col) + 0.5) * cellW
			cy := (float64(row) + 0.5) * cellH
			p = p.
				MoveTo(pt(cx+r, cy)).
				CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)).
				CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)).
				CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
				CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
				Close()
		}
	}
	return p
}

// starburst builds n line segments through (cx, cy), each of length 2r.
func starburst(cx, cy, r float64, n int) *path.Data {
	p := &path.Data{}
	for i := range n {
		angle := float64(i) * math.Pi / float64(n)
		dx, dy := r*math.Cos(angle), r*math.Sin(angle)
		p = p.MoveTo(pt(cx-dx, cy-dy)).LineTo(pt(cx+dx, cy+dy))
	}
	return p
}
