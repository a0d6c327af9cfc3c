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

var complexCases = []TestCase{
	{
		Name:   "mixed_lines_curves",
		Path:   mixedLinesCurves(),
		Width:  64,
		Height: 64,
		Probes: append(probeGrid(64, 64, 8, 6), probe(20, 30, 2), probe(54, 50, 3)),
	},
	{
		Name:   "spiral_overlap",
		Path:   spiralPath(32, 32, 5, 25, 3),
		Width:  64,
		Height: 64,
		Probes: probeGrid(64, 64, 10, 3),
	},
	{
		Name:   "zigzag",
		Path:   zigzagPath(10, 32, 54, 20),
		Width:  64,
		Height: 64,
		Probes: probeGrid(64, 64, 8, 5),
	},
	{
		Name:   "zigzag_over_circle",
		Path:   zigzagOverCircle(),
		Width:  64,
		Height: 64,
		Probes: append(probeGrid(64, 64, 8, 5), probe(32, 32, 8)),
	},
}

// mixedLinesCurves builds a path combining line segments and Bezier curves.
func mixedLinesCurves() *path.Data {
	return (&path.Data{}).
		MoveTo(pt(10, 50)).
		LineTo(pt(20, 30)).
		QuadTo(pt(32, 10), pt(44, 30)).
		LineTo(pt(54, 50)).
		CubeTo(pt(48, 60), pt(16, 60), pt(10, 50)).
		Close()
}

// spiralPath builds an Archimedean spiral made of line segments.
func spiralPath(cx, cy, rMin, rMax float64, turns float64) *path.Data {
	steps := max(int(turns*32), 8) // 32 segments per turn

	totalAngle := turns * 2 * math.Pi
	rGrowth := (rMax - rMin) / totalAngle

	p := (&path.Data{}).MoveTo(pt(cx+rMin, cy))
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		angle := t * totalAngle
		r := rMin + rGrowth*angle
		p = p.LineTo(pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle)))
	}
	return p
}

// zigzagPath builds a zigzag of five line segments.
func zigzagPath(x1, cy, x2, amplitude float64) *path.Data {
	segments := 5
	segWidth := (x2 - x1) / float64(segments)

	p := (&path.Data{}).MoveTo(pt(x1, cy))
	for i := 1; i <= segments; i++ {
		y := cy + amplitude
		if i%2 == 1 {
			y = cy - amplitude
		}
		p = p.LineTo(pt(x1+float64(i)*segWidth, y))
	}
	return p
}

// zigzagOverCircle builds a zigzag crossing a circle, so that lines
// intersect both other lines and curves.
func zigzagOverCircle() *path.Data {
	const cx, cy, r = 32.0, 32.0, 20.0
	k := r * kappa
	return zigzagPath(4, 32, 60, 24).
		MoveTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)).
		CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
		Close()
}
