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

var lineCases = []TestCase{
	{
		Name:   "single_segment",
		Path:   segments([4]float64{0, 0, 10, 0}),
		Width:  16,
		Height: 16,
		Probes: []Probe{
			probe(5, 5, 10),
			probe(-3, 1, 5),
			probe(12, 0.5, 1),
			probe(5, 20, 5),
		},
	},
	{
		Name:   "crossing_diagonals",
		Path:   segments([4]float64{0, 0, 10, 10}, [4]float64{0, 10, 10, 0}),
		Width:  16,
		Height: 16,
		Probes: []Probe{
			probe(5, 5.1, 1),
			probe(4, 6, 3),
			probe(1, 1, 2),
			probe(30, 30, 1),
		},
	},
	{
		Name:   "triangle",
		Path:   triangle(10, 10, 54, 10, 32, 52),
		Width:  64,
		Height: 64,
		Probes: append(probeGrid(64, 64, 8, 6), probe(10.5, 10.5, 2)),
	},
	{
		Name:   "rectangle",
		Path:   rectangle(10, 10, 44, 44),
		Width:  64,
		Height: 64,
		Probes: append(probeGrid(64, 64, 8, 5), probe(44, 27, 0.5)),
	},
	{
		Name:   "star",
		Path:   fivePointStar(32, 32, 28),
		Width:  64,
		Height: 64,
		Probes: probeGrid(64, 64, 10, 4),
	},
}

// segments builds a path of separate line segments, each given as
// x1, y1, x2, y2.
func segments(segs ...[4]float64) *path.Data {
	p := &path.Data{}
	for _, s := range segs {
		p = p.MoveTo(pt(s[0], s[1])).LineTo(pt(s[2], s[3]))
	}
	return p
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3)).
		Close()
}

// fivePointStar builds a five-pointed star (self-intersecting).
func fivePointStar(cx, cy, r float64) *path.Data {
	// five points, connecting every second point
	var xs, ys [5]float64
	for i := range 5 {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		xs[i] = cx + r*math.Cos(angle)
		ys[i] = cy + r*math.Sin(angle)
	}

	// draw star: 0 -> 2 -> 4 -> 1 -> 3 -> 0
	p := (&path.Data{}).MoveTo(pt(xs[0], ys[0]))
	for _, i := range []int{2, 4, 1, 3} {
		p = p.LineTo(pt(xs[i], ys[i]))
	}
	return p.Close()
}

// rectangle builds a rectangular path.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}
