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
	"seehuhn.de/go/geom/path"
)

var precisionCases = []TestCase{
	{
		Name:   "offset_rectangle_quarter",
		Path:   offsetRectangle(20, 20, 24, 24, 0.25),
		Width:  64,
		Height: 64,
		Probes: append(probeGrid(64, 64, 6, 3), probe(20.25, 20.25, 0.1)),
	},
	{
		Name:   "large_coord_rectangle",
		Path:   offsetRectangle(-10, -10, 20, 20, 1e6),
		Width:  64,
		Height: 64,
		Probes: []Probe{
			probe(1e6-10, 1e6-10, 1),
			probe(1e6, 1e6-9.5, 1),
			probe(1e6+10.2, 1e6+3, 0.5),
			probe(1e6, 1e6, 5),
		},
	},
	{
		Name:   "tiny_shape",
		Path:   offsetRectangle(32, 32, 1e-3, 1e-3, 0),
		Width:  64,
		Height: 64,
		Probes: []Probe{
			probe(32, 32, 1e-4),
			probe(32.0005, 32.0005, 1e-3),
			probe(33, 33, 1),
		},
	},
	{
		Name:   "float64_precision",
		Path:   float64PrecisionShape(),
		Width:  64,
		Height: 64,
		Probes: probeGrid(64, 64, 6, 4),
	},
	{
		Name:   "nearly_parallel",
		Path:   segments([4]float64{0, 32, 64, 32}, [4]float64{0, 31.999, 64, 32.001}),
		Width:  64,
		Height: 64,
		Probes: []Probe{
			probe(32, 32, 1),
			probe(10, 32, 0.5),
			probe(63, 32, 2),
		},
	},
}

// offsetRectangle builds a rectangular path with an offset applied to all coordinates.
func offsetRectangle(x1, y1, w, h, offset float64) *path.Data {
	ox1 := x1 + offset
	oy1 := y1 + offset
	ox2 := x1 + w + offset
	oy2 := y1 + h + offset

	return (&path.Data{}).
		MoveTo(pt(ox1, oy1)).
		LineTo(pt(ox2, oy1)).
		LineTo(pt(ox2, oy2)).
		LineTo(pt(ox1, oy2)).
		Close()
}

// float64PrecisionShape builds a shape using coordinates that require
// full float64 precision to represent accurately.
func float64PrecisionShape() *path.Data {
	// These values differ only in the low bits of float64
	base := 32.0
	delta1 := 0.123456789012345
	delta2 := 0.123456789012346

	x1 := base - 10 + delta1
	y1 := base - 10 + delta1
	x2 := base + 10 + delta2
	y2 := base + 10 + delta2

	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}
