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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// FromPath extracts the lines and curves of a path.
//
// Quadratic segments are converted to cubics, closed subpaths get a closing
// line where needed, and zero-length lines are dropped.
func FromPath(p *path.Data) ([]Line, []Cubic) {
	var lines []Line
	var curves []Cubic

	var current vec.Vec2 // current point
	var subpath vec.Vec2 // subpath start

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[coordIdx]
			subpath = current
			coordIdx++

		case path.CmdLineTo:
			end := p.Coords[coordIdx]
			if end != current {
				lines = append(lines, Line{Start: current, End: end})
			}
			current = end
			coordIdx++

		case path.CmdQuadTo:
			ctrl, end := p.Coords[coordIdx], p.Coords[coordIdx+1]
			curves = append(curves, quadToCubic(current, ctrl, end))
			current = end
			coordIdx += 2

		case path.CmdCubeTo:
			curves = append(curves, Cubic{
				P0: current,
				P1: p.Coords[coordIdx],
				P2: p.Coords[coordIdx+1],
				P3: p.Coords[coordIdx+2],
			})
			current = p.Coords[coordIdx+2]
			coordIdx += 3

		case path.CmdClose:
			if current != subpath {
				lines = append(lines, Line{Start: current, End: subpath})
			}
			current = subpath
		}
	}
	return lines, curves
}

// quadToCubic converts a quadratic Bézier curve to the equivalent cubic.
func quadToCubic(p0, ctrl, p2 vec.Vec2) Cubic {
	return Cubic{
		P0: p0,
		P1: p0.Add(ctrl.Sub(p0).Mul(2.0 / 3)),
		P2: p2.Add(ctrl.Sub(p2).Mul(2.0 / 3)),
		P3: p2,
	}
}
