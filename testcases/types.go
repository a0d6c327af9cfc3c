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

// Package testcases contains drawings and cursor positions used to test
// and benchmark the snapping index.
package testcases

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// TestCase is a drawing together with cursor positions to query.
type TestCase struct {
	Name   string     // lowercase a-z and _ only
	Path   *path.Data // the geometry of the drawing
	Width  int        // drawing width, for diagnostics output
	Height int        // drawing height, for diagnostics output
	Probes []Probe    // cursor positions to query
}

// Probe is a cursor position together with the snap radius.
type Probe struct {
	At     vec.Vec2
	Radius float64
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// probe is a helper to create a Probe.
func probe(x, y, radius float64) Probe {
	return Probe{At: pt(x, y), Radius: radius}
}

// probeGrid returns probes on a regular n×n grid covering the drawing.
func probeGrid(width, height, n int, radius float64) []Probe {
	probes := make([]Probe, 0, n*n)
	for i := range n {
		for j := range n {
			x := (float64(i) + 0.5) * float64(width) / float64(n)
			y := (float64(j) + 0.5) * float64(height) / float64(n)
			probes = append(probes, probe(x, y, radius))
		}
	}
	return probes
}
