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

// Command export writes the test drawings, their probes and the query
// results to JSON, for inspection with external viewers.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/snap"
	"seehuhn.de/go/snap/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			jtc, err := toJSON(category, tc)
			if err != nil {
				panic(err)
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name   string        `json:"name"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Path   []jsonSegment `json:"path"`
	Tree   jsonTree      `json:"tree"`
	Probes []jsonProbe   `json:"probes"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

type jsonTree struct {
	Primitives int `json:"primitives"`
	Height     int `json:"height"`
	Fanout     int `json:"fanout"`
}

type jsonProbe struct {
	At           []float64 `json:"at"`
	Radius       float64   `json:"radius"`
	Edge         []float64 `json:"edge,omitempty"`
	Vertex       []float64 `json:"vertex,omitempty"`
	Intersection []float64 `json:"intersection,omitempty"`
	Candidates   int       `json:"candidates"`
	Skipped      bool      `json:"intersection_skipped,omitempty"`
}

func toJSON(category string, tc testcases.TestCase) (jsonTestCase, error) {
	lines, curves := snap.FromPath(tc.Path)
	idx, err := snap.Build(lines, curves, nil)
	if err != nil {
		return jsonTestCase{}, err
	}

	jtc := jsonTestCase{
		Name:   category + "_" + tc.Name,
		Width:  tc.Width,
		Height: tc.Height,
		Path:   pathToJSON(tc.Path),
		Tree: jsonTree{
			Primitives: idx.Len(),
			Height:     idx.Height(),
			Fanout:     idx.Fanout(),
		},
	}
	for _, p := range tc.Probes {
		res := idx.Query(p.At, p.Radius)
		jtc.Probes = append(jtc.Probes, jsonProbe{
			At:           pointToJSON(&p.At),
			Radius:       p.Radius,
			Edge:         pointToJSON(res.Edge),
			Vertex:       pointToJSON(res.Vertex),
			Intersection: pointToJSON(res.Intersection),
			Candidates:   res.Candidates,
			Skipped:      res.IntersectionSkipped,
		})
	}
	return jtc, nil
}

func pointToJSON(p *vec.Vec2) []float64 {
	if p == nil {
		return nil
	}
	return []float64{p.X, p.Y}
}

func pathToJSON(p *path.Data) []jsonSegment {
	var segs []jsonSegment
	coordIdx := 0
	for _, cmd := range p.Cmds {
		var seg jsonSegment
		var n int
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd, n = "M", 1
		case path.CmdLineTo:
			seg.Cmd, n = "L", 1
		case path.CmdQuadTo:
			seg.Cmd, n = "Q", 2
		case path.CmdCubeTo:
			seg.Cmd, n = "C", 3
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		seg.Pts = make([][]float64, n)
		for i := range n {
			pt := p.Coords[coordIdx+i]
			seg.Pts[i] = []float64{pt.X, pt.Y}
		}
		coordIdx += n
		segs = append(segs, seg)
	}
	return segs
}
