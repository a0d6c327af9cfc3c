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

// Command genpdf draws the test drawings into PDF files, together with the
// node bounds of the snapping index and the query results at every probe.
package main

import (
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/snap"
	"seehuhn.de/go/snap/testcases"
)

const outDir = "testdata/diagnostics"

// margin is the fraction of the page left free around the drawing
const margin = 0.05

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(outDir, name+".pdf")
			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	lines, curves := snap.FromPath(tc.Path)
	idx, err := snap.Build(lines, curves, nil)
	if err != nil {
		return err
	}

	paper := &pdf.Rectangle{
		URx: float64(tc.Width),
		URy: float64(tc.Height),
	}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Fit the drawing to the page.  PDF origin is bottom-left; test cases
	// assume top-left, so the y-axis is flipped.
	scale := 1.0
	var cx, cy float64
	if b, ok := idx.Bounds(); ok {
		extent := max(b.URx-b.LLx, b.URy-b.LLy)
		if extent == 0 {
			extent = 1
		}
		scale = (1 - 2*margin) * float64(min(tc.Width, tc.Height)) / extent
		cx, cy = (b.LLx+b.URx)/2, (b.LLy+b.URy)/2
	}
	page.Transform(matrix.Matrix{
		scale, 0, 0, -scale,
		float64(tc.Width)/2 - scale*cx,
		float64(tc.Height)/2 + scale*cy,
	})
	unit := 1 / scale // one point in drawing units

	page.SetLineCap(graphics.LineCapRound)

	// node bounds, darker for nodes closer to the root
	page.SetLineWidth(0.25 * unit)
	idx.Walk(func(n snap.Node, depth int) bool {
		if _, ok := n.(*snap.Internal); !ok {
			return false
		}
		b := n.Bounds()
		page.SetStrokeColor(color.DeviceGray(min(0.9, 0.3+0.15*float64(depth))))
		page.Rectangle(b.LLx, b.LLy, b.URx-b.LLx, b.URy-b.LLy)
		page.Stroke()
		return true
	})

	// the drawing itself
	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(0.75 * unit)
	drawPath(page, tc.Path)
	page.Stroke()

	// probes and snap results
	for _, p := range tc.Probes {
		res := idx.Query(p.At, p.Radius)

		page.SetStrokeColor(color.DeviceGray(0.6))
		page.SetLineWidth(0.25 * unit)
		circle(page, p.At, p.Radius)
		page.Stroke()

		// edge: small square, vertex: larger square, intersection: cross
		page.SetFillColor(color.DeviceGray(0.4))
		if res.Edge != nil {
			square(page, *res.Edge, 1*unit)
			page.Fill()
		}
		page.SetFillColor(color.DeviceGray(0))
		if res.Vertex != nil {
			square(page, *res.Vertex, 2*unit)
			page.Fill()
		}
		if res.Intersection != nil {
			page.SetLineWidth(0.5 * unit)
			cross(page, *res.Intersection, 2*unit)
			page.Stroke()
		}
	}

	return page.Close()
}

func drawPath(page *document.Page, p *path.Data) {
	// convert quadratic to cubic (PDF doesn't support quadratic)
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}

// circle adds a circle, approximated by four cubic Bézier curves.
func circle(page *document.Page, c vec.Vec2, r float64) {
	k := r * 4 * (math.Sqrt2 - 1) / 3
	page.MoveTo(c.X+r, c.Y)
	page.CurveTo(c.X+r, c.Y-k, c.X+k, c.Y-r, c.X, c.Y-r)
	page.CurveTo(c.X-k, c.Y-r, c.X-r, c.Y-k, c.X-r, c.Y)
	page.CurveTo(c.X-r, c.Y+k, c.X-k, c.Y+r, c.X, c.Y+r)
	page.CurveTo(c.X+k, c.Y+r, c.X+r, c.Y+k, c.X+r, c.Y)
	page.ClosePath()
}

func square(page *document.Page, c vec.Vec2, size float64) {
	page.Rectangle(c.X-size/2, c.Y-size/2, size, size)
}

func cross(page *document.Page, c vec.Vec2, size float64) {
	d := size / 2
	page.MoveTo(c.X-d, c.Y-d)
	page.LineTo(c.X+d, c.Y+d)
	page.MoveTo(c.X-d, c.Y+d)
	page.LineTo(c.X+d, c.Y-d)
}
