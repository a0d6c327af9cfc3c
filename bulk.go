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
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Build bulk-loads a new index from the given lines and curves.
//
// The tree is built bottom-up with the Sort-Tile-Recursive algorithm.
// The result depends only on the input order.  Build returns a
// [*PrimitiveError] if any primitive has non-finite coordinates.  If opt is
// nil, default options are used.
func Build(lines []Line, curves []Cubic, opt *Options) (*Index, error) {
	fanout := DefaultFanout
	if opt != nil && opt.Fanout != 0 {
		fanout = opt.Fanout
	}
	if fanout < 2 {
		return nil, fmt.Errorf("snap: fanout %d: %w", fanout, ErrFanout)
	}

	nodes := make([]Node, 0, len(lines)+len(curves))
	for i, l := range lines {
		if !l.isFinite() {
			return nil, &PrimitiveError{Kind: "line", Index: i}
		}
		nodes = append(nodes, newLeaf(l))
	}
	for i, c := range curves {
		if !c.isFinite() {
			return nil, &PrimitiveError{Kind: "curve", Index: i}
		}
		nodes = append(nodes, newLeaf(c))
	}

	idx := &Index{fanout: fanout, size: len(nodes)}
	if len(nodes) > 0 {
		idx.root, idx.height = bulkLoad(nodes, fanout)
	}
	tracer().Debugf("built index: %d lines, %d curves, fanout %d, height %d",
		len(lines), len(curves), fanout, idx.height)
	return idx, nil
}

// bulkLoad packs the leaves into levels of parent nodes until a single
// root remains.  It returns the root and the number of levels.
func bulkLoad(nodes []Node, n int) (Node, int) {
	height := 1
	for len(nodes) > 1 {
		nodes = packLevel(nodes, n)
		height++
	}
	return nodes[0], height
}

// packLevel groups nodes into parents of at most n children each.
//
// The nodes are sorted by the x-coordinate of their centres and cut into
// s vertical slices of s*n nodes, where s = ceil(sqrt(ceil(len/n))).
// Each slice is sorted by y and cut into runs of n nodes, which become the
// children of one parent.
func packLevel(nodes []Node, n int) []Node {
	slices.SortStableFunc(nodes, byCenterX)

	p := (len(nodes) + n - 1) / n
	s := int(math.Ceil(math.Sqrt(float64(p))))
	c := s * n

	parents := make([]Node, 0, p+s)
	for start := 0; start < len(nodes); start += c {
		slice := nodes[start:min(start+c, len(nodes))]
		slices.SortStableFunc(slice, byCenterY)
		for j := 0; j < len(slice); j += n {
			group := slices.Clone(slice[j:min(j+n, len(slice))])
			parents = append(parents, newInternal(group))
		}
	}
	return parents
}

func byCenterX(a, b Node) int {
	return cmp.Compare(center(a.Bounds()).X, center(b.Bounds()).X)
}

func byCenterY(a, b Node) int {
	return cmp.Compare(center(a.Bounds()).Y, center(b.Bounds()).Y)
}
