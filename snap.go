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

// Package snap implements spatial indexes for snapping a cursor to the
// geometry of a 2D drawing.
//
// An [Index] is a static R-tree over line segments and cubic Bézier curves,
// bulk-loaded with the Sort-Tile-Recursive algorithm.  For a cursor
// position and a snap radius, [Index.Query] finds the closest point on an
// edge, the closest vertex and the closest edge/edge intersection.
// A [KDTree] answers nearest-point queries over a bare point set.
//
// Both structures are immutable once built and can be queried from any
// number of goroutines.  When the drawing changes, a new index is built and
// replaced wholesale, see [Snapper].
package snap

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"seehuhn.de/go/geom/rect"
)

// DefaultFanout is the maximum number of children per internal node used
// when no other value is configured.
const DefaultFanout = 16

// MaxIntersectionCandidates is the largest candidate set for which a query
// looks for edge intersections.  The intersection test is quadratic in the
// number of candidates; above this limit the test is skipped.
const MaxIntersectionCandidates = 500

var (
	// ErrNonFinite is returned (wrapped in a [*PrimitiveError]) when a
	// primitive has a NaN or infinite coordinate.
	ErrNonFinite = errors.New("non-finite coordinates")

	// ErrFanout indicates an invalid [Options.Fanout].
	ErrFanout = errors.New("fanout must be at least 2")
)

// PrimitiveError reports malformed input to [Build] or [NewKDTree].
type PrimitiveError struct {
	Kind  string // "line", "curve" or "point"
	Index int    // position in the input slice
}

func (e *PrimitiveError) Error() string {
	return fmt.Sprintf("snap: %s %d: %v", e.Kind, e.Index, ErrNonFinite)
}

func (e *PrimitiveError) Unwrap() error {
	return ErrNonFinite
}

// Options controls the construction of an [Index].
type Options struct {
	// Fanout is the maximum number of children of an internal node.
	// Zero selects DefaultFanout.  Other values must be at least 2.
	Fanout int
}

// Index is a static R-tree over lines and cubic Bézier curves.
//
// The zero value and the result of building from no primitives are both
// empty indexes: Root returns nil and every query returns an empty [Result].
type Index struct {
	root   Node
	fanout int
	size   int
	height int
}

// Root returns the root node, or nil if the index is empty.
func (idx *Index) Root() Node {
	return idx.root
}

// Len returns the number of primitives in the index.
func (idx *Index) Len() int {
	return idx.size
}

// Height returns the number of levels of the tree, counting the leaves.
// An empty index has height 0.
func (idx *Index) Height() int {
	return idx.height
}

// Fanout returns the maximum number of children per internal node.
func (idx *Index) Fanout() int {
	return idx.fanout
}

// Bounds returns the box around all primitives.  The second return value
// is false if the index is empty.
func (idx *Index) Bounds() (rect.Rect, bool) {
	if idx.root == nil {
		return rect.Rect{}, false
	}
	return idx.root.Bounds(), true
}

// Walk visits the nodes of the tree depth-first, in child order, starting
// at the root with depth 0.  If fn returns false, the children of the node
// are skipped.
func (idx *Index) Walk(fn func(n Node, depth int) bool) {
	if idx.root == nil {
		return
	}
	var recurse func(Node, int)
	recurse = func(n Node, depth int) {
		if !fn(n, depth) {
			return
		}
		if in, ok := n.(*Internal); ok {
			for _, c := range in.children {
				recurse(c, depth+1)
			}
		}
	}
	recurse(idx.root, 0)
}

// tracer writes to trace with key 'snap'
func tracer() tracing.Trace {
	return tracing.Select("snap")
}
