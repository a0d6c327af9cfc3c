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
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/tidwall/tinyqueue"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// DefaultLeafSize is the largest number of points a KD-tree leaf holds
// before it is split, when no other value is configured.
const DefaultLeafSize = 8

// ErrLeafSize indicates an invalid [KDOptions.LeafSize].
var ErrLeafSize = errors.New("leaf size must be at least 1")

// KDOptions controls the construction of a [KDTree].
type KDOptions struct {
	// LeafSize is the number of points at or below which a node is not
	// split any further.  Zero selects DefaultLeafSize.
	LeafSize int
}

// KDTree is a static 2D k-d tree over a set of points.
type KDTree struct {
	root kdNode
	size int
}

type kdNode interface {
	isKDNode()
}

type kdLeaf struct {
	points []vec.Vec2
}

// kdBranch sends points with axis.lessEquals(p, slice) to the left.
type kdBranch struct {
	axis        axis
	slice       float64
	left, right kdNode
}

func (*kdLeaf) isKDNode()   {}
func (*kdBranch) isKDNode() {}

// axis selects the coordinate a branch compares.
type axis interface {
	coord(p vec.Vec2) float64
	lessEquals(p vec.Vec2, slice float64) bool
	splitRegion(r rect.Rect, slice float64) (left, right rect.Rect)
	other() axis
}

type xAxis struct{}

func (xAxis) coord(p vec.Vec2) float64 { return p.X }

func (xAxis) lessEquals(p vec.Vec2, slice float64) bool { return p.X <= slice }

func (xAxis) splitRegion(r rect.Rect, slice float64) (rect.Rect, rect.Rect) {
	left, right := r, r
	left.URx = slice
	right.LLx = slice
	return left, right
}

func (xAxis) other() axis { return yAxis{} }

type yAxis struct{}

func (yAxis) coord(p vec.Vec2) float64 { return p.Y }

func (yAxis) lessEquals(p vec.Vec2, slice float64) bool { return p.Y <= slice }

func (yAxis) splitRegion(r rect.Rect, slice float64) (rect.Rect, rect.Rect) {
	left, right := r, r
	left.URy = slice
	right.LLy = slice
	return left, right
}

func (yAxis) other() axis { return xAxis{} }

// NewKDTree builds a k-d tree from the given points.  The points are
// copied.  If opt is nil, default options are used.
func NewKDTree(points []vec.Vec2, opt *KDOptions) (*KDTree, error) {
	leafSize := DefaultLeafSize
	if opt != nil && opt.LeafSize != 0 {
		leafSize = opt.LeafSize
	}
	if leafSize < 1 {
		return nil, fmt.Errorf("snap: leaf size %d: %w", leafSize, ErrLeafSize)
	}
	for i, p := range points {
		if !isFinite(p) {
			return nil, &PrimitiveError{Kind: "point", Index: i}
		}
	}

	pts := slices.Clone(points)
	return &KDTree{
		root: buildKD(pts, xAxis{}, leafSize),
		size: len(pts),
	}, nil
}

// buildKD recursively splits points, alternating between the axes.
// If the points cannot be separated along a, the other axis is tried;
// if neither works, the node stays a leaf whatever its size.
func buildKD(points []vec.Vec2, a axis, leafSize int) kdNode {
	if len(points) <= leafSize {
		return &kdLeaf{points: points}
	}
	for _, ax := range [2]axis{a, a.other()} {
		k, slice, ok := splitPoints(points, ax)
		if !ok {
			continue
		}
		return &kdBranch{
			axis:  ax,
			slice: slice,
			left:  buildKD(points[:k], ax.other(), leafSize),
			right: buildKD(points[k:], ax.other(), leafSize),
		}
	}
	return &kdLeaf{points: points}
}

// splitPoints sorts points along ax and finds the index k closest to the
// median such that every point before k has a smaller coordinate than
// every point from k on.  The slice value lies between the two groups.
func splitPoints(points []vec.Vec2, ax axis) (int, float64, bool) {
	slices.SortStableFunc(points, func(p, q vec.Vec2) int {
		return cmp.Compare(ax.coord(p), ax.coord(q))
	})

	sliceAt := func(k int) float64 {
		lo, hi := ax.coord(points[k-1]), ax.coord(points[k])
		if s := lo + (hi-lo)/2; s < hi {
			return s
		}
		return lo // hi is the next float after lo
	}
	mid := len(points) / 2
	for k := mid; k < len(points); k++ {
		if ax.coord(points[k-1]) < ax.coord(points[k]) {
			return k, sliceAt(k), true
		}
	}
	for k := mid - 1; k > 0; k-- {
		if ax.coord(points[k-1]) < ax.coord(points[k]) {
			return k, sliceAt(k), true
		}
	}
	return 0, 0, false
}

// Len returns the number of points in the tree.
func (t *KDTree) Len() int {
	return t.size
}

// Nearest returns the point closest to q.
//
// The search descends to the cell containing q first and then backtracks
// into every sibling cell which could hold a closer point.  The second
// return value is false if the tree is empty or q is not finite.
func (t *KDTree) Nearest(q vec.Vec2) (vec.Vec2, bool) {
	if t.root == nil || !isFinite(q) {
		return vec.Vec2{}, false
	}

	var best vec.Vec2
	bestDist := math.Inf(1)
	found := false
	var search func(n kdNode)
	search = func(n kdNode) {
		switch n := n.(type) {
		case *kdLeaf:
			for _, p := range n.points {
				if d := dist2(p, q); !found || d < bestDist {
					best, bestDist, found = p, d, true
				}
			}
		case *kdBranch:
			near, far := n.left, n.right
			if !n.axis.lessEquals(q, n.slice) {
				near, far = far, near
			}
			search(near)
			// every point in far is at least |d| away from q
			if d := n.axis.coord(q) - n.slice; !found || d*d < bestDist {
				search(far)
			}
		}
	}
	search(t.root)
	return best, found
}

// kdItem is a queue entry for best-first search over the tree.
type kdItem struct {
	node    kdNode
	region  rect.Rect
	point   vec.Vec2
	dist    float64 // squared
	isPoint bool
}

func (item *kdItem) Less(b tinyqueue.Item) bool {
	return item.dist < b.(*kdItem).dist
}

// NearestN returns the k points closest to q, nearest first.  Fewer points
// are returned if the tree holds fewer than k points.
func (t *KDTree) NearestN(q vec.Vec2, k int) []vec.Vec2 {
	if t.root == nil || k <= 0 || !isFinite(q) {
		return nil
	}

	everywhere := rect.Rect{
		LLx: math.Inf(-1), LLy: math.Inf(-1),
		URx: math.Inf(1), URy: math.Inf(1),
	}
	res := make([]vec.Vec2, 0, min(k, t.size))
	queue := tinyqueue.New(nil)
	queue.Push(&kdItem{node: t.root, region: everywhere})
	for queue.Len() > 0 && len(res) < k {
		item := queue.Pop().(*kdItem)
		if item.isPoint {
			res = append(res, item.point)
			continue
		}
		switch n := item.node.(type) {
		case *kdLeaf:
			for _, p := range n.points {
				queue.Push(&kdItem{point: p, dist: dist2(p, q), isPoint: true})
			}
		case *kdBranch:
			left, right := n.axis.splitRegion(item.region, n.slice)
			queue.Push(&kdItem{node: n.left, region: left, dist: boxDist2(left, q)})
			queue.Push(&kdItem{node: n.right, region: right, dist: boxDist2(right, q)})
		}
	}
	return res
}
