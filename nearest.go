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
	"math"

	"github.com/tidwall/tinyqueue"
	"seehuhn.de/go/geom/vec"
)

// nearestItem is a queue entry for best-first search: either a node with
// the distance to its bounds, or a point on an edge with its exact distance.
type nearestItem struct {
	node    Node
	point   vec.Vec2
	dist    float64 // squared
	isPoint bool
}

func (item *nearestItem) Less(b tinyqueue.Item) bool {
	return item.dist < b.(*nearestItem).dist
}

// Nearest returns the closest point to pos on any line or curve, together
// with its distance, without a radius limit.  The last return value is
// false if the index is empty or pos is not finite.
func (idx *Index) Nearest(pos vec.Vec2) (vec.Vec2, float64, bool) {
	if idx.root == nil || !isFinite(pos) {
		return vec.Vec2{}, 0, false
	}

	queue := tinyqueue.New(nil)
	queue.Push(&nearestItem{node: idx.root, dist: boxDist2(idx.root.Bounds(), pos)})
	for queue.Len() > 0 {
		item := queue.Pop().(*nearestItem)
		if item.isPoint {
			return item.point, math.Sqrt(item.dist), true
		}
		switch n := item.node.(type) {
		case *Leaf:
			p := n.prim.ClosestPoint(pos)
			queue.Push(&nearestItem{point: p, dist: dist2(p, pos), isPoint: true})
		case *Internal:
			for _, c := range n.children {
				queue.Push(&nearestItem{node: c, dist: boxDist2(c.Bounds(), pos)})
			}
		}
	}
	return vec.Vec2{}, 0, false
}
