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
	"seehuhn.de/go/geom/vec"
)

// Result is the outcome of [Index.Query].  A nil field means that nothing
// qualified within the query radius.
type Result struct {
	// Edge is the closest point on any line or curve.
	Edge *vec.Vec2

	// Vertex is the closest end point of any line or curve.
	Vertex *vec.Vec2

	// Intersection is the closest intersection point of two lines.
	// It is always nil if IntersectionSkipped is set.
	Intersection *vec.Vec2

	// Candidates is the number of primitives which survived the
	// bounding box pruning.
	Candidates int

	// IntersectionSkipped is set if the candidate set was larger than
	// MaxIntersectionCandidates, so that no intersections were searched.
	// In this case a nil Intersection does not mean that no intersection
	// exists.
	IntersectionSkipped bool
}

// queryContext holds the state of a single call to Query.
type queryContext struct {
	pos    vec.Vec2
	radius float64

	nodes []*Leaf // candidate set, in traversal order

	edge     vec.Vec2
	edgeDist float64
	hasEdge  bool

	vertex      vec.Vec2
	vertexDist2 float64
	hasVertex   bool

	cross      vec.Vec2
	crossDist2 float64
	hasCross   bool
	skipped    bool
}

// Query finds the geometry near pos.
//
// Nodes are pruned by testing pos against their bounds grown by radius on
// both axes.  The surviving leaves form the candidate set, over which the
// closest edge point, the closest vertex and the closest intersection are
// determined exactly.  Only results with distance strictly less than
// radius are reported.  Among candidates at equal distance, the one found
// first in traversal order wins.
//
// For an empty index, a negative or NaN radius, or a non-finite position,
// the result is empty.
func (idx *Index) Query(pos vec.Vec2, radius float64) Result {
	if idx.root == nil || !(radius >= 0) || !isFinite(pos) {
		return Result{}
	}

	q := &queryContext{pos: pos, radius: radius}
	q.collect(idx.root)
	q.closestEdge()
	q.closestVertex()
	q.closestIntersection()
	return q.result()
}

// candidates returns the leaves which survive pruning for the given query.
func (idx *Index) candidates(pos vec.Vec2, radius float64) []*Leaf {
	if idx.root == nil {
		return nil
	}
	q := &queryContext{pos: pos, radius: radius}
	q.collect(idx.root)
	return q.nodes
}

func (q *queryContext) collect(n Node) {
	if !nearby(n.Bounds(), q.pos, q.radius) {
		return
	}
	switch n := n.(type) {
	case *Leaf:
		q.nodes = append(q.nodes, n)
	case *Internal:
		for _, c := range n.children {
			q.collect(c)
		}
	}
}

func (q *queryContext) closestEdge() {
	for _, leaf := range q.nodes {
		p := leaf.prim.ClosestPoint(q.pos)
		d := p.Sub(q.pos).Length()
		if d >= q.radius {
			continue
		}
		if !q.hasEdge || d < q.edgeDist {
			q.edge, q.edgeDist, q.hasEdge = p, d, true
		}
	}
}

func (q *queryContext) closestVertex() {
	r2 := q.radius * q.radius
	for _, leaf := range q.nodes {
		a, b := leaf.prim.Endpoints()
		for _, p := range [2]vec.Vec2{a, b} {
			d := dist2(p, q.pos)
			if d >= r2 {
				continue
			}
			if !q.hasVertex || d < q.vertexDist2 {
				q.vertex, q.vertexDist2, q.hasVertex = p, d, true
			}
		}
	}
}

func (q *queryContext) closestIntersection() {
	if len(q.nodes) > MaxIntersectionCandidates {
		q.skipped = true
		tracer().Debugf("intersection search skipped: %d candidates", len(q.nodes))
		return
	}

	r2 := q.radius * q.radius
	unsupported := 0
	for i, a := range q.nodes {
		for _, b := range q.nodes[i+1:] {
			if !overlaps(a.bounds, b.bounds) {
				continue
			}
			if !isLine(a.prim) || !isLine(b.prim) {
				unsupported++
				continue
			}
			p, ok := Intersect(a.prim, b.prim)
			if !ok {
				continue
			}
			d := dist2(p, q.pos)
			if d >= r2 {
				continue
			}
			if !q.hasCross || d < q.crossDist2 {
				q.cross, q.crossDist2, q.hasCross = p, d, true
			}
		}
	}
	if unsupported > 0 {
		tracer().Debugf("intersection not implemented for %d pairs involving curves", unsupported)
	}
}

func (q *queryContext) result() Result {
	res := Result{
		Candidates:          len(q.nodes),
		IntersectionSkipped: q.skipped,
	}
	if q.hasEdge {
		p := q.edge
		res.Edge = &p
	}
	if q.hasVertex {
		p := q.vertex
		res.Vertex = &p
	}
	if q.hasCross {
		p := q.cross
		res.Intersection = &p
	}
	return res
}

func isLine(p Primitive) bool {
	_, ok := p.(Line)
	return ok
}
