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

import "seehuhn.de/go/geom/rect"

// Node is a node of an [Index].  A node is either a [*Leaf], holding
// exactly one primitive, or an [*Internal] node owning a list of children.
//
// Nodes are immutable once the index has been built.
type Node interface {
	// Bounds returns the box containing everything below the node.
	Bounds() rect.Rect

	isNode()
}

// Leaf is a node wrapping a single primitive.
type Leaf struct {
	bounds rect.Rect
	prim   Primitive
}

func newLeaf(p Primitive) *Leaf {
	return &Leaf{bounds: p.Bounds(), prim: p}
}

func (*Leaf) isNode() {}

// Bounds returns the bounding box of the primitive.
func (l *Leaf) Bounds() rect.Rect {
	return l.bounds
}

// Primitive returns the [Line] or [Cubic] stored in the leaf.
func (l *Leaf) Primitive() Primitive {
	return l.prim
}

// Internal is a node with child nodes.  Its bounds are the union of the
// bounds of all children.
type Internal struct {
	bounds   rect.Rect
	children []Node
}

// newInternal takes ownership of children, which must be non-empty.
func newInternal(children []Node) *Internal {
	b := children[0].Bounds()
	for _, c := range children[1:] {
		b = union(b, c.Bounds())
	}
	return &Internal{bounds: b, children: children}
}

func (*Internal) isNode() {}

// Bounds returns the union of the children's bounds.
func (n *Internal) Bounds() rect.Rect {
	return n.bounds
}

// Len returns the number of children.
func (n *Internal) Len() int {
	return len(n.children)
}

// Child returns the i-th child.
func (n *Internal) Child(i int) Node {
	return n.children[i]
}
