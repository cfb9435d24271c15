// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cst provides a mutable concrete syntax tree stored as an arena of
// nodes. Leaves keep their token text together with the whitespace that
// preceded them in the source, so printing an unmodified tree reproduces the
// parsed source byte-for-byte and edits leave untouched regions alone.
package cst

import (
	"fmt"
	"iter"
	"strings"
)

// NodeID addresses a node inside its Tree.
type NodeID int32

// None is the NodeID used for "no node", e.g. the parent of the root.
const None NodeID = -1

// Point is a source position. Line and Column are 1-based, Column counts bytes.
// Synthesized nodes have the zero Point.
type Point struct {
	Line   int
	Column int
}

// IsZero reports whether p is the zero position.
func (p Point) IsZero() bool { return p.Line == 0 && p.Column == 0 }

// Before reports whether p comes strictly before o.
func (p Point) Before(o Point) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

func (p Point) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

type node struct {
	typ      string
	named    bool
	field    string
	start    Point
	end      Point
	parent   NodeID
	children []NodeID

	leaf    bool
	leading string
	text    string
}

// Tree is an arena-allocated syntax tree for one source file. A Tree is not
// safe for concurrent use; it is owned by the single pass remediating its file.
type Tree struct {
	nodes    []node
	root     NodeID
	trailing string
	revision int
	// lines of the parsed source, unaffected by edits.
	lines []string
}

// Root returns the root node.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of nodes ever allocated, including detached ones.
func (t *Tree) Len() int { return len(t.nodes) }

// Revision is incremented on every mutation.
func (t *Tree) Revision() int { return t.revision }

func (t *Tree) n(id NodeID) *node {
	if id < 0 || int(id) >= len(t.nodes) {
		panic(fmt.Sprintf("cst: node %d out of range", id))
	}
	return &t.nodes[id]
}

// Type returns the grammar type of the node, e.g. "method_invocation".
func (t *Tree) Type(id NodeID) string { return t.n(id).typ }

// IsNamed reports whether the node is a named grammar node rather than an
// anonymous token such as "(" or ";".
func (t *Tree) IsNamed(id NodeID) bool { return t.n(id).named }

// IsLeaf reports whether the node is a token.
func (t *Tree) IsLeaf(id NodeID) bool { return t.n(id).leaf }

// Field returns the field name the node occupies in its parent, if any.
func (t *Tree) Field(id NodeID) string { return t.n(id).field }

// SetField sets the field name of a node.
func (t *Tree) SetField(id NodeID, field string) {
	t.n(id).field = field
	t.revision++
}

// Parent returns the parent node or None.
func (t *Tree) Parent(id NodeID) NodeID { return t.n(id).parent }

// Start returns the original start position, zero for synthesized nodes.
func (t *Tree) Start(id NodeID) Point { return t.n(id).start }

// End returns the original (exclusive) end position.
func (t *Tree) End(id NodeID) Point { return t.n(id).end }

// Contains reports whether the original source range of the node contains p.
func (t *Tree) Contains(id NodeID, p Point) bool {
	n := t.n(id)
	if n.start.IsZero() {
		return false
	}
	return !p.Before(n.start) && p.Before(n.end)
}

// Children returns the child nodes. The returned slice must not be modified.
func (t *Tree) Children(id NodeID) []NodeID { return t.n(id).children }

// NamedChildren returns the named children, skipping anonymous tokens.
func (t *Tree) NamedChildren(id NodeID) []NodeID {
	var out []NodeID
	for _, c := range t.n(id).children {
		if t.nodes[c].named {
			out = append(out, c)
		}
	}
	return out
}

// ChildByField returns the first child stored under the given field name.
func (t *Tree) ChildByField(id NodeID, field string) NodeID {
	for _, c := range t.n(id).children {
		if t.nodes[c].field == field {
			return c
		}
	}
	return None
}

// ChildIndex returns the position of id among its parent's children, or -1.
func (t *Tree) ChildIndex(id NodeID) int {
	p := t.n(id).parent
	if p == None {
		return -1
	}
	for i, c := range t.nodes[p].children {
		if c == id {
			return i
		}
	}
	return -1
}

// PrevSibling returns the previous named sibling, or None.
func (t *Tree) PrevSibling(id NodeID) NodeID {
	p := t.n(id).parent
	if p == None {
		return None
	}
	sibs := t.nodes[p].children
	for i := t.ChildIndex(id) - 1; i >= 0; i-- {
		if t.nodes[sibs[i]].named {
			return sibs[i]
		}
	}
	return None
}

// NextSibling returns the next named sibling, or None.
func (t *Tree) NextSibling(id NodeID) NodeID {
	p := t.n(id).parent
	if p == None {
		return None
	}
	sibs := t.nodes[p].children
	for i := t.ChildIndex(id) + 1; i >= 1 && i < len(sibs); i++ {
		if t.nodes[sibs[i]].named {
			return sibs[i]
		}
	}
	return None
}

// Ancestors yields the parent chain of id, nearest first.
func (t *Tree) Ancestors(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for p := t.n(id).parent; p != None; p = t.nodes[p].parent {
			if !yield(p) {
				return
			}
		}
	}
}

// Attached reports whether id is reachable from the root.
func (t *Tree) Attached(id NodeID) bool {
	for cur := id; ; {
		if cur == t.root {
			return true
		}
		cur = t.n(cur).parent
		if cur == None {
			return false
		}
	}
}

// Walk visits the attached nodes in document order (pre-order). Children of a
// node are skipped when fn returns false for it.
func (t *Tree) Walk(fn func(id NodeID) bool) {
	if t.root == None {
		return
	}
	stack := []NodeID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(id) {
			continue
		}
		kids := t.nodes[id].children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

// FirstLeaf returns the first token under id, or None for an empty node.
func (t *Tree) FirstLeaf(id NodeID) NodeID {
	n := t.n(id)
	if n.leaf {
		return id
	}
	for _, c := range n.children {
		if l := t.FirstLeaf(c); l != None {
			return l
		}
	}
	return None
}

// Leading returns the whitespace preceding the first token of id.
func (t *Tree) Leading(id NodeID) string {
	if l := t.FirstLeaf(id); l != None {
		return t.nodes[l].leading
	}
	return ""
}

// Text returns the source text of id without its leading whitespace.
func (t *Tree) Text(id NodeID) string {
	var sb strings.Builder
	first := true
	t.eachLeaf(id, func(n *node) {
		if !first {
			sb.WriteString(n.leading)
		}
		first = false
		sb.WriteString(n.text)
	})
	return sb.String()
}

func (t *Tree) eachLeaf(id NodeID, fn func(n *node)) {
	n := t.n(id)
	if n.leaf {
		fn(n)
		return
	}
	for _, c := range n.children {
		t.eachLeaf(c, fn)
	}
}

// Print renders the tree back to source text.
func (t *Tree) Print() []byte {
	var sb strings.Builder
	if t.root != None {
		t.eachLeaf(t.root, func(n *node) {
			sb.WriteString(n.leading)
			sb.WriteString(n.text)
		})
	}
	sb.WriteString(t.trailing)
	return []byte(sb.String())
}

// SourceLine returns the text of a 1-based line of the parsed source without
// its line break. Edits don't change it. Lines out of range are empty.
func (t *Tree) SourceLine(line int) string {
	if line < 1 || line > len(t.lines) {
		return ""
	}
	return strings.TrimSuffix(t.lines[line-1], "\r")
}

// String returns the printed source.
func (t *Tree) String() string { return string(t.Print()) }
