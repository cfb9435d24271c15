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

package cst

import (
	"fmt"
	"slices"
)

// NewLeaf allocates a detached token. Tokens whose text equals their type
// (punctuation and keywords) are anonymous.
func (t *Tree) NewLeaf(typ, leading, text string) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{typ: typ, named: typ != text, parent: None, leaf: true, leading: leading, text: text})
	t.revision++
	return id
}

// NewNode allocates a detached named interior node adopting the given
// detached children.
func (t *Tree) NewNode(typ string, children ...NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{typ: typ, named: true, parent: None})
	for _, c := range children {
		t.mustDetached(c)
		t.nodes[c].parent = id
	}
	t.nodes[id].children = slices.Clone(children)
	t.revision++
	return id
}

func (t *Tree) mustDetached(id NodeID) {
	if t.n(id).parent != None || id == t.root {
		panic(fmt.Sprintf("cst: node %d (%s) is already attached", id, t.nodes[id].typ))
	}
}

func (t *Tree) mustAttachedChild(id NodeID) (parent NodeID, idx int) {
	parent = t.n(id).parent
	if parent == None {
		panic(fmt.Sprintf("cst: node %d (%s) has no parent", id, t.nodes[id].typ))
	}
	return parent, t.ChildIndex(id)
}

// SetLeading replaces the whitespace before the first token of id.
func (t *Tree) SetLeading(id NodeID, leading string) {
	if l := t.FirstLeaf(id); l != None {
		t.nodes[l].leading = leading
		t.revision++
	}
}

// SetText replaces the text of a token.
func (t *Tree) SetText(leaf NodeID, text string) {
	n := t.n(leaf)
	if !n.leaf {
		panic(fmt.Sprintf("cst: SetText on interior node %s", n.typ))
	}
	n.text = text
	t.revision++
}

// Detach removes id from its parent. The node and its subtree stay allocated
// and may be reattached elsewhere.
func (t *Tree) Detach(id NodeID) {
	parent, idx := t.mustAttachedChild(id)
	p := &t.nodes[parent]
	p.children = slices.Delete(slices.Clone(p.children), idx, idx+1)
	t.nodes[id].parent = None
	t.revision++
}

// Replace puts repl in the slot held by old, which becomes detached. repl
// inherits the field name and, if it has none of its own, the leading
// whitespace of old.
func (t *Tree) Replace(old, repl NodeID) {
	t.mustDetached(repl)
	if t.nodes[repl].field == "" {
		t.nodes[repl].field = t.n(old).field
	}
	if l := t.FirstLeaf(repl); l != None && t.nodes[l].leading == "" {
		t.nodes[l].leading = t.Leading(old)
		t.SetLeading(old, "")
	}
	if old == t.root {
		t.root = repl
		t.revision++
		return
	}
	parent, idx := t.mustAttachedChild(old)
	p := &t.nodes[parent]
	p.children = slices.Clone(p.children)
	p.children[idx] = repl
	t.nodes[repl].parent = parent
	t.nodes[old].parent = None
	t.revision++
}

// Wrap replaces target with a new node of type typ whose children are
// before, target and after. The wrapper takes target's slot and field, and
// moves target's leading whitespace to its first token unless that token
// already has some.
func (t *Tree) Wrap(target NodeID, typ string, before, after []NodeID) NodeID {
	parent, idx := None, -1
	if target != t.root {
		parent, idx = t.mustAttachedChild(target)
	}
	field := t.nodes[target].field
	leading := t.Leading(target)

	kids := append(append(slices.Clone(before), target), after...)
	for _, c := range kids {
		if c != target {
			t.mustDetached(c)
		}
	}
	w := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{typ: typ, named: true, field: field, parent: parent, children: kids})
	for _, c := range kids {
		t.nodes[c].parent = w
	}
	t.nodes[target].field = ""
	if l := t.FirstLeaf(w); l != None && l != t.FirstLeaf(target) && t.nodes[l].leading == "" {
		t.nodes[l].leading = leading
		t.SetLeading(target, "")
	}
	if parent == None {
		t.root = w
	} else {
		p := &t.nodes[parent]
		p.children = slices.Clone(p.children)
		p.children[idx] = w
	}
	t.revision++
	return w
}

// InsertChild inserts the detached node n as the idx'th child of parent.
func (t *Tree) InsertChild(parent NodeID, idx int, n NodeID) {
	t.mustDetached(n)
	p := t.n(parent)
	if idx < 0 || idx > len(p.children) {
		panic(fmt.Sprintf("cst: child index %d out of range for %s", idx, p.typ))
	}
	p.children = slices.Insert(slices.Clone(p.children), idx, n)
	t.nodes[n].parent = parent
	t.revision++
}

// AppendChild adds the detached node n as the last child of parent.
func (t *Tree) AppendChild(parent NodeID, n NodeID) {
	t.InsertChild(parent, len(t.n(parent).children), n)
}

// InsertBefore inserts the detached node n as the sibling immediately before
// anchor.
func (t *Tree) InsertBefore(anchor, n NodeID) {
	parent, idx := t.mustAttachedChild(anchor)
	t.InsertChild(parent, idx, n)
}

// InsertAfter inserts the detached node n as the sibling immediately after
// anchor.
func (t *Tree) InsertAfter(anchor, n NodeID) {
	parent, idx := t.mustAttachedChild(anchor)
	t.InsertChild(parent, idx+1, n)
}

// Snapshot is a saved copy of a Tree's state.
type Snapshot struct {
	nodes    []node
	root     NodeID
	trailing string
	revision int
}

// Snapshot captures the current state so it can be restored later.
func (t *Tree) Snapshot() *Snapshot {
	nodes := make([]node, len(t.nodes))
	for i, n := range t.nodes {
		n.children = slices.Clone(n.children)
		nodes[i] = n
	}
	return &Snapshot{nodes: nodes, root: t.root, trailing: t.trailing, revision: t.revision}
}

// Restore resets the tree to the captured state. Nodes allocated after the
// snapshot was taken become invalid.
func (t *Tree) Restore(s *Snapshot) {
	t.nodes = make([]node, len(s.nodes))
	for i, n := range s.nodes {
		n.children = slices.Clone(n.children)
		t.nodes[i] = n
	}
	t.root = s.root
	t.trailing = s.trailing
	t.revision = s.revision
}

// Graft copies the subtree rooted at id in src into t and returns the
// detached copy. Copies have the zero position and no field name, and the
// whitespace before the first copied token is dropped.
func (t *Tree) Graft(src *Tree, id NodeID) NodeID {
	root := t.graft(src, id, None)
	t.nodes[root].field = ""
	t.SetLeading(root, "")
	t.revision++
	return root
}

func (t *Tree) graft(src *Tree, id, parent NodeID) NodeID {
	sn := src.n(id)
	c := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		typ:     sn.typ,
		named:   sn.named,
		field:   sn.field,
		parent:  parent,
		leaf:    sn.leaf,
		leading: sn.leading,
		text:    sn.text,
	})
	kids := make([]NodeID, 0, len(sn.children))
	for _, k := range sn.children {
		kids = append(kids, t.graft(src, k, c))
	}
	t.nodes[c].children = kids
	return c
}
