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

import "strings"

// Builder assembles a Tree in document order. Parsers call Open and Close
// around interior nodes and Leaf for tokens.
type Builder struct {
	t     *Tree
	stack []NodeID
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{t: &Tree{root: None}}
}

func (b *Builder) add(n node) NodeID {
	id := NodeID(len(b.t.nodes))
	n.parent = None
	if len(b.stack) > 0 {
		p := b.stack[len(b.stack)-1]
		n.parent = p
		b.t.nodes = append(b.t.nodes, n)
		b.t.nodes[p].children = append(b.t.nodes[p].children, id)
		return id
	}
	b.t.nodes = append(b.t.nodes, n)
	if b.t.root == None {
		b.t.root = id
	}
	return id
}

// Open starts an interior node. Subsequent nodes become its children until
// the matching Close.
func (b *Builder) Open(typ string, named bool, field string, start, end Point) NodeID {
	id := b.add(node{typ: typ, named: named, field: field, start: start, end: end})
	b.stack = append(b.stack, id)
	return id
}

// Close ends the innermost open node.
func (b *Builder) Close() {
	if len(b.stack) == 0 {
		panic("cst: Close without Open")
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// Leaf adds a token with the whitespace that precedes it.
func (b *Builder) Leaf(typ string, named bool, field string, start, end Point, leading, text string) NodeID {
	return b.add(node{typ: typ, named: named, field: field, start: start, end: end, leaf: true, leading: leading, text: text})
}

// Finish returns the built tree. trailing is the source text after the last
// token.
func (b *Builder) Finish(trailing string) *Tree {
	if len(b.stack) != 0 {
		panic("cst: Finish with unclosed nodes")
	}
	b.t.trailing = trailing
	b.t.lines = strings.Split(string(b.t.Print()), "\n")
	t := b.t
	b.t = nil
	return t
}
