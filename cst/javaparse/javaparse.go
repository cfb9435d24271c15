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

// Package javaparse parses Java source into a cst.Tree using tree-sitter.
package javaparse

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/google/osv-codefix/cst"
)

// ErrSyntax is returned when the source contains syntax errors.
var ErrSyntax = errors.New("java syntax error")

// Parse parses src. The printed form of the returned tree equals src.
func Parse(ctx context.Context, src []byte) (*cst.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Java: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("failed to parse Java: %w: empty tree", ErrSyntax)
	}
	if root.HasError() {
		return nil, fmt.Errorf("failed to parse Java: %w at %s", ErrSyntax, firstError(root))
	}

	c := sitter.NewTreeCursor(root)
	defer c.Close()
	b := &builder{b: cst.NewBuilder(), src: src}
	b.visit(c)
	return b.b.Finish(string(src[b.prevEnd:])), nil
}

type builder struct {
	b       *cst.Builder
	src     []byte
	prevEnd uint32
}

func point(p sitter.Point) cst.Point {
	return cst.Point{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

func (b *builder) visit(c *sitter.TreeCursor) {
	n := c.CurrentNode()
	field := c.CurrentFieldName()
	start, end := point(n.StartPoint()), point(n.EndPoint())

	if n.ChildCount() == 0 {
		s, e := n.StartByte(), n.EndByte()
		if s < b.prevEnd {
			s = b.prevEnd
		}
		b.b.Leaf(n.Type(), n.IsNamed(), field, start, end, string(b.src[b.prevEnd:s]), string(b.src[s:e]))
		b.prevEnd = e
		return
	}

	b.b.Open(n.Type(), n.IsNamed(), field, start, end)
	if c.GoToFirstChild() {
		for {
			b.visit(c)
			if !c.GoToNextSibling() {
				break
			}
		}
		c.GoToParent()
	}
	b.b.Close()
}

func firstError(n *sitter.Node) string {
	if n.IsError() || n.IsMissing() {
		p := point(n.StartPoint())
		return p.String()
	}
	for i := range int(n.ChildCount()) {
		if ch := n.Child(i); ch != nil && ch.HasError() {
			return firstError(ch)
		}
	}
	p := point(n.StartPoint())
	return p.String()
}
