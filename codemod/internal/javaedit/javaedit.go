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

// Package javaedit contains the Java tree queries and edit recipes shared by
// the codemods.
package javaedit

import (
	"slices"
	"strings"

	"github.com/google/osv-codefix/cst"
)

var literalTypes = []string{
	"string_literal",
	"text_block",
	"character_literal",
	"decimal_integer_literal",
	"hex_integer_literal",
	"octal_integer_literal",
	"binary_integer_literal",
	"decimal_floating_point_literal",
	"hex_floating_point_literal",
	"true",
	"false",
	"null_literal",
}

// IsLiteral reports whether n is a literal expression.
func IsLiteral(t *cst.Tree, n cst.NodeID) bool {
	return slices.Contains(literalTypes, t.Type(n))
}

// IsStringLiteral reports whether n is a string literal or text block.
func IsStringLiteral(t *cst.Tree, n cst.NodeID) bool {
	typ := t.Type(n)
	return typ == "string_literal" || typ == "text_block"
}

// IsNameOrFieldAccess reports whether n is a plain name such as "c" or a
// field access such as "this.c".
func IsNameOrFieldAccess(t *cst.Tree, n cst.NodeID) bool {
	typ := t.Type(n)
	return typ == "identifier" || typ == "field_access"
}

// Arguments returns the argument expressions of a method invocation or
// object creation, skipping comments. It returns nil if n has no argument
// list.
func Arguments(t *cst.Tree, n cst.NodeID) []cst.NodeID {
	list := t.ChildByField(n, "arguments")
	if list == cst.None {
		return nil
	}
	args := []cst.NodeID{}
	for _, c := range t.NamedChildren(list) {
		if !isComment(t, c) {
			args = append(args, c)
		}
	}
	return args
}

// HasComments reports whether any comment appears under n.
func HasComments(t *cst.Tree, n cst.NodeID) bool {
	if isComment(t, n) {
		return true
	}
	return slices.ContainsFunc(t.Children(n), func(c cst.NodeID) bool {
		return HasComments(t, c)
	})
}

func isComment(t *cst.Tree, n cst.NodeID) bool {
	typ := t.Type(n)
	return typ == "line_comment" || typ == "block_comment" || typ == "comment"
}

// MethodName returns the name of a method invocation, "" for other nodes.
func MethodName(t *cst.Tree, n cst.NodeID) string {
	if t.Type(n) != "method_invocation" {
		return ""
	}
	if name := t.ChildByField(n, "name"); name != cst.None {
		return t.Text(name)
	}
	return ""
}

// Receiver returns the object a method is invoked on, or None.
func Receiver(t *cst.Tree, n cst.NodeID) cst.NodeID {
	return t.ChildByField(n, "object")
}

// CreatedType returns the type name of an object creation expression without
// type arguments, e.g. "java.net.URL" for "new java.net.URL(s)".
func CreatedType(t *cst.Tree, n cst.NodeID) string {
	if t.Type(n) != "object_creation_expression" {
		return ""
	}
	typ := t.ChildByField(n, "type")
	if typ == cst.None {
		return ""
	}
	s := t.Text(typ)
	if i := strings.IndexByte(s, '<'); i >= 0 {
		s = s[:i]
	}
	return strings.Join(strings.Fields(s), "")
}

// IsAnonymousClass reports whether an object creation declares a class body.
func IsAnonymousClass(t *cst.Tree, n cst.NodeID) bool {
	for _, c := range t.NamedChildren(n) {
		if t.Type(c) == "class_body" {
			return true
		}
	}
	return false
}

// TypeIs reports whether name refers to the class fqn, either by its simple
// name or fully qualified.
func TypeIs(name, fqn string) bool {
	return name == fqn || name == SimpleName(fqn)
}

// SimpleName returns the last component of a dotted name.
func SimpleName(fqn string) string {
	return fqn[strings.LastIndexByte(fqn, '.')+1:]
}

// SameCode reports whether two code snippets are equal ignoring whitespace.
func SameCode(a, b string) bool {
	return compact(a) == compact(b)
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}
