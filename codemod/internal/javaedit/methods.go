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

package javaedit

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/osv-codefix/cst"
)

// enclosingType returns the declaration that static helpers for code at n
// can be added to, and the node holding its members.
func enclosingType(t *cst.Tree, n cst.NodeID) (decl, body cst.NodeID, err error) {
	for a := range t.Ancestors(n) {
		switch t.Type(a) {
		case "interface_body", "annotation_type_body":
			return cst.None, cst.None, fmt.Errorf("%w: inside an interface", ErrUnsupportedCtx)
		case "enum_body_declarations":
			return t.Parent(t.Parent(a)), a, nil
		case "class_body":
			p := t.Parent(a)
			switch t.Type(p) {
			case "record_declaration":
				return p, a, nil
			case "class_declaration":
				if err := checkStaticContext(t, p); err != nil {
					return cst.None, cst.None, err
				}
				return p, a, nil
			default:
				return cst.None, cst.None, fmt.Errorf("%w: inside an anonymous class", ErrUnsupportedCtx)
			}
		}
	}
	return cst.None, cst.None, fmt.Errorf("%w: not inside a class", ErrUnsupportedCtx)
}

// checkStaticContext rejects classes that can't declare static methods on
// older Java versions: inner (non-static nested) and local classes.
func checkStaticContext(t *cst.Tree, class cst.NodeID) error {
	p := t.Parent(class)
	if p == cst.None || t.Type(p) == "program" {
		return nil
	}
	switch t.Type(p) {
	case "class_body", "enum_body_declarations":
		if !HasModifier(t, class, "static") {
			return fmt.Errorf("%w: inside an inner class", ErrUnsupportedCtx)
		}
		return nil
	case "interface_body":
		return nil
	}
	return fmt.Errorf("%w: inside a local class", ErrUnsupportedCtx)
}

// HasModifier reports whether a declaration has the given modifier keyword.
func HasModifier(t *cst.Tree, decl cst.NodeID, modifier string) bool {
	for _, c := range t.Children(decl) {
		if t.Type(c) == "modifiers" {
			return slices.Contains(strings.Fields(t.Text(c)), modifier)
		}
	}
	return false
}

// MethodNames returns the names of the methods declared directly in the
// type enclosing n.
func MethodNames(t *cst.Tree, n cst.NodeID) []string {
	_, body, err := enclosingType(t, n)
	if err != nil {
		return nil
	}
	var names []string
	for _, m := range methods(t, body) {
		names = append(names, t.Text(t.ChildByField(m, "name")))
	}
	return names
}

func methods(t *cst.Tree, body cst.NodeID) []cst.NodeID {
	var out []cst.NodeID
	for _, c := range t.NamedChildren(body) {
		if t.Type(c) == "method_declaration" && t.ChildByField(c, "name") != cst.None {
			out = append(out, c)
		}
	}
	return out
}

// VariantName reports whether name is base or base followed by "_N".
func VariantName(name, base string) bool {
	if name == base {
		return true
	}
	suffix, ok := strings.CutPrefix(name, base+"_")
	if !ok {
		return false
	}
	n, err := strconv.Atoi(suffix)
	return err == nil && n > 0
}

// InjectMethod adds a helper method rendered by render to the type enclosing
// n and returns its name. A method that render would produce under its own
// name is reused. Otherwise the first free name of base, base_1, base_2, ...
// is used. Lines after the first one of the rendered code are indented
// relative to the method.
func InjectMethod(t *cst.Tree, n cst.NodeID, base string, render func(name string) string) (string, error) {
	decl, body, err := enclosingType(t, n)
	if err != nil {
		return "", err
	}
	used := make(map[string]bool)
	for _, m := range methods(t, body) {
		name := t.Text(t.ChildByField(m, "name"))
		used[name] = true
		if VariantName(name, base) && SameCode(t.Text(m), render(name)) {
			return name, nil
		}
	}
	name := base
	for i := 1; used[name]; i++ {
		name = base + "_" + strconv.Itoa(i)
	}

	nl := Newline(t)
	indent := memberIndent(t, decl, body)
	m, err := Member(t, reindent(render(name), indent, nl))
	if err != nil {
		return "", err
	}

	hasMembers := slices.ContainsFunc(t.NamedChildren(body), func(c cst.NodeID) bool { return !isComment(t, c) })
	kids := t.Children(body)
	if len(kids) > 0 && t.Type(kids[len(kids)-1]) == "}" {
		closing := kids[len(kids)-1]
		t.InsertBefore(closing, m)
		if !strings.Contains(t.Leading(closing), "\n") {
			t.SetLeading(closing, nl+IndentOf(t, decl))
		}
	} else {
		t.AppendChild(body, m)
	}
	if hasMembers {
		t.SetLeading(m, nl+nl+indent)
	} else {
		t.SetLeading(m, nl+indent)
	}
	return name, nil
}

func memberIndent(t *cst.Tree, decl, body cst.NodeID) string {
	for _, c := range t.NamedChildren(body) {
		if lead := t.Leading(c); strings.Contains(lead, "\n") {
			return whitespacePrefix(lead[strings.LastIndex(lead, "\n")+1:])
		}
	}
	return IndentOf(t, decl) + "    "
}

func reindent(code, indent, nl string) string {
	lines := strings.Split(code, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, nl)
}
