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
	"context"
	"fmt"
	"strconv"

	"github.com/google/osv-codefix/cst"
	"github.com/google/osv-codefix/cst/javaparse"
)

// Fragments are parsed inside a minimal compilation unit and grafted into
// the target tree, so inserted code has the same structure as parsed code.
const (
	exprPrefix   = "class CodefixFragment { Object f = "
	exprSuffix   = "; }"
	stmtPrefix   = "class CodefixFragment { void f() {\n"
	stmtSuffix   = "\n} }"
	memberPrefix = "class CodefixFragment {\n"
	memberSuffix = "\n}"
)

func parseFragment(src string) (*cst.Tree, error) {
	ft, err := javaparse.Parse(context.Background(), []byte(src))
	if err != nil {
		return nil, fmt.Errorf("invalid generated code %q: %w", src, err)
	}
	return ft, nil
}

func findFirst(t *cst.Tree, typ string) cst.NodeID {
	found := cst.None
	t.Walk(func(id cst.NodeID) bool {
		if found != cst.None {
			return false
		}
		if t.Type(id) == typ {
			found = id
			return false
		}
		return true
	})
	return found
}

// Expression parses a Java expression and grafts it into t, detached.
func Expression(t *cst.Tree, code string) (cst.NodeID, error) {
	ft, err := parseFragment(exprPrefix + code + exprSuffix)
	if err != nil {
		return cst.None, err
	}
	decl := findFirst(ft, "variable_declarator")
	if decl == cst.None || ft.ChildByField(decl, "value") == cst.None {
		return cst.None, fmt.Errorf("%q is not an expression", code)
	}
	return t.Graft(ft, ft.ChildByField(decl, "value")), nil
}

// Statement parses a single Java statement and grafts it into t, detached.
func Statement(t *cst.Tree, code string) (cst.NodeID, error) {
	ft, err := parseFragment(stmtPrefix + code + stmtSuffix)
	if err != nil {
		return cst.None, err
	}
	body := findFirst(ft, "block")
	if body == cst.None {
		return cst.None, fmt.Errorf("%q is not a statement", code)
	}
	stmts := ft.NamedChildren(body)
	if len(stmts) != 1 {
		return cst.None, fmt.Errorf("%q is not a single statement", code)
	}
	return t.Graft(ft, stmts[0]), nil
}

// Member parses a class member declaration and grafts it into t, detached.
func Member(t *cst.Tree, code string) (cst.NodeID, error) {
	ft, err := parseFragment(memberPrefix + code + memberSuffix)
	if err != nil {
		return cst.None, err
	}
	body := findFirst(ft, "class_body")
	if body == cst.None {
		return cst.None, fmt.Errorf("%q is not a single member", code)
	}
	members := ft.NamedChildren(body)
	if len(members) != 1 {
		return cst.None, fmt.Errorf("%q is not a single member", code)
	}
	return t.Graft(ft, members[0]), nil
}

func importDecl(t *cst.Tree, fqn string) (cst.NodeID, error) {
	ft, err := parseFragment("import " + fqn + ";")
	if err != nil {
		return cst.None, err
	}
	decl := findFirst(ft, "import_declaration")
	if decl == cst.None {
		return cst.None, fmt.Errorf("invalid import %q", fqn)
	}
	return t.Graft(ft, decl), nil
}

// Hole returns the placeholder for the i'th node passed to Substitute.
func Hole(i int) string { return "$" + strconv.Itoa(i) }

// Substitute replaces target with the expression in template. Each
// placeholder Hole(i) in the template is then filled with nodes[i], which may
// be target itself or nodes from inside it. Filled nodes keep their own
// whitespace and text.
func Substitute(t *cst.Tree, target cst.NodeID, template string, nodes ...cst.NodeID) (cst.NodeID, error) {
	repl, err := Expression(t, template)
	if err != nil {
		return cst.None, err
	}
	holes := make([]cst.NodeID, len(nodes))
	for i := range holes {
		holes[i] = cst.None
	}
	collectHoles(t, repl, holes)
	for i, h := range holes {
		if h == cst.None {
			return cst.None, fmt.Errorf("template %q has no placeholder %s", template, Hole(i))
		}
	}
	t.Replace(target, repl)
	for i, n := range nodes {
		if t.Parent(n) != cst.None {
			t.Detach(n)
		}
		t.SetField(n, "")
		t.Replace(holes[i], n)
	}
	return repl, nil
}

func collectHoles(t *cst.Tree, n cst.NodeID, holes []cst.NodeID) {
	if t.Type(n) == "identifier" {
		for i := range holes {
			if holes[i] == cst.None && t.Text(n) == Hole(i) {
				holes[i] = n
				return
			}
		}
	}
	for _, c := range t.Children(n) {
		collectHoles(t, c, holes)
	}
}
