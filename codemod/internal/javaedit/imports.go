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
	"slices"
	"strings"

	"github.com/google/osv-codefix/cst"
)

type importDeclInfo struct {
	id       cst.NodeID
	path     string
	static   bool
	wildcard bool
}

func parseImport(t *cst.Tree, id cst.NodeID) importDeclInfo {
	s := strings.TrimSpace(strings.TrimPrefix(t.Text(id), "import"))
	info := importDeclInfo{id: id}
	if rest, ok := strings.CutPrefix(s, "static"); ok && rest != strings.TrimLeft(rest, " \t\r\n") {
		info.static = true
		s = rest
	}
	info.path = compact(strings.TrimSuffix(strings.TrimSpace(s), ";"))
	info.wildcard = strings.HasSuffix(info.path, ".*")
	return info
}

func importDecls(t *cst.Tree) []importDeclInfo {
	var out []importDeclInfo
	for _, c := range t.Children(t.Root()) {
		if t.Type(c) == "import_declaration" {
			out = append(out, parseImport(t, c))
		}
	}
	return out
}

// PackageName returns the package declared by the file, "" for the default
// package.
func PackageName(t *cst.Tree) string {
	for _, c := range t.Children(t.Root()) {
		if t.Type(c) == "package_declaration" {
			s := strings.TrimSpace(strings.TrimPrefix(t.Text(c), "package"))
			return compact(strings.TrimSuffix(s, ";"))
		}
	}
	return ""
}

var typeDeclarations = []string{"class_declaration", "interface_declaration", "enum_declaration", "record_declaration", "annotation_type_declaration"}

func declaresType(t *cst.Tree, simple string) bool {
	found := false
	t.Walk(func(id cst.NodeID) bool {
		if found {
			return false
		}
		if slices.Contains(typeDeclarations, t.Type(id)) {
			name := t.ChildByField(id, "name")
			found = name != cst.None && t.Text(name) == simple
		}
		return !found
	})
	return found
}

// IsImported reports whether the class fqn can be referred to by its simple
// name, either through an import or because it's in the same package.
func IsImported(t *cst.Tree, fqn string) bool {
	simple := SimpleName(fqn)
	pkg := strings.TrimSuffix(strings.TrimSuffix(fqn, simple), ".")
	if PackageName(t) == pkg {
		return true
	}
	for _, im := range importDecls(t) {
		if im.static {
			continue
		}
		if im.path == fqn || (im.wildcard && strings.TrimSuffix(im.path, ".*") == pkg) {
			return true
		}
	}
	return false
}

// AddImport makes the class fqn available to the file and returns the name
// code should use to refer to it: the simple name, or the fully qualified
// name when the simple name already refers to something else.
func AddImport(t *cst.Tree, fqn string) (string, error) {
	simple := SimpleName(fqn)
	if IsImported(t, fqn) {
		return simple, nil
	}
	imps := importDecls(t)
	for _, im := range imps {
		if !im.wildcard && SimpleName(im.path) == simple {
			return fqn, nil
		}
	}
	if declaresType(t, simple) {
		return fqn, nil
	}

	decl, err := importDecl(t, fqn)
	if err != nil {
		return "", err
	}
	nl := Newline(t)

	var regular []importDeclInfo
	for _, im := range imps {
		if !im.static {
			regular = append(regular, im)
		}
	}
	if len(regular) == 0 {
		regular = imps
	}
	if len(regular) > 0 {
		after := cst.None
		for _, im := range regular {
			if im.path < fqn {
				after = im.id
			}
		}
		if after != cst.None {
			t.InsertAfter(after, decl)
			t.SetLeading(decl, nl)
			return simple, nil
		}
		first := regular[0].id
		t.InsertBefore(first, decl)
		t.SetLeading(decl, t.Leading(first))
		t.SetLeading(first, nl)
		return simple, nil
	}

	root := t.Root()
	for _, c := range t.Children(root) {
		if t.Type(c) == "package_declaration" {
			t.InsertAfter(c, decl)
			t.SetLeading(decl, nl+nl)
			return simple, nil
		}
	}
	for _, c := range t.Children(root) {
		if !isComment(t, c) {
			t.InsertBefore(c, decl)
			t.SetLeading(decl, t.Leading(c))
			t.SetLeading(c, nl+nl)
			return simple, nil
		}
	}
	t.AppendChild(root, decl)
	return simple, nil
}
