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
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/osv-codefix/cst"
)

// Errors returned when code can't be edited safely.
var (
	ErrNoStatement    = errors.New("no enclosing statement")
	ErrUnsupportedCtx = errors.New("unsupported code context")
)

var statementTypes = []string{
	"expression_statement",
	"local_variable_declaration",
	"return_statement",
	"if_statement",
	"while_statement",
	"for_statement",
	"enhanced_for_statement",
	"do_statement",
	"throw_statement",
	"try_statement",
	"try_with_resources_statement",
	"synchronized_statement",
	"switch_statement",
	"labeled_statement",
	"yield_statement",
	"assert_statement",
	"break_statement",
	"continue_statement",
}

// Nodes holding a list of statements.
var containerTypes = []string{"block", "constructor_body", "switch_block_statement_group"}

// Boundaries a statement search doesn't cross.
var boundaryTypes = []string{
	"lambda_expression",
	"class_body",
	"interface_body",
	"enum_body",
	"method_declaration",
	"constructor_declaration",
	"field_declaration",
	"explicit_constructor_invocation",
}

func isContainer(t *cst.Tree, n cst.NodeID) bool {
	return n != cst.None && slices.Contains(containerTypes, t.Type(n))
}

// isBody reports whether stmt is the single-statement body of a control
// statement, e.g. the consequence of an if without braces.
func isBody(t *cst.Tree, stmt cst.NodeID) bool {
	p := t.Parent(stmt)
	if p == cst.None {
		return false
	}
	switch t.Type(p) {
	case "labeled_statement", "switch_rule":
		return true
	case "if_statement", "while_statement", "for_statement", "enhanced_for_statement", "do_statement":
		f := t.Field(stmt)
		return f == "consequence" || f == "alternative" || f == "body"
	}
	return false
}

// EnclosingStatement returns the innermost statement containing n that sits
// in a statement list or is the body of a control statement.
func EnclosingStatement(t *cst.Tree, n cst.NodeID) (cst.NodeID, error) {
	for cur := n; cur != cst.None; cur = t.Parent(cur) {
		typ := t.Type(cur)
		if slices.Contains(statementTypes, typ) && (isContainer(t, t.Parent(cur)) || isBody(t, cur)) {
			return cur, nil
		}
		if slices.Contains(boundaryTypes, typ) {
			return cst.None, fmt.Errorf("%w: inside %s", ErrNoStatement, strings.ReplaceAll(typ, "_", " "))
		}
	}
	return cst.None, ErrNoStatement
}

// EnclosingLocalVariable returns the local variable declaration that
// initializes a variable with expr, and the variable's name.
func EnclosingLocalVariable(t *cst.Tree, expr cst.NodeID) (decl cst.NodeID, name string, err error) {
	declarator := t.Parent(expr)
	if declarator == cst.None || t.Type(declarator) != "variable_declarator" || t.Field(expr) != "value" {
		return cst.None, "", fmt.Errorf("%w: not a variable initializer", ErrUnsupportedCtx)
	}
	decl = t.Parent(declarator)
	if decl == cst.None || t.Type(decl) != "local_variable_declaration" || !isContainer(t, t.Parent(decl)) {
		return cst.None, "", fmt.Errorf("%w: not a local variable declaration", ErrUnsupportedCtx)
	}
	nameID := t.ChildByField(declarator, "name")
	if nameID == cst.None {
		return cst.None, "", fmt.Errorf("%w: unnamed variable", ErrUnsupportedCtx)
	}
	return decl, t.Text(nameID), nil
}

// Newline returns the line terminator used by the file.
func Newline(t *cst.Tree) string {
	nl := "\n"
	done := false
	t.Walk(func(id cst.NodeID) bool {
		if done {
			return false
		}
		if t.IsLeaf(id) {
			if lead := t.Leading(id); strings.Contains(lead, "\n") {
				if strings.Contains(lead, "\r\n") {
					nl = "\r\n"
				}
				done = true
			}
		}
		return !done
	})
	return nl
}

// IndentOf returns the indentation of the line holding the first token of n.
func IndentOf(t *cst.Tree, n cst.NodeID) string {
	target := t.FirstLeaf(n)
	indent := ""
	first := true
	done := false
	t.Walk(func(id cst.NodeID) bool {
		if done {
			return false
		}
		if !t.IsLeaf(id) {
			return true
		}
		lead := t.Leading(id)
		if i := strings.LastIndex(lead, "\n"); i >= 0 {
			indent = whitespacePrefix(lead[i+1:])
		} else if first {
			indent = whitespacePrefix(lead)
		}
		first = false
		done = id == target
		return !done
	})
	return indent
}

func whitespacePrefix(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// InsertStatementBefore inserts the statement code immediately before stmt.
// If stmt is the body of a control statement, both are wrapped in a new
// block first.
func InsertStatementBefore(t *cst.Tree, stmt cst.NodeID, code string) (cst.NodeID, error) {
	return insertStatement(t, stmt, code, true)
}

// InsertStatementAfter inserts the statement code immediately after stmt.
// If stmt is the body of a control statement, both are wrapped in a new
// block first.
func InsertStatementAfter(t *cst.Tree, stmt cst.NodeID, code string) (cst.NodeID, error) {
	return insertStatement(t, stmt, code, false)
}

func insertStatement(t *cst.Tree, stmt cst.NodeID, code string, before bool) (cst.NodeID, error) {
	inContainer := isContainer(t, t.Parent(stmt))
	if !inContainer && !isBody(t, stmt) {
		return cst.None, fmt.Errorf("%w: statement is not in a block", ErrUnsupportedCtx)
	}
	n, err := Statement(t, code)
	if err != nil {
		return cst.None, err
	}
	nl := Newline(t)

	if !inContainer {
		wrapInBlock(t, stmt, n, before, nl)
		return n, nil
	}
	lead := t.Leading(stmt)
	if before {
		t.InsertBefore(stmt, n)
		t.SetLeading(n, lead)
		if i := strings.LastIndex(lead, "\n"); i >= 0 {
			t.SetLeading(stmt, nl+lead[i+1:])
		}
		return n, nil
	}
	t.InsertAfter(stmt, n)
	if strings.Contains(lead, "\n") {
		t.SetLeading(n, nl+IndentOf(t, stmt))
	} else {
		t.SetLeading(n, " ")
	}
	return n, nil
}

func wrapInBlock(t *cst.Tree, stmt, extra cst.NodeID, extraFirst bool, nl string) {
	ctrlIndent := IndentOf(t, t.Parent(stmt))
	inner := ctrlIndent + "    "
	lead := t.Leading(stmt)
	if i := strings.LastIndex(lead, "\n"); i >= 0 {
		if ind := whitespacePrefix(lead[i+1:]); len(ind) > len(ctrlIndent) {
			inner = ind
		}
	}
	open := t.NewLeaf("{", " ", "{")
	closing := t.NewLeaf("}", nl+ctrlIndent, "}")
	if extraFirst {
		t.Wrap(stmt, "block", []cst.NodeID{open, extra}, []cst.NodeID{closing})
	} else {
		t.Wrap(stmt, "block", []cst.NodeID{open}, []cst.NodeID{extra, closing})
	}
	t.SetLeading(extra, nl+inner)
	t.SetLeading(stmt, nl+inner)
}
