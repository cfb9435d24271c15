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

// Package deserialization implements a codemod that hardens Java
// deserialization against gadget chain attacks.
package deserialization

import (
	"github.com/google/osv-codefix/codemod"
	"github.com/google/osv-codefix/codemod/internal/javaedit"
	"github.com/google/osv-codefix/cst"
	"github.com/google/osv-codefix/remediation"
)

const (
	// Name is the unique name of this codemod.
	Name = "java/harden-java-deserialization"

	objectInputStream  = "java.io.ObjectInputStream"
	objectInputFilters = codemod.ToolkitPackage + ".ObjectInputFilters"
)

var rules = []string{
	"java/unsafe-deserialization",
	"javasecurity:S5135",
	"java.lang.security.audit.object-deserialization.object-deserialization",
}

// Codemod installs an ObjectInputFilter on new ObjectInputStreams.
type Codemod struct{}

// New returns the codemod.
func New() codemod.Codemod { return &Codemod{} }

// Name of the codemod.
func (Codemod) Name() string { return Name }

// Version of the codemod.
func (Codemod) Version() int { return 0 }

// Summary of the change.
func (Codemod) Summary() string { return "Harden Java deserialization calls against attack" }

// Description of the vulnerability and the fix.
func (Codemod) Description() string {
	return "Deserializing untrusted data with ObjectInputStream allows attackers to " +
		"instantiate gadget classes. A filter rejecting known gadget types is " +
		"installed on the stream before any object is read."
}

// Rules handled by the codemod.
func (Codemod) Rules() []string { return rules }

// Remediator returns the codemod's remediator.
func (Codemod) Remediator() *remediation.Remediator {
	return remediation.NewRemediator(remediation.Shape{
		Name:        "object-input-stream",
		Match:       isUnprotectedStream,
		Description: "Hardened the ObjectInputStream against deserialization attacks",
		Strategies: []remediation.Strategy{
			{Name: "inject-guard-statement", Fix: guardAfterDeclaration},
			{Name: "replace-construction", Fix: replaceConstruction},
		},
	})
}

func isUnprotectedStream(t *cst.Tree, n cst.NodeID) bool {
	if !javaedit.TypeIs(javaedit.CreatedType(t, n), objectInputStream) {
		return false
	}
	if len(javaedit.Arguments(t, n)) != 1 {
		return false
	}
	decl, name, err := javaedit.EnclosingLocalVariable(t, n)
	if err != nil {
		return true
	}
	return !isGuard(t, t.NextSibling(decl), name)
}

func guardCall(filters, variable string) string {
	return filters + ".enableObjectFilterIfUnprotected(" + variable + ");"
}

func isGuard(t *cst.Tree, stmt cst.NodeID, variable string) bool {
	if stmt == cst.None {
		return false
	}
	text := t.Text(stmt)
	return javaedit.SameCode(text, guardCall(objectInputFilters, variable)) ||
		javaedit.SameCode(text, guardCall(javaedit.SimpleName(objectInputFilters), variable))
}

// guardAfterDeclaration enables the filter right after the stream is
// assigned to a local variable.
func guardAfterDeclaration(t *cst.Tree, n cst.NodeID) remediation.Outcome {
	if javaedit.IsAnonymousClass(t, n) {
		return remediation.Refused("anonymous ObjectInputStream subclasses are not supported")
	}
	decl, variable, err := javaedit.EnclosingLocalVariable(t, n)
	if err != nil {
		return remediation.Refused("%v", err)
	}
	filters, err := javaedit.AddImport(t, objectInputFilters)
	if err != nil {
		return remediation.Refused("%v", err)
	}
	if _, err := javaedit.InsertStatementAfter(t, decl, guardCall(filters, variable)); err != nil {
		return remediation.Refused("%v", err)
	}
	return remediation.Fixed(codemod.ToolkitDependency())
}

// replaceConstruction creates the stream through the toolkit's factory,
// which installs the filter.
func replaceConstruction(t *cst.Tree, n cst.NodeID) remediation.Outcome {
	if javaedit.IsAnonymousClass(t, n) {
		return remediation.Refused("anonymous ObjectInputStream subclasses are not supported")
	}
	args := javaedit.Arguments(t, n)
	if len(args) != 1 {
		return remediation.Refused("expected 1 argument, found %d", len(args))
	}
	if javaedit.HasComments(t, t.ChildByField(n, "arguments")) {
		return remediation.Refused("comments in the argument list would be lost")
	}
	filters, err := javaedit.AddImport(t, objectInputFilters)
	if err != nil {
		return remediation.Refused("%v", err)
	}
	if _, err := javaedit.Substitute(t, n, filters+".createSafeObjectInputStream($0)", args[0]); err != nil {
		return remediation.Refused("%v", err)
	}
	return remediation.Fixed(codemod.ToolkitDependency())
}
