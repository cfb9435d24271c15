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

// Package headernewlines implements a codemod that strips newlines from
// values written to HTTP response headers.
package headernewlines

import (
	"github.com/google/osv-codefix/codemod"
	"github.com/google/osv-codefix/codemod/internal/javaedit"
	"github.com/google/osv-codefix/cst"
	"github.com/google/osv-codefix/remediation"
)

const (
	// Name is the unique name of this codemod.
	Name = "java/strip-http-header-newlines"

	newlines = codemod.ToolkitPackage + ".Newlines"
)

var rules = []string{
	"java/http-response-splitting",
	"javasecurity:S5167",
	"java.lang.security.audit.crlf-injection.http-response-splitting",
}

// Codemod wraps header values in Newlines.stripAll().
type Codemod struct{}

// New returns the codemod.
func New() codemod.Codemod { return &Codemod{} }

// Name of the codemod.
func (Codemod) Name() string { return Name }

// Version of the codemod.
func (Codemod) Version() int { return 0 }

// Summary of the change.
func (Codemod) Summary() string { return "Strip newlines from HTTP header values" }

// Description of the vulnerability and the fix.
func (Codemod) Description() string {
	return "Header values containing CR or LF characters let attackers inject " +
		"additional headers or split the response. The value passed to " +
		"setHeader()/addHeader() is passed through Newlines.stripAll() first."
}

// Rules handled by the codemod.
func (Codemod) Rules() []string { return rules }

// Remediator returns the codemod's remediator.
func (Codemod) Remediator() *remediation.Remediator {
	return remediation.NewRemediator(remediation.Shape{
		Name:        "header-write",
		Match:       isHeaderWrite,
		Description: "Added a call to strip newlines from the header value",
		Strategies:  []remediation.Strategy{{Name: "wrap-argument", Fix: wrapValue}},
	})
}

func isHeaderWrite(t *cst.Tree, n cst.NodeID) bool {
	switch javaedit.MethodName(t, n) {
	case "setHeader", "addHeader":
	default:
		return false
	}
	if javaedit.Receiver(t, n) == cst.None {
		return false
	}
	args := javaedit.Arguments(t, n)
	return len(args) == 2 && !javaedit.IsStringLiteral(t, args[1]) && !isStripAll(t, args[1])
}

func isStripAll(t *cst.Tree, n cst.NodeID) bool {
	recv := javaedit.Receiver(t, n)
	return javaedit.MethodName(t, n) == "stripAll" && recv != cst.None && javaedit.TypeIs(t.Text(recv), newlines)
}

func wrapValue(t *cst.Tree, n cst.NodeID) remediation.Outcome {
	args := javaedit.Arguments(t, n)
	if len(args) != 2 {
		return remediation.Refused("expected 2 arguments, found %d", len(args))
	}
	value := args[1]
	if isStripAll(t, value) {
		return remediation.Refused("header value is already sanitized")
	}
	name, err := javaedit.AddImport(t, newlines)
	if err != nil {
		return remediation.Refused("%v", err)
	}
	if _, err := javaedit.Substitute(t, value, name+".stripAll($0)", value); err != nil {
		return remediation.Refused("%v", err)
	}
	return remediation.Fixed(codemod.ToolkitDependency())
}
