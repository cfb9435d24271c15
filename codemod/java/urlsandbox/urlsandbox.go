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

// Package urlsandbox implements a codemod that sandboxes URL creation to
// prevent server-side request forgery.
package urlsandbox

import (
	"slices"

	"github.com/google/osv-codefix/codemod"
	"github.com/google/osv-codefix/codemod/internal/javaedit"
	"github.com/google/osv-codefix/cst"
	"github.com/google/osv-codefix/remediation"
)

const (
	// Name is the unique name of this codemod.
	Name = "java/sandbox-url-creation"

	url           = "java.net.URL"
	urls          = codemod.ToolkitPackage + ".Urls"
	hostValidator = codemod.ToolkitPackage + ".HostValidator"
)

var rules = []string{
	"java/ssrf",
	"javasecurity:S5144",
	"java.lang.security.audit.ssrf.ssrf",
}

// RestTemplate methods taking the request URL as first argument.
var restTemplateMethods = []string{"exchange", "getForObject", "getForEntity", "postForObject", "postForEntity"}

// Codemod routes URL creation through Urls.create().
type Codemod struct{}

// New returns the codemod.
func New() codemod.Codemod { return &Codemod{} }

// Name of the codemod.
func (Codemod) Name() string { return Name }

// Version of the codemod.
func (Codemod) Version() int { return 0 }

// Summary of the change.
func (Codemod) Summary() string { return "Sandbox URL creation" }

// Description of the vulnerability and the fix.
func (Codemod) Description() string {
	return "URLs built from user input can point requests at internal services " +
		"or use unexpected protocols. URLs are created through Urls.create(), " +
		"which only allows HTTP(S) and validates the host."
}

// Rules handled by the codemod.
func (Codemod) Rules() []string { return rules }

// Remediator returns the codemod's remediator. The URL constructor shape is
// tried before RestTemplate calls.
func (Codemod) Remediator() *remediation.Remediator {
	return remediation.NewRemediator(
		remediation.Shape{
			Name:        "url-constructor",
			Match:       isURLConstruction,
			Description: "Wrapped URL creation with a sandboxed factory",
			Strategies:  []remediation.Strategy{{Name: "replace-construction", Fix: replaceConstruction}},
		},
		remediation.Shape{
			Name:        "rest-template-call",
			Match:       isRestTemplateCall,
			Description: "Sandboxed the URL passed to RestTemplate",
			Strategies:  []remediation.Strategy{{Name: "wrap-argument", Fix: wrapURLArgument}},
		},
	)
}

func isURLConstruction(t *cst.Tree, n cst.NodeID) bool {
	if !javaedit.TypeIs(javaedit.CreatedType(t, n), url) || javaedit.IsAnonymousClass(t, n) {
		return false
	}
	args := javaedit.Arguments(t, n)
	return len(args) == 1 && !javaedit.IsLiteral(t, args[0])
}

func isRestTemplateCall(t *cst.Tree, n cst.NodeID) bool {
	if !slices.Contains(restTemplateMethods, javaedit.MethodName(t, n)) || javaedit.Receiver(t, n) == cst.None {
		return false
	}
	args := javaedit.Arguments(t, n)
	return len(args) > 0 && !javaedit.IsLiteral(t, args[0]) && !isSandboxed(t, args[0])
}

// isSandboxed matches Urls.create(...).toString().
func isSandboxed(t *cst.Tree, n cst.NodeID) bool {
	if javaedit.MethodName(t, n) != "toString" {
		return false
	}
	inner := javaedit.Receiver(t, n)
	if inner == cst.None || javaedit.MethodName(t, inner) != "create" {
		return false
	}
	recv := javaedit.Receiver(t, inner)
	return recv != cst.None && javaedit.TypeIs(t.Text(recv), urls)
}

func sandboxTemplate(t *cst.Tree) (string, error) {
	u, err := javaedit.AddImport(t, urls)
	if err != nil {
		return "", err
	}
	h, err := javaedit.AddImport(t, hostValidator)
	if err != nil {
		return "", err
	}
	return u + ".create($0, " + u + ".HTTP_PROTOCOLS, " + h + ".ALLOW_ALL)", nil
}

func replaceConstruction(t *cst.Tree, n cst.NodeID) remediation.Outcome {
	args := javaedit.Arguments(t, n)
	if len(args) != 1 {
		return remediation.Refused("expected 1 argument, found %d", len(args))
	}
	if javaedit.HasComments(t, t.ChildByField(n, "arguments")) {
		return remediation.Refused("comments in the argument list would be lost")
	}
	tmpl, err := sandboxTemplate(t)
	if err != nil {
		return remediation.Refused("%v", err)
	}
	if _, err := javaedit.Substitute(t, n, tmpl, args[0]); err != nil {
		return remediation.Refused("%v", err)
	}
	return remediation.Fixed(codemod.ToolkitDependency())
}

func wrapURLArgument(t *cst.Tree, n cst.NodeID) remediation.Outcome {
	args := javaedit.Arguments(t, n)
	if len(args) == 0 {
		return remediation.Refused("no URL argument")
	}
	if isSandboxed(t, args[0]) {
		return remediation.Refused("URL is already sandboxed")
	}
	tmpl, err := sandboxTemplate(t)
	if err != nil {
		return remediation.Refused("%v", err)
	}
	if _, err := javaedit.Substitute(t, args[0], tmpl+".toString()", args[0]); err != nil {
		return remediation.Refused("%v", err)
	}
	return remediation.Fixed(codemod.ToolkitDependency())
}
