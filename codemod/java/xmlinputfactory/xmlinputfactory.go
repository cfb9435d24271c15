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

// Package xmlinputfactory implements a codemod that disables external entity
// resolution on XMLInputFactory instances.
package xmlinputfactory

import (
	"github.com/google/osv-codefix/codemod"
	"github.com/google/osv-codefix/codemod/internal/javaedit"
	"github.com/google/osv-codefix/cst"
	"github.com/google/osv-codefix/remediation"
)

const (
	// Name is the unique name of this codemod.
	Name = "java/harden-xmlinputfactory"

	// HelperName is the base name of the injected hardening method.
	HelperName = "hardenXmlInputFactory"

	xmlInputFactory = "javax.xml.stream.XMLInputFactory"
)

var rules = []string{
	"java/xxe",
	"javasecurity:S2755",
	"java.lang.security.audit.xxe.xmlinputfactory-external-entities-enabled.xmlinputfactory-external-entities-enabled",
}

// Codemod hardens new XMLInputFactory instances through an injected helper.
type Codemod struct{}

// New returns the codemod.
func New() codemod.Codemod { return &Codemod{} }

// Name of the codemod.
func (Codemod) Name() string { return Name }

// Version of the codemod.
func (Codemod) Version() int { return 0 }

// Summary of the change.
func (Codemod) Summary() string { return "Introduce protections against XXE attacks" }

// Description of the vulnerability and the fix.
func (Codemod) Description() string {
	return "XMLInputFactory resolves DTDs and external entities by default, which " +
		"allows XML external entity (XXE) attacks. New factories are passed " +
		"through a private helper that disables both features."
}

// Rules handled by the codemod.
func (Codemod) Rules() []string { return rules }

// Remediator returns the codemod's remediator.
func (Codemod) Remediator() *remediation.Remediator {
	return remediation.NewRemediator(remediation.Shape{
		Name:        "new-xml-input-factory",
		Match:       isUnhardenedFactory,
		Description: "Hardened the XMLInputFactory against XXE attacks",
		Strategies:  []remediation.Strategy{{Name: "inject-method", Fix: injectHelper}},
	})
}

func isUnhardenedFactory(t *cst.Tree, n cst.NodeID) bool {
	switch javaedit.MethodName(t, n) {
	case "newInstance", "newFactory":
	default:
		return false
	}
	recv := javaedit.Receiver(t, n)
	if recv == cst.None || !javaedit.TypeIs(t.Text(recv), xmlInputFactory) {
		return false
	}
	return !isHardened(t, n)
}

// isHardened reports whether n is the argument of a hardening helper call.
func isHardened(t *cst.Tree, n cst.NodeID) bool {
	list := t.Parent(n)
	if list == cst.None || t.Type(list) != "argument_list" {
		return false
	}
	call := t.Parent(list)
	return call != cst.None && javaedit.Receiver(t, call) == cst.None &&
		javaedit.VariantName(javaedit.MethodName(t, call), HelperName)
}

func renderHelper(factoryType string) func(name string) string {
	return func(name string) string {
		return "private static " + factoryType + " " + name + "(final " + factoryType + " factory) {\n" +
			"    factory.setProperty(" + factoryType + ".SUPPORT_DTD, false);\n" +
			"    factory.setProperty(" + factoryType + ".IS_SUPPORTING_EXTERNAL_ENTITIES, false);\n" +
			"    return factory;\n" +
			"}"
	}
}

func injectHelper(t *cst.Tree, n cst.NodeID) remediation.Outcome {
	recv := javaedit.Receiver(t, n)
	if recv == cst.None {
		return remediation.Refused("factory call has no receiver")
	}
	name, err := javaedit.InjectMethod(t, n, HelperName, renderHelper(t.Text(recv)))
	if err != nil {
		return remediation.Refused("%v", err)
	}
	if _, err := javaedit.Substitute(t, n, name+"($0)", n); err != nil {
		return remediation.Refused("%v", err)
	}
	return remediation.Fixed()
}
