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

// Package codemod provides the interface for remediation plugins, each of
// which fixes one class of vulnerability.
package codemod

import (
	"github.com/google/osv-codefix/plugin"
	"github.com/google/osv-codefix/remediation"
	"github.com/google/osv-codefix/result"
)

// Codemod is the interface for a remediation plugin.
type Codemod interface {
	plugin.Plugin
	// Summary is a one line description of the change the codemod makes.
	Summary() string
	// Description explains the vulnerability and the fix.
	Description() string
	// Rules returns the IDs of the detector rules whose findings the codemod
	// fixes.
	Rules() []string
	// Remediator returns a new remediator with the codemod's shapes and
	// strategies.
	Remediator() *remediation.Remediator
}

// ToolkitCoordinate is the Maven coordinate of the Java security toolkit the
// generated code calls into.
const ToolkitCoordinate = "io.github.pixee:java-security-toolkit:1.2.1"

// ToolkitPackage is the Java package of the security toolkit.
const ToolkitPackage = "io.github.pixee.security"

// ToolkitDependency returns the dependency on the Java security toolkit.
func ToolkitDependency() *result.Dependency {
	return &result.Dependency{
		Coordinate:  ToolkitCoordinate,
		Description: "This library holds security tools for protecting Java API calls.",
	}
}

// Handles reports whether the codemod fixes findings of the rule.
func Handles(c Codemod, rule string) bool {
	for _, r := range c.Rules() {
		if r == rule {
			return true
		}
	}
	return false
}
