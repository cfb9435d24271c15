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

// Package codemodtest provides helpers for testing codemods against Java
// source text.
package codemodtest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/osv-codefix/codemod"
	"github.com/google/osv-codefix/cst/javaparse"
	"github.com/google/osv-codefix/finding"
	"github.com/google/osv-codefix/remediation"
)

// Path is the file path reported for the source under test.
const Path = "src/main/java/com/example/Example.java"

// Finding returns a finding of the given rule at line:column in Path.
// A zero column means the tool reported none.
func Finding(id, rule string, line, column int) finding.Finding {
	return finding.Finding{
		ID:       id,
		RuleID:   rule,
		FilePath: Path,
		Line:     line,
		Column:   column,
		Tool:     "codemodtest",
	}
}

// LineOf returns the 1-based line of the first occurrence of substr in src,
// and the 1-based column of its first byte. It fails the test if substr isn't
// found.
func LineOf(t *testing.T, src, substr string) (line, column int) {
	t.Helper()
	i := strings.Index(src, substr)
	if i < 0 {
		t.Fatalf("%q not found in source", substr)
	}
	line = strings.Count(src[:i], "\n") + 1
	column = i - strings.LastIndex(src[:i], "\n")
	return line, column
}

// Run parses src and remediates the findings with the codemod. It returns
// the printed tree and the remediation result. The test fails if src doesn't
// parse, if the output isn't valid Java or if a finding isn't accounted for
// exactly once.
func Run(t *testing.T, c codemod.Codemod, src string, findings ...finding.Finding) (string, *remediation.Result) {
	t.Helper()
	tree, err := javaparse.Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("javaparse.Parse(): %v", err)
	}
	res := c.Remediator().RemediateAll(tree, Path, findings)
	if err := remediation.CheckCoverage(findings, res); err != nil {
		t.Errorf("%s: %v", c.Name(), err)
	}
	out := tree.String()
	if _, err := javaparse.Parse(context.Background(), []byte(out)); err != nil {
		t.Errorf("%s produced invalid Java: %v\n%s", c.Name(), err, out)
	}
	return out, res
}

// ExpectIdempotent runs the codemod on src with a finding of rule on every
// line and fails the test if anything changes.
func ExpectIdempotent(t *testing.T, c codemod.Codemod, rule, src string) {
	t.Helper()
	var findings []finding.Finding
	for i := range strings.Count(src, "\n") + 1 {
		findings = append(findings, Finding(fmt.Sprintf("rerun-%d", i+1), rule, i+1, 0))
	}
	out, res := Run(t, c, src, findings...)
	if len(res.Changes) != 0 {
		t.Errorf("%s changed already fixed code, got %d changes", c.Name(), len(res.Changes))
	}
	if out != src {
		t.Errorf("%s changed already fixed code:\n%s", c.Name(), out)
	}
}

// Reasons returns the reasons of the unfixed findings in order.
func Reasons(res *remediation.Result) []string {
	reasons := []string{}
	for _, u := range res.Unfixed {
		reasons = append(reasons, u.Reason)
	}
	return reasons
}

// ChangedLines returns the line numbers of the changes in order.
func ChangedLines(res *remediation.Result) []int {
	lines := []int{}
	for _, c := range res.Changes {
		lines = append(lines, c.LineNumber)
	}
	return lines
}
