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

// Package search resolves groups of findings to the single syntax node each
// group points at.
package search

import (
	"github.com/google/osv-codefix/cst"
	"github.com/google/osv-codefix/finding"
	"github.com/google/osv-codefix/locate"
	"github.com/google/osv-codefix/result"
)

// Reasons reported for findings that can't be resolved to a node.
const (
	ReasonNoCalls       = "no calls at that location"
	ReasonMultipleCalls = "multiple calls found at that location"
)

// Shape is one code shape a vulnerability class recognizes.
type Shape struct {
	Name  string
	Match locate.Matcher
}

// Candidate is a group of findings resolved to exactly one node.
type Candidate struct {
	Node cst.NodeID
	// Shape is the index of the shape that matched Node.
	Shape int
	// Findings share the same line and column, in input order. Never empty.
	Findings []finding.Finding
}

// Result partitions the searched findings.
type Result struct {
	Candidates []*Candidate
	Unfixable  []*result.UnfixedFinding
}

// Search groups findings by location and resolves every group with the
// shapes. Shapes are tried in order and the first one that locates any node
// decides the group: exactly one node yields a candidate, more than one makes
// every finding of the group unfixable. The output only depends on the tree
// and the order of findings. Columns are converted to bytes against the
// parsed source first.
func Search(t *cst.Tree, path string, findings []finding.Finding, shapes []Shape) *Result {
	res := &Result{}
	inBytes := make([]finding.Finding, 0, len(findings))
	for _, f := range findings {
		inBytes = append(inBytes, f.InBytes(t.SourceLine))
	}
	for _, g := range group(inBytes) {
		var nodes []cst.NodeID
		shape := -1
		for i, s := range shapes {
			if nodes = locate.Nodes(t, g.key.Line, g.key.Column, s.Match); len(nodes) > 0 {
				shape = i
				break
			}
		}
		switch len(nodes) {
		case 1:
			res.Candidates = append(res.Candidates, &Candidate{Node: nodes[0], Shape: shape, Findings: g.findings})
		case 0:
			res.Unfixable = append(res.Unfixable, Unfixed(path, g.findings, ReasonNoCalls)...)
		default:
			res.Unfixable = append(res.Unfixable, Unfixed(path, g.findings, ReasonMultipleCalls)...)
		}
	}
	return res
}

// Unfixed returns one UnfixedFinding with the given reason per finding.
func Unfixed(path string, fs []finding.Finding, reason string) []*result.UnfixedFinding {
	out := make([]*result.UnfixedFinding, 0, len(fs))
	for _, f := range fs {
		out = append(out, &result.UnfixedFinding{
			FindingID:  f.ID,
			RuleID:     f.RuleID,
			Path:       path,
			LineNumber: f.Line,
			Reason:     reason,
		})
	}
	return out
}

type findingGroup struct {
	key      finding.Key
	findings []finding.Finding
}

// group buckets findings by key, keeping the first-appearance order of keys.
func group(findings []finding.Finding) []*findingGroup {
	var groups []*findingGroup
	byKey := make(map[finding.Key]*findingGroup)
	for _, f := range findings {
		g, ok := byKey[f.Key()]
		if !ok {
			g = &findingGroup{key: f.Key()}
			byKey[f.Key()] = g
			groups = append(groups, g)
		}
		g.findings = append(g.findings, f)
	}
	return groups
}
