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

package remediation

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"
	"github.com/google/osv-codefix/cst"
	"github.com/google/osv-codefix/finding"
	"github.com/google/osv-codefix/log"
	"github.com/google/osv-codefix/result"
	"github.com/google/osv-codefix/search"
)

// Remediator resolves findings of one vulnerability class and fixes them.
type Remediator struct {
	// Shapes are searched in order, see search.Search.
	Shapes []Shape
}

// NewRemediator returns a Remediator for the given shapes.
func NewRemediator(shapes ...Shape) *Remediator {
	return &Remediator{Shapes: shapes}
}

// Result is the outcome of remediating one file for one vulnerability class.
// Every input finding is either in exactly one change or in Unfixed.
type Result struct {
	Changes []*result.CodemodChange
	Unfixed []*result.UnfixedFinding
}

// RemediateAll searches the tree for the findings and runs the strategy chain
// of the matched shape on every candidate. Candidates are processed in search
// order and each one is changed by at most one strategy.
func (r *Remediator) RemediateAll(t *cst.Tree, path string, findings []finding.Finding) *Result {
	shapes := make([]search.Shape, 0, len(r.Shapes))
	for _, s := range r.Shapes {
		shapes = append(shapes, search.Shape{Name: s.Name, Match: s.Match})
	}
	sr := search.Search(t, path, findings, shapes)

	res := &Result{}
	for _, c := range sr.Candidates {
		shape := r.Shapes[c.Shape]
		out := r.runChain(t, path, c.Node, shape)
		if out.IsFixed() {
			res.Changes = append(res.Changes, &result.CodemodChange{
				LineNumber:      c.Findings[0].Line,
				FixedFindingIDs: finding.IDs(c.Findings),
				Dependencies:    out.Dependencies(),
				Description:     shape.Description,
			})
			continue
		}
		reason := out.Reason()
		if reason == "" {
			reason = ReasonUnrecognizedShape
		}
		res.Unfixed = append(res.Unfixed, search.Unfixed(path, c.Findings, reason)...)
	}
	res.Unfixed = append(res.Unfixed, sr.Unfixable...)
	return res
}

func (r *Remediator) runChain(t *cst.Tree, path string, n cst.NodeID, shape Shape) Outcome {
	var last Outcome
	for _, s := range shape.Strategies {
		out := try(t, n, s)
		if out.IsFixed() {
			log.Debugf("%s:%d: %s fixed by %s", path, t.Start(n).Line, shape.Name, s.Name)
			return out
		}
		log.Debugf("%s:%d: %s refused by %s: %s", path, t.Start(n).Line, shape.Name, s.Name, out.Reason())
		last = out
	}
	return last
}

// try runs a single strategy. A strategy that panics, or that refuses after
// changing the tree, is rolled back and treated as refused.
func try(t *cst.Tree, n cst.NodeID, s Strategy) (out Outcome) {
	if !t.Attached(n) {
		return Refused("matched code was changed by an earlier fix")
	}
	snap := t.Snapshot()
	rev := t.Revision()
	defer func() {
		if p := recover(); p != nil {
			log.Warnf("strategy %s panicked, rolling back: %v", s.Name, p)
			t.Restore(snap)
			out = Refused("strategy %s failed: %v", s.Name, p)
		}
	}()
	out = s.Fix(t, n)
	if !out.IsFixed() && t.Revision() != rev {
		log.Warnf("strategy %s refused after modifying the tree, rolling back", s.Name)
		t.Restore(snap)
	}
	return out
}

// CheckCoverage verifies that every finding ends up either in exactly one
// change or in exactly one unfixed record.
func CheckCoverage(findings []finding.Finding, res *Result) error {
	want := stringset.New(finding.IDs(findings)...)
	got := stringset.New()
	count := 0
	add := func(id string) error {
		if got.Contains(id) {
			return fmt.Errorf("finding %q reported more than once", id)
		}
		got.Add(id)
		count++
		return nil
	}
	for _, c := range res.Changes {
		for _, id := range c.FixedFindingIDs {
			if err := add(id); err != nil {
				return err
			}
		}
	}
	for _, u := range res.Unfixed {
		if err := add(u.FindingID); err != nil {
			return err
		}
	}
	if missing := want.Diff(got); missing.Len() > 0 {
		return fmt.Errorf("findings not reported: %v", missing.Elements())
	}
	if extra := got.Diff(want); extra.Len() > 0 {
		return fmt.Errorf("unknown findings reported: %v", extra.Elements())
	}
	if count != len(findings) {
		return fmt.Errorf("%d findings reported for %d inputs", count, len(findings))
	}
	return nil
}
