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

// Package remediation runs ordered strategy chains against the nodes that
// findings resolve to.
package remediation

import (
	"fmt"

	"github.com/google/osv-codefix/cst"
	"github.com/google/osv-codefix/locate"
	"github.com/google/osv-codefix/result"
)

// ReasonUnrecognizedShape is reported when no strategy gave a more specific
// reason for refusing a candidate.
const ReasonUnrecognizedShape = "state-changing effects possible or unrecognized code shape"

// Outcome is the result of one strategy attempt: either Fixed, carrying the
// dependencies the fix needs, or Refused with a reason.
type Outcome struct {
	fixed  bool
	deps   []*result.Dependency
	reason string
}

// Fixed returns a successful outcome.
func Fixed(deps ...*result.Dependency) Outcome {
	return Outcome{fixed: true, deps: deps}
}

// Refused returns an unsuccessful outcome with a formatted reason.
func Refused(format string, args ...any) Outcome {
	return Outcome{reason: fmt.Sprintf(format, args...)}
}

// IsFixed reports whether the strategy changed the tree successfully.
func (o Outcome) IsFixed() bool { return o.fixed }

// Dependencies returns the dependencies required by a Fixed outcome.
func (o Outcome) Dependencies() []*result.Dependency { return o.deps }

// Reason returns why the strategy refused, "" for Fixed outcomes.
func (o Outcome) Reason() string { return o.reason }

func (o Outcome) String() string {
	if o.fixed {
		return "fixed"
	}
	return "refused: " + o.reason
}

// Strategy is one transformation recipe. Fix must re-check the shape of the
// node before changing anything and return Refused without mutating the tree
// if it can't apply.
type Strategy struct {
	Name string
	Fix  func(t *cst.Tree, n cst.NodeID) Outcome
}

// Shape is a code shape a vulnerability class recognizes together with the
// strategies that can fix it, in priority order.
type Shape struct {
	Name  string
	Match locate.Matcher
	// Description is attached to the changes made for this shape.
	Description string
	Strategies  []Strategy
}
