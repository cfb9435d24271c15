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

// Package locate finds the syntax nodes a finding points at.
package locate

import (
	"slices"

	"github.com/google/osv-codefix/cst"
)

// Matcher reports whether a node has the shape a vulnerability class looks for.
type Matcher func(t *cst.Tree, id cst.NodeID) bool

// Nodes returns, in document order, the nodes accepted by m that start on
// line. When more than one node remains and column is positive, only the
// nodes whose source range contains (line, column) are kept. An empty result
// is a normal outcome, not an error.
func Nodes(t *cst.Tree, line, column int, m Matcher) []cst.NodeID {
	var found []cst.NodeID
	t.Walk(func(id cst.NodeID) bool {
		start, end := t.Start(id), t.End(id)
		if !start.IsZero() && (end.Line < line || start.Line > line) {
			// Subtree can't hold a node starting on line.
			return false
		}
		if start.Line == line && m(t, id) {
			found = append(found, id)
		}
		return true
	})
	if len(found) > 1 && column > 0 {
		p := cst.Point{Line: line, Column: column}
		found = slices.DeleteFunc(found, func(id cst.NodeID) bool {
			return !t.Contains(id, p)
		})
	}
	return found
}

// All returns a matcher accepting nodes accepted by every one of ms.
func All(ms ...Matcher) Matcher {
	return func(t *cst.Tree, id cst.NodeID) bool {
		for _, m := range ms {
			if !m(t, id) {
				return false
			}
		}
		return true
	}
}

// Any returns a matcher accepting nodes accepted by at least one of ms.
func Any(ms ...Matcher) Matcher {
	return func(t *cst.Tree, id cst.NodeID) bool {
		for _, m := range ms {
			if m(t, id) {
				return true
			}
		}
		return false
	}
}

// OfType returns a matcher accepting nodes of the given grammar types.
func OfType(types ...string) Matcher {
	return func(t *cst.Tree, id cst.NodeID) bool {
		return slices.Contains(types, t.Type(id))
	}
}
