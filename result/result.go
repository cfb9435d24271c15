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

// Package result provides the structured records produced by a remediation run.
package result

import (
	"slices"
	"time"

	"github.com/google/osv-codefix/plugin"
)

// Dependency is a library a fix requires the project to depend on. The
// dependency manifest isn't edited; the requirement is only reported.
type Dependency struct {
	// Coordinate identifies the dependency, e.g.
	// "io.github.pixee:java-security-toolkit:1.2.1".
	Coordinate  string `json:"coordinate"`
	Description string `json:"description,omitempty"`
}

// CodemodChange is one successful edit. All findings that pointed at the
// edited location are fixed together.
type CodemodChange struct {
	LineNumber      int           `json:"lineNumber"`
	FixedFindingIDs []string      `json:"fixedFindings"`
	Dependencies    []*Dependency `json:"dependencies,omitempty"`
	Description     string        `json:"description,omitempty"`
}

// UnfixedFinding is a finding that couldn't be turned into a safe edit.
type UnfixedFinding struct {
	FindingID  string `json:"id"`
	RuleID     string `json:"rule"`
	Path       string `json:"path"`
	LineNumber int    `json:"lineNumber"`
	Reason     string `json:"reason"`
}

// ChangesetEntry describes the edits one codemod made to one file.
type ChangesetEntry struct {
	Path    string           `json:"path"`
	Diff    string           `json:"diff"`
	Changes []*CodemodChange `json:"changes"`
}

// CodemodResult is the outcome of one codemod over the whole run.
type CodemodResult struct {
	Codemod         string            `json:"codemod"`
	Summary         string            `json:"summary"`
	Description     string            `json:"description,omitempty"`
	Status          *plugin.Status    `json:"status"`
	Changeset       []*ChangesetEntry `json:"changeset"`
	UnfixedFindings []*UnfixedFinding `json:"unfixedFindings"`
	FailedFiles     []string          `json:"failedFiles,omitempty"`
}

// Run holds the run-level metadata.
type Run struct {
	ID        string    `json:"id"`
	Tool      string    `json:"tool"`
	Version   string    `json:"version"`
	Directory string    `json:"directory"`
	Inputs    []string  `json:"inputs,omitempty"`
	StartTime time.Time `json:"startTime"`
	// Elapsed is serialized in nanoseconds.
	Elapsed     time.Duration `json:"elapsedNanos"`
	DryRun      bool          `json:"dryRun,omitempty"`
	FailedFiles []string      `json:"failedFiles,omitempty"`
	// Status of the whole run. It fails if the run couldn't start, e.g.
	// because of a missing project root.
	Status *plugin.RunStatus `json:"status,omitempty"`
}

// Report is the complete output of a run.
type Report struct {
	Run     *Run             `json:"run"`
	Results []*CodemodResult `json:"results"`
	// UnhandledFindings were never given to a codemod, e.g. because no
	// enabled codemod handles their rule or the finding is malformed.
	UnhandledFindings []*UnfixedFinding `json:"unhandledFindings,omitempty"`
}

// AllUnfixed returns the unfixed findings of every codemod followed by the
// unhandled findings.
func (r *Report) AllUnfixed() []*UnfixedFinding {
	var out []*UnfixedFinding
	for _, cr := range r.Results {
		out = append(out, cr.UnfixedFindings...)
	}
	return append(out, r.UnhandledFindings...)
}

// FixedFindingIDs returns the IDs of all fixed findings.
func (r *Report) FixedFindingIDs() []string {
	var out []string
	for _, cr := range r.Results {
		for _, e := range cr.Changeset {
			for _, c := range e.Changes {
				out = append(out, c.FixedFindingIDs...)
			}
		}
	}
	return out
}

// ChangedFiles returns the sorted, deduplicated paths of all changed files.
func (r *Report) ChangedFiles() []string {
	var out []string
	for _, cr := range r.Results {
		for _, e := range cr.Changeset {
			out = append(out, e.Path)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Dependencies returns the deduplicated dependencies required by all changes,
// in first-appearance order.
func (r *Report) Dependencies() []*Dependency {
	seen := make(map[string]bool)
	var out []*Dependency
	for _, cr := range r.Results {
		for _, e := range cr.Changeset {
			for _, c := range e.Changes {
				for _, d := range c.Dependencies {
					if !seen[d.Coordinate] {
						seen[d.Coordinate] = true
						out = append(out, d)
					}
				}
			}
		}
	}
	return out
}
