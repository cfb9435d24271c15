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

// Package sarif reads findings from SARIF 2.1.0 logs.
package sarif

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/osv-codefix/finding"
	"github.com/google/osv-codefix/log"
	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/tidwall/gjson"
)

// Read returns the findings of every run in the SARIF log at path.
func Read(path string) ([]finding.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SARIF log: %w", err)
	}
	fs, err := Parse(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fs, nil
}

// Parse returns the findings of every run in the SARIF log. Suppressed
// results and results without a physical location are skipped. Results
// without a guid get an ID derived from source and their position in the log.
func Parse(data []byte, source string) ([]finding.Finding, error) {
	var report sarif.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("invalid SARIF log: %w", err)
	}
	var out []finding.Finding
	for i, run := range report.Runs {
		tool := ""
		if run.Tool.Driver != nil {
			tool = run.Tool.Driver.Name
		}
		unit := columnUnit(gjson.GetBytes(data, fmt.Sprintf("runs.%d.columnKind", i)).String())
		for j, res := range run.Results {
			if len(res.Suppressions) > 0 {
				continue
			}
			f, ok := toFinding(res)
			if !ok {
				log.Debugf("sarif: skipping result %d of run %d in %s: no location", j, i, source)
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s#%d.%d", source, i, j)
			}
			f.Tool = tool
			f.ColumnUnit = unit
			out = append(out, f)
		}
	}
	return out, nil
}

// columnUnit maps a run's columnKind. SARIF counts UTF-16 code units unless
// the run says otherwise.
func columnUnit(kind string) finding.ColumnUnit {
	if kind == "unicodeCodePoints" {
		return finding.ColumnCodePoints
	}
	return finding.ColumnUTF16
}

func toFinding(res *sarif.Result) (finding.Finding, bool) {
	var f finding.Finding
	if res.Guid != nil {
		f.ID = *res.Guid
	}
	if res.RuleID != nil {
		f.RuleID = *res.RuleID
	}
	if res.Message.Text != nil {
		f.Message = *res.Message.Text
	}
	for _, loc := range res.Locations {
		pl := loc.PhysicalLocation
		if pl == nil || pl.ArtifactLocation == nil || pl.ArtifactLocation.URI == nil || pl.Region == nil {
			continue
		}
		f.FilePath = uriToPath(*pl.ArtifactLocation.URI)
		r := pl.Region
		f.Line = deref(r.StartLine)
		f.Column = deref(r.StartColumn)
		f.EndLine = deref(r.EndLine)
		f.EndColumn = deref(r.EndColumn)
		return f, true
	}
	return f, false
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// uriToPath converts an artifact URI to a file path. Relative URIs are
// relative to the source root.
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return uri
	}
	p := u.Path
	if u.Scheme == "" {
		p = strings.TrimPrefix(p, "./")
	}
	return filepath.FromSlash(p)
}
