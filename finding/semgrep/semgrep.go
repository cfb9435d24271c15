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

// Package semgrep reads findings from Semgrep JSON output.
package semgrep

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/osv-codefix/finding"
	"github.com/tidwall/gjson"
)

// Semgrep reports this fingerprint for anonymous users.
const loginFingerprint = "requires login"

// Read returns the findings in the Semgrep JSON output at path.
func Read(path string) ([]finding.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read semgrep output: %w", err)
	}
	fs, err := Parse(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fs, nil
}

// Parse returns the findings in the Semgrep JSON output. Results without a
// usable fingerprint get an ID derived from source and their index.
func Parse(data []byte, source string) ([]finding.Finding, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid semgrep output: malformed JSON")
	}
	doc := gjson.ParseBytes(data)
	results := doc.Get("results")
	if !results.IsArray() {
		return nil, errors.New("invalid semgrep output: no results array")
	}
	version := doc.Get("version").String()
	tool := "semgrep"
	if version != "" {
		tool += " " + version
	}

	var out []finding.Finding
	for i, r := range results.Array() {
		id := r.Get("extra.fingerprint").String()
		if id == "" || id == loginFingerprint {
			id = fmt.Sprintf("%s#%d", source, i)
		}
		out = append(out, finding.Finding{
			ID:        id,
			RuleID:    r.Get("check_id").String(),
			FilePath:  filepath.FromSlash(r.Get("path").String()),
			Line:      int(r.Get("start.line").Int()),
			Column:    int(r.Get("start.col").Int()),
			EndLine:   int(r.Get("end.line").Int()),
			EndColumn: int(r.Get("end.col").Int()),
			Tool:      tool,
			Message:   r.Get("extra.message").String(),
		})
	}
	return out, nil
}
