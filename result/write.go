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

package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff returns a unified diff of a file's contents before and after
// an edit, with three lines of context. It returns "" if nothing changed.
func UnifiedDiff(path string, before, after []byte) (string, error) {
	if bytes.Equal(before, after) {
		return "", nil
	}
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	}
	s, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "", fmt.Errorf("diff of %s: %w", path, err)
	}
	return s, nil
}

// Encode writes the report as indented JSON to w and returns the number of
// bytes written.
func Encode(w io.Writer, r *Report) (int, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal report: %w", err)
	}
	b = append(b, '\n')
	return w.Write(b)
}

// Write writes the report as JSON to the file at path, or to stdout if path
// is "-".
func Write(path string, r *Report) (int, error) {
	if path == "-" {
		return Encode(os.Stdout, r)
	}
	var buf bytes.Buffer
	if _, err := Encode(&buf, r); err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return buf.Len(), nil
}
