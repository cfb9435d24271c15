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

package fixrunner_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/osv-codefix/binary/cli"
	"github.com/google/osv-codefix/binary/fixrunner"
)

const (
	javaPath = "src/main/java/com/example/Example.java"
	javaSrc  = `package com.example;

class Example {
    void set(HttpServletResponse response, Cookie cookie) {
        response.addCookie(cookie);
    }
}
`
	brokenPath = "src/main/java/com/example/Broken.java"
	brokenSrc  = "class Broken { void f( {\n"
)

func sarifFor(path string, line int) string {
	return `{"version": "2.1.0", "runs": [{
  "tool": {"driver": {"name": "CodeQL"}},
  "results": [{
    "ruleId": "java/insecure-cookie",
    "message": {"text": "insecure cookie"},
    "locations": [{"physicalLocation": {
      "artifactLocation": {"uri": "` + path + `"},
      "region": {"startLine": ` + strconv.Itoa(line) + `}
    }}]
  }]
}]}`
}

func createTestFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(p), 0777); err != nil {
			t.Fatalf("error creating directory %v: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("os.WriteFile(%s): %v", p, err)
		}
	}
	return dir
}

func TestRunFix(t *testing.T) {
	testCases := []struct {
		desc         string
		files        map[string]string
		root         string
		dryRun       bool
		wantExit     int
		wantChanged  bool
		wantReport   bool
		wantInReport string
	}{
		{
			desc: "Fixes a finding",
			files: map[string]string{
				javaPath:       javaSrc,
				"codeql.sarif": sarifFor(javaPath, 5),
			},
			wantExit:     fixrunner.ExitOK,
			wantChanged:  true,
			wantReport:   true,
			wantInReport: `"fixedFindings"`,
		},
		{
			desc: "Dry run",
			files: map[string]string{
				javaPath:       javaSrc,
				"codeql.sarif": sarifFor(javaPath, 5),
			},
			dryRun:       true,
			wantExit:     fixrunner.ExitOK,
			wantChanged:  false,
			wantReport:   true,
			wantInReport: `"dryRun": true`,
		},
		{
			desc: "Unparseable file",
			files: map[string]string{
				brokenPath:     brokenSrc,
				"codeql.sarif": sarifFor(brokenPath, 1),
			},
			wantExit:     fixrunner.ExitFailedFiles,
			wantReport:   true,
			wantInReport: "failed to process file",
		},
		{
			desc: "Missing root",
			files: map[string]string{
				"codeql.sarif": sarifFor(javaPath, 5),
			},
			root:         "does-not-exist",
			wantExit:     fixrunner.ExitError,
			wantReport:   true,
			wantInReport: "invalid project root",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			dir := createTestFiles(t, tc.files)
			root := dir
			if tc.root != "" {
				root = filepath.Join(dir, tc.root)
			}
			reportFile := filepath.Join(t.TempDir(), "report.json")
			flags := &cli.Flags{
				Root:          root,
				SARIF:         []string{filepath.Join(dir, "codeql.sarif")},
				CodemodsToRun: []string{"java"},
				Output:        reportFile,
				DryRun:        tc.dryRun,
			}

			if got := fixrunner.RunFix(flags); got != tc.wantExit {
				t.Errorf("fixrunner.RunFix(%v) = %d, want %d", flags, got, tc.wantExit)
			}

			if src, ok := tc.files[javaPath]; ok && tc.root == "" {
				got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(javaPath)))
				if err != nil {
					t.Fatalf("os.ReadFile(%s): %v", javaPath, err)
				}
				if changed := string(got) != src; changed != tc.wantChanged {
					t.Errorf("fixrunner.RunFix(%v) changed file: %v, want %v", flags, changed, tc.wantChanged)
				}
			}

			report, err := os.ReadFile(reportFile)
			if !tc.wantReport {
				if err == nil {
					t.Errorf("fixrunner.RunFix(%v) wrote a report, want none", flags)
				}
				return
			}
			if err != nil {
				t.Fatalf("os.ReadFile(%s): %v", reportFile, err)
			}
			if !strings.Contains(string(report), tc.wantInReport) {
				t.Errorf("fixrunner.RunFix(%v) report doesn't contain %q:\n%s", flags, tc.wantInReport, report)
			}
		})
	}
}

func TestRunFix_BadInput(t *testing.T) {
	dir := t.TempDir()
	flags := &cli.Flags{Root: dir, SARIF: []string{filepath.Join(dir, "missing.sarif")}}
	if got := fixrunner.RunFix(flags); got != fixrunner.ExitError {
		t.Errorf("fixrunner.RunFix(%v) = %d, want %d", flags, got, fixrunner.ExitError)
	}
}

func TestRunFix_Version(t *testing.T) {
	flags := &cli.Flags{PrintVersion: true}
	if got := fixrunner.RunFix(flags); got != fixrunner.ExitOK {
		t.Errorf("fixrunner.RunFix(%v) = %d, want %d", flags, got, fixrunner.ExitOK)
	}
}
