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

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/osv-codefix/config"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    *config.Config
		wantErr bool
	}{
		{
			name: "empty",
			yaml: "",
			want: &config.Config{},
		},
		{
			name: "full",
			yaml: `
codemods: [java/sandbox-url-creation, java/add-secure-flag-to-cookie]
sarif: [codeql.sarif]
semgrep: [semgrep.json]
include: ["src/**"]
exclude: ["**/test/**"]
parallelism: 4
dry-run: true
use-gitignore: true
rules:
  java/sandbox-url-creation: [acme.ssrf]
`,
			want: &config.Config{
				Codemods:     []string{"java/sandbox-url-creation", "java/add-secure-flag-to-cookie"},
				SARIF:        []string{"codeql.sarif"},
				Semgrep:      []string{"semgrep.json"},
				Include:      []string{"src/**"},
				Exclude:      []string{"**/test/**"},
				Parallelism:  4,
				DryRun:       true,
				UseGitignore: true,
				Rules:        map[string][]string{"java/sandbox-url-creation": {"acme.ssrf"}},
			},
		},
		{
			name:    "unknown_key",
			yaml:    "codemod: [java]\n",
			wantErr: true,
		},
		{
			name:    "negative_parallelism",
			yaml:    "parallelism: -1\n",
			wantErr: true,
		},
		{
			name:    "invalid_glob",
			yaml:    "include: [\"src/[\"]\n",
			wantErr: true,
		},
		{
			name:    "empty_rule_list",
			yaml:    "rules:\n  java/xxe-codemod: []\n",
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := config.Decode(strings.NewReader(tc.yaml), config.FormatYAML)
			if (err != nil) != tc.wantErr {
				t.Fatalf("config.Decode() error: %v, want error: %t", err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("config.Decode() returned diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codefix.yaml")
	if err := os.WriteFile(path, []byte("codemods: [default]\n"), 0644); err != nil {
		t.Fatalf("os.WriteFile(): %v", err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load(%q) returned error: %v", path, err)
	}
	if diff := cmp.Diff(&config.Config{Codemods: []string{"default"}}, got); diff != "" {
		t.Errorf("config.Load(%q) returned diff (-want +got):\n%s", path, diff)
	}
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("config.Load() succeeded for a missing file")
	}
}

func TestDecode_TOML(t *testing.T) {
	tests := []struct {
		name    string
		toml    string
		want    *config.Config
		wantErr bool
	}{
		{
			name: "empty",
			toml: "",
			want: &config.Config{},
		},
		{
			name: "full",
			toml: `
codemods = ["java"]
sarif = ["codeql.sarif"]
exclude = ["**/test/**"]
use-gitignore = true
parallelism = 2

[rules]
"java/harden-xmlinputfactory" = ["acme.xxe"]
`,
			want: &config.Config{
				Codemods:     []string{"java"},
				SARIF:        []string{"codeql.sarif"},
				Exclude:      []string{"**/test/**"},
				UseGitignore: true,
				Parallelism:  2,
				Rules:        map[string][]string{"java/harden-xmlinputfactory": {"acme.xxe"}},
			},
		},
		{
			name:    "unknown_key",
			toml:    "codemod = [\"java\"]\n",
			wantErr: true,
		},
		{
			name:    "syntax_error",
			toml:    "codemods = [\n",
			wantErr: true,
		},
		{
			name:    "negative_parallelism",
			toml:    "parallelism = -1\n",
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := config.Decode(strings.NewReader(tc.toml), config.FormatTOML)
			if (err != nil) != tc.wantErr {
				t.Fatalf("config.Decode() error: %v, want error: %t", err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("config.Decode() returned diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]config.Format{
		"codefix.yaml":      config.FormatYAML,
		"codefix.yml":       config.FormatYAML,
		"conf/codefix.toml": config.FormatTOML,
		"CODEFIX.TOML":      config.FormatTOML,
		"codefix":           config.FormatYAML,
	} {
		if got := config.FormatFromPath(path); got != want {
			t.Errorf("config.FormatFromPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codefix.toml")
	if err := os.WriteFile(path, []byte("dry-run = true\n"), 0644); err != nil {
		t.Fatalf("os.WriteFile(): %v", err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load(%q) returned error: %v", path, err)
	}
	if diff := cmp.Diff(&config.Config{DryRun: true}, got); diff != "" {
		t.Errorf("config.Load(%q) returned diff (-want +got):\n%s", path, diff)
	}
}
