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

package list_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/osv-codefix/codemod"
	cl "github.com/google/osv-codefix/codemod/list"
)

func names(cms []codemod.Codemod) []string {
	out := []string{}
	for _, c := range cms {
		out = append(out, c.Name())
	}
	return out
}

func TestCodemodNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for name, initers := range cl.All {
		for _, initer := range initers {
			c := initer()
			if c.Name() != name {
				t.Errorf("codemod registered as %q is named %q", name, c.Name())
			}
			if seen[c.Name()] {
				t.Errorf("%q used by more than one codemod", c.Name())
			}
			seen[c.Name()] = true
		}
	}
}

func TestRulesUnique(t *testing.T) {
	owner := make(map[string]string)
	for _, initers := range cl.All {
		for _, initer := range initers {
			c := initer()
			if len(c.Rules()) == 0 {
				t.Errorf("%q handles no rules", c.Name())
			}
			for _, r := range c.Rules() {
				if prev, ok := owner[r]; ok {
					t.Errorf("rule %q handled by both %q and %q", r, prev, c.Name())
				}
				owner[r] = c.Name()
			}
		}
	}
}

func TestFromNames(t *testing.T) {
	testCases := []struct {
		desc      string
		names     []string
		wantNames []string
		wantErr   error
	}{
		{
			desc:  "Group",
			names: []string{"java"},
			wantNames: []string{
				"java/add-secure-flag-to-cookie",
				"java/harden-java-deserialization",
				"java/harden-xmlinputfactory",
				"java/sandbox-url-creation",
				"java/strip-http-header-newlines",
			},
		},
		{
			desc:      "Keeps configured order",
			names:     []string{"java/sandbox-url-creation", "java/add-secure-flag-to-cookie"},
			wantNames: []string{"java/sandbox-url-creation", "java/add-secure-flag-to-cookie"},
		},
		{
			desc:      "Case-insensitive",
			names:     []string{"JAVA/Sandbox-URL-Creation"},
			wantNames: []string{"java/sandbox-url-creation"},
		},
		{
			desc:      "Remove duplicates",
			names:     []string{"java/sandbox-url-creation", "java/sandbox-url-creation"},
			wantNames: []string{"java/sandbox-url-creation"},
		},
		{
			desc:      "Nonexistent codemod",
			names:     []string{"nonexistent"},
			wantErr:   cmpopts.AnyError,
			wantNames: []string{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := cl.FromNames(tc.names)
			if diff := cmp.Diff(tc.wantErr, err, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("cl.FromNames(%v) error got diff (-want +got):\n%s", tc.names, diff)
			}
			if diff := cmp.Diff(tc.wantNames, names(got)); diff != "" {
				t.Errorf("cl.FromNames(%v): got diff (-want +got):\n%s", tc.names, diff)
			}
		})
	}
}

func TestFromName(t *testing.T) {
	c, err := cl.FromName("java/harden-xmlinputfactory")
	if err != nil {
		t.Fatalf("cl.FromName() returned error: %v", err)
	}
	if c.Name() != "java/harden-xmlinputfactory" {
		t.Errorf("cl.FromName() = %q", c.Name())
	}
	if _, err := cl.FromName("java"); err == nil {
		t.Errorf("cl.FromName(java) returned no error for a group name")
	}
}

func TestForRule(t *testing.T) {
	all, err := cl.FromNames([]string{"all"})
	if err != nil {
		t.Fatalf("cl.FromNames() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"java/add-secure-flag-to-cookie"}, names(cl.ForRule(all, "java/insecure-cookie"))); diff != "" {
		t.Errorf("cl.ForRule() returned diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{}, names(cl.ForRule(all, "unknown"))); diff != "" {
		t.Errorf("cl.ForRule(unknown) returned diff (-want +got):\n%s", diff)
	}
}
