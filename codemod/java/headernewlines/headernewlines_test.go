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

package headernewlines_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/osv-codefix/codemod"
	"github.com/google/osv-codefix/codemod/java/headernewlines"
	"github.com/google/osv-codefix/finding"
	"github.com/google/osv-codefix/result"
	"github.com/google/osv-codefix/search"
	"github.com/google/osv-codefix/testing/codemodtest"
)

const rule = "java/http-response-splitting"

func TestRemediate(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		at          string
		want        string
		wantReasons []string
	}{
		{
			name: "set_header",
			src: `package com.example;

import javax.servlet.http.HttpServletResponse;

class Example {
    void set(HttpServletResponse response, String value) {
        response.setHeader("X-Name", value);
    }
}
`,
			at: "response.setHeader",
			want: `package com.example;

import io.github.pixee.security.Newlines;
import javax.servlet.http.HttpServletResponse;

class Example {
    void set(HttpServletResponse response, String value) {
        response.setHeader("X-Name", Newlines.stripAll(value));
    }
}
`,
			wantReasons: []string{},
		},
		{
			name: "add_header_without_imports",
			src: `class Example {
    void set(HttpServletResponse response, Request req) {
        response.addHeader("X-Name", req.getParameter("name"));
    }
}
`,
			at: "response.addHeader",
			want: `import io.github.pixee.security.Newlines;

class Example {
    void set(HttpServletResponse response, Request req) {
        response.addHeader("X-Name", Newlines.stripAll(req.getParameter("name")));
    }
}
`,
			wantReasons: []string{},
		},
		{
			name: "already_imported",
			src: `import io.github.pixee.security.Newlines;

class Example {
    void set(HttpServletResponse response, String value) {
        response.setHeader("X-Name", value);
    }
}
`,
			at: "response.setHeader",
			want: `import io.github.pixee.security.Newlines;

class Example {
    void set(HttpServletResponse response, String value) {
        response.setHeader("X-Name", Newlines.stripAll(value));
    }
}
`,
			wantReasons: []string{},
		},
		{
			name: "simple_name_taken",
			src: `import com.acme.Newlines;

class Example {
    void set(HttpServletResponse response, String value) {
        response.setHeader("X-Name", value);
    }
}
`,
			at: "response.setHeader",
			want: `import com.acme.Newlines;

class Example {
    void set(HttpServletResponse response, String value) {
        response.setHeader("X-Name", io.github.pixee.security.Newlines.stripAll(value));
    }
}
`,
			wantReasons: []string{},
		},
		{
			name: "constant_value",
			src: `class Example {
    void set(HttpServletResponse response) {
        response.setHeader("X-Name", "constant");
    }
}
`,
			at: "response.setHeader",
			want: `class Example {
    void set(HttpServletResponse response) {
        response.setHeader("X-Name", "constant");
    }
}
`,
			wantReasons: []string{search.ReasonNoCalls},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := headernewlines.New()
			line, col := codemodtest.LineOf(t, tc.src, tc.at)
			got, res := codemodtest.Run(t, c, tc.src, codemodtest.Finding("f1", rule, line, col))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("RemediateAll() output diff (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantReasons, codemodtest.Reasons(res)); diff != "" {
				t.Errorf("RemediateAll() unfixed reasons diff (-want +got):\n%s", diff)
			}
			if len(tc.wantReasons) > 0 {
				return
			}
			if len(res.Changes) != 1 {
				t.Fatalf("RemediateAll() returned %d changes, want 1", len(res.Changes))
			}
			wantDeps := []*result.Dependency{codemod.ToolkitDependency()}
			if diff := cmp.Diff(wantDeps, res.Changes[0].Dependencies); diff != "" {
				t.Errorf("RemediateAll() dependencies diff (-want +got):\n%s", diff)
			}
			codemodtest.ExpectIdempotent(t, c, rule, got)
		})
	}
}

func TestRemediate_GroupedFindings(t *testing.T) {
	src := `class Example {
    void set(HttpServletResponse response, String value) {
        response.setHeader("X-Name", value);
    }
}
`
	got, res := codemodtest.Run(t, headernewlines.New(), src,
		codemodtest.Finding("semgrep-1", rule, 3, 0),
		codemodtest.Finding("sarif-1", rule, 3, 0),
	)
	if diff := cmp.Diff(1, len(res.Changes)); diff != "" {
		t.Fatalf("RemediateAll() number of changes diff (-want +got):\n%s\n%s", diff, got)
	}
	if diff := cmp.Diff([]string{"semgrep-1", "sarif-1"}, res.Changes[0].FixedFindingIDs); diff != "" {
		t.Errorf("RemediateAll() fixed findings diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(3, res.Changes[0].LineNumber); diff != "" {
		t.Errorf("RemediateAll() line diff (-want +got):\n%s", diff)
	}
}

func TestRemediate_UTF16Column(t *testing.T) {
	src := `class Example {
    void set(HttpServletResponse r, String a, String b) {
        r.setHeader("é", a); r.setHeader("k", b);
    }
}
`
	line, col := codemodtest.LineOf(t, src, `r.setHeader("k"`)
	f := codemodtest.Finding("f1", rule, line, col-1) // é is two bytes, one UTF-16 unit
	f.ColumnUnit = finding.ColumnUTF16
	got, res := codemodtest.Run(t, headernewlines.New(), src, f)
	want := `import io.github.pixee.security.Newlines;

class Example {
    void set(HttpServletResponse r, String a, String b) {
        r.setHeader("é", a); r.setHeader("k", Newlines.stripAll(b));
    }
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RemediateAll() output diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{}, codemodtest.Reasons(res)); diff != "" {
		t.Errorf("RemediateAll() unfixed reasons diff (-want +got):\n%s", diff)
	}
}
