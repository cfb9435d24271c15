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

package locate_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/osv-codefix/cst"
	"github.com/google/osv-codefix/cst/javaparse"
	"github.com/google/osv-codefix/locate"
)

func callNamed(name string) locate.Matcher {
	return locate.All(
		locate.OfType("method_invocation"),
		func(t *cst.Tree, id cst.NodeID) bool {
			return t.Text(t.ChildByField(id, "name")) == name
		},
	)
}

func TestNodes(t *testing.T) {
	src := strings.Join([]string{
		"class A {",
		"  void f() {",
		"    a.foo(1); b.foo(2);",
		"    c.bar(3);",
		"    d.foo(e.foo(4));",
		"  }",
		"}",
	}, "\n")
	col := func(line, sub string) int { return strings.Index(line, sub) + 1 }
	line3 := "    a.foo(1); b.foo(2);"
	line5 := "    d.foo(e.foo(4));"

	tests := []struct {
		desc   string
		line   int
		column int
		m      locate.Matcher
		want   []string
	}{
		{
			desc: "two matches without column",
			line: 3,
			m:    callNamed("foo"),
			want: []string{"a.foo(1)", "b.foo(2)"},
		},
		{
			desc:   "column disambiguates",
			line:   3,
			column: col(line3, "b.foo"),
			m:      callNamed("foo"),
			want:   []string{"b.foo(2)"},
		},
		{
			desc:   "column inside first call",
			line:   3,
			column: col(line3, "(1)"),
			m:      callNamed("foo"),
			want:   []string{"a.foo(1)"},
		},
		{
			desc:   "single match ignores column",
			line:   4,
			column: 99,
			m:      callNamed("bar"),
			want:   []string{"c.bar(3)"},
		},
		{
			desc: "matcher rejects everything",
			line: 4,
			m:    callNamed("foo"),
			want: nil,
		},
		{
			desc: "no node starts on line",
			line: 6,
			m:    locate.OfType("method_invocation"),
			want: nil,
		},
		{
			desc:   "nested calls both contain column",
			line:   5,
			column: col(line5, "e.foo"),
			m:      callNamed("foo"),
			want:   []string{"d.foo(e.foo(4))", "e.foo(4)"},
		},
		{
			desc: "any of two shapes",
			line: 4,
			m:    locate.Any(callNamed("baz"), callNamed("bar")),
			want: []string{"c.bar(3)"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			tree, err := javaparse.Parse(context.Background(), []byte(src))
			if err != nil {
				t.Fatalf("Parse() returned error: %v", err)
			}
			var got []string
			for _, id := range locate.Nodes(tree, tc.line, tc.column, tc.m) {
				got = append(got, tree.Text(id))
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Nodes(%d, %d) returned diff (-want +got):\n%s", tc.line, tc.column, diff)
			}
		})
	}
}
