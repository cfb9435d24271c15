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

package finding_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/osv-codefix/finding"
)

func valid() finding.Finding {
	return finding.Finding{ID: "f1", RuleID: "java/xxe", FilePath: "A.java", Line: 3, Column: 5}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(f *finding.Finding)
		wantErr error
	}{
		{name: "valid", mod: func(*finding.Finding) {}},
		{name: "no_column", mod: func(f *finding.Finding) { f.Column = 0 }},
		{name: "empty_id", mod: func(f *finding.Finding) { f.ID = "" }, wantErr: finding.ErrInvalid},
		{name: "empty_rule", mod: func(f *finding.Finding) { f.RuleID = "" }, wantErr: finding.ErrInvalid},
		{name: "empty_path", mod: func(f *finding.Finding) { f.FilePath = "" }, wantErr: finding.ErrInvalid},
		{name: "line_zero", mod: func(f *finding.Finding) { f.Line = 0 }, wantErr: finding.ErrInvalid},
		{name: "negative_column", mod: func(f *finding.Finding) { f.Column = -1 }, wantErr: finding.ErrInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := valid()
			tc.mod(&f)
			if diff := cmp.Diff(tc.wantErr, f.Validate(), cmpopts.EquateErrors()); diff != "" {
				t.Errorf("Validate() error diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKey(t *testing.T) {
	a := valid()
	b := valid()
	b.ID = "f2"
	noColumn := valid()
	noColumn.Column = 0
	if a.Key() != b.Key() {
		t.Errorf("findings at the same location have keys %v and %v", a.Key(), b.Key())
	}
	if a.Key() == noColumn.Key() {
		t.Errorf("finding without column shares key %v with a finding with column", a.Key())
	}
	if noColumn.HasColumn() {
		t.Errorf("HasColumn() = true for a zero column")
	}
}

func TestString(t *testing.T) {
	noColumn := valid()
	noColumn.Column = 0
	tests := []struct {
		f    finding.Finding
		want string
	}{
		{f: valid(), want: "f1[java/xxe] A.java:3:5"},
		{f: noColumn, want: "f1[java/xxe] A.java:3"},
	}
	for _, tc := range tests {
		if got := tc.f.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestByteColumn(t *testing.T) {
	const headers = `r.setHeader("é", a); r.setHeader("k", b);`
	tests := []struct {
		desc   string
		text   string
		column int
		unit   finding.ColumnUnit
		want   int
	}{
		{desc: "bytes unchanged", text: headers, column: 22, unit: finding.ColumnBytes, want: 22},
		{desc: "no column", text: headers, column: 0, unit: finding.ColumnUTF16, want: 0},
		{desc: "before multibyte rune", text: headers, column: 14, unit: finding.ColumnUTF16, want: 14},
		{desc: "after multibyte rune", text: headers, column: 15, unit: finding.ColumnUTF16, want: 16},
		{desc: "second call utf16", text: headers, column: 22, unit: finding.ColumnUTF16, want: 23},
		{desc: "second call code points", text: headers, column: 22, unit: finding.ColumnCodePoints, want: 23},
		{desc: "surrogate pair utf16", text: "😀x", column: 3, unit: finding.ColumnUTF16, want: 5},
		{desc: "surrogate pair code points", text: "😀x", column: 2, unit: finding.ColumnCodePoints, want: 5},
		{desc: "past end of line", text: "é", column: 4, unit: finding.ColumnUTF16, want: 5},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			if got := finding.ByteColumn(tc.text, tc.column, tc.unit); got != tc.want {
				t.Errorf("ByteColumn(%q, %d, %d) = %d, want %d", tc.text, tc.column, tc.unit, got, tc.want)
			}
		})
	}
}

func TestInBytes(t *testing.T) {
	lines := map[int]string{
		3: `r.setHeader("é", a);`,
		4: `  "ü" + x;`,
	}
	line := func(n int) string { return lines[n] }
	tests := []struct {
		desc string
		f    finding.Finding
		want finding.Finding
	}{
		{
			desc: "bytes untouched",
			f:    finding.Finding{ID: "a", Line: 3, Column: 15, EndColumn: 17},
			want: finding.Finding{ID: "a", Line: 3, Column: 15, EndColumn: 17},
		},
		{
			desc: "end column on start line",
			f:    finding.Finding{ID: "b", Line: 3, Column: 15, EndColumn: 17, ColumnUnit: finding.ColumnUTF16},
			want: finding.Finding{ID: "b", Line: 3, Column: 16, EndColumn: 18},
		},
		{
			desc: "end column on end line",
			f:    finding.Finding{ID: "c", Line: 3, Column: 1, EndLine: 4, EndColumn: 6, ColumnUnit: finding.ColumnCodePoints},
			want: finding.Finding{ID: "c", Line: 3, Column: 1, EndLine: 4, EndColumn: 7},
		},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.f.InBytes(line)); diff != "" {
				t.Errorf("InBytes() diff (-want +got):\n%s", diff)
			}
		})
	}
}
