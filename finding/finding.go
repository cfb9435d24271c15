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

// Package finding defines the vulnerability findings reported by external
// static-analysis tools that osv-codefix consumes.
package finding

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrInvalid is returned by Validate for findings that can't be located.
var ErrInvalid = errors.New("invalid finding")

// ColumnUnit is what a tool counts in its column numbers.
type ColumnUnit int

// ColumnUnit values.
const (
	// ColumnBytes counts UTF-8 bytes, like the syntax tree does.
	ColumnBytes ColumnUnit = iota
	// ColumnUTF16 counts UTF-16 code units. This is the SARIF default.
	ColumnUTF16
	// ColumnCodePoints counts Unicode code points.
	ColumnCodePoints
)

// Finding is a single report of a suspected vulnerability at a source location.
// Findings are immutable once created by an input adapter.
type Finding struct {
	// ID identifies this occurrence, e.g. a SARIF result guid.
	ID string
	// RuleID is the detector rule that produced the finding.
	RuleID string
	// FilePath of the affected source file, relative to the project root
	// or absolute.
	FilePath string
	// Line is the 1-based start line.
	Line int
	// Column is the 1-based start column, 0 if the tool didn't report one.
	Column int
	// EndLine and EndColumn are 0 if unknown.
	EndLine   int
	EndColumn int
	// ColumnUnit of Column and EndColumn.
	ColumnUnit ColumnUnit
	// Tool that reported the finding, informational.
	Tool string
	// Message is the tool's description of the issue, informational.
	Message string
}

// Key is the location used to group findings that point at the same code.
// A zero Column is a distinct key from any present column.
type Key struct {
	Line   int
	Column int
}

// Key returns the grouping key of the finding.
func (f Finding) Key() Key {
	return Key{Line: f.Line, Column: f.Column}
}

// HasColumn reports whether the tool provided a start column.
func (f Finding) HasColumn() bool { return f.Column > 0 }

// Validate checks that the finding carries enough information to be located.
func (f Finding) Validate() error {
	var errs []error
	if f.ID == "" {
		errs = append(errs, errors.New("empty id"))
	}
	if f.RuleID == "" {
		errs = append(errs, errors.New("empty rule id"))
	}
	if f.FilePath == "" {
		errs = append(errs, errors.New("empty file path"))
	}
	if f.Line < 1 {
		errs = append(errs, fmt.Errorf("line %d out of range", f.Line))
	}
	if f.Column < 0 || f.EndLine < 0 || f.EndColumn < 0 {
		errs = append(errs, errors.New("negative column or end position"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalid, f.ID, err)
	}
	return nil
}

func (f Finding) String() string {
	if f.HasColumn() {
		return fmt.Sprintf("%s[%s] %s:%d:%d", f.ID, f.RuleID, f.FilePath, f.Line, f.Column)
	}
	return fmt.Sprintf("%s[%s] %s:%d", f.ID, f.RuleID, f.FilePath, f.Line)
}

// InBytes returns f with its columns counted in bytes. line returns the text
// of a 1-based source line.
func (f Finding) InBytes(line func(int) string) Finding {
	if f.ColumnUnit == ColumnBytes {
		return f
	}
	if f.Column > 0 {
		f.Column = ByteColumn(line(f.Line), f.Column, f.ColumnUnit)
	}
	if f.EndColumn > 0 {
		endLine := f.EndLine
		if endLine == 0 {
			endLine = f.Line
		}
		f.EndColumn = ByteColumn(line(endLine), f.EndColumn, f.ColumnUnit)
	}
	f.ColumnUnit = ColumnBytes
	return f
}

// ByteColumn converts a 1-based column of text counted in unit to a 1-based
// byte column. Columns past the end of text count one byte per unit there.
func ByteColumn(text string, column int, unit ColumnUnit) int {
	if column < 1 || unit == ColumnBytes {
		return column
	}
	units, i := column-1, 0
	for units > 0 && i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		n := 1
		if unit == ColumnUTF16 && r != utf8.RuneError {
			n = utf16.RuneLen(r)
		}
		units -= n
		i += size
	}
	if units > 0 {
		i += units
	}
	return i + 1
}

// IDs returns the IDs of the given findings in order.
func IDs(fs []Finding) []string {
	ids := make([]string, 0, len(fs))
	for _, f := range fs {
		ids = append(ids, f.ID)
	}
	return ids
}
