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

// Package stats contains interfaces and utilities relating to the collection of
// statistics from osv-codefix.
package stats

import (
	"time"

	"github.com/google/osv-codefix/plugin"
)

// Collector is a component which is notified when certain events occur. It can be implemented with
// different metric backends to enable monitoring of osv-codefix.
type Collector interface {
	// AfterFileRemediated is called after a codemod ran on a file, whether
	// or not it changed anything.
	AfterFileRemediated(codemod string, filestats *FileRemediatedStats)

	// AfterFileProcessed is called once per file after all codemods ran on it
	// and the result was written, or after the file failed.
	AfterFileProcessed(filestats *FileProcessedStats)

	AfterRun(runtime time.Duration, status *plugin.RunStatus)

	// AfterReportExported is called after the report has been exported. destination should merely
	// be a category of where the report was written to (e.g. 'file', 'stdout'), not the precise
	// location.
	AfterReportExported(destination string, bytes int, err error)
}

// NoopCollector implements Collector by doing nothing.
type NoopCollector struct{}

// AfterFileRemediated implements Collector by doing nothing.
func (c NoopCollector) AfterFileRemediated(codemod string, filestats *FileRemediatedStats) {}

// AfterFileProcessed implements Collector by doing nothing.
func (c NoopCollector) AfterFileProcessed(filestats *FileProcessedStats) {}

// AfterRun implements Collector by doing nothing.
func (c NoopCollector) AfterRun(runtime time.Duration, status *plugin.RunStatus) {}

// AfterReportExported implements Collector by doing nothing.
func (c NoopCollector) AfterReportExported(destination string, bytes int, err error) {}
