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

// Package testcollector provides an implementation of stats.Collector that
// stores recorded metrics for verification in tests.
package testcollector

import (
	"sync"
	"time"

	"github.com/google/osv-codefix/plugin"
	"github.com/google/osv-codefix/stats"
)

// Collector implements the stats.Collector interface and simply stores metrics
// by path. It's safe for concurrent use.
type Collector struct {
	stats.NoopCollector

	mu                  sync.Mutex
	fileRemediatedStats map[string][]*stats.FileRemediatedStats
	fileProcessedStats  map[string]*stats.FileProcessedStats
	runStatus           *plugin.RunStatus
	exportedBytes       int
}

// New returns a new test Collector with maps initialized.
func New() *Collector {
	return &Collector{
		fileRemediatedStats: make(map[string][]*stats.FileRemediatedStats),
		fileProcessedStats:  make(map[string]*stats.FileProcessedStats),
	}
}

// AfterFileRemediated stores the metrics of a codemod run on a file.
func (c *Collector) AfterFileRemediated(_ string, filestats *stats.FileRemediatedStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fileRemediatedStats[filestats.Path] = append(c.fileRemediatedStats[filestats.Path], filestats)
}

// AfterFileProcessed stores the metrics of a processed file.
func (c *Collector) AfterFileProcessed(filestats *stats.FileProcessedStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fileProcessedStats[filestats.Path] = filestats
}

// AfterRun stores the overall run status.
func (c *Collector) AfterRun(_ time.Duration, status *plugin.RunStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runStatus = status
}

// AfterReportExported stores the size of the exported report.
func (c *Collector) AfterReportExported(_ string, bytes int, _ error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exportedBytes = bytes
}

// FileProcessedResult returns the result metric for a given path, if found.
// Otherwise, returns an empty string.
func (c *Collector) FileProcessedResult(path string) stats.FileProcessedResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if filestats, ok := c.fileProcessedStats[path]; ok {
		return filestats.Result
	}
	return ""
}

// Fixed returns the number of findings fixed in the file at path over all
// codemods.
func (c *Collector) Fixed(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, s := range c.fileRemediatedStats[path] {
		n += s.Fixed
	}
	return n
}

// Remediations returns the number of codemod runs recorded for path.
func (c *Collector) Remediations(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fileRemediatedStats[path])
}

// RunStatus returns the status recorded by AfterRun, nil if it wasn't called.
func (c *Collector) RunStatus() *plugin.RunStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runStatus
}

// ExportedBytes returns the size recorded by AfterReportExported.
func (c *Collector) ExportedBytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exportedBytes
}
