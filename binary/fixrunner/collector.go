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

package fixrunner

import (
	"sync"
	"time"

	"github.com/google/osv-codefix/log"
	"github.com/google/osv-codefix/stats"
)

// logCollector counts processed files per result and logs a summary at the
// end of the run.
type logCollector struct {
	stats.NoopCollector

	mu      sync.Mutex
	results map[stats.FileProcessedResult]int
	bytes   int64
	runtime time.Duration
}

func newLogCollector() *logCollector {
	return &logCollector{results: make(map[stats.FileProcessedResult]int)}
}

func (c *logCollector) AfterFileProcessed(filestats *stats.FileProcessedStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[filestats.Result]++
	c.bytes += filestats.FileSizeBytes
	c.runtime += filestats.Runtime
	if filestats.Error != nil {
		log.Debugf("%s: %v", filestats.Path, filestats.Error)
	}
}

func (c *logCollector) AfterReportExported(destination string, bytes int, err error) {
	if err == nil {
		log.Debugf("Exported %d bytes of run report to %s", bytes, destination)
	}
}

func (c *logCollector) count(r stats.FileProcessedResult) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results[r]
}

func (c *logCollector) logSummary() {
	c.mu.Lock()
	defer c.mu.Unlock()
	failed := c.results[stats.FileProcessedResultErrorRead] +
		c.results[stats.FileProcessedResultErrorParse] +
		c.results[stats.FileProcessedResultErrorWrite]
	log.Infof(
		"Processed %d bytes: %d files changed, %d unchanged, %d failed, %d canceled",
		c.bytes,
		c.results[stats.FileProcessedResultChanged],
		c.results[stats.FileProcessedResultUnchanged],
		failed,
		c.results[stats.FileProcessedResultCanceled],
	)
	log.Debugf("Total time spent on files: %v", c.runtime)
}
