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

// Package fixrunner provides the main function for running codemods with the osv-codefix binary.
package fixrunner

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	codefix "github.com/google/osv-codefix"
	"github.com/google/osv-codefix/binary/cli"
	"github.com/google/osv-codefix/log"
	"github.com/google/osv-codefix/plugin"
	"github.com/google/osv-codefix/version"
)

// Exit codes returned by RunFix.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitFailedFiles = 2
)

// RunFix executes the codemods with the given CLI flags
// and returns the exit code passed to os.Exit() in the main binary.
func RunFix(flags *cli.Flags) int {
	if flags.PrintVersion {
		log.Infof("%s v%s", version.ToolName, version.ToolVersion)
		return ExitOK
	}
	if flags.ListCodemods {
		for _, c := range cli.Codemods() {
			fmt.Println(c)
		}
		return ExitOK
	}

	if flags.Verbose {
		log.SetLogger(log.NewDefaultLogger(true))
	}

	cfg, err := flags.GetConfig()
	if err != nil {
		log.Errorf("%v.GetConfig(): %v", flags, err)
		return ExitError
	}
	collector := newLogCollector()
	cfg.Stats = collector

	log.Infof("Running %d codemods on %d findings", len(cfg.Codemods), len(cfg.Findings))
	log.Infof("Project root: %s", cfg.Root)
	if cfg.DryRun {
		log.Infof("Dry run: no files will be modified")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	report := codefix.New().Fix(ctx, cfg)

	log.Infof("Run status: %v", report.Run.Status)
	for _, r := range report.Results {
		if r.Status.Status.Status != plugin.RunStatusSucceeded {
			log.Warnf("Codemod '%s' did not succeed. Status: %v, Reason: %s", r.Codemod, r.Status.Status, r.Status.Status.FailureReason)
		}
	}
	log.Infof(
		"Fixed %d findings in %d files, %d findings left unfixed",
		len(report.FixedFindingIDs()), len(report.ChangedFiles()), len(report.AllUnfixed()),
	)
	collector.logSummary()

	if err := flags.WriteReport(report, collector); err != nil {
		log.Errorf("Error writing run report: %v", err)
		return ExitError
	}

	switch {
	case report.Run.Status.Status == plugin.RunStatusFailed && len(report.Run.FailedFiles) == 0:
		log.Errorf("Run wasn't successful: %s", report.Run.Status.FailureReason)
		return ExitError
	case len(report.Run.FailedFiles) > 0:
		log.Errorf("Failed to process %d files: %s", len(report.Run.FailedFiles), report.Run.Status.FailureReason)
		return ExitFailedFiles
	}
	return ExitOK
}
