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

// Package codefix provides an interface for fixing the vulnerabilities that
// static-analysis tools reported in a source tree.
package codefix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"bitbucket.org/creachadair/stringset"
	"github.com/gobwas/glob"
	"github.com/google/osv-codefix/codemod"
	"github.com/google/osv-codefix/cst/javaparse"
	"github.com/google/osv-codefix/finding"
	"github.com/google/osv-codefix/internal/gitignore"
	"github.com/google/osv-codefix/log"
	"github.com/google/osv-codefix/plugin"
	"github.com/google/osv-codefix/remediation"
	"github.com/google/osv-codefix/result"
	"github.com/google/osv-codefix/search"
	"github.com/google/osv-codefix/stats"
	"github.com/google/osv-codefix/version"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// ErrNoRoot is reported when no project root is configured.
var ErrNoRoot = errors.New("no project root specified")

// Reasons for findings that are never given to a codemod.
const (
	ReasonPathExcluded     = "path excluded"
	ReasonOutsideRoot      = "file is outside of the project root"
	ReasonDuplicateID      = "duplicate finding id"
	reasonInvalidPrefix    = "invalid finding: "
	reasonNoCodemodPrefix  = "no codemod handles rule "
	reasonFileFailedPrefix = "failed to process file: "
)

// Fixer is the main entry point of osv-codefix.
type Fixer struct{}

// New creates a new Fixer instance.
func New() *Fixer { return &Fixer{} }

// Config stores the settings of a fix run such as the codemods to use and
// the findings to fix.
type Config struct {
	// Codemods to run on every file, in order.
	Codemods []codemod.Codemod
	// Root is the project directory. Relative finding paths are relative to it.
	Root string
	// Findings reported by the static-analysis tools.
	Findings []finding.Finding
	// Optional: Input files the findings were read from, recorded in the report.
	Inputs []string
	// Optional: If set, only files matching one of these globs are changed.
	// Globs are matched against slash-separated paths relative to Root.
	Include []glob.Glob
	// Optional: Files matching one of these globs are never changed.
	Exclude []glob.Glob
	// Optional: Skip files declared in .gitignore files in the project.
	UseGitignore bool
	// Optional: Additional rule IDs per codemod name.
	ExtraRules map[string][]string
	// Optional: If true, changes are computed and reported but no file is written.
	DryRun bool
	// Optional: Number of files processed concurrently. Defaults to the number of CPUs.
	Parallelism int
	// Optional: stats allows to enter a metric hook. If left nil, no metrics will be recorded.
	Stats stats.Collector
}

// handler returns the index of the first codemod that handles rule, -1 if none.
func (cfg *Config) handler(rule string) int {
	for i, c := range cfg.Codemods {
		if codemod.Handles(c, rule) || slices.Contains(cfg.ExtraRules[c.Name()], rule) {
			return i
		}
	}
	return -1
}

// fileTask holds the findings of one file, split by codemod index.
type fileTask struct {
	path     string
	findings [][]finding.Finding
}

// fileOutcome is what processing one file produced for each codemod.
type fileOutcome struct {
	entries [][]*result.CodemodChange
	diffs   []string
	unfixed [][]*result.UnfixedFinding
	err     error
}

// Fix runs the codemods on the files the findings point at and returns the
// report of the run. File-level failures don't stop the run: the findings of
// a failed file are reported as unfixed and the file is left untouched.
func (Fixer) Fix(ctx context.Context, config *Config) (r *result.Report) {
	if config.Stats == nil {
		config.Stats = stats.NoopCollector{}
	}
	start := time.Now()
	r = &result.Report{
		Run: &result.Run{
			ID:        uuid.New().String(),
			Tool:      version.ToolName,
			Version:   version.ToolVersion,
			Directory: config.Root,
			Inputs:    config.Inputs,
			StartTime: start,
			DryRun:    config.DryRun,
		},
	}
	defer func() {
		r.Run.Elapsed = time.Since(start)
		config.Stats.AfterRun(r.Run.Elapsed, r.Run.Status)
	}()

	if err := checkRoot(config.Root); err != nil {
		r.Run.Status = &plugin.RunStatus{Status: plugin.RunStatusFailed, FailureReason: err.Error()}
		return r
	}
	root, err := filepath.Abs(config.Root)
	if err != nil {
		r.Run.Status = &plugin.RunStatus{Status: plugin.RunStatusFailed, FailureReason: fmt.Sprintf("invalid project root: %v", err)}
		return r
	}
	// Finding paths may be absolute, so everything below works on the absolute root.
	absConfig := *config
	absConfig.Root = root
	config = &absConfig

	tasks, unhandled := partition(config)
	r.UnhandledFindings = unhandled
	log.Infof("Fixing %d file(s) with %d codemod(s)", len(tasks), len(config.Codemods))

	outcomes := make([]*fileOutcome, len(tasks))
	g := &errgroup.Group{}
	g.SetLimit(parallelism(config.Parallelism))
	for i, task := range tasks {
		g.Go(func() error {
			outcomes[i] = processFile(ctx, config, task)
			return nil
		})
	}
	// Errors are recorded per file.
	_ = g.Wait()

	r.Results, r.Run.FailedFiles, r.Run.Status = aggregate(config.Codemods, tasks, outcomes)
	log.Infof("Run %s: %d file(s) changed, %d finding(s) fixed, %d unfixed, %d unhandled",
		r.Run.Status, len(r.ChangedFiles()), len(r.FixedFindingIDs()), len(r.AllUnfixed()), len(r.UnhandledFindings))
	return r
}

func checkRoot(root string) error {
	if root == "" {
		return ErrNoRoot
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("invalid project root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid project root: %s is not a directory", root)
	}
	return nil
}

func parallelism(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// partition validates the findings and groups them by file and codemod.
// Findings that can't be given to a codemod are returned as unhandled.
func partition(config *Config) ([]*fileTask, []*result.UnfixedFinding) {
	var unhandled []*result.UnfixedFinding
	reject := func(f finding.Finding, path, reason string) {
		unhandled = append(unhandled, &result.UnfixedFinding{
			FindingID:  f.ID,
			RuleID:     f.RuleID,
			Path:       path,
			LineNumber: f.Line,
			Reason:     reason,
		})
	}

	var gitignores *gitignore.Matcher
	if config.UseGitignore {
		gitignores = gitignore.New(os.DirFS(config.Root))
	}
	seen := stringset.New()
	byPath := make(map[string]*fileTask)
	for _, f := range config.Findings {
		if err := f.Validate(); err != nil {
			reject(f, f.FilePath, reasonInvalidPrefix+err.Error())
			continue
		}
		if seen.Contains(f.ID) {
			reject(f, f.FilePath, ReasonDuplicateID)
			continue
		}
		seen.Add(f.ID)
		path, ok := relPath(config.Root, f.FilePath)
		if !ok {
			reject(f, f.FilePath, ReasonOutsideRoot)
			continue
		}
		if !included(path, config.Include, config.Exclude) {
			reject(f, path, ReasonPathExcluded)
			continue
		}
		if gitignores != nil {
			ignored, err := gitignores.Ignored(path)
			if err != nil {
				log.Warnf("Failed to read .gitignore files for %s: %v", path, err)
			}
			if ignored {
				reject(f, path, ReasonPathExcluded)
				continue
			}
		}
		i := config.handler(f.RuleID)
		if i < 0 {
			reject(f, path, reasonNoCodemodPrefix+f.RuleID)
			continue
		}
		task, ok := byPath[path]
		if !ok {
			task = &fileTask{path: path, findings: make([][]finding.Finding, len(config.Codemods))}
			byPath[path] = task
		}
		task.findings[i] = append(task.findings[i], f)
	}

	tasks := make([]*fileTask, 0, len(byPath))
	for _, p := range slices.Sorted(maps.Keys(byPath)) {
		tasks = append(tasks, byPath[p])
	}
	return tasks, unhandled
}

// relPath returns the slash-separated path of a finding's file relative to
// root.
func relPath(root, path string) (string, bool) {
	p := filepath.FromSlash(path)
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return "", false
		}
		p = rel
	}
	p = filepath.Clean(p)
	if p == ".." || strings.HasPrefix(p, ".."+string(filepath.Separator)) || filepath.IsAbs(p) {
		return "", false
	}
	return filepath.ToSlash(p), true
}

func included(path string, include, exclude []glob.Glob) bool {
	matches := func(g glob.Glob) bool { return g.Match(path) }
	if len(include) > 0 && !slices.ContainsFunc(include, matches) {
		return false
	}
	return !slices.ContainsFunc(exclude, matches)
}

func processFile(ctx context.Context, config *Config, task *fileTask) *fileOutcome {
	n := len(config.Codemods)
	out := &fileOutcome{
		entries: make([][]*result.CodemodChange, n),
		diffs:   make([]string, n),
		unfixed: make([][]*result.UnfixedFinding, n),
	}
	fileStats := &stats.FileProcessedStats{Path: task.path}
	start := time.Now()
	defer func() {
		fileStats.Runtime = time.Since(start)
		fileStats.Error = out.err
		config.Stats.AfterFileProcessed(fileStats)
	}()

	fail := func(res stats.FileProcessedResult, err error) *fileOutcome {
		log.Warnf("%s: %v", task.path, err)
		fileStats.Result = res
		reason := reasonFileFailedPrefix + err.Error()
		for i, fs := range task.findings {
			out.entries[i] = nil
			out.diffs[i] = ""
			out.unfixed[i] = search.Unfixed(task.path, fs, reason)
		}
		out.err = err
		return out
	}

	abs := filepath.Join(config.Root, filepath.FromSlash(task.path))
	src, err := os.ReadFile(abs)
	if err != nil {
		return fail(stats.FileProcessedResultErrorRead, err)
	}
	fileStats.FileSizeBytes = int64(len(src))
	tree, err := javaparse.Parse(ctx, src)
	if err != nil {
		return fail(stats.FileProcessedResultErrorParse, err)
	}

	prev := src
	for i, c := range config.Codemods {
		fs := task.findings[i]
		if len(fs) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fail(stats.FileProcessedResultCanceled, err)
		}
		cmStart := time.Now()
		res := c.Remediator().RemediateAll(tree, task.path, fs)
		if err := remediation.CheckCoverage(fs, res); err != nil {
			log.Errorf("%s: %s: %v", task.path, c.Name(), err)
		}
		cur := tree.Print()
		diff, err := result.UnifiedDiff(task.path, prev, cur)
		if err != nil {
			return fail(stats.FileProcessedResultErrorWrite, err)
		}
		out.entries[i] = res.Changes
		out.diffs[i] = diff
		out.unfixed[i] = res.Unfixed
		prev = cur
		config.Stats.AfterFileRemediated(c.Name(), &stats.FileRemediatedStats{
			Path:    task.path,
			Runtime: time.Since(cmStart),
			Fixed:   fixedCount(res.Changes),
			Unfixed: len(res.Unfixed),
		})
	}

	if bytes.Equal(prev, src) {
		fileStats.Result = stats.FileProcessedResultUnchanged
		return out
	}
	if !config.DryRun {
		if err := writeFile(abs, prev); err != nil {
			return fail(stats.FileProcessedResultErrorWrite, err)
		}
	}
	fileStats.Result = stats.FileProcessedResultChanged
	return out
}

func fixedCount(changes []*result.CodemodChange) int {
	n := 0
	for _, c := range changes {
		n += len(c.FixedFindingIDs)
	}
	return n
}

// writeFile replaces the file at path with data. The data is written to a
// temporary file in the same directory first, so the file is never left half
// written.
func writeFile(path string, data []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".codefix-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// aggregate builds the per-codemod results. Files are visited in path order.
func aggregate(cms []codemod.Codemod, tasks []*fileTask, outcomes []*fileOutcome) ([]*result.CodemodResult, []string, *plugin.RunStatus) {
	var failedFiles []string
	var runFileErrs []*plugin.FileError
	results := make([]*result.CodemodResult, 0, len(cms))
	for i, c := range cms {
		cr := &result.CodemodResult{
			Codemod:         c.Name(),
			Summary:         c.Summary(),
			Description:     c.Description(),
			Changeset:       []*result.ChangesetEntry{},
			UnfixedFindings: []*result.UnfixedFinding{},
		}
		var fileErrs []*plugin.FileError
		var errs error
		files := 0
		for j, task := range tasks {
			if len(task.findings[i]) == 0 {
				continue
			}
			files++
			o := outcomes[j]
			cr.UnfixedFindings = append(cr.UnfixedFindings, o.unfixed[i]...)
			if o.err != nil {
				cr.FailedFiles = append(cr.FailedFiles, task.path)
				fileErrs = append(fileErrs, &plugin.FileError{FilePath: task.path, ErrorMessage: o.err.Error()})
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", task.path, o.err))
				continue
			}
			if len(o.entries[i]) > 0 {
				cr.Changeset = append(cr.Changeset, &result.ChangesetEntry{
					Path:    task.path,
					Diff:    o.diffs[i],
					Changes: o.entries[i],
				})
			}
		}
		cr.Status = plugin.StatusFromErr(c, len(fileErrs) < files, errs, fileErrs)
		results = append(results, cr)
	}
	for j, task := range tasks {
		if err := outcomes[j].err; err != nil {
			failedFiles = append(failedFiles, task.path)
			runFileErrs = append(runFileErrs, &plugin.FileError{FilePath: task.path, ErrorMessage: err.Error()})
		}
	}

	status := &plugin.RunStatus{Status: plugin.RunStatusSucceeded}
	if err := plugin.OverallErrFromFileErrs(runFileErrs); err != nil {
		status.Status = plugin.RunStatusPartiallySucceeded
		if len(runFileErrs) == len(tasks) {
			status.Status = plugin.RunStatusFailed
		}
		status.FailureReason = err.Error()
		status.FileErrors = runFileErrs
	}
	return results, failedFiles, status
}
