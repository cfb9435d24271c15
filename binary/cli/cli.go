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

// Package cli defines the structures to store the CLI flags used by the osv-codefix binary.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	codefix "github.com/google/osv-codefix"
	cl "github.com/google/osv-codefix/codemod/list"
	"github.com/google/osv-codefix/config"
	"github.com/google/osv-codefix/finding"
	"github.com/google/osv-codefix/finding/sarif"
	"github.com/google/osv-codefix/finding/semgrep"
	"github.com/google/osv-codefix/log"
	"github.com/google/osv-codefix/result"
	"github.com/google/osv-codefix/stats"
)

// Array is a type to be passed to flag.Var that supports arrays passed as repeated flags,
// e.g. ./codefix --rule java/harden-xmlinputfactory=acme.xxe --rule java/sandbox-url-creation=acme.ssrf
type Array []string

func (i *Array) String() string {
	return strings.Join(*i, ",")
}

// Set gets called whenever a new instance of a flag is read during CLI arg parsing.
// For example, in the case of --rule foo --rule bar the library will call arr.Set("foo") then arr.Set("bar").
func (i *Array) Set(value string) error {
	*i = append(*i, strings.TrimSpace(value))
	return nil
}

// Get returns the underlying []string value stored by this flag struct.
func (i *Array) Get() any {
	return i
}

// StringListFlag is a type to be passed to flag.Var that supports list flags passed as repeated
// flags, e.g. ./codefix --sarif a.sarif --sarif b.sarif,c.sarif the library will call
// arr.Set("a.sarif") then arr.Set("b.sarif,c.sarif").
type StringListFlag struct {
	set          bool
	value        []string
	defaultValue []string
}

// NewStringListFlag creates a new StringListFlag with the given default value.
func NewStringListFlag(defaultValue []string) StringListFlag {
	return StringListFlag{defaultValue: defaultValue}
}

// Set gets called whenever a new instance of a flag is read during CLI arg parsing.
func (s *StringListFlag) Set(x string) error {
	s.value = append(s.value, strings.Split(x, ",")...)
	s.set = true
	return nil
}

// Get returns the underlying []string value stored by this flag struct.
func (s *StringListFlag) Get() any {
	return s.GetSlice()
}

// GetSlice returns the underlying []string value stored by this flag struct.
func (s *StringListFlag) GetSlice() []string {
	if s.set {
		return s.value
	}
	return s.defaultValue
}

func (s *StringListFlag) String() string {
	if len(s.value) == 0 {
		return ""
	}
	return fmt.Sprint(s.value)
}

// Reset resets the flag to its default value.
func (s *StringListFlag) Reset() {
	s.set = false
	s.value = nil
}

// Flags contains a field for all the cli flags that can be set.
type Flags struct {
	Root          string
	SARIF         []string
	Semgrep       []string
	CodemodsToRun []string
	Include       []string
	Exclude       []string
	Rules         Array
	UseGitignore  bool
	ConfigFile    string
	Output        string
	DryRun        bool
	Parallelism   int
	Verbose       bool
	PrintVersion  bool
	ListCodemods  bool
}

// ValidateFlags validates the passed command line flags.
func ValidateFlags(flags *Flags) error {
	if flags.PrintVersion || flags.ListCodemods {
		return nil
	}
	if flags.Root == "" {
		return errors.New("--root needs to be set")
	}
	if len(flags.SARIF) == 0 && len(flags.Semgrep) == 0 && flags.ConfigFile == "" {
		return errors.New("either --sarif, --semgrep or --config needs to be set")
	}
	if flags.Parallelism < 0 {
		return fmt.Errorf("--parallelism must not be negative, got %d", flags.Parallelism)
	}
	if err := validateMultiStringArg(flags.CodemodsToRun); err != nil {
		return fmt.Errorf("--codemods: %w", err)
	}
	if _, err := cl.FromNames(multiStringToList(flags.CodemodsToRun)); err != nil {
		return fmt.Errorf("--codemods: %w", err)
	}
	if err := validateGlobs(flags.Include); err != nil {
		return fmt.Errorf("--include: %w", err)
	}
	if err := validateGlobs(flags.Exclude); err != nil {
		return fmt.Errorf("--exclude: %w", err)
	}
	if _, err := parseRules(flags.Rules); err != nil {
		return fmt.Errorf("--rule: %w", err)
	}
	return nil
}

func validateMultiStringArg(arg []string) error {
	for _, item := range arg {
		for _, item := range strings.Split(item, ",") {
			if len(item) == 0 {
				return errors.New("list item cannot be left empty")
			}
		}
	}
	return nil
}

func validateGlobs(patterns []string) error {
	_, err := compileGlobs(patterns)
	return err
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	var globs []glob.Glob
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// parseRules parses codemod=rule pairs.
func parseRules(pairs []string) (map[string][]string, error) {
	rules := make(map[string][]string)
	for _, item := range pairs {
		name, rule, ok := strings.Cut(item, "=")
		if !ok || name == "" || rule == "" {
			return nil, fmt.Errorf("invalid rule mapping %q, should follow a format like --rule java/harden-xmlinputfactory=acme.xxe", item)
		}
		if _, err := cl.FromName(name); err != nil {
			return nil, err
		}
		rules[name] = append(rules[name], rule)
	}
	return rules, nil
}

func multiStringToList(arg []string) []string {
	var result []string
	for _, item := range arg {
		result = append(result, strings.Split(item, ",")...)
	}
	return result
}

// GetConfig constructs an osv-codefix run config from the provided CLI flags
// and the config file, if any. Flags take precedence over the file.
func (f *Flags) GetConfig() (*codefix.Config, error) {
	fileCfg := &config.Config{}
	if f.ConfigFile != "" {
		var err error
		if fileCfg, err = config.Load(f.ConfigFile); err != nil {
			return nil, err
		}
		dir := filepath.Dir(f.ConfigFile)
		fileCfg.SARIF = resolve(dir, fileCfg.SARIF)
		fileCfg.Semgrep = resolve(dir, fileCfg.Semgrep)
	}

	names := override(multiStringToList(f.CodemodsToRun), fileCfg.Codemods)
	if len(names) == 0 {
		names = []string{"default"}
	}
	codemods, err := cl.FromNames(names)
	if err != nil {
		return nil, err
	}
	include, err := compileGlobs(override(f.Include, fileCfg.Include))
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(override(f.Exclude, fileCfg.Exclude))
	if err != nil {
		return nil, err
	}
	rules, err := parseRules(f.Rules)
	if err != nil {
		return nil, err
	}
	for name, extra := range fileCfg.Rules {
		if _, err := cl.FromName(name); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		rules[name] = append(rules[name], extra...)
	}

	sarifFiles := override(f.SARIF, fileCfg.SARIF)
	semgrepFiles := override(f.Semgrep, fileCfg.Semgrep)
	findings, err := readFindings(sarifFiles, semgrepFiles)
	if err != nil {
		return nil, err
	}

	parallelism := fileCfg.Parallelism
	if f.Parallelism > 0 {
		parallelism = f.Parallelism
	}
	return &codefix.Config{
		Codemods:     codemods,
		Root:         f.Root,
		Findings:     findings,
		Inputs:       append(append([]string{}, sarifFiles...), semgrepFiles...),
		Include:      include,
		Exclude:      exclude,
		UseGitignore: f.UseGitignore || fileCfg.UseGitignore,
		ExtraRules:   rules,
		DryRun:       f.DryRun || fileCfg.DryRun,
		Parallelism:  parallelism,
	}, nil
}

func override(flag, file []string) []string {
	if len(flag) > 0 {
		return flag
	}
	return file
}

func resolve(dir string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		out = append(out, p)
	}
	return out
}

func readFindings(sarifFiles, semgrepFiles []string) ([]finding.Finding, error) {
	var findings []finding.Finding
	for _, p := range sarifFiles {
		fs, err := sarif.Read(p)
		if err != nil {
			return nil, err
		}
		log.Infof("Read %d finding(s) from %s", len(fs), p)
		findings = append(findings, fs...)
	}
	for _, p := range semgrepFiles {
		fs, err := semgrep.Read(p)
		if err != nil {
			return nil, err
		}
		log.Infof("Read %d finding(s) from %s", len(fs), p)
		findings = append(findings, fs...)
	}
	return findings, nil
}

// WriteReport writes the run report to the file specified by the CLI flags,
// or to stdout if none is set.
func (f *Flags) WriteReport(r *result.Report, collector stats.Collector) error {
	path, dest := f.Output, "file"
	if path == "" || path == "-" {
		path, dest = "-", "stdout"
	} else {
		log.Infof("Writing run report to %s", path)
	}
	n, err := result.Write(path, r)
	collector.AfterReportExported(dest, n, err)
	return err
}

// Codemods returns the names of all available codemods and what they fix.
func Codemods() []string {
	var out []string
	cms, _ := cl.FromNames([]string{"all"})
	for _, c := range cms {
		out = append(out, fmt.Sprintf("%s: %s (%s)", c.Name(), c.Summary(), strings.Join(c.Rules(), ", ")))
	}
	return out
}
