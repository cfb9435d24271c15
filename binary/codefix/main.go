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

// The codefix command wraps around the osv-codefix library to create a
// standalone CLI that applies codemods to the findings of static analysis
// tools in a local source tree.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/osv-codefix/binary/cli"
	"github.com/google/osv-codefix/binary/fixrunner"
	"github.com/google/osv-codefix/log"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var subcommand string
	if len(args) >= 2 {
		subcommand = args[1]
	}
	switch subcommand {
	case "fix":
		flags, err := parseFlags(args[2:])
		if err != nil {
			log.Errorf("Error parsing CLI args: %v", err)
			return 1
		}
		return fixrunner.RunFix(flags)
	default:
		// Assume 'fix' if subcommand is not recognized/specified.
		flags, err := parseFlags(args[1:])
		if err != nil {
			log.Errorf("Error parsing CLI args: %v", err)
			return 1
		}
		return fixrunner.RunFix(flags)
	}
}

func parseFlags(args []string) (*cli.Flags, error) {
	fs := flag.NewFlagSet("codefix", flag.ExitOnError)
	root := fs.String("root", "", `The project root. Finding paths are resolved against it and only files below it are changed (e.g.: ".")`)
	var sarifFiles cli.StringListFlag
	fs.Var(&sarifFiles, "sarif", "Comma-separated list of SARIF files to read findings from, e.g. CodeQL or Sonar exports")
	var semgrepFiles cli.StringListFlag
	fs.Var(&semgrepFiles, "semgrep", "Comma-separated list of Semgrep JSON output files to read findings from")
	var codemodsToRun cli.StringListFlag
	fs.Var(&codemodsToRun, "codemods", `Comma-separated list of codemods or codemod groups to run (e.g. "java" or "java/sandbox-url-creation"). Defaults to "default"`)
	var include cli.StringListFlag
	fs.Var(&include, "include", "Comma-separated list of globs. If set, only findings in matching files are fixed. Globs are matched against the path relative to --root")
	var exclude cli.StringListFlag
	fs.Var(&exclude, "exclude", "Comma-separated list of globs. Findings in matching files are left unfixed")
	var rules cli.Array
	fs.Var(&rules, "rule", "Additional rule handled by a codemod, e.g. --rule java/harden-xmlinputfactory=acme.xxe. Can be repeated")
	useGitignore := fs.Bool("use-gitignore", false, "Leave findings in files declared in .gitignore files unfixed")
	configFile := fs.String("config", "", "Path to a YAML or TOML config file. Flags take precedence over its values")
	output := fs.String("output", "", `The path of the run report. Written to stdout if empty or "-"`)
	dryRun := fs.Bool("dry-run", false, "Compute and report the changes without writing any file")
	parallelism := fs.Int("parallelism", 0, "Number of files processed in parallel. Defaults to the number of CPUs")
	verbose := fs.Bool("verbose", false, "Enable this to print debug logs")
	printVersion := fs.Bool("version", false, "Print the version and exit")
	listCodemods := fs.Bool("list-codemods", false, "Print the available codemods and the rules they handle, then exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected positional arguments %v", fs.Args())
	}

	flags := &cli.Flags{
		Root:          *root,
		SARIF:         sarifFiles.GetSlice(),
		Semgrep:       semgrepFiles.GetSlice(),
		CodemodsToRun: codemodsToRun.GetSlice(),
		Include:       include.GetSlice(),
		Exclude:       exclude.GetSlice(),
		Rules:         rules,
		UseGitignore:  *useGitignore,
		ConfigFile:    *configFile,
		Output:        *output,
		DryRun:        *dryRun,
		Parallelism:   *parallelism,
		Verbose:       *verbose,
		PrintVersion:  *printVersion,
		ListCodemods:  *listCodemods,
	}
	if err := cli.ValidateFlags(flags); err != nil {
		return nil, err
	}
	return flags, nil
}
