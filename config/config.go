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

// Package config reads the optional osv-codefix config file, written in
// YAML or TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a config file.
type Format int

// Format values.
const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFromPath returns the config format for a file name. Anything that
// isn't a .toml file is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Config holds the settings that can be stored in a config file. Command
// line flags take precedence over them.
type Config struct {
	// Codemods to run, by name or group.
	Codemods []string `yaml:"codemods" toml:"codemods"`
	// SARIF and Semgrep JSON files to read findings from, relative to the
	// config file's directory if not absolute.
	SARIF   []string `yaml:"sarif" toml:"sarif"`
	Semgrep []string `yaml:"semgrep" toml:"semgrep"`
	// Include and Exclude are glob patterns matched against file paths
	// relative to the project root.
	Include []string `yaml:"include" toml:"include"`
	Exclude []string `yaml:"exclude" toml:"exclude"`
	// UseGitignore leaves findings in files ignored by git unfixed.
	UseGitignore bool `yaml:"use-gitignore" toml:"use-gitignore"`
	// Parallelism is the number of files processed concurrently.
	Parallelism int  `yaml:"parallelism" toml:"parallelism"`
	DryRun      bool `yaml:"dry-run" toml:"dry-run"`
	// Rules maps codemod names to additional rule IDs they handle, e.g.
	// rules of an in-house detector.
	Rules map[string][]string `yaml:"rules" toml:"rules"`
}

// Load reads the config file at path. Unknown keys are an error.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a config in the given format from r. An empty document is an
// empty config.
func Decode(r io.Reader, format Format) (*Config, error) {
	cfg := &Config{}
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(cfg)
		if err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("invalid config: unknown keys %v", undecoded)
		}
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values of the config.
func (c *Config) Validate() error {
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	for _, p := range append(append([]string{}, c.Include...), c.Exclude...) {
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("invalid glob %q: %w", p, err)
		}
	}
	for name, rules := range c.Rules {
		if len(rules) == 0 {
			return fmt.Errorf("no rules listed for codemod %q", name)
		}
	}
	return nil
}
