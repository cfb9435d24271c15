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

// Package gitignore decides whether files of a project are ignored by the
// .gitignore files in their parent directories.
package gitignore

import (
	"bufio"
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher matches slash-separated paths relative to the root of fsys against
// the .gitignore files found between the root and the path. Parsed
// .gitignore files are cached, so a Matcher isn't safe for concurrent use.
type Matcher struct {
	fsys  fs.FS
	cache map[string][]gitignore.Pattern
}

// New returns a Matcher for the project in fsys.
func New(fsys fs.FS) *Matcher {
	return &Matcher{fsys: fsys, cache: make(map[string][]gitignore.Pattern)}
}

// Ignored returns whether the file at filePath is ignored.
func (m *Matcher) Ignored(filePath string) (bool, error) {
	components := strings.Split(filePath, "/")
	var ps []gitignore.Pattern
	dir := ""
	for i := range len(components) {
		dirPs, err := m.patterns(dir)
		if err != nil {
			return false, err
		}
		ps = append(ps, dirPs...)
		// A file in an ignored directory is ignored, and git doesn't read the
		// .gitignore files below it.
		if i > 0 && gitignore.NewMatcher(ps).Match(components[:i], true) {
			return true, nil
		}
		dir = path.Join(dir, components[i])
	}
	return gitignore.NewMatcher(ps).Match(components, false), nil
}

// patterns returns the patterns of the .gitignore file in dir, if any.
func (m *Matcher) patterns(dir string) ([]gitignore.Pattern, error) {
	if ps, ok := m.cache[dir]; ok {
		return ps, nil
	}
	ps, err := parseDir(m.fsys, dir)
	if err != nil {
		return nil, err
	}
	m.cache[dir] = ps
	return ps, nil
}

func parseDir(fsys fs.FS, dir string) ([]gitignore.Pattern, error) {
	var domain []string
	filePath := ".gitignore"
	if dir != "" {
		domain = strings.Split(dir, "/")
		filePath = path.Join(dir, filePath)
	}
	f, err := fsys.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	var ps []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		s := scanner.Text()
		if !strings.HasPrefix(s, "#") && len(strings.TrimSpace(s)) > 0 {
			ps = append(ps, gitignore.ParsePattern(s, domain))
		}
	}
	return ps, scanner.Err()
}
