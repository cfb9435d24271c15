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

// Package list provides a public list of osv-codefix codemods.
package list

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/osv-codefix/codemod"
	"github.com/google/osv-codefix/codemod/java/deserialization"
	"github.com/google/osv-codefix/codemod/java/headernewlines"
	"github.com/google/osv-codefix/codemod/java/securecookie"
	"github.com/google/osv-codefix/codemod/java/urlsandbox"
	"github.com/google/osv-codefix/codemod/java/xmlinputfactory"
)

// InitFn is the codemod initializer function.
type InitFn func() codemod.Codemod

// InitMap is a map of codemod names to their initers.
type InitMap map[string][]InitFn

// Java codemods.
var Java = InitMap{
	headernewlines.Name:  {headernewlines.New},
	deserialization.Name: {deserialization.New},
	urlsandbox.Name:      {urlsandbox.New},
	securecookie.Name:    {securecookie.New},
	xmlinputfactory.Name: {xmlinputfactory.New},
}

// Default codemods that are recommended to be enabled.
var Default = Java

// All codemods.
var All = concat(
	Java,
)

var codemodNames = concat(All, InitMap{
	"java":    vals(Java),
	"default": vals(Default),
	"all":     vals(All),
})

func concat(initMaps ...InitMap) InitMap {
	result := InitMap{}
	for _, m := range initMaps {
		maps.Copy(result, m)
	}
	return result
}

// vals returns the initers of a map ordered by codemod name.
func vals(initMap InitMap) []InitFn {
	var result []InitFn
	for _, name := range slices.Sorted(maps.Keys(initMap)) {
		result = append(result, initMap[name]...)
	}
	return result
}

// FromNames returns a deduplicated list of codemods from a list of names.
// Names are case-insensitive and may refer to groups such as "java" or
// "default". Codemods keep the order in which they were first named.
func FromNames(names []string) ([]codemod.Codemod, error) {
	seen := make(map[string]bool)
	var result []codemod.Codemod
	for _, n := range names {
		initers, ok := codemodNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("unknown codemod %q", n)
		}
		for _, initer := range initers {
			c := initer()
			if !seen[c.Name()] {
				seen[c.Name()] = true
				result = append(result, c)
			}
		}
	}
	return result, nil
}

// FromName returns a single codemod based on its exact name.
func FromName(name string) (codemod.Codemod, error) {
	initers, ok := All[name]
	if !ok || len(initers) != 1 {
		return nil, fmt.Errorf("not an exact name for a codemod: %q", name)
	}
	return initers[0](), nil
}

// ForRule returns the codemods among cms that handle findings of rule.
func ForRule(cms []codemod.Codemod, rule string) []codemod.Codemod {
	var result []codemod.Codemod
	for _, c := range cms {
		if codemod.Handles(c, rule) {
			result = append(result, c)
		}
	}
	return result
}
