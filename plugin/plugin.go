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

// Package plugin collects the code shared by all codemod plugins.
package plugin

import (
	"fmt"
)

// Plugin is the part of the codemod interface used for identification and
// status reporting.
type Plugin interface {
	// A unique name used to identify this plugin, e.g. "java/harden-xmlinputfactory".
	Name() string
	// Plugin version, should get bumped whenever the generated code changes.
	Version() int
}

// Status contains the status and version of a plugin that ran.
type Status struct {
	Name    string     `json:"name"`
	Version int        `json:"version"`
	Status  *RunStatus `json:"status"`
}

// RunStatus is the status of a run. In case the run fails, FailureReason
// contains details.
type RunStatus struct {
	Status        RunStatusEnum `json:"status"`
	FailureReason string        `json:"failureReason,omitempty"`
	FileErrors    []*FileError  `json:"fileErrors,omitempty"`
}

// FileError contains the error that occurred while processing a specific file.
type FileError struct {
	FilePath     string `json:"path"`
	ErrorMessage string `json:"error"`
}

// RunStatusEnum is the enum for the run status.
type RunStatusEnum int

// RunStatusEnum values.
const (
	RunStatusUnspecified RunStatusEnum = iota
	RunStatusSucceeded
	RunStatusPartiallySucceeded
	RunStatusFailed
)

// StatusFromErr returns a successful or failed status for a given plugin
// based on an error.
func StatusFromErr(p Plugin, partial bool, overallErr error, fileErrors []*FileError) *Status {
	status := &RunStatus{}
	if overallErr == nil {
		status.Status = RunStatusSucceeded
	} else {
		if partial {
			status.Status = RunStatusPartiallySucceeded
		} else {
			status.Status = RunStatusFailed
		}
		status.FileErrors = fileErrors
		status.FailureReason = overallErr.Error()
	}
	return &Status{
		Name:    p.Name(),
		Version: p.Version(),
		Status:  status,
	}
}

// OverallErrFromFileErrs returns an error to set as the overall failure
// reason based on the plugin's per-file errors.
func OverallErrFromFileErrs(fileErrors []*FileError) error {
	if len(fileErrors) == 0 {
		return nil
	}
	return fmt.Errorf("encountered %d error(s) while running plugin; check file-specific errors for details", len(fileErrors))
}

// String returns a string representation of the run status.
func (s *RunStatus) String() string {
	switch s.Status {
	case RunStatusSucceeded:
		return "SUCCEEDED"
	case RunStatusPartiallySucceeded:
		return "PARTIALLY_SUCCEEDED: " + s.FailureReason
	case RunStatusFailed:
		return "FAILED: " + s.FailureReason
	case RunStatusUnspecified:
		fallthrough
	default:
		return "UNSPECIFIED"
	}
}

// MarshalText implements encoding.TextMarshaler so statuses serialize by name.
func (e RunStatusEnum) MarshalText() ([]byte, error) {
	switch e {
	case RunStatusSucceeded:
		return []byte("SUCCEEDED"), nil
	case RunStatusPartiallySucceeded:
		return []byte("PARTIALLY_SUCCEEDED"), nil
	case RunStatusFailed:
		return []byte("FAILED"), nil
	default:
		return []byte("UNSPECIFIED"), nil
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *RunStatusEnum) UnmarshalText(text []byte) error {
	switch string(text) {
	case "SUCCEEDED":
		*e = RunStatusSucceeded
	case "PARTIALLY_SUCCEEDED":
		*e = RunStatusPartiallySucceeded
	case "FAILED":
		*e = RunStatusFailed
	case "UNSPECIFIED":
		*e = RunStatusUnspecified
	default:
		return fmt.Errorf("unknown run status %q", text)
	}
	return nil
}
