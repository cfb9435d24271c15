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

package stats

import "time"

// FileRemediatedStats is a struct containing stats about one codemod's run on
// a file.
type FileRemediatedStats struct {
	Path    string
	Runtime time.Duration
	// Fixed and Unfixed count findings, not changes.
	Fixed   int
	Unfixed int
}

// FileProcessedStats is a struct containing stats about a file that was
// remediated. If the file failed, Error is set.
type FileProcessedStats struct {
	Path          string
	Result        FileProcessedResult
	FileSizeBytes int64
	Runtime       time.Duration
	Error         error
}

// FileProcessedResult is a string representation of what happened to a file.
type FileProcessedResult string

const (
	// FileProcessedResultChanged indicates that at least one codemod changed
	// the file.
	FileProcessedResultChanged FileProcessedResult = "FILE_PROCESSED_RESULT_CHANGED"

	// FileProcessedResultUnchanged indicates that no codemod changed the file.
	FileProcessedResultUnchanged FileProcessedResult = "FILE_PROCESSED_RESULT_UNCHANGED"

	// FileProcessedResultErrorRead indicates that the file couldn't be read.
	FileProcessedResultErrorRead FileProcessedResult = "FILE_PROCESSED_RESULT_ERROR_READ"

	// FileProcessedResultErrorParse indicates that the file has syntax errors.
	FileProcessedResultErrorParse FileProcessedResult = "FILE_PROCESSED_RESULT_ERROR_PARSE"

	// FileProcessedResultErrorWrite indicates that the changed file couldn't
	// be written back.
	FileProcessedResultErrorWrite FileProcessedResult = "FILE_PROCESSED_RESULT_ERROR_WRITE"

	// FileProcessedResultCanceled indicates that the run was canceled before
	// the file was done.
	FileProcessedResultCanceled FileProcessedResult = "FILE_PROCESSED_RESULT_CANCELED"
)
