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

// Package log defines the logging interface used throughout osv-codefix.
// By default messages go to the standard Go logger, but callers embedding
// the library can install their own Logger.
package log

import (
	golog "log"
	"os"
)

// Logger is the logging interface of osv-codefix.
type Logger interface {
	// Logs in different log levels, either formatted or unformatted.
	Errorf(format string, args ...any)
	Error(args ...any)
	Warnf(format string, args ...any)
	Warn(args ...any)
	Infof(format string, args ...any)
	Info(args ...any)
	Debugf(format string, args ...any)
	Debug(args ...any)
}

var logger Logger = NewDefaultLogger(false)

// SetLogger replaces the package-level logger.
func SetLogger(l Logger) { logger = l }

// Errorf is the static formatted error logging function.
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }

// Warnf is the static formatted warning logging function.
func Warnf(format string, args ...any) { logger.Warnf(format, args...) }

// Infof is the static formatted info logging function.
func Infof(format string, args ...any) { logger.Infof(format, args...) }

// Debugf is the static formatted debug logging function.
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }

// Error is the static error logging function.
func Error(args ...any) { logger.Error(args...) }

// Warn is the static warning logging function.
func Warn(args ...any) { logger.Warn(args...) }

// Info is the static info logging function.
func Info(args ...any) { logger.Info(args...) }

// Debug is the static debug logging function.
func Debug(args ...any) { logger.Debug(args...) }

// DefaultLogger writes level-prefixed lines to stderr through a Go logger.
// Debug messages are dropped unless Verbose is set.
type DefaultLogger struct {
	Verbose bool

	out *golog.Logger
}

// NewDefaultLogger returns a DefaultLogger writing to stderr.
func NewDefaultLogger(verbose bool) *DefaultLogger {
	return &DefaultLogger{
		Verbose: verbose,
		out:     golog.New(os.Stderr, "", golog.LstdFlags),
	}
}

func (l *DefaultLogger) printf(level, format string, args []any) {
	out := l.out
	if out == nil {
		out = golog.Default()
	}
	out.Printf(level+format, args...)
}

func (l *DefaultLogger) println(level string, args []any) {
	out := l.out
	if out == nil {
		out = golog.Default()
	}
	out.Println(append([]any{level[:len(level)-1]}, args...)...)
}

// Errorf is the formatted error logging function.
func (l *DefaultLogger) Errorf(format string, args ...any) { l.printf("ERROR ", format, args) }

// Warnf is the formatted warning logging function.
func (l *DefaultLogger) Warnf(format string, args ...any) { l.printf("WARN ", format, args) }

// Infof is the formatted info logging function.
func (l *DefaultLogger) Infof(format string, args ...any) { l.printf("INFO ", format, args) }

// Debugf is the formatted debug logging function.
func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.Verbose {
		l.printf("DEBUG ", format, args)
	}
}

// Error is the error logging function.
func (l *DefaultLogger) Error(args ...any) { l.println("ERROR ", args) }

// Warn is the warning logging function.
func (l *DefaultLogger) Warn(args ...any) { l.println("WARN ", args) }

// Info is the info logging function.
func (l *DefaultLogger) Info(args ...any) { l.println("INFO ", args) }

// Debug is the debug logging function.
func (l *DefaultLogger) Debug(args ...any) {
	if l.Verbose {
		l.println("DEBUG ", args)
	}
}
