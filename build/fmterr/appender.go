// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fmterr

// Appender appends diagnostics to a set.
type Appender struct {
	errors *Errors
}

// Append an error to the list of errors.
// It always returns false so that callers can write `return app.Append(err)`
// from a check function.
func (app *Appender) Append(err error) bool {
	return app.errors.Append(err)
}

// Appendf appends a diagnostic at a position.
func (app *Appender) Appendf(kind Kind, src Positioner, format string, a ...any) bool {
	return app.Append(Errorf(kind, src, format, a...))
}

// Pos returns an appender to a specific position.
func (app *Appender) Pos(src Positioner) *PosAppender {
	return &PosAppender{app: app, src: src}
}

// Errors returns the set of errors or nil if no errors has been appended.
func (app *Appender) Errors() *Errors {
	if app.errors.Empty() {
		return nil
	}
	return app.errors
}

// Empty returns true if no errors has been appended.
func (app *Appender) Empty() bool {
	return app.errors.Empty()
}

// String representation of the error.
func (app *Appender) String() string {
	return app.errors.String()
}

// PosAppender is an error appender for a given position.
type PosAppender struct {
	app *Appender
	src Positioner
}

// Appendf appends an error at a position.
func (app *PosAppender) Appendf(kind Kind, format string, a ...any) bool {
	return app.app.Appendf(kind, app.src, format, a...)
}
