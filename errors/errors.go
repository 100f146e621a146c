// Copyright 2024 The vvSQL Authors
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

// Package errors implements the error taxonomy of spec.md §7: a common
// Error interface carrying source position and context, six concrete
// kinds, and a List aggregate for reporting more than one failure at once.
//
// The shape mirrors cuelang.org/go/cue/errors: a small interface plus
// concrete error types that compose into a list, rather than a chain of
// wrapped stdlib errors.
package errors

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/vvsql/vvsql/token"
)

// Error is the interface every vvSQL compiler error implements.
type Error interface {
	error
	// Position returns the primary source location of the error, or
	// token.NoPos if none applies (e.g. a BackendError from an adapter
	// that does not track source positions).
	Position() token.Pos
	// Context names the enclosing clause or construct, e.g. "SCALE color"
	// or "WITH bar" — used to disambiguate errors that share a position.
	Context() string
}

// Kind distinguishes the six error categories of spec.md §7.
type Kind int

const (
	KindSplit Kind = iota
	KindParse
	KindModel
	KindBackend
	KindEmit
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindSplit:
		return "SplitError"
	case KindParse:
		return "ParseError"
	case KindModel:
		return "ModelError"
	case KindBackend:
		return "BackendError"
	case KindEmit:
		return "EmitError"
	case KindIO:
		return "IOError"
	default:
		return "Error"
	}
}

// baseError is embedded by every concrete kind below.
type baseError struct {
	kind    Kind
	pos     token.Pos
	context string
	message string
}

func (e *baseError) Error() string {
	if e.pos.IsValid() {
		if e.context != "" {
			return fmt.Sprintf("%s: %s:%s %s", e.kind, e.pos, e.context, e.message)
		}
		return fmt.Sprintf("%s: %s: %s", e.kind, e.pos, e.message)
	}
	if e.context != "" {
		return fmt.Sprintf("%s: %s: %s", e.kind, e.context, e.message)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *baseError) Position() token.Pos { return e.pos }
func (e *baseError) Context() string     { return e.context }
func (e *baseError) Kind() Kind          { return e.kind }

// SplitError reports a malformed visualization marker (spec.md §4.1); in
// practice it should not fire, since an absent marker is not an error.
type SplitError struct{ *baseError }

func NewSplitError(pos token.Pos, context, format string, args ...interface{}) *SplitError {
	return &SplitError{&baseError{kind: KindSplit, pos: pos, context: context, message: fmt.Sprintf(format, args...)}}
}

// ParseError reports a grammar violation (spec.md §4.2).
type ParseError struct{ *baseError }

func NewParseError(pos token.Pos, context, format string, args ...interface{}) *ParseError {
	return &ParseError{&baseError{kind: KindParse, pos: pos, context: context, message: fmt.Sprintf(format, args...)}}
}

// ModelError reports a violated invariant (spec.md §3) or a missing
// required aesthetic (spec.md §4.4).
type ModelError struct{ *baseError }

func NewModelError(pos token.Pos, context, format string, args ...interface{}) *ModelError {
	return &ModelError{&baseError{kind: KindModel, pos: pos, context: context, message: fmt.Sprintf(format, args...)}}
}

// BackendError reports an adapter-originated failure (spec.md §4.5).
type BackendError struct {
	*baseError
	Backend    string
	SQLSnippet string
}

func NewBackendError(backend, sqlSnippet, format string, args ...interface{}) *BackendError {
	return &BackendError{
		baseError:  &baseError{kind: KindBackend, context: backend, message: fmt.Sprintf(format, args...)},
		Backend:    backend,
		SQLSnippet: sqlSnippet,
	}
}

func (e *BackendError) Error() string {
	if e.SQLSnippet != "" {
		return fmt.Sprintf("%s: backend %q: %s (near %q)", e.kind, e.Backend, e.message, e.SQLSnippet)
	}
	return fmt.Sprintf("%s: backend %q: %s", e.kind, e.Backend, e.message)
}

// EmitError reports a lowering condition the emitter cannot represent
// (spec.md §4.6); rare in practice since unsupported constructs normally
// degrade to a warning rather than an error.
type EmitError struct{ *baseError }

func NewEmitError(context, format string, args ...interface{}) *EmitError {
	return &EmitError{&baseError{kind: KindEmit, context: context, message: fmt.Sprintf(format, args...)}}
}

// IOError reports a file or network failure at the host boundary.
type IOError struct{ *baseError }

func NewIOError(context string, err error) *IOError {
	return &IOError{&baseError{kind: KindIO, context: context, message: err.Error()}}
}

// List aggregates zero or more Errors. A nil *List is a valid, empty
// error list, matching the conventional Go "nil error means no error"
// idiom even though List is itself a slice-backed type.
type List struct {
	errs []Error
}

// Append adds err to the list, flattening any nested *List, and returns
// the (possibly newly allocated) list. Mirrors cue/errors.Append.
func Append(list *List, err error) *List {
	if err == nil {
		return list
	}
	if list == nil {
		list = &List{}
	}
	switch e := err.(type) {
	case *List:
		list.errs = append(list.errs, e.errs...)
	case Error:
		list.errs = append(list.errs, e)
	default:
		list.errs = append(list.errs, &baseError{kind: KindIO, message: err.Error()})
	}
	return list
}

// Errs returns the underlying errors, in the order they were appended.
func (l *List) Errs() []Error {
	if l == nil {
		return nil
	}
	return l.errs
}

// Len reports how many errors are in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.errs)
}

// Sort orders the list by position, stably, so that reported diagnostics
// read top-to-bottom through the source.
func (l *List) Sort() {
	if l == nil {
		return
	}
	sort.SliceStable(l.errs, func(i, j int) bool {
		pi, pj := l.errs[i].Position(), l.errs[j].Position()
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})
}

func (l *List) Error() string {
	if l == nil || len(l.errs) == 0 {
		return ""
	}
	var buf bytes.Buffer
	for i, e := range l.errs {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(e.Error())
	}
	return buf.String()
}

// AsError returns l as an error, or nil if the list is empty — the usual
// pattern for "maybe I collected errors, maybe I didn't".
func (l *List) AsError() error {
	if l == nil || len(l.errs) == 0 {
		return nil
	}
	return l
}
