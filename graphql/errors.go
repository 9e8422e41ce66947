// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package graphql

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ArgumentError reports that argument coercion failed, or that collecting
// the selection set against a resolved value failed. ArgumentErrors fail the
// whole operation: the response has data:null.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }

func newArgumentError(format string, args ...interface{}) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// ValidationError reports that a selected field is not defined on the
// encountered object type. ValidationErrors fail the whole operation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ResolveError reports that a field's resolver returned an error. Subject to
// null bubbling: absorbed into a null value at the nearest Nullable
// ancestor, or propagated to the response root if none exists.
type ResolveError struct {
	Msg  string
	Path []PathSegment
}

func (e *ResolveError) Error() string { return e.Msg }

func newResolveError(msg string) *ResolveError {
	return &ResolveError{Msg: msg}
}

// prependPath mutates e in place, prepending seg to its Path, and returns e
// for chaining. Each ResolveError has exactly one owner as it travels up
// through the objects and lists that contain the field or index that
// produced it, so mutating in place (rather than copying) is what lets the
// copy already recorded in ExecutionContext.errors end up with the full
// path once the error finishes bubbling, instead of the empty path it had
// at the moment it was first recorded.
func (e *ResolveError) prependPath(seg PathSegment) *ResolveError {
	e.Path = append([]PathSegment{seg}, e.Path...)
	return e
}

// Sentinels for operation selection failures (C9).
var (
	ErrMutationsNotConfigured     = xerrors.New("mutations not configured for this schema")
	ErrSubscriptionsNotConfigured = xerrors.New("subscriptions not configured for this schema")
	ErrNoOperationFound           = xerrors.New("document contains no operations")
	ErrOperationNotFound          = xerrors.New("no operation with the requested name")
	ErrOperationNameRequired      = xerrors.New("document has multiple operations; operationName is required")
)

// PathSegment identifies a field or list index in a response value,
// mirroring the "path" entries of the GraphQL spec's error format.
type PathSegment struct {
	Field     string
	ListIndex int
	IsIndex   bool
}

// String returns the segment's field name or list index as a string.
func (seg PathSegment) String() string {
	if seg.IsIndex {
		return fmt.Sprintf("%d", seg.ListIndex)
	}
	return seg.Field
}

// ResponseError is a single entry of a Response's Errors list.
type ResponseError struct {
	Message string        `json:"message"`
	Path    []PathSegment `json:"path"`
}

// Error returns e.Message.
func (e *ResponseError) Error() string { return e.Message }

// MarshalJSON renders Path as a mix of JSON strings (field names) and JSON
// numbers (list indices), per the GraphQL response spec. Path is always
// present, as "path":[] when e carries none.
func (e *ResponseError) MarshalJSON() ([]byte, error) {
	buf := []byte(`{"message":`)
	msg, err := jsonMarshalString(e.Message)
	if err != nil {
		return nil, err
	}
	buf = append(buf, msg...)
	buf = append(buf, `,"path":[`...)
	for i, seg := range e.Path {
		if i > 0 {
			buf = append(buf, ',')
		}
		if seg.IsIndex {
			buf = append(buf, []byte(fmt.Sprintf("%d", seg.ListIndex))...)
		} else {
			s, err := jsonMarshalString(seg.Field)
			if err != nil {
				return nil, err
			}
			buf = append(buf, s...)
		}
	}
	buf = append(buf, ']')
	buf = append(buf, '}')
	return buf, nil
}

func toResponseError(err error) *ResponseError {
	switch e := err.(type) {
	case *ResponseError:
		return e
	case *ResolveError:
		return &ResponseError{Message: e.Msg, Path: e.Path}
	case *ArgumentError:
		return &ResponseError{Message: e.Msg}
	case *ValidationError:
		return &ResponseError{Message: e.Msg}
	default:
		return &ResponseError{Message: err.Error()}
	}
}
