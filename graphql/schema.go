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
	"sync"

	"golang.org/x/xerrors"
)

// Schema is an assembled, ready-to-execute GraphQL schema (C4): a root
// Query object and an optional root Mutation object, plus the introspection
// overlay derived from them. Unlike the original ParseSchema entry point
// this replaces, a Schema is assembled entirely from Go values built with
// NewObject, NewField, NewInterface, NewUnion, and AddType - there is no
// SDL document to parse, per the package's programmatic-builder design.
type Schema struct {
	Query    *OutType
	Mutation *OutType

	introspectionOnce  sync.Once
	introspectionQuery *OutType
}

// NewSchema assembles a Schema from its root types. query must be an object
// type built with NewObject; mutation may be nil if the schema supports no
// mutations. NewSchema does not build the __schema/__type introspection
// overlay (C5); it is built lazily the first time Execute runs a query.
func NewSchema(query, mutation *OutType) (*Schema, error) {
	if query == nil {
		return nil, xerrors.New("new schema: query is required")
	}
	if query.kind != OutObjectKind {
		return nil, xerrors.New("new schema: query must be an object type")
	}
	if mutation != nil && mutation.kind != OutObjectKind {
		return nil, xerrors.New("new schema: mutation must be an object type")
	}
	return &Schema{Query: query, Mutation: mutation}, nil
}

// queryWithIntrospection returns a derived Query object with __schema and
// __type prepended to its field list, built once and cached, without
// mutating the Schema's original Query object (C5): a Schema may be shared
// across concurrent Execute calls, and introspection fields must not leak
// into a caller's own reflection over the original Object via FieldByName.
func (s *Schema) queryWithIntrospection() *OutType {
	s.introspectionOnce.Do(func() {
		s.introspectionQuery = buildIntrospectionQuery(s)
	})
	return s.introspectionQuery
}
