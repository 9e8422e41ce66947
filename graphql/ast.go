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

// This file describes the AST contract Execute consumes (the original
// spec's §6). Producing one of these is the job of an external GraphQL
// lexer/parser - see the graphql/gqlparse subpackage for an adapter from
// vektah/gqlparser/v2 - this package only ever reads them.

// OperationType distinguishes query, mutation, and subscription operations.
type OperationType int

// Operation types.
const (
	QueryOperation OperationType = iota
	MutationOperation
	SubscriptionOperation
)

// String returns the keyword corresponding to typ.
func (typ OperationType) String() string {
	switch typ {
	case QueryOperation:
		return "query"
	case MutationOperation:
		return "mutation"
	case SubscriptionOperation:
		return "subscription"
	default:
		return "unknown"
	}
}

// Document is a parsed GraphQL request document: some number of operations
// plus any fragment definitions they reference.
type Document struct {
	Definitions []Definition
}

// Definition is one top-level entry of a Document: exactly one of Operation
// or Fragment is set.
type Definition struct {
	Operation *OperationDefinition
	Fragment  *FragmentDefinition
}

// OperationDefinition is a query, mutation, or subscription.
type OperationDefinition struct {
	Type                OperationType
	Name                string
	VariableDefinitions []VariableDefinition
	SelectionSet        []Selection
}

// VariableDefinition declares one of an operation's `$name: Type` variables.
type VariableDefinition struct {
	Name         string
	DefaultValue AstValue
	HasDefault   bool
}

// FragmentDefinition is a `fragment Name on Type { ... }` definition.
type FragmentDefinition struct {
	Name          string
	TypeCondition string
	SelectionSet  []Selection
}

// Selection is one entry of a selection set: exactly one of Field,
// FragmentSpread, or InlineFragment is set.
type Selection struct {
	Field           *FieldSelection
	FragmentSpread  *FragmentSpreadSelection
	InlineFragment  *InlineFragmentSelection
}

// FieldSelection selects a single field, with an optional alias and
// arguments, and (for object-typed fields) a nested selection set.
type FieldSelection struct {
	Alias        string
	HasAlias     bool
	Name         string
	Arguments    []Argument
	SelectionSet []Selection
}

// ResponseKey returns the alias if present, else the field name - the key
// under which this field's value appears in the response object.
func (f *FieldSelection) ResponseKey() string {
	if f.HasAlias {
		return f.Alias
	}
	return f.Name
}

// Argument is a single `name: value` pair in a field's argument list.
type Argument struct {
	Name  string
	Value AstValue
}

// FragmentSpreadSelection is a `...Name` reference to a named fragment.
type FragmentSpreadSelection struct {
	Name string
}

// InlineFragmentSelection is a `... on Type { ... }` or bare `... { ... }`
// inline fragment.
type InlineFragmentSelection struct {
	TypeCondition   string
	HasTypeCondition bool
	SelectionSet    []Selection
}

// partitionDocument partitions a Document's definitions into its operations (in
// document order) and a name-indexed map of fragment definitions, per C9
// step 1.
func partitionDocument(doc *Document) (operations []*OperationDefinition, fragments map[string]*FragmentDefinition) {
	fragments = make(map[string]*FragmentDefinition)
	for _, defn := range doc.Definitions {
		switch {
		case defn.Operation != nil:
			operations = append(operations, defn.Operation)
		case defn.Fragment != nil:
			fragments[defn.Fragment.Name] = defn.Fragment
		}
	}
	return operations, fragments
}
