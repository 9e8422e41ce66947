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
	"context"

	"golang.org/x/xerrors"

	"github.com/jrmdayn/reasongraphql/graphql/async"
)

// Request holds the inputs to a single Execute call (C9): an already-parsed
// Document (see graphql/gqlparse for turning query text into one), the
// variables supplied with the request, and, if the document declares more
// than one operation, which one to run.
type Request struct {
	Document      *Document
	OperationName string
	Variables     map[string]Value
}

// Execute runs a single GraphQL operation against schema (C9). It is safe
// to call Execute concurrently from multiple goroutines for the same
// Schema, as long as rootValue and the Scheduler are safe for concurrent
// use; a Schema's Object field thunks are forced at most once regardless of
// how many concurrent Execute calls race to force them.
//
// scheduler controls how sibling fields are resolved: async.SyncScheduler
// for deterministic, single-goroutine execution, or
// async.NewConcurrentScheduler() to resolve siblings in parallel. Mutation
// operations always resolve their top-level fields sequentially regardless
// of scheduler, per the GraphQL specification's ordering guarantee for
// mutations.
func Execute(ctx context.Context, schema *Schema, scheduler async.Scheduler, queryRoot, mutationRoot interface{}, req Request) (resp Response) {
	operations, fragments := partitionDocument(req.Document)
	op, err := selectOperation(operations, req.OperationName)
	if err != nil {
		return Response{Errors: []*ResponseError{toResponseError(err)}}
	}

	tracer := TracerFromContext(ctx)
	ctx, finishOp := tracer.TraceOperation(ctx, op.Name, op.Type)
	defer func() { finishOp(resp.Errors) }()

	var rootType *OutType
	var rootValue interface{}
	sequential := false
	switch op.Type {
	case QueryOperation:
		rootType = schema.queryWithIntrospection()
		rootValue = queryRoot
	case MutationOperation:
		if schema.Mutation == nil {
			return Response{Errors: []*ResponseError{toResponseError(ErrMutationsNotConfigured)}}
		}
		rootType = schema.Mutation
		rootValue = mutationRoot
		sequential = true
	default:
		return Response{Errors: []*ResponseError{toResponseError(ErrSubscriptionsNotConfigured)}}
	}

	vars, err := buildVariables(op.VariableDefinitions, req.Variables)
	if err != nil {
		return Response{Errors: []*ResponseError{toResponseError(err)}}
	}

	var collectedErrors []*ResolveError
	ec := &ExecutionContext{
		Ctx:       ctx,
		Schema:    schema,
		Variables: vars,
		Fragments: fragments,
		Scheduler: scheduler,
		Tracer:    tracer,
		errors:    &collectedErrors,
	}
	data, topErr := resolveFields(ec, rootType, rootValue, op.SelectionSet, sequential)
	if topErr != nil {
		if _, ok := topErr.(*ResolveError); !ok {
			// ArgumentError or ValidationError: nothing ran, so there is
			// nothing in ec.errors to report beyond this one failure.
			return Response{Errors: []*ResponseError{toResponseError(topErr)}}
		}
		// A non-nullable root field failed with no ancestor to absorb it:
		// data is null, but every resolve error collected along the way -
		// not just the one that happened to bubble all the way up - is
		// still reported.
		for _, rerr := range collectedErrors {
			resp.Errors = append(resp.Errors, toResponseError(rerr))
		}
		return resp
	}
	resp = Response{Data: data}
	for _, rerr := range collectedErrors {
		resp.Errors = append(resp.Errors, toResponseError(rerr))
	}
	return resp
}

// selectOperation implements C9 step 1's operation-selection rule: an empty
// operationName is only valid when the document contains exactly one
// operation.
func selectOperation(operations []*OperationDefinition, operationName string) (*OperationDefinition, error) {
	if len(operations) == 0 {
		return nil, ErrNoOperationFound
	}
	if operationName == "" {
		if len(operations) > 1 {
			return nil, ErrOperationNameRequired
		}
		return operations[0], nil
	}
	for _, op := range operations {
		if op.Name == operationName {
			return op, nil
		}
	}
	return nil, ErrOperationNotFound
}

// buildVariables merges the request's raw variable values with each
// declared variable's default (applied only when the request omitted that
// variable entirely), producing the map argument evaluation substitutes
// from (C6 step 2).
func buildVariables(defs []VariableDefinition, raw map[string]Value) (map[string]Value, error) {
	vars := make(map[string]Value, len(raw)+len(defs))
	for k, v := range raw {
		vars[k] = v
	}
	for _, d := range defs {
		if _, ok := vars[d.Name]; ok || !d.HasDefault {
			continue
		}
		v, missing, ok := substituteVariables(d.DefaultValue, vars)
		if !ok {
			return nil, newArgumentError("Missing variable `%s`", missing)
		}
		vars[d.Name] = v
	}
	return vars, nil
}

// Response holds the output of a GraphQL operation, ready to be serialized
// as the wire response body.
type Response struct {
	Data   Value
	Errors []*ResponseError
}

// MarshalJSON renders resp as `{"data": ..., "errors": [...]}`, always
// including "data" (literal null when resp.Data is null, errored or not)
// and omitting "errors" entirely when there were none.
func (resp Response) MarshalJSON() ([]byte, error) {
	var buf []byte
	buf = append(buf, '{')
	buf = append(buf, `"data":`...)
	data, err := resp.Data.MarshalJSON()
	if err != nil {
		return nil, xerrors.Errorf("marshal response: %w", err)
	}
	buf = append(buf, data...)
	if len(resp.Errors) > 0 {
		buf = append(buf, `,"errors":[`...)
		for i, e := range resp.Errors {
			if i > 0 {
				buf = append(buf, ',')
			}
			data, err := e.MarshalJSON()
			if err != nil {
				return nil, xerrors.Errorf("marshal response: %w", err)
			}
			buf = append(buf, data...)
		}
		buf = append(buf, ']')
	}
	buf = append(buf, '}')
	return buf, nil
}
