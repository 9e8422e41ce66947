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
	"fmt"
	"reflect"

	"github.com/jrmdayn/reasongraphql/graphql/async"
)

// ExecutionContext carries everything a single Execute call threads through
// field resolution (C8): the caller's context.Context, the schema being
// queried, the request's coerced variables and fragment definitions, the
// Scheduler that decides how concurrently sibling fields run, and the
// accumulating list of ResolveErrors produced so far. One ExecutionContext
// is built per Execute call and is not reused across requests.
type ExecutionContext struct {
	Ctx       context.Context
	Schema    *Schema
	Variables map[string]Value
	Fragments map[string]*FragmentDefinition
	Scheduler async.Scheduler
	Tracer    Tracer

	// errors is a pointer so that withFieldContext can hand a field's
	// resolver a shallow copy of the ExecutionContext carrying a
	// span-scoped Ctx, without losing errors that copy records: every
	// copy shares the same underlying slice.
	errors *[]*ResolveError
}

func (ec *ExecutionContext) addError(rerr *ResolveError) {
	*ec.errors = append(*ec.errors, rerr)
}

// withFieldContext returns a shallow copy of ec with Ctx replaced by
// fieldCtx, for passing to a single field's resolver and its descendants so
// that a Tracer's per-field span is the parent of any spans the resolver or
// its children start. Returns ec itself when fieldCtx is unchanged, so the
// common no-op-Tracer case allocates nothing.
func (ec *ExecutionContext) withFieldContext(fieldCtx context.Context) *ExecutionContext {
	if fieldCtx == ec.Ctx {
		return ec
	}
	clone := *ec
	clone.Ctx = fieldCtx
	return &clone
}

// preparedField is a CollectedField that has been matched to its Field
// descriptor and had its arguments coerced, the point past which argument
// and validation errors can no longer occur for this field.
type preparedField struct {
	field       *Field
	parentType  string
	responseKey string
	selection   *FieldSelection
	args        Args
}

// resolveFields runs every field in selections against objType/src and
// assembles the result as a Map Value (C8). Argument coercion and selection
// validation happen synchronously, for every field, before any resolver
// runs: an ArgumentError or ValidationError fails the whole operation (no
// partial data), matching the behavior documented on those error types.
// sequential forces fields to resolve one at a time via Bind chaining
// rather than through the Scheduler's All, the rule for a mutation
// operation's top-level selection set; every other call site passes false.
func resolveFields(ec *ExecutionContext, objType *OutType, src interface{}, selections []Selection, sequential bool) (Value, error) {
	collected, err := collectFields(selections, ec.Fragments, objType)
	if err != nil {
		return Value{}, err
	}
	prepared := make([]preparedField, 0, len(collected))
	for _, cf := range collected {
		if cf.Selection.Name == "__typename" {
			prepared = append(prepared, preparedField{responseKey: cf.ResponseKey, selection: cf.Selection})
			continue
		}
		fdef := objType.obj.FieldByName(cf.Selection.Name)
		if fdef == nil {
			return Value{}, newValidationError("Field `%s` not defined on type `%s`", cf.Selection.Name, objType.Name())
		}
		args, err := evaluateArgs(fdef.Args, cf.Selection.Arguments, ec.Variables, cf.Selection.Name)
		if err != nil {
			return Value{}, err
		}
		prepared = append(prepared, preparedField{field: fdef, parentType: objType.Name(), responseKey: cf.ResponseKey, selection: cf.Selection, args: args})
	}

	futures := make([]async.Future, len(prepared))
	for i, p := range prepared {
		p := p
		if p.field == nil {
			// __typename meta-field: resolves to the concrete object's name
			// without consulting a Field descriptor or running a resolver.
			futures[i] = async.Return(String(objType.Name()), nil)
			continue
		}
		futures[i] = resolveFieldFuture(ec, p, src)
	}

	var results []async.Result
	if sequential {
		results = make([]async.Result, len(futures))
		for i, f := range futures {
			val, err := ec.Scheduler.Await(f)
			results[i] = async.Result{Value: val, Err: err}
		}
	} else {
		results = ec.Scheduler.AwaitAll(futures)
	}

	entries := make([]MapEntry, 0, len(prepared))
	for i, r := range results {
		if r.Err != nil {
			// A non-nullable field (or the whole selection set, transitively)
			// failed with no Nullable ancestor within this object to absorb
			// it: the object itself becomes the failure, for its own parent
			// to absorb or re-propagate.
			rerr, ok := r.Err.(*ResolveError)
			if !ok {
				rerr = newResolveError(r.Err.Error())
			}
			return Value{}, rerr.prependPath(PathSegment{Field: prepared[i].responseKey})
		}
		entries = append(entries, MapEntry{Key: prepared[i].responseKey, Value: r.Value.(Value)})
	}
	return Map(entries...), nil
}

// resolveFieldFuture runs p's resolver and descends into its result
// according to p.field.Type, producing a Future of the field's final Value.
// A Future returned here only carries a non-nil error when p.field.Type is
// not itself Nullable and resolution failed - the signal resolveFields uses
// to decide whether the enclosing object must itself fail.
func resolveFieldFuture(ec *ExecutionContext, p preparedField, src interface{}) async.Future {
	fieldCtx, finish := ec.Tracer.TraceField(ec.Ctx, p.parentType, p.field.Name)
	fieldEC := ec.withFieldContext(fieldCtx)
	return async.Bind(p.field.lift(fieldEC, src, p.args), func(val interface{}, err error) async.Future {
		finish(err)
		return resolveTypedValue(fieldEC, p.field.Type, val, err, p.selection.SelectionSet)
	})
}

// resolveTypedValue absorbs or propagates resolveErr according to t's
// nullability, then, if no error, recursively resolves val against t (C8
// steps 3-5). This is the single place null bubbling happens: a Nullable
// wrapper is the only type that can turn a descendant's failure into a
// successful Null() result instead of re-raising it.
func resolveTypedValue(ec *ExecutionContext, t *OutType, val interface{}, resolveErr error, selections []Selection) async.Future {
	if resolveErr != nil {
		rerr, ok := resolveErr.(*ResolveError)
		if !ok {
			rerr = newResolveError(resolveErr.Error())
		}
		ec.addError(rerr)
		if t.kind == OutNullableKind {
			return async.Return(Null(), nil)
		}
		return async.Return(nil, rerr)
	}

	switch t.kind {
	case OutNullableKind:
		if val == nil {
			return async.Return(Null(), nil)
		}
		return async.Bind(resolveTypedValue(ec, t.elem, val, nil, selections), func(v interface{}, err error) async.Future {
			if err != nil {
				// Already recorded at its point of origin; absorbed here.
				return async.Return(Null(), nil)
			}
			return async.Return(v, nil)
		})

	case OutScalarKind:
		if val == nil {
			rerr := newResolveError(fmt.Sprintf("resolver returned nil for non-null field of type `%s`", t.name))
			ec.addError(rerr)
			return async.Return(nil, rerr)
		}
		v, err := t.serialize(val)
		if err != nil {
			rerr := newResolveError(err.Error())
			ec.addError(rerr)
			return async.Return(nil, rerr)
		}
		return async.Return(v, nil)

	case OutEnumKind:
		for _, m := range t.enumValues {
			if m.Value == val {
				return async.Return(Enum(m.Name), nil)
			}
		}
		rerr := newResolveError(fmt.Sprintf("cannot serialize value as enum `%s`", t.name))
		ec.addError(rerr)
		return async.Return(nil, rerr)

	case OutListKind:
		items, ok := reflectSlice(val)
		if !ok {
			rerr := newResolveError(fmt.Sprintf("resolver did not return a list for field of type `%s`", t.String()))
			ec.addError(rerr)
			return async.Return(nil, rerr)
		}
		itemFutures := make([]async.Future, len(items))
		for i, item := range items {
			i, item := i, item
			itemFutures[i] = async.Bind(resolveTypedValue(ec, t.elem, item, nil, selections), func(v interface{}, err error) async.Future {
				if err != nil {
					rerr, ok := err.(*ResolveError)
					if !ok {
						rerr = newResolveError(err.Error())
					}
					return async.Return(nil, rerr.prependPath(PathSegment{IsIndex: true, ListIndex: i}))
				}
				return async.Return(v, nil)
			})
		}
		return async.Bind(async.All(itemFutures), func(val interface{}, _ error) async.Future {
			results := val.([]async.Result)
			out := make([]Value, len(results))
			for i, r := range results {
				if r.Err != nil {
					return async.Return(nil, r.Err)
				}
				out[i] = r.Value.(Value)
			}
			return async.Return(List(out...), nil)
		})

	case OutObjectKind:
		v, err := resolveFields(ec, t, val, selections, false)
		return async.Return(v, err)

	case OutAbstractKind:
		av, ok := val.(AbstractValue)
		if !ok {
			rerr := newResolveError(fmt.Sprintf("resolver did not return an AbstractValue for abstract type `%s`", t.abstract.Name))
			ec.addError(rerr)
			return async.Return(nil, rerr)
		}
		return resolveTypedValue(ec, av.Type, av.Value, nil, selections)

	default:
		panic("graphql: unknown OutType kind")
	}
}

// reflectSlice converts val into a []interface{} if it is a slice or array,
// via reflection so resolvers can return any concrete slice type ([]*Human,
// []string, ...) rather than being forced to box into []interface{}
// themselves.
func reflectSlice(val interface{}) ([]interface{}, bool) {
	if val == nil {
		return nil, false
	}
	if items, ok := val.([]interface{}); ok {
		return items, true
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
