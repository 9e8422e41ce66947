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

import "context"

// Tracer observes the boundaries Execute crosses while running an
// operation, so a transport or an instrumentation package can attach
// spans, metrics, or logging around execution without this package
// depending on any particular backend. Both methods return a (possibly
// unchanged) context to descend with and a finish function to call
// exactly once when the traced unit of work completes.
type Tracer interface {
	// TraceOperation wraps one Execute call for a single operation.
	TraceOperation(ctx context.Context, operationName string, operationType OperationType) (context.Context, func(errs []*ResponseError))
	// TraceField wraps a single field's resolver invocation. typeName is
	// the name of the object type the field is defined on.
	TraceField(ctx context.Context, typeName, fieldName string) (context.Context, func(err error))
}

type noopTracer struct{}

func (noopTracer) TraceOperation(ctx context.Context, _ string, _ OperationType) (context.Context, func([]*ResponseError)) {
	return ctx, func([]*ResponseError) {}
}

func (noopTracer) TraceField(ctx context.Context, _, _ string) (context.Context, func(error)) {
	return ctx, func(error) {}
}

type tracerContextKey struct{}

// ContextWithTracer attaches t to ctx. Execute reads it back via
// TracerFromContext, so pass the returned context in to trace a request.
func ContextWithTracer(ctx context.Context, t Tracer) context.Context {
	return context.WithValue(ctx, tracerContextKey{}, t)
}

// TracerFromContext returns the Tracer attached to ctx by
// ContextWithTracer, or a no-op Tracer if none was attached.
func TracerFromContext(ctx context.Context) Tracer {
	if t, ok := ctx.Value(tracerContextKey{}).(Tracer); ok {
		return t
	}
	return noopTracer{}
}
