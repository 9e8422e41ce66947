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

// Package graphqltrace implements graphql.Tracer with OpenTelemetry spans:
// one span per operation and one child span per resolved field.
package graphqltrace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/jrmdayn/reasongraphql/graphql"
)

// DefaultTracer returns a Tracer using the tracer named "reasongraphql"
// from tp. Call this once at startup and attach the
// result to request contexts with graphql.ContextWithTracer.
func DefaultTracer(tp oteltrace.TracerProvider) graphql.Tracer {
	return &Tracer{Tracer: tp.Tracer("reasongraphql")}
}

// Tracer is an OpenTelemetry implementation of graphql.Tracer.
type Tracer struct {
	Tracer oteltrace.Tracer
}

func (t *Tracer) TraceOperation(ctx context.Context, operationName string, operationType graphql.OperationType) (context.Context, func([]*graphql.ResponseError)) {
	name := operationType.String()
	if operationName != "" {
		name += " " + operationName
	}
	spanCtx, span := t.Tracer.Start(ctx, name)
	span.SetAttributes(
		attribute.String("graphql.operation.type", operationType.String()),
		attribute.String("graphql.operation.name", operationName),
	)
	return spanCtx, func(errs []*graphql.ResponseError) {
		if len(errs) > 0 {
			msg := errs[0].Message
			if len(errs) > 1 {
				msg += fmt.Sprintf(" (and %d more errors)", len(errs)-1)
			}
			span.SetStatus(codes.Error, msg)
			span.SetAttributes(attribute.Int("graphql.error_count", len(errs)))
		}
		span.End()
	}
}

func (t *Tracer) TraceField(ctx context.Context, typeName, fieldName string) (context.Context, func(error)) {
	spanCtx, span := t.Tracer.Start(ctx, typeName+"."+fieldName)
	span.SetAttributes(
		attribute.String("graphql.type", typeName),
		attribute.String("graphql.field", fieldName),
	)
	return spanCtx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
