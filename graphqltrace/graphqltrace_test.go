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

package graphqltrace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jrmdayn/reasongraphql/graphql"
)

func newTestTracer(t *testing.T) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	return &Tracer{Tracer: tp.Tracer("test")}, exp
}

func TestTraceOperationRecordsSpanName(t *testing.T) {
	tr, exp := newTestTracer(t)
	ctx, finish := tr.TraceOperation(context.Background(), "Hero", graphql.QueryOperation)
	require.NotNil(t, ctx)
	finish(nil)

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "query Hero", spans[0].Name)
}

func TestTraceOperationRecordsErrorStatus(t *testing.T) {
	tr, exp := newTestTracer(t)
	_, finish := tr.TraceOperation(context.Background(), "", graphql.QueryOperation)
	finish([]*graphql.ResponseError{{Message: "boom"}})

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "query", spans[0].Name)
	assert.Equal(t, "boom", spans[0].Status.Description)
}

func TestTraceFieldRecordsError(t *testing.T) {
	tr, exp := newTestTracer(t)
	_, finish := tr.TraceField(context.Background(), "Query", "hero")
	finish(errors.New("resolver exploded"))

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "Query.hero", spans[0].Name)
	require.Len(t, spans[0].Events, 1)
}
