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

/*
Package graphql provides a programmatic GraphQL schema builder and execution
engine. Unlike a schema-definition-language server, schemas are assembled
from Go values returned by builder functions (ScalarOut, EnumOut, NewObject,
NewInterface, NewUnion, NewSchema) rather than parsed from SDL text.

Object field lists are lazy (see NewObject) so that recursive type graphs - a
Character with friends who are Characters - can be built without forward
declarations: the field thunk receives the *OutType being constructed and
is forced on first use.

Execute takes a parsed Document, a request Context, and a set of request
variables, and returns a Response shaped the way the GraphQL spec requires:
{"data": ..., "errors": [...]}. Documents are not parsed by this package; see
the graphql/gqlparse subpackage for a parser backed by vektah/gqlparser, or
the graphqlhttp package for a ready-made HTTP transport.

# Resolvers

A field built with NewField has a Resolve function that runs synchronously
and returns its result directly. A field built with NewAsyncField has a
ResolveAsync function that returns a graphql/async.Future, letting the
resolver hand back control before its value is ready. Sibling fields of an
object resolve according to the async.Scheduler passed to Execute:
async.NewConcurrentScheduler fans resolution out across goroutines, while
async.SyncScheduler resolves in selection order.
Mutation root fields always resolve strictly sequentially, regardless of
scheduler, because GraphQL mutations may have side effects that later
sibling fields depend on.

# Null bubbling

When a field declared Nullable fails to resolve, the error is absorbed and
the field's value becomes null. When a non-nullable field fails, the error
propagates to its parent object, which itself becomes null if it, in turn,
is nullable - and so on up to the response root.
*/
package graphql
