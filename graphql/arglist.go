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

// ArgDescriptor is one entry of a field's argument list: a name, its
// ArgType, and (for DefaultArg) the value substituted when the argument is
// absent. This is the Go rendering of the original spec's heterogeneous
// ArgList cons-list: strategy (c) from the spec's design notes - "a dynamic
// argument map passed to resolvers as a key-value lookup" - since Go has no
// first-class GADTs to carry a per-cell constructor-signature witness. The
// list itself is just a slice; type safety is recovered at the call site by
// the generic ArgValue helper below, not by the list's static type.
type ArgDescriptor struct {
	Name       string
	Type       *ArgType
	HasDefault bool
	Default    interface{}
}

// Arg declares a required argument (unless Type is itself Nullable, in
// which case its absence coerces to nil).
func Arg(name string, typ *ArgType) ArgDescriptor {
	return ArgDescriptor{Name: name, Type: typ}
}

// DefaultArg declares an argument whose absence supplies def rather than
// failing coercion. typ is typically Nullable, but need not be: an argument
// may be declared non-null yet still carry a schema-level default.
func DefaultArg(name string, typ *ArgType, def interface{}) ArgDescriptor {
	return ArgDescriptor{Name: name, Type: typ, HasDefault: true, Default: def}
}

// ArgList is a field's full argument descriptor list. Order matches the
// curried argument order the spec describes; in this rendering it only
// matters for deterministic introspection output.
type ArgList []ArgDescriptor

// Args is the coerced, type-erased argument bag passed to every resolver -
// the runtime counterpart of ArgList. Values are read back out with
// ArgValue.
type Args struct {
	values map[string]interface{}
}

// NewArgs builds an Args bag directly, primarily for tests that want to
// call a resolver without going through argument evaluation.
func NewArgs(values map[string]interface{}) Args {
	return Args{values: values}
}

// Has reports whether name was supplied (including via default).
func (a Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Raw returns the coerced value for name, or nil if absent.
func (a Args) Raw(name string) interface{} {
	return a.values[name]
}

// ArgValue type-asserts the coerced value for name into T. It returns T's
// zero value if the argument is absent, null, or of a different Go type; it
// never panics.
func ArgValue[T any](a Args, name string) T {
	v, ok := a.values[name].(T)
	if !ok {
		var zero T
		return zero
	}
	return v
}
