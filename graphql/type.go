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
	"strings"
	"sync"

	"github.com/jrmdayn/reasongraphql/graphql/async"
)

// OutTypeKind identifies the shape of an OutType (C3).
type OutTypeKind int

// OutType kinds.
const (
	OutScalarKind OutTypeKind = iota
	OutEnumKind
	OutObjectKind
	OutAbstractKind
	OutListKind
	OutNullableKind
)

// OutType is a type-erased output type descriptor, the output-side sibling
// of ArgType. The original spec's OutType(Ctx,Src) phantom parameters are
// erased here too; Field closures recover concrete Go types by assertion
// when a resolver runs.
type OutType struct {
	kind OutTypeKind
	name string // Scalar, Enum

	// Scalar
	serialize func(src interface{}) (Value, error)

	// Enum
	enumValues []EnumMember

	// Object
	obj *Object

	// Interface, Union
	abstract *Abstract

	// List, Nullable
	elem *OutType
}

// Kind returns t's tag.
func (t *OutType) Kind() OutTypeKind { return t.kind }

// Name returns the GraphQL type name for Scalar, Enum, and Object kinds and
// the wrapped interface/union's name for Abstract; it is "" for List and
// Nullable, which have no name of their own.
func (t *OutType) Name() string {
	switch t.kind {
	case OutObjectKind:
		return t.obj.Name
	case OutAbstractKind:
		return t.abstract.Name
	default:
		return t.name
	}
}

// IsNullable reports whether t permits a null result.
func (t *OutType) IsNullable() bool { return t.kind == OutNullableKind }

// String renders t using GraphQL type-reference syntax.
func (t *OutType) String() string {
	return t.nonNullString()
}

func (t *OutType) nonNullString() string {
	switch t.kind {
	case OutNullableKind:
		return strings.TrimSuffix(t.elem.nonNullString(), "!")
	case OutListKind:
		return "[" + t.elem.nonNullString() + "]!"
	default:
		return t.Name() + "!"
	}
}

// ScalarOut declares a leaf output type. serialize converts a resolver's
// returned source value into a constant Value for the response.
func ScalarOut(name string, serialize func(src interface{}) (Value, error)) *OutType {
	return &OutType{kind: OutScalarKind, name: name, serialize: serialize}
}

// EnumOut declares an output type whose values are one of a fixed set of
// named members, matched against a resolver's returned Go value.
func EnumOut(name string, values []EnumMember) *OutType {
	return &OutType{kind: OutEnumKind, name: name, enumValues: values}
}

// ListOut declares a list output type whose elements are of type elem.
func ListOut(elem *OutType) *OutType {
	return &OutType{kind: OutListKind, elem: elem}
}

// NullableOut wraps t so that a resolver returning nil is treated as a
// legitimate null result rather than a non-null-field violation - the point
// at which null bubbling (C8 step 4) stops climbing the response tree.
// Every type built by ScalarOut, EnumOut, NewObject, NewInterface, NewUnion,
// or ListOut is non-nullable unless wrapped.
func NullableOut(t *OutType) *OutType {
	if t.kind == OutNullableKind {
		return t
	}
	return &OutType{kind: OutNullableKind, elem: t}
}

// Built-in scalar output types.
var (
	IntOut     = ScalarOut("Int", serializeIntOut)
	FloatOut   = ScalarOut("Float", serializeFloatOut)
	StringOut  = ScalarOut("String", serializeStringOut)
	BooleanOut = ScalarOut("Boolean", serializeBooleanOut)
	IDOut      = ScalarOut("ID", serializeIDOut)
)

func serializeIntOut(src interface{}) (Value, error) {
	switch v := src.(type) {
	case int:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	default:
		return Value{}, newResolveError("cannot serialize value as Int")
	}
}

func serializeFloatOut(src interface{}) (Value, error) {
	switch v := src.(type) {
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case int:
		return Float(float64(v)), nil
	default:
		return Value{}, newResolveError("cannot serialize value as Float")
	}
}

func serializeStringOut(src interface{}) (Value, error) {
	s, ok := src.(string)
	if !ok {
		return Value{}, newResolveError("cannot serialize value as String")
	}
	return String(s), nil
}

func serializeBooleanOut(src interface{}) (Value, error) {
	b, ok := src.(bool)
	if !ok {
		return Value{}, newResolveError("cannot serialize value as Boolean")
	}
	return Boolean(b), nil
}

func serializeIDOut(src interface{}) (Value, error) {
	switch v := src.(type) {
	case string:
		return String(v), nil
	case int:
		return String(formatInt(int64(v))), nil
	case int64:
		return String(formatInt(v)), nil
	default:
		return Value{}, newResolveError("cannot serialize value as ID")
	}
}

func formatInt(i int64) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Field is a single field of an Object or Interface (C3's Field<Ctx,Src>).
// Exactly one of Resolve or ResolveAsync is set, depending on whether the
// field was built with NewField or NewAsyncField; lift unifies the two into
// a single asynchronous result, the Go rendering of the spec's "lift"
// operation that makes every field resolution uniformly a Future.
type Field struct {
	Name        string
	Type        *OutType
	Args        ArgList
	Description string
	Deprecated  string

	Resolve      func(ctx *ExecutionContext, src interface{}, args Args) (interface{}, error)
	ResolveAsync func(ctx *ExecutionContext, src interface{}, args Args) async.Future
}

// IsDeprecated reports whether f carries a deprecation reason.
func (f *Field) IsDeprecated() bool { return f.Deprecated != "" }

func (f *Field) lift(ec *ExecutionContext, src interface{}, args Args) async.Future {
	if f.ResolveAsync != nil {
		return f.ResolveAsync(ec, src, args)
	}
	val, err := f.Resolve(ec, src, args)
	return async.Return(val, err)
}

// NewField declares a synchronous field.
func NewField(name string, typ *OutType, args ArgList, resolve func(ctx *ExecutionContext, src interface{}, args Args) (interface{}, error)) *Field {
	return &Field{Name: name, Type: typ, Args: args, Resolve: resolve}
}

// NewAsyncField declares a field whose resolution may suspend: resolve
// returns a graphql/async.Future instead of an immediate value, allowing the
// installed Scheduler to interleave it with sibling fields.
func NewAsyncField(name string, typ *OutType, args ArgList, resolve func(ctx *ExecutionContext, src interface{}, args Args) async.Future) *Field {
	return &Field{Name: name, Type: typ, Args: args, ResolveAsync: resolve}
}

// Object is an output object type. Its field list lives behind a thunk
// forced at most once (fieldsOnce), so a recursive schema - a Human whose
// friends field returns Characters that may themselves be Humans - can be
// declared without a forward reference: the thunk closes over the *OutType
// wrapping the Object under construction.
type Object struct {
	Name        string
	Description string

	fieldsOnce  sync.Once
	fieldsThunk func(self *OutType) []*Field
	fields      []*Field
	fieldIndex  map[string]*Field

	self *OutType

	// abstracts lists the interfaces/unions this object was registered into
	// via AddType. Appended only during schema construction.
	abstracts []*Abstract
}

// NewObject declares an output object type. thunk is invoked once, on first
// use, with self bound to the *OutType wrapping the object being built.
func NewObject(name, description string, thunk func(self *OutType) []*Field) *OutType {
	obj := &Object{Name: name, Description: description, fieldsThunk: thunk}
	self := &OutType{kind: OutObjectKind, obj: obj}
	obj.self = self
	return self
}

// Fields forces obj's field thunk if necessary and returns its field list.
func (obj *Object) Fields() []*Field {
	obj.fieldsOnce.Do(func() {
		obj.fields = obj.fieldsThunk(obj.self)
		obj.fieldIndex = make(map[string]*Field, len(obj.fields))
		for _, f := range obj.fields {
			obj.fieldIndex[f.Name] = f
		}
	})
	return obj.fields
}

// FieldByName returns obj's field with the given name, or nil if undeclared.
func (obj *Object) FieldByName(name string) *Field {
	obj.Fields()
	return obj.fieldIndex[name]
}

// Abstracts returns the interfaces and unions obj was registered into.
func (obj *Object) Abstracts() []*Abstract {
	return obj.abstracts
}

// AbstractKind distinguishes interfaces from unions.
type AbstractKind int

// Abstract kinds.
const (
	InterfaceKind AbstractKind = iota
	UnionKind
)

// Abstract is an interface or union type (C3). Interfaces additionally
// declare their own field list, forced lazily like Object's; unions do not.
type Abstract struct {
	Name        string
	Description string
	Kind        AbstractKind

	fieldsOnce  sync.Once
	fieldsThunk func() []*Field
	fields      []*Field

	// types lists the concrete object types registered via AddType, in
	// registration order.
	types []*OutType

	self *OutType
}

// NewInterface declares an interface type. fieldsThunk may be nil for an
// interface with no declared fields.
func NewInterface(name, description string, fieldsThunk func() []*Field) *OutType {
	a := &Abstract{Name: name, Description: description, Kind: InterfaceKind, fieldsThunk: fieldsThunk}
	self := &OutType{kind: OutAbstractKind, abstract: a}
	a.self = self
	return self
}

// NewUnion declares a union type.
func NewUnion(name, description string) *OutType {
	a := &Abstract{Name: name, Description: description, Kind: UnionKind}
	self := &OutType{kind: OutAbstractKind, abstract: a}
	a.self = self
	return self
}

// Fields returns an interface's declared fields, forcing its thunk if
// necessary. Unions have no fields of their own and always return nil.
func (a *Abstract) Fields() []*Field {
	if a.Kind != InterfaceKind || a.fieldsThunk == nil {
		return nil
	}
	a.fieldsOnce.Do(func() {
		a.fields = a.fieldsThunk()
	})
	return a.fields
}

// Types returns the concrete object types registered into a, in
// registration order.
func (a *Abstract) Types() []*OutType {
	return a.types
}

// AddType registers object as a member of abstractType (an interface or
// union built by NewInterface/NewUnion), recording the membership on both
// sides (§4.2), and returns a coercion function a resolver calls to tag a
// concrete source value with its concrete object type whenever the
// resolver's declared field type is abstractType.
func AddType(abstractType, object *OutType) func(src interface{}) AbstractValue {
	if abstractType.kind != OutAbstractKind {
		panic("graphql: AddType: first argument must be an interface or union")
	}
	if object.kind != OutObjectKind {
		panic("graphql: AddType: second argument must be an object")
	}
	a := abstractType.abstract
	a.types = append(a.types, object)
	object.obj.abstracts = append(object.obj.abstracts, a)
	return func(src interface{}) AbstractValue {
		return AbstractValue{Type: object, Value: src}
	}
}

// AbstractValue pairs a runtime-selected concrete object type with its
// concrete source value - what a resolver returns for an interface- or
// union-typed field so the executor knows which object's fields to run.
type AbstractValue struct {
	Type  *OutType
	Value interface{}
}
