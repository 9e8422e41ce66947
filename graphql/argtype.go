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

import "fmt"

// ArgTypeKind identifies the shape of an ArgType, mirroring the sum-type
// struct pattern the teacher uses for its own *gqlType (one struct, several
// optional fields, tag decides which are live) but split from output types
// since input and output type systems diverge here (C2 vs C3).
type ArgTypeKind int

// ArgType kinds.
const (
	ArgScalarKind ArgTypeKind = iota
	ArgEnumKind
	ArgInputObjectKind
	ArgNullableKind
	ArgListKind
)

// EnumMember names one legal value of an enum argument type, pairing the
// wire name with the Go value the resolver receives.
type EnumMember struct {
	Name  string
	Value interface{}
}

// InputField is one field of an InputObject argument type: a name, its
// type, and whether/what default it carries.
type InputField struct {
	Name       string
	Type       *ArgType
	HasDefault bool
	Default    interface{}
}

// ArgType is a type-erased argument type descriptor (C2). The original
// spec's ArgType(T) is phantom-typed over the coerced Go value's type; Go
// has no first-class heterogeneous cons-lists of differently-parameterized
// descriptors (see the ArgDescriptor doc in arglist.go), so descriptors carry their witness only in the parse/coerce
// closures and hand back interface{}, checked at the call site the same way
// the teacher's reflect-based resolver binding does.
type ArgType struct {
	kind ArgTypeKind
	name string // Scalar, Enum, InputObject

	// Scalar
	parse func(AstValue) (interface{}, error)

	// Enum
	enumValues []EnumMember

	// InputObject
	fields []InputField
	// construct receives the coerced field values in fields order and
	// builds the Go value passed to resolvers.
	construct func(values []interface{}) (interface{}, error)

	// Nullable, List
	elem *ArgType
}

// Kind returns t's tag.
func (t *ArgType) Kind() ArgTypeKind { return t.kind }

// IsNullable reports whether t permits an absent or null argument.
func (t *ArgType) IsNullable() bool { return t.kind == ArgNullableKind }

// String renders t using GraphQL type-reference syntax ("Int!", "[String]",
// ...), used in argument coercion error messages (§4.4).
func (t *ArgType) String() string {
	switch t.kind {
	case ArgNullableKind:
		return t.nonNullString()
	case ArgListKind:
		return "[" + t.elem.nonNullString() + "]!"
	default:
		return t.name + "!"
	}
}

// nonNullString is like String but never appends a trailing "!" twice when
// nested inside a list/nullable wrapper that already controls nullability.
func (t *ArgType) nonNullString() string {
	switch t.kind {
	case ArgNullableKind:
		inner := t.elem
		switch inner.kind {
		case ArgListKind:
			return "[" + inner.elem.nonNullString() + "]"
		default:
			return inner.name
		}
	case ArgListKind:
		return "[" + t.elem.nonNullString() + "]!"
	default:
		return t.name + "!"
	}
}

// Scalar declares a leaf argument type that parses directly from an
// AstValue, such as Int, String, or a custom scalar like DateTime.
func Scalar(name string, parse func(AstValue) (interface{}, error)) *ArgType {
	return &ArgType{kind: ArgScalarKind, name: name, parse: parse}
}

// EnumArg declares an argument type that accepts one of a fixed set of
// named members, matched against an incoming Enum or String literal.
func EnumArg(name string, values []EnumMember) *ArgType {
	return &ArgType{kind: ArgEnumKind, name: name, enumValues: values}
}

// InputObject declares an argument type whose values are themselves
// coerced field-by-field, then assembled by construct.
func InputObject(name string, fields []InputField, construct func(values []interface{}) (interface{}, error)) *ArgType {
	return &ArgType{kind: ArgInputObjectKind, name: name, fields: fields, construct: construct}
}

// Nullable wraps t so that an absent or explicit null argument coerces to
// Go's nil/zero rather than failing coercion. Every ArgType built by Scalar,
// EnumArg, InputObject, or ListArg is non-nullable (required) unless wrapped.
func Nullable(t *ArgType) *ArgType {
	if t.kind == ArgNullableKind {
		return t
	}
	return &ArgType{kind: ArgNullableKind, elem: t}
}

// ListArg declares a list argument type whose elements are of type elem.
func ListArg(elem *ArgType) *ArgType {
	return &ArgType{kind: ArgListKind, elem: elem}
}

// Built-in scalar argument types.
var (
	IntArg     = Scalar("Int", parseIntArg)
	FloatArg   = Scalar("Float", parseFloatArg)
	StringArg  = Scalar("String", parseStringArg)
	BooleanArg = Scalar("Boolean", parseBooleanArg)
	IDArg      = Scalar("ID", parseIDArg)
)

func parseIntArg(v AstValue) (interface{}, error) {
	if v.Kind() != AstIntKind {
		return nil, fmt.Errorf("Invalid Int")
	}
	return v.Int64(), nil
}

func parseFloatArg(v AstValue) (interface{}, error) {
	switch v.Kind() {
	case AstFloatKind:
		return v.Float64(), nil
	case AstIntKind:
		return float64(v.Int64()), nil
	default:
		return nil, fmt.Errorf("Invalid Float")
	}
}

func parseStringArg(v AstValue) (interface{}, error) {
	if v.Kind() != AstStringKind {
		return nil, fmt.Errorf("Invalid String")
	}
	return v.Str(), nil
}

func parseBooleanArg(v AstValue) (interface{}, error) {
	if v.Kind() != AstBooleanKind {
		return nil, fmt.Errorf("Invalid Boolean")
	}
	return v.Bool(), nil
}

func parseIDArg(v AstValue) (interface{}, error) {
	switch v.Kind() {
	case AstStringKind:
		return v.Str(), nil
	case AstIntKind:
		return fmt.Sprintf("%d", v.Int64()), nil
	default:
		return nil, fmt.Errorf("Invalid ID")
	}
}
