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
	"bytes"
	"strconv"
)

// ValueKind identifies the tag of a Value's sum type.
type ValueKind int

// Value kinds.
const (
	NullKind ValueKind = iota
	IntKind
	FloatKind
	StringKind
	BooleanKind
	EnumKind
	ListKind
	MapKind
)

// MapEntry is a single key/value pair of a Map-kinded Value. Map entries
// preserve insertion order, since response shape must match the order
// fields appear in a selection set.
type MapEntry struct {
	Key   string
	Value Value
}

// Value is a GraphQL constant value: the canonical representation used for
// request variables, field argument defaults, and resolved output. The zero
// Value is Null.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	b    bool
	list []Value
	m    []MapEntry
}

// Null is the null value.
func Null() Value { return Value{kind: NullKind} }

// Int returns an Int value.
func Int(i int64) Value { return Value{kind: IntKind, i: i} }

// Float returns a Float value.
func Float(f float64) Value { return Value{kind: FloatKind, f: f} }

// String returns a String value.
func String(s string) Value { return Value{kind: StringKind, s: s} }

// Boolean returns a Boolean value.
func Boolean(b bool) Value { return Value{kind: BooleanKind, b: b} }

// Enum returns an Enum value carrying the enum member's name.
func Enum(name string) Value { return Value{kind: EnumKind, s: name} }

// List returns a List value.
func List(items ...Value) Value { return Value{kind: ListKind, list: items} }

// Map returns a Map value, preserving the order entries are given in.
func Map(entries ...MapEntry) Value { return Value{kind: MapKind, m: entries} }

// Kind returns v's tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == NullKind }

// Int64 returns v's integer payload. It panics if v.Kind() != IntKind.
func (v Value) Int64() int64 {
	if v.kind != IntKind {
		panic("graphql: Value.Int64 called on non-Int value")
	}
	return v.i
}

// Float64 returns v's float payload. It panics if v.Kind() != FloatKind.
func (v Value) Float64() float64 {
	if v.kind != FloatKind {
		panic("graphql: Value.Float64 called on non-Float value")
	}
	return v.f
}

// Str returns v's string payload. It panics unless v.Kind() is StringKind or
// EnumKind.
func (v Value) Str() string {
	if v.kind != StringKind && v.kind != EnumKind {
		panic("graphql: Value.Str called on non-String/Enum value")
	}
	return v.s
}

// Bool returns v's boolean payload. It panics if v.Kind() != BooleanKind.
func (v Value) Bool() bool {
	if v.kind != BooleanKind {
		panic("graphql: Value.Bool called on non-Boolean value")
	}
	return v.b
}

// Items returns v's list payload. It panics if v.Kind() != ListKind.
func (v Value) Items() []Value {
	if v.kind != ListKind {
		panic("graphql: Value.Items called on non-List value")
	}
	return v.list
}

// Entries returns v's map payload in insertion order. It panics if
// v.Kind() != MapKind.
func (v Value) Entries() []MapEntry {
	if v.kind != MapKind {
		panic("graphql: Value.Entries called on non-Map value")
	}
	return v.m
}

// Field looks up a key in a Map value, returning Null if absent or v is not
// a Map.
func (v Value) Field(key string) Value {
	if v.kind != MapKind {
		return Null()
	}
	for _, e := range v.m {
		if e.Key == key {
			return e.Value
		}
	}
	return Null()
}

// GoValue converts v into plain Go data (nil, int64, float64, string, bool,
// []interface{}, or map[string]interface{}, the latter losing key order),
// primarily useful for tests that want to compare against literal Go values.
func (v Value) GoValue() interface{} {
	switch v.kind {
	case NullKind:
		return nil
	case IntKind:
		return v.i
	case FloatKind:
		return v.f
	case StringKind, EnumKind:
		return v.s
	case BooleanKind:
		return v.b
	case ListKind:
		out := make([]interface{}, len(v.list))
		for i, item := range v.list {
			out[i] = item.GoValue()
		}
		return out
	case MapKind:
		out := make(map[string]interface{}, len(v.m))
		for _, e := range v.m {
			out[e.Key] = e.Value.GoValue()
		}
		return out
	default:
		panic("graphql: unknown Value kind")
	}
}

// MarshalJSON renders v as JSON, preserving Map key order (encoding/json's
// map support would otherwise sort keys alphabetically).
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case IntKind:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case FloatKind:
		buf.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case StringKind, EnumKind:
		s, err := jsonMarshalString(v.s)
		if err != nil {
			return err
		}
		buf.Write(s)
	case BooleanKind:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case ListKind:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case MapKind:
		buf.WriteByte('{')
		for i, e := range v.m {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := jsonMarshalString(e.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := e.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// jsonMarshalString encodes s as a JSON string literal.
func jsonMarshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u`)
				buf.WriteString(strconv.FormatInt(int64(r), 16))
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.Bytes(), nil
}

// AstValueKind identifies the tag of an AstValue's sum type.
type AstValueKind int

// AstValue kinds. These mirror ValueKind, plus VariableKind for references
// to request variables inside query argument literals.
const (
	AstNullKind AstValueKind = iota
	AstIntKind
	AstFloatKind
	AstStringKind
	AstBooleanKind
	AstEnumKind
	AstListKind
	AstMapKind
	AstVariableKind
)

// AstMapEntry is a single key/value pair of a Map-kinded AstValue.
type AstMapEntry struct {
	Key   string
	Value AstValue
}

// AstValue extends Value with a Variable case: the value language used
// inside query argument literals, before variables have been substituted
// (C6 step 2). The zero AstValue is Null.
type AstValue struct {
	kind     AstValueKind
	i        int64
	f        float64
	s        string
	b        bool
	list     []AstValue
	m        []AstMapEntry
	variable string
}

// AstNull is the null literal.
func AstNull() AstValue { return AstValue{kind: AstNullKind} }

// AstInt returns an Int literal.
func AstInt(i int64) AstValue { return AstValue{kind: AstIntKind, i: i} }

// AstFloat returns a Float literal.
func AstFloat(f float64) AstValue { return AstValue{kind: AstFloatKind, f: f} }

// AstString returns a String literal.
func AstString(s string) AstValue { return AstValue{kind: AstStringKind, s: s} }

// AstBoolean returns a Boolean literal.
func AstBoolean(b bool) AstValue { return AstValue{kind: AstBooleanKind, b: b} }

// AstEnum returns an Enum literal carrying the enum member's name.
func AstEnum(name string) AstValue { return AstValue{kind: AstEnumKind, s: name} }

// AstList returns a List literal.
func AstList(items ...AstValue) AstValue { return AstValue{kind: AstListKind, list: items} }

// AstMap returns a Map literal (the AST shape of an input object literal).
func AstMap(entries ...AstMapEntry) AstValue { return AstValue{kind: AstMapKind, m: entries} }

// AstVariable returns a reference to the named request variable.
func AstVariable(name string) AstValue { return AstValue{kind: AstVariableKind, variable: name} }

// Kind returns av's tag.
func (av AstValue) Kind() AstValueKind { return av.kind }

// IsVariable reports whether av is a Variable(name) reference.
func (av AstValue) IsVariable() bool { return av.kind == AstVariableKind }

// VariableName returns the referenced variable's name. It panics unless
// IsVariable is true.
func (av AstValue) VariableName() string {
	if av.kind != AstVariableKind {
		panic("graphql: AstValue.VariableName called on a non-variable value")
	}
	return av.variable
}

// Int64 returns av's integer payload. It panics if av.Kind() != AstIntKind.
func (av AstValue) Int64() int64 {
	if av.kind != AstIntKind {
		panic("graphql: AstValue.Int64 called on non-Int value")
	}
	return av.i
}

// Float64 returns av's float payload. It panics if av.Kind() != AstFloatKind.
func (av AstValue) Float64() float64 {
	if av.kind != AstFloatKind {
		panic("graphql: AstValue.Float64 called on non-Float value")
	}
	return av.f
}

// Str returns av's string payload. It panics unless av.Kind() is
// AstStringKind or AstEnumKind.
func (av AstValue) Str() string {
	if av.kind != AstStringKind && av.kind != AstEnumKind {
		panic("graphql: AstValue.Str called on non-String/Enum value")
	}
	return av.s
}

// Bool returns av's boolean payload. It panics if av.Kind() != AstBooleanKind.
func (av AstValue) Bool() bool {
	if av.kind != AstBooleanKind {
		panic("graphql: AstValue.Bool called on non-Boolean value")
	}
	return av.b
}

// Items returns av's list payload. It panics if av.Kind() != AstListKind.
func (av AstValue) Items() []AstValue {
	if av.kind != AstListKind {
		panic("graphql: AstValue.Items called on non-List value")
	}
	return av.list
}

// Entries returns av's map payload in insertion order. It panics if
// av.Kind() != AstMapKind.
func (av AstValue) Entries() []AstMapEntry {
	if av.kind != AstMapKind {
		panic("graphql: AstValue.Entries called on non-Map value")
	}
	return av.m
}

// substituteVariables resolves every Variable node in av against vars,
// producing a plain Value with no AST-only cases left (C6 step 2). Missing
// variables report ok=false and the offending variable's name; the caller
// turns that into an ArgumentError.
func substituteVariables(av AstValue, vars map[string]Value) (val Value, missing string, ok bool) {
	switch av.kind {
	case AstNullKind:
		return Null(), "", true
	case AstIntKind:
		return Int(av.i), "", true
	case AstFloatKind:
		return Float(av.f), "", true
	case AstStringKind:
		return String(av.s), "", true
	case AstBooleanKind:
		return Boolean(av.b), "", true
	case AstEnumKind:
		return Enum(av.s), "", true
	case AstListKind:
		items := make([]Value, 0, len(av.list))
		for _, item := range av.list {
			v, miss, ok := substituteVariables(item, vars)
			if !ok {
				return Value{}, miss, false
			}
			items = append(items, v)
		}
		return List(items...), "", true
	case AstMapKind:
		entries := make([]MapEntry, 0, len(av.m))
		for _, e := range av.m {
			v, miss, ok := substituteVariables(e.Value, vars)
			if !ok {
				return Value{}, miss, false
			}
			entries = append(entries, MapEntry{Key: e.Key, Value: v})
		}
		return Map(entries...), "", true
	case AstVariableKind:
		v, ok := vars[av.variable]
		if !ok {
			return Value{}, av.variable, false
		}
		return v, "", true
	default:
		panic("graphql: unknown AstValue kind")
	}
}

// valueToAst wraps a constant Value as the corresponding non-variable
// AstValue literal, so post-substitution values can be handed to a Scalar's
// parse function (whose signature is AstValue -> (T, error) per C2).
func valueToAst(v Value) AstValue {
	switch v.kind {
	case NullKind:
		return AstNull()
	case IntKind:
		return AstInt(v.i)
	case FloatKind:
		return AstFloat(v.f)
	case StringKind:
		return AstString(v.s)
	case BooleanKind:
		return AstBoolean(v.b)
	case EnumKind:
		return AstEnum(v.s)
	case ListKind:
		items := make([]AstValue, len(v.list))
		for i, item := range v.list {
			items[i] = valueToAst(item)
		}
		return AstList(items...)
	case MapKind:
		entries := make([]AstMapEntry, len(v.m))
		for i, e := range v.m {
			entries[i] = AstMapEntry{Key: e.Key, Value: valueToAst(e.Value)}
		}
		return AstMap(entries...)
	default:
		panic("graphql: unknown Value kind")
	}
}
