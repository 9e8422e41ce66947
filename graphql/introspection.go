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

// This file builds the __schema/__type introspection overlay described at
// https://graphql.github.io/graphql-spec/June2018/#sec-Schema-Introspection
// (C5). Where the original schema representation built this from an SDL
// string fed back through its own parser, a programmatically built schema
// has no SDL document to parse, so the __Schema/__Type/__Field/__InputValue/
// __EnumValue/__TypeKind types below are assembled directly with the same
// NewObject/NewField/EnumOut vocabulary user schemas use.

// itype is a unified introspection-time type reference: it wraps either an
// output type (OutType) or an input type (ArgType), since __Type describes
// both and our two type systems are otherwise kept separate (C2 vs C3).
type itype struct {
	kind string // SCALAR, OBJECT, INTERFACE, UNION, ENUM, INPUT_OBJECT, LIST, NON_NULL
	out  *OutType
	arg  *ArgType
	of   *itype
}

func outItype(t *OutType) *itype {
	if t.kind == OutNullableKind {
		return baseOutItype(t.elem)
	}
	return &itype{kind: "NON_NULL", of: baseOutItype(t)}
}

func baseOutItype(t *OutType) *itype {
	switch t.kind {
	case OutListKind:
		return &itype{kind: "LIST", of: outItype(t.elem)}
	case OutScalarKind:
		return &itype{kind: "SCALAR", out: t}
	case OutEnumKind:
		return &itype{kind: "ENUM", out: t}
	case OutObjectKind:
		return &itype{kind: "OBJECT", out: t}
	case OutAbstractKind:
		if t.abstract.Kind == InterfaceKind {
			return &itype{kind: "INTERFACE", out: t}
		}
		return &itype{kind: "UNION", out: t}
	default:
		panic("graphql: unknown OutType kind")
	}
}

func argItype(t *ArgType) *itype {
	if t.kind == ArgNullableKind {
		return baseArgItype(t.elem)
	}
	return &itype{kind: "NON_NULL", of: baseArgItype(t)}
}

func baseArgItype(t *ArgType) *itype {
	switch t.kind {
	case ArgListKind:
		return &itype{kind: "LIST", of: argItype(t.elem)}
	case ArgScalarKind:
		return &itype{kind: "SCALAR", arg: t}
	case ArgEnumKind:
		return &itype{kind: "ENUM", arg: t}
	case ArgInputObjectKind:
		return &itype{kind: "INPUT_OBJECT", arg: t}
	default:
		panic("graphql: unknown ArgType kind")
	}
}

func (it *itype) name() interface{} {
	switch {
	case it.out != nil:
		return it.out.Name()
	case it.arg != nil:
		if it.arg.kind == ArgScalarKind || it.arg.kind == ArgEnumKind || it.arg.kind == ArgInputObjectKind {
			return it.arg.name
		}
		return nil
	default:
		return nil
	}
}

func (it *itype) description() interface{} {
	switch {
	case it.out != nil && it.out.kind == OutObjectKind:
		return it.out.obj.Description
	case it.out != nil && it.out.kind == OutAbstractKind:
		return it.out.abstract.Description
	default:
		return nil
	}
}

// introspectionSchema holds the __Schema/__Type/... types for one
// user Schema; it closes over that Schema so resolvers can walk its Query
// and Mutation roots.
type introspectionSchema struct {
	typeKind   *OutType
	inputValue *OutType
	field      *OutType
	enumValue  *OutType
	typ        *OutType
	schemaType *OutType
}

func buildIntrospectionSchema() *introspectionSchema {
	is := &introspectionSchema{}

	is.typeKind = EnumOut("__TypeKind", []EnumMember{
		{Name: "SCALAR", Value: "SCALAR"},
		{Name: "OBJECT", Value: "OBJECT"},
		{Name: "INTERFACE", Value: "INTERFACE"},
		{Name: "UNION", Value: "UNION"},
		{Name: "ENUM", Value: "ENUM"},
		{Name: "INPUT_OBJECT", Value: "INPUT_OBJECT"},
		{Name: "LIST", Value: "LIST"},
		{Name: "NON_NULL", Value: "NON_NULL"},
	})

	is.enumValue = NewObject("__EnumValue", "", func(self *OutType) []*Field {
		return []*Field{
			NewField("name", StringOut, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return src.(EnumMember).Name, nil
			}),
			NewField("description", NullableOut(StringOut), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return nil, nil
			}),
			NewField("isDeprecated", BooleanOut, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return false, nil
			}),
			NewField("deprecationReason", NullableOut(StringOut), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return nil, nil
			}),
		}
	})

	is.inputValue = NewObject("__InputValue", "", func(self *OutType) []*Field {
		return []*Field{
			NewField("name", StringOut, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return src.(InputField).Name, nil
			}),
			NewField("description", NullableOut(StringOut), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return nil, nil
			}),
			NewField("type", is.typ, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return argItype(src.(InputField).Type), nil
			}),
			NewField("defaultValue", NullableOut(StringOut), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return nil, nil
			}),
		}
	})

	is.field = NewObject("__Field", "", func(self *OutType) []*Field {
		return []*Field{
			NewField("name", StringOut, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return src.(*Field).Name, nil
			}),
			NewField("description", NullableOut(StringOut), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return src.(*Field).Description, nil
			}),
			NewField("args", ListOut(is.inputValue), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				// __InputValue's resolvers read InputField values.
				fargs := src.(*Field).Args
				out := make([]InputField, len(fargs))
				for i, d := range fargs {
					out[i] = InputField{Name: d.Name, Type: d.Type, HasDefault: d.HasDefault, Default: d.Default}
				}
				return out, nil
			}),
			NewField("type", is.typ, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return outItype(src.(*Field).Type), nil
			}),
			NewField("isDeprecated", BooleanOut, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return src.(*Field).IsDeprecated(), nil
			}),
			NewField("deprecationReason", NullableOut(StringOut), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				f := src.(*Field)
				if !f.IsDeprecated() {
					return nil, nil
				}
				return f.Deprecated, nil
			}),
		}
	})

	is.typ = NewObject("__Type", "", func(self *OutType) []*Field {
		return []*Field{
			NewField("kind", is.typeKind, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return src.(*itype).kind, nil
			}),
			NewField("name", NullableOut(StringOut), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return src.(*itype).name(), nil
			}),
			NewField("description", NullableOut(StringOut), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return src.(*itype).description(), nil
			}),
			NewField("fields", NullableOut(ListOut(is.field)), ArgList{
				DefaultArg("includeDeprecated", Nullable(BooleanArg), false),
			}, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				it := src.(*itype)
				if it.out == nil {
					return nil, nil
				}
				switch it.out.kind {
				case OutObjectKind:
					return it.out.obj.Fields(), nil
				case OutAbstractKind:
					if it.out.abstract.Kind == InterfaceKind {
						return it.out.abstract.Fields(), nil
					}
				}
				return nil, nil
			}),
			NewField("interfaces", NullableOut(ListOut(is.typ)), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				it := src.(*itype)
				if it.out == nil || it.out.kind != OutObjectKind {
					return nil, nil
				}
				abstracts := it.out.obj.Abstracts()
				out := make([]*itype, 0, len(abstracts))
				for _, a := range abstracts {
					if a.Kind == InterfaceKind {
						out = append(out, baseOutItype(a.self))
					}
				}
				return out, nil
			}),
			NewField("possibleTypes", NullableOut(ListOut(is.typ)), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				it := src.(*itype)
				if it.out == nil || it.out.kind != OutAbstractKind {
					return nil, nil
				}
				types := it.out.abstract.Types()
				out := make([]*itype, len(types))
				for i, t := range types {
					out[i] = baseOutItype(t)
				}
				return out, nil
			}),
			NewField("enumValues", NullableOut(ListOut(is.enumValue)), ArgList{
				DefaultArg("includeDeprecated", Nullable(BooleanArg), false),
			}, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				it := src.(*itype)
				if it.out == nil || it.out.kind != OutEnumKind {
					return nil, nil
				}
				return it.out.enumValues, nil
			}),
			NewField("inputFields", NullableOut(ListOut(is.inputValue)), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				it := src.(*itype)
				if it.arg == nil || it.arg.kind != ArgInputObjectKind {
					return nil, nil
				}
				return it.arg.fields, nil
			}),
			NewField("ofType", NullableOut(is.typ), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				it := src.(*itype)
				if it.of == nil {
					return nil, nil
				}
				return it.of, nil
			}),
		}
	})

	is.schemaType = NewObject("__Schema", "", func(self *OutType) []*Field {
		return []*Field{
			NewField("types", ListOut(is.typ), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return src.(*schemaIntrospectionValue).allTypes(), nil
			}),
			NewField("queryType", is.typ, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return baseOutItype(src.(*schemaIntrospectionValue).schema.Query), nil
			}),
			NewField("mutationType", NullableOut(is.typ), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				m := src.(*schemaIntrospectionValue).schema.Mutation
				if m == nil {
					return nil, nil
				}
				return baseOutItype(m), nil
			}),
			NewField("subscriptionType", NullableOut(is.typ), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return nil, nil
			}),
			NewField("directives", ListOut(NewObject("__Directive", "", func(self *OutType) []*Field { return nil })), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return []interface{}{}, nil
			}),
		}
	})

	return is
}

var sharedIntrospectionSchema = buildIntrospectionSchema()

// schemaIntrospectionValue is the source value resolved for the __schema
// field: a lazily-walked, deduplicated index of every named type reachable
// from schema's Query and Mutation roots.
type schemaIntrospectionValue struct {
	schema *Schema

	named map[string]*itype
	order []string
}

func newSchemaIntrospectionValue(schema *Schema) *schemaIntrospectionValue {
	v := &schemaIntrospectionValue{schema: schema, named: make(map[string]*itype)}
	v.visitOut(schema.Query)
	if schema.Mutation != nil {
		v.visitOut(schema.Mutation)
	}
	v.visitOut(sharedIntrospectionSchema.schemaType)
	return v
}

func (v *schemaIntrospectionValue) allTypes() []*itype {
	out := make([]*itype, len(v.order))
	for i, name := range v.order {
		out[i] = v.named[name]
	}
	return out
}

func (v *schemaIntrospectionValue) add(it *itype, name string) bool {
	if name == "" {
		return false
	}
	if _, ok := v.named[name]; ok {
		return false
	}
	v.named[name] = it
	v.order = append(v.order, name)
	return true
}

func (v *schemaIntrospectionValue) visitOut(t *OutType) {
	if t == nil {
		return
	}
	if t.kind == OutNullableKind || t.kind == OutListKind {
		v.visitOut(t.elem)
		return
	}
	it := baseOutItype(t)
	name, _ := it.name().(string)
	switch t.kind {
	case OutScalarKind:
		if !v.add(it, name) {
			return
		}
	case OutEnumKind:
		if !v.add(it, name) {
			return
		}
	case OutObjectKind:
		if !v.add(it, name) {
			return
		}
		for _, f := range t.obj.Fields() {
			v.visitOut(f.Type)
			v.visitArgList(f.Args)
		}
		for _, a := range t.obj.Abstracts() {
			v.visitAbstract(a)
		}
	case OutAbstractKind:
		v.visitAbstract(t.abstract)
	}
}

func (v *schemaIntrospectionValue) visitAbstract(a *Abstract) {
	it := baseOutItype(a.self)
	if !v.add(it, a.Name) {
		return
	}
	for _, f := range a.Fields() {
		v.visitOut(f.Type)
		v.visitArgList(f.Args)
	}
	for _, t := range a.Types() {
		v.visitOut(t)
	}
}

func (v *schemaIntrospectionValue) visitArgList(args ArgList) {
	for _, d := range args {
		v.visitArg(d.Type)
	}
}

func (v *schemaIntrospectionValue) visitArg(t *ArgType) {
	if t == nil {
		return
	}
	if t.kind == ArgNullableKind || t.kind == ArgListKind {
		v.visitArg(t.elem)
		return
	}
	it := baseArgItype(t)
	switch t.kind {
	case ArgScalarKind, ArgEnumKind:
		v.add(it, t.name)
	case ArgInputObjectKind:
		if !v.add(it, t.name) {
			return
		}
		for _, f := range t.fields {
			v.visitArg(f.Type)
		}
	}
}

// buildIntrospectionQuery returns a derived Query object with __schema and
// __type prepended to schema.Query's own fields.
func buildIntrospectionQuery(schema *Schema) *OutType {
	is := sharedIntrospectionSchema
	return NewObject(schema.Query.obj.Name, schema.Query.obj.Description, func(self *OutType) []*Field {
		fields := make([]*Field, 0, len(schema.Query.obj.Fields())+2)
		fields = append(fields,
			NewField("__schema", is.schemaType, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return newSchemaIntrospectionValue(schema), nil
			}),
			NewField("__type", NullableOut(is.typ), ArgList{Arg("name", StringArg)}, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				name := ArgValue[string](args, "name")
				v := newSchemaIntrospectionValue(schema)
				if it, ok := v.named[name]; ok {
					return it, nil
				}
				return nil, nil
			}),
		)
		fields = append(fields, schema.Query.obj.Fields()...)
		return fields
	})
}
