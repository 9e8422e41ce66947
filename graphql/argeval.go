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

// evaluateArgs resolves a field's ArgList against the raw arguments from the
// query AST and the request's variable map, producing the Args bag passed
// to the resolver (C6). It assumes raw has already been checked for
// duplicate names by the parser.
func evaluateArgs(argList ArgList, raw []Argument, vars map[string]Value, fieldName string) (Args, error) {
	values := make(map[string]interface{}, len(argList))
	for _, d := range argList {
		if _, found := findArgument(raw, d.Name); !found && !d.HasDefault && d.Type.IsNullable() {
			// Absent nullable argument with no default: left out of the bag,
			// so Has reports false and Raw/ArgValue yield nil/zero.
			continue
		}
		v, err := evaluateOneArg(d, raw, vars, fieldName)
		if err != nil {
			return Args{}, err
		}
		values[d.Name] = v
	}
	return Args{values: values}, nil
}

func evaluateOneArg(d ArgDescriptor, raw []Argument, vars map[string]Value, fieldName string) (interface{}, error) {
	lit, found := findArgument(raw, d.Name)
	if !found {
		if d.HasDefault {
			return d.Default, nil
		}
		if d.Type.IsNullable() {
			return nil, nil
		}
		return nil, argCoercionError(fieldName, d.Name, d.Type, "found none")
	}
	v, missing, ok := substituteVariables(lit, vars)
	if !ok {
		return nil, newArgumentError("Missing variable `%s`", missing)
	}
	return coerceArgValue(d.Type, v, fieldName, d.Name)
}

// findArgument returns the first argument in raw with the given name
// (case-sensitive), per §4.4 step 1.
func findArgument(raw []Argument, name string) (AstValue, bool) {
	for _, a := range raw {
		if a.Name == name {
			return a.Value, true
		}
	}
	return AstValue{}, false
}

// coerceArgValue coerces a post-substitution constant Value against t,
// recursing through Nullable/List/InputObject structure (§4.4 step 3).
func coerceArgValue(t *ArgType, v Value, fieldName, argName string) (interface{}, error) {
	if t.kind == ArgNullableKind {
		if v.IsNull() {
			return nil, nil
		}
		return coerceArgValue(t.elem, v, fieldName, argName)
	}
	if v.IsNull() {
		return nil, argCoercionError(fieldName, argName, t, "found null")
	}
	switch t.kind {
	case ArgScalarKind:
		val, err := t.parse(valueToAst(v))
		if err != nil {
			return nil, argCoercionError(fieldName, argName, t, err.Error())
		}
		return val, nil
	case ArgEnumKind:
		return coerceEnumArg(t, v, fieldName, argName)
	case ArgInputObjectKind:
		return coerceInputObjectArg(t, v, fieldName, argName)
	case ArgListKind:
		return coerceListArg(t, v, fieldName, argName)
	default:
		panic("graphql: unknown ArgType kind")
	}
}

func coerceEnumArg(t *ArgType, v Value, fieldName, argName string) (interface{}, error) {
	var name string
	switch v.Kind() {
	case EnumKind, StringKind:
		name = v.Str()
	default:
		return nil, argCoercionError(fieldName, argName, t, "found a non-enum value")
	}
	for _, m := range t.enumValues {
		if m.Name == name {
			return m.Value, nil
		}
	}
	return nil, argCoercionError(fieldName, argName, t, "found unknown member "+name)
}

func coerceInputObjectArg(t *ArgType, v Value, fieldName, argName string) (interface{}, error) {
	if v.Kind() != MapKind {
		return nil, argCoercionError(fieldName, argName, t, "found a non-object value")
	}
	values := make([]interface{}, len(t.fields))
	for i, f := range t.fields {
		entry, found := findMapField(v, f.Name)
		if !found {
			if f.HasDefault {
				values[i] = f.Default
				continue
			}
			if f.Type.IsNullable() {
				values[i] = nil
				continue
			}
			return nil, argCoercionError(fieldName, f.Name, f.Type, "found none")
		}
		cv, err := coerceArgValue(f.Type, entry, fieldName, f.Name)
		if err != nil {
			return nil, err
		}
		values[i] = cv
	}
	return t.construct(values)
}

func coerceListArg(t *ArgType, v Value, fieldName, argName string) (interface{}, error) {
	if v.Kind() != ListKind {
		// Input coercion of a scalar to a one-element list (§4.4 step 3).
		cv, err := coerceArgValue(t.elem, v, fieldName, argName)
		if err != nil {
			return nil, err
		}
		return []interface{}{cv}, nil
	}
	items := v.Items()
	out := make([]interface{}, len(items))
	for i, item := range items {
		cv, err := coerceArgValue(t.elem, item, fieldName, argName)
		if err != nil {
			return nil, err
		}
		out[i] = cv
	}
	return out, nil
}

func findMapField(v Value, name string) (Value, bool) {
	for _, e := range v.Entries() {
		if e.Key == name {
			return e.Value, true
		}
	}
	return Value{}, false
}

// argCoercionError formats an argument coercion failure per §4.4's required
// message shape.
func argCoercionError(fieldName, argName string, t *ArgType, foundOrMissing string) *ArgumentError {
	return newArgumentError("Argument `%s` of type `%s` expected on field `%s`, %s.", argName, t.String(), fieldName, foundOrMissing)
}
