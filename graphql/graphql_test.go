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
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrmdayn/reasongraphql/graphql/async"
)

type testPet struct {
	Name  string
	Fails bool
}

func buildTestSchema(t *testing.T) *Schema {
	t.Helper()
	petType := NewObject("Pet", "", func(self *OutType) []*Field {
		return []*Field{
			NewField("name", StringOut, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return src.(*testPet).Name, nil
			}),
			NewField("nickname", NullableOut(StringOut), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				p := src.(*testPet)
				if p.Fails {
					return nil, errors.New("no nickname on file")
				}
				return nil, nil
			}),
			NewField("requiredButFails", StringOut, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return nil, errors.New("boom")
			}),
		}
	})
	containerType := NewObject("Container", "", func(self *OutType) []*Field {
		return []*Field{
			// Non-nullable: a failure here has to bubble past this object
			// entirely, exercising path accumulation across two resolveFields
			// calls before it reaches a Nullable ancestor to absorb it.
			NewField("pet", petType, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return &testPet{Name: "Rex", Fails: true}, nil
			}),
		}
	})
	queryType := NewObject("Query", "", func(self *OutType) []*Field {
		return []*Field{
			NewField("pet", NullableOut(petType), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return &testPet{Name: "Fido"}, nil
			}),
			NewField("failingPet", NullableOut(petType), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return &testPet{Name: "Rex", Fails: true}, nil
			}),
			NewField("container", NullableOut(containerType), nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return struct{}{}, nil
			}),
			NewField("echo", StringOut, ArgList{Arg("msg", StringArg)}, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return ArgValue[string](args, "msg"), nil
			}),
		}
	})
	mutationType := NewObject("Mutation", "", func(self *OutType) []*Field {
		return []*Field{
			NewField("bumpRequiredButFails", StringOut, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return nil, errors.New("always fails")
			}),
		}
	})
	schema, err := NewSchema(queryType, mutationType)
	require.NoError(t, err)
	return schema
}

func execTest(t *testing.T, schema *Schema, query string, vars map[string]Value) Response {
	t.Helper()
	doc := &Document{Definitions: []Definition{{Operation: &OperationDefinition{
		Type:         QueryOperation,
		SelectionSet: mustParseSelectionSet(t, query),
	}}}}
	return Execute(context.Background(), schema, async.SyncScheduler{}, nil, nil, Request{Document: doc, Variables: vars})
}

// mustParseSelectionSet builds a selection set by hand for a tiny fixed
// subset of query shapes used by this file's tests, so these tests don't
// depend on the gqlparse subpackage.
func mustParseSelectionSet(t *testing.T, name string) []Selection {
	t.Helper()
	switch name {
	case "pet.name":
		return []Selection{{Field: &FieldSelection{Name: "pet", SelectionSet: []Selection{
			{Field: &FieldSelection{Name: "name"}},
		}}}}
	case "pet.nickname":
		return []Selection{{Field: &FieldSelection{Name: "pet", SelectionSet: []Selection{
			{Field: &FieldSelection{Name: "nickname"}},
		}}}}
	case "failingPet.nickname":
		return []Selection{{Field: &FieldSelection{Name: "failingPet", SelectionSet: []Selection{
			{Field: &FieldSelection{Name: "nickname"}},
		}}}}
	case "failingPet.requiredButFails":
		return []Selection{{Field: &FieldSelection{Name: "failingPet", SelectionSet: []Selection{
			{Field: &FieldSelection{Name: "requiredButFails"}},
		}}}}
	case "container.pet.requiredButFails":
		return []Selection{{Field: &FieldSelection{Name: "container", SelectionSet: []Selection{
			{Field: &FieldSelection{Name: "pet", SelectionSet: []Selection{
				{Field: &FieldSelection{Name: "requiredButFails"}},
			}}},
		}}}}
	case "echo":
		return []Selection{{Field: &FieldSelection{Name: "echo", Arguments: []Argument{
			{Name: "msg", Value: AstVariable("msg")},
		}}}}
	case "typename":
		return []Selection{{Field: &FieldSelection{Name: "__typename"}}}
	default:
		t.Fatalf("mustParseSelectionSet: unknown fixture %q", name)
		return nil
	}
}

func TestExecuteSimpleField(t *testing.T) {
	schema := buildTestSchema(t)
	resp := execTest(t, schema, "pet.name", nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{"pet": map[string]interface{}{"name": "Fido"}}, resp.Data.GoValue())
}

func TestExecuteNullableFieldAbsorbsResolverError(t *testing.T) {
	schema := buildTestSchema(t)
	resp := execTest(t, schema, "failingPet.nickname", nil)
	require.Len(t, resp.Errors, 1)
	got := resp.Data.GoValue().(map[string]interface{})["failingPet"].(map[string]interface{})
	assert.Nil(t, got["nickname"])
}

func TestExecuteNonNullableFieldBubblesToParent(t *testing.T) {
	schema := buildTestSchema(t)
	resp := execTest(t, schema, "failingPet.requiredButFails", nil)
	require.Len(t, resp.Errors, 1)
	// failingPet itself is Nullable, so the bubbled error stops there: the
	// object becomes null instead of failing the whole response.
	got := resp.Data.GoValue().(map[string]interface{})
	assert.Nil(t, got["failingPet"])
	// The field that actually failed is still named, even though the
	// object that absorbed the failure (failingPet) is one level up and
	// isn't itself part of the path recorded here.
	assert.Equal(t, []PathSegment{{Field: "requiredButFails"}}, resp.Errors[0].Path)
}

func TestExecuteNonNullableFieldBubblesThroughMultipleLevels(t *testing.T) {
	schema := buildTestSchema(t)
	resp := execTest(t, schema, "container.pet.requiredButFails", nil)
	require.Len(t, resp.Errors, 1)
	// container is Nullable, but pet is not: the failure has to bubble past
	// pet's own resolveFields call before container can absorb it, so the
	// recorded path accumulates both segments on the way up.
	got := resp.Data.GoValue().(map[string]interface{})
	assert.Nil(t, got["container"])
	assert.Equal(t, []PathSegment{{Field: "pet"}, {Field: "requiredButFails"}}, resp.Errors[0].Path)
}

func TestExecuteVariableSubstitution(t *testing.T) {
	schema := buildTestSchema(t)
	resp := execTest(t, schema, "echo", map[string]Value{"msg": String("hello")})
	require.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{"echo": "hello"}, resp.Data.GoValue())
}

func TestExecuteMissingVariableFailsWholeOperation(t *testing.T) {
	schema := buildTestSchema(t)
	resp := execTest(t, schema, "echo", nil)
	require.NotEmpty(t, resp.Errors)
	assert.True(t, resp.Data.IsNull())
}

func TestExecuteTypenameMetaField(t *testing.T) {
	schema := buildTestSchema(t)
	resp := execTest(t, schema, "typename", nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{"__typename": "Query"}, resp.Data.GoValue())
}

func TestSelectOperationRequiresNameWithMultipleOperations(t *testing.T) {
	ops := []*OperationDefinition{
		{Type: QueryOperation, Name: "A"},
		{Type: QueryOperation, Name: "B"},
	}
	_, err := selectOperation(ops, "")
	assert.Equal(t, ErrOperationNameRequired, err)

	op, err := selectOperation(ops, "B")
	require.NoError(t, err)
	assert.Equal(t, "B", op.Name)

	_, err = selectOperation(ops, "C")
	assert.Equal(t, ErrOperationNotFound, err)
}

func TestBuildVariablesAppliesDefaultOnlyWhenOmitted(t *testing.T) {
	defs := []VariableDefinition{
		{Name: "a", HasDefault: true, DefaultValue: AstInt(1)},
	}
	vars, err := buildVariables(defs, map[string]Value{"a": Int(2)})
	require.NoError(t, err)
	assert.Equal(t, Int(2), vars["a"])

	vars, err = buildVariables(defs, nil)
	require.NoError(t, err)
	assert.Equal(t, Int(1), vars["a"])
}

func TestResponseMarshalAlwaysIncludesDataEvenWhenNullAndErrored(t *testing.T) {
	resp := Response{Data: Null()}
	data, err := resp.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"data":null}`, string(data))

	resp = Response{Data: Null(), Errors: []*ResponseError{{Message: "boom"}}}
	data, err = resp.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"data":null,"errors":[{"message":"boom","path":[]}]}`, string(data))
}
