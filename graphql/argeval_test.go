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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateArgsAppliesDefaultWhenArgumentAbsent(t *testing.T) {
	argList := ArgList{DefaultArg("limit", IntArg, int64(10))}
	args, err := evaluateArgs(argList, nil, nil, "widgets")
	require.NoError(t, err)
	assert.Equal(t, int64(10), ArgValue[int64](args, "limit"))
}

func TestEvaluateArgsMissingNullableArgumentCoercesToNil(t *testing.T) {
	argList := ArgList{Arg("filter", Nullable(StringArg))}
	args, err := evaluateArgs(argList, nil, nil, "widgets")
	require.NoError(t, err)
	assert.False(t, args.Has("filter"))
}

func TestEvaluateArgsMissingRequiredArgumentFails(t *testing.T) {
	argList := ArgList{Arg("id", IDArg)}
	_, err := evaluateArgs(argList, nil, nil, "widget")
	require.Error(t, err)
	assert.IsType(t, &ArgumentError{}, err)
	assert.Contains(t, err.Error(), "found none")
}

func TestEvaluateArgsFailsOnMissingVariable(t *testing.T) {
	argList := ArgList{Arg("id", IDArg)}
	raw := []Argument{{Name: "id", Value: AstVariable("id")}}
	_, err := evaluateArgs(argList, raw, nil, "widget")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id")
}

func TestCoerceArgValueScalarFailure(t *testing.T) {
	_, err := coerceArgValue(IntArg, String("not an int"), "widgets", "limit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Argument `limit`")
}

func TestCoerceArgValueRejectsNullForNonNullableType(t *testing.T) {
	_, err := coerceArgValue(IntArg, Null(), "widgets", "limit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found null")
}

func TestCoerceArgValueListCoercesSingleValueToOneElementList(t *testing.T) {
	v, err := coerceArgValue(ListArg(IntArg), Int(3), "widgets", "ids")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(3)}, v)
}

func TestCoerceArgValueListCoercesEachElement(t *testing.T) {
	v, err := coerceArgValue(ListArg(IntArg), List(Int(1), Int(2), Int(3)), "widgets", "ids")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, v)
}

func TestCoerceEnumArgAcceptsEnumOrStringLiteral(t *testing.T) {
	colorArg := EnumArg("Color", []EnumMember{{Name: "RED", Value: 1}, {Name: "GREEN", Value: 2}})

	v, err := coerceEnumArg(colorArg, Enum("RED"), "widgets", "color")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = coerceEnumArg(colorArg, String("GREEN"), "widgets", "color")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = coerceEnumArg(colorArg, String("PURPLE"), "widgets", "color")
	assert.Error(t, err)

	_, err = coerceEnumArg(colorArg, Int(1), "widgets", "color")
	assert.Error(t, err)
}

func TestCoerceInputObjectArgAppliesDefaultsAndConstructs(t *testing.T) {
	var gotValues []interface{}
	reviewInput := InputObject("ReviewInput", []InputField{
		{Name: "stars", Type: IntArg},
		{Name: "commentary", Type: Nullable(StringArg), HasDefault: true, Default: "no comment"},
	}, func(values []interface{}) (interface{}, error) {
		gotValues = values
		return values, nil
	})

	v, err := coerceInputObjectArg(reviewInput, Map(MapEntry{Key: "stars", Value: Int(5)}), "createReview", "review")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(5), "no comment"}, v)
	assert.Equal(t, gotValues, v)
}

func TestCoerceInputObjectArgRejectsNonObjectValue(t *testing.T) {
	reviewInput := InputObject("ReviewInput", []InputField{{Name: "stars", Type: IntArg}}, func(values []interface{}) (interface{}, error) {
		return values, nil
	})
	_, err := coerceInputObjectArg(reviewInput, String("not an object"), "createReview", "review")
	assert.Error(t, err)
}
