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

	"github.com/google/go-cmp/cmp"
)

func TestValueGoValue(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want interface{}
	}{
		{name: "Null", v: Null(), want: nil},
		{name: "Int", v: Int(42), want: int64(42)},
		{name: "Float", v: Float(1.5), want: 1.5},
		{name: "String", v: String("hi"), want: "hi"},
		{name: "Boolean", v: Boolean(true), want: true},
		{name: "Enum", v: Enum("JEDI"), want: "JEDI"},
		{
			name: "List",
			v:    List(Int(1), Int(2), Null()),
			want: []interface{}{int64(1), int64(2), nil},
		},
		{
			name: "Map",
			v:    Map(MapEntry{Key: "a", Value: Int(1)}, MapEntry{Key: "b", Value: String("x")}),
			want: map[string]interface{}{"a": int64(1), "b": "x"},
		},
		{
			name: "NestedMapInList",
			v: List(
				Map(MapEntry{Key: "name", Value: String("Luke")}),
				Map(MapEntry{Key: "name", Value: String("Leia")}),
			),
			want: []interface{}{
				map[string]interface{}{"name": "Luke"},
				map[string]interface{}{"name": "Leia"},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.v.GoValue()
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("GoValue() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{name: "Null", v: Null(), want: `null`},
		{name: "Int", v: Int(-7), want: `-7`},
		{name: "Float", v: Float(2.5), want: `2.5`},
		{name: "String", v: String(`has "quotes"`), want: `"has \"quotes\""`},
		{name: "Boolean", v: Boolean(false), want: `false`},
		{name: "Enum", v: Enum("JEDI"), want: `"JEDI"`},
		{name: "EmptyList", v: List(), want: `[]`},
		{name: "EmptyMap", v: Map(), want: `{}`},
		{
			name: "ListOfMaps",
			v: List(
				Map(MapEntry{Key: "id", Value: Int(1)}),
				Map(MapEntry{Key: "id", Value: Int(2)}),
			),
			want: `[{"id":1},{"id":2}]`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.v.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if diff := cmp.Diff(test.want, string(got)); diff != "" {
				t.Errorf("MarshalJSON() (-want +got):\n%s", diff)
			}
		})
	}
}
