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

func TestNewSchemaRequiresQuery(t *testing.T) {
	_, err := NewSchema(nil, nil)
	assert.Error(t, err)
}

func TestNewSchemaRejectsNonObjectQuery(t *testing.T) {
	_, err := NewSchema(StringOut, nil)
	assert.Error(t, err)
}

func TestNewSchemaRejectsNonObjectMutation(t *testing.T) {
	query := NewObject("Query", "", func(self *OutType) []*Field { return nil })
	_, err := NewSchema(query, StringOut)
	assert.Error(t, err)
}

func TestNewSchemaAllowsNilMutation(t *testing.T) {
	query := NewObject("Query", "", func(self *OutType) []*Field { return nil })
	schema, err := NewSchema(query, nil)
	require.NoError(t, err)
	assert.Nil(t, schema.Mutation)
}

func TestQueryWithIntrospectionIsCachedAndDoesNotMutateOriginal(t *testing.T) {
	query := NewObject("Query", "", func(self *OutType) []*Field {
		return []*Field{
			NewField("ok", StringOut, nil, func(ec *ExecutionContext, src interface{}, args Args) (interface{}, error) {
				return "ok", nil
			}),
		}
	})
	schema, err := NewSchema(query, nil)
	require.NoError(t, err)

	before := len(query.obj.Fields())
	withIntro := schema.queryWithIntrospection()
	assert.Greater(t, len(withIntro.obj.Fields()), before, "introspection overlay should add __schema/__type")
	assert.Equal(t, before, len(query.obj.Fields()), "original Query object must not be mutated")

	again := schema.queryWithIntrospection()
	assert.Same(t, withIntro, again, "queryWithIntrospection should build the overlay once and cache it")
}
