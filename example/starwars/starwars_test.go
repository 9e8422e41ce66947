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

package starwars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrmdayn/reasongraphql/graphql"
	"github.com/jrmdayn/reasongraphql/graphql/async"
	"github.com/jrmdayn/reasongraphql/graphql/gqlparse"
)

func run(t *testing.T, schema *graphql.Schema, root *Root, query string, opName string, vars map[string]graphql.Value) graphql.Response {
	t.Helper()
	doc, err := gqlparse.Parse("test", query)
	require.NoError(t, err)
	return graphql.Execute(context.Background(), schema, async.SyncScheduler{}, root, root, graphql.Request{
		Document:      doc,
		OperationName: opName,
		Variables:     vars,
	})
}

func TestHeroDefaultsToR2D2(t *testing.T) {
	schema, err := Schema()
	require.NoError(t, err)
	resp := run(t, schema, NewRoot(), `{ hero { name } }`, "", nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{"hero": map[string]interface{}{"name": "R2-D2"}}, resp.Data.GoValue())
}

func TestHeroEmpireIsLuke(t *testing.T) {
	schema, err := Schema()
	require.NoError(t, err)
	resp := run(t, schema, NewRoot(), `{ hero(episode: EMPIRE) { name } }`, "", nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{"hero": map[string]interface{}{"name": "Luke Skywalker"}}, resp.Data.GoValue())
}

func TestHumanByID(t *testing.T) {
	schema, err := Schema()
	require.NoError(t, err)
	resp := run(t, schema, NewRoot(), `{ human(id: "1003") { name height } }`, "", nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{"human": map[string]interface{}{"name": "Leia Organa", "height": 1.5}}, resp.Data.GoValue())
}

func TestFragmentReuseAcrossCharacters(t *testing.T) {
	schema, err := Schema()
	require.NoError(t, err)
	const query = `
		query {
			luke: human(id: "1000") { ...CharacterInfo }
			r2d2: droid(id: "2001") { ...CharacterInfo }
		}
		fragment CharacterInfo on Character {
			name
			appearsIn
		}
	`
	resp := run(t, schema, NewRoot(), query, "", nil)
	require.Empty(t, resp.Errors)
	got := resp.Data.GoValue().(map[string]interface{})
	assert.Equal(t, "Luke Skywalker", got["luke"].(map[string]interface{})["name"])
	assert.Equal(t, "R2-D2", got["r2d2"].(map[string]interface{})["name"])
}

func TestCreateReviewMutationWithVariables(t *testing.T) {
	schema, err := Schema()
	require.NoError(t, err)
	root := NewRoot()
	const mutation = `
		mutation CreateReview($ep: Episode!, $review: ReviewInput!) {
			createReview(episode: $ep, review: $review) {
				stars
				commentary
			}
		}
	`
	resp := run(t, schema, root, mutation, "CreateReview", map[string]graphql.Value{
		"ep": graphql.Enum("JEDI"),
		"review": graphql.Map(
			graphql.MapEntry{Key: "stars", Value: graphql.Int(5)},
			graphql.MapEntry{Key: "commentary", Value: graphql.String("Great movie!")},
		),
	})
	require.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{"createReview": map[string]interface{}{"stars": int64(5), "commentary": "Great movie!"}}, resp.Data.GoValue())
	assert.Len(t, root.reviews[Jedi], 1)
}

func TestCreateReviewMissingVariableFails(t *testing.T) {
	schema, err := Schema()
	require.NoError(t, err)
	const mutation = `
		mutation CreateReview($ep: Episode!, $review: ReviewInput!) {
			createReview(episode: $ep, review: $review) {
				stars
			}
		}
	`
	resp := run(t, schema, NewRoot(), mutation, "CreateReview", map[string]graphql.Value{
		"ep": graphql.Enum("JEDI"),
	})
	require.NotEmpty(t, resp.Errors)
	assert.True(t, resp.Data.IsNull())
}
