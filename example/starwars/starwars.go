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

// Package starwars provides an example schema and resolvers based on Star
// Wars characters, built with the graphql package's programmatic schema
// builder rather than an SDL document.
//
// Source data: https://github.com/graphql/graphql.github.io/blob/source/site/_core/swapiSchema.js
package starwars

import (
	"sync"

	"github.com/jrmdayn/reasongraphql/graphql"
)

// Episode is the Go representation of the Episode enum's members.
type Episode string

// Episode enum members.
const (
	NewHope Episode = "NEWHOPE"
	Empire  Episode = "EMPIRE"
	Jedi    Episode = "JEDI"
)

var episodeEnumValues = []graphql.EnumMember{
	{Name: "NEWHOPE", Value: NewHope},
	{Name: "EMPIRE", Value: Empire},
	{Name: "JEDI", Value: Jedi},
}

// EpisodeOut is the Episode output type.
var EpisodeOut = graphql.EnumOut("Episode", episodeEnumValues)

// EpisodeArg is the Episode argument type.
var EpisodeArg = graphql.EnumArg("Episode", episodeEnumValues)

// Human is a humanoid character.
type Human struct {
	ID        string
	Name      string
	Friends   []string
	AppearsIn []Episode
	Height    float64
	Mass      float64
	HasMass   bool
}

// Droid is a mechanical character.
type Droid struct {
	ID              string
	Name            string
	Friends         []string
	AppearsIn       []Episode
	PrimaryFunction string
}

// Review is a single review of an episode.
type Review struct {
	Stars      int64
	Commentary string
	HasComment bool
}

var humans = map[string]*Human{
	"1000": {
		ID:        "1000",
		Name:      "Luke Skywalker",
		Friends:   []string{"1002", "1003", "2000", "2001"},
		AppearsIn: []Episode{NewHope, Empire, Jedi},
		Height:    1.72,
		Mass:      77,
		HasMass:   true,
	},
	"1002": {
		ID:        "1002",
		Name:      "Han Solo",
		Friends:   []string{"1000", "1003", "2001"},
		AppearsIn: []Episode{NewHope, Empire, Jedi},
		Height:    1.8,
		Mass:      80,
		HasMass:   true,
	},
	"1003": {
		ID:        "1003",
		Name:      "Leia Organa",
		Friends:   []string{"1000", "1002", "2000", "2001"},
		AppearsIn: []Episode{NewHope, Empire, Jedi},
		Height:    1.5,
		Mass:      49,
		HasMass:   true,
	},
}

var droids = map[string]*Droid{
	"2000": {
		ID:              "2000",
		Name:            "C-3PO",
		Friends:         []string{"1000", "1002", "1003", "2001"},
		AppearsIn:       []Episode{NewHope, Empire, Jedi},
		PrimaryFunction: "Protocol",
	},
	"2001": {
		ID:              "2001",
		Name:            "R2-D2",
		Friends:         []string{"1000", "1002", "1003"},
		AppearsIn:       []Episode{NewHope, Empire, Jedi},
		PrimaryFunction: "Astromech",
	},
}

func characterByID(id string) interface{} {
	if h, ok := humans[id]; ok {
		return h
	}
	if d, ok := droids[id]; ok {
		return d
	}
	return nil
}

func friendsOf(ids []string) []interface{} {
	out := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		if c := characterByID(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func appearsInValues(episodes []Episode) []interface{} {
	out := make([]interface{}, len(episodes))
	for i, e := range episodes {
		out[i] = e
	}
	return out
}

// Root is both the Query and Mutation root value: it owns the mutable review
// store createReview appends to.
type Root struct {
	mu      sync.Mutex
	reviews map[Episode][]*Review
}

// NewRoot returns a fresh Root with no reviews recorded.
func NewRoot() *Root {
	return &Root{reviews: make(map[Episode][]*Review)}
}

func (r *Root) addReview(ep Episode, rev *Review) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[ep] = append(r.reviews[ep], rev)
}

// characterType, humanType, droidType, reviewType, and reviewInputType have
// lazily built field lists so that Human's and Droid's friends fields (which
// return other Characters, themselves Humans or Droids) can close over the
// *graphql.OutType values being constructed, per the package's recursive
// schema convention.
var (
	characterType = graphql.NewInterface("Character", "A character from the Star Wars universe", func() []*graphql.Field {
		return []*graphql.Field{
			graphql.NewField("id", graphql.IDOut, nil, nil),
			graphql.NewField("name", graphql.StringOut, nil, nil),
			graphql.NewField("appearsIn", graphql.ListOut(graphql.NullableOut(EpisodeOut)), nil, nil),
		}
	})

	humanType = graphql.NewObject("Human", "A humanoid creature from the Star Wars universe", func(self *graphql.OutType) []*graphql.Field {
		return []*graphql.Field{
			graphql.NewField("id", graphql.IDOut, nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return src.(*Human).ID, nil
			}),
			graphql.NewField("name", graphql.StringOut, nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return src.(*Human).Name, nil
			}),
			graphql.NewField("height", graphql.FloatOut, nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return src.(*Human).Height, nil
			}),
			graphql.NewField("mass", graphql.NullableOut(graphql.FloatOut), nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				h := src.(*Human)
				if !h.HasMass {
					return nil, nil
				}
				return h.Mass, nil
			}),
			graphql.NewField("friends", graphql.NullableOut(graphql.ListOut(graphql.NullableOut(characterType))), nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return friendsOf(src.(*Human).Friends), nil
			}),
			graphql.NewField("appearsIn", graphql.ListOut(graphql.NullableOut(EpisodeOut)), nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return appearsInValues(src.(*Human).AppearsIn), nil
			}),
		}
	})

	droidType = graphql.NewObject("Droid", "An autonomous mechanical character in the Star Wars universe", func(self *graphql.OutType) []*graphql.Field {
		return []*graphql.Field{
			graphql.NewField("id", graphql.IDOut, nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return src.(*Droid).ID, nil
			}),
			graphql.NewField("name", graphql.StringOut, nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return src.(*Droid).Name, nil
			}),
			graphql.NewField("friends", graphql.NullableOut(graphql.ListOut(graphql.NullableOut(characterType))), nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return friendsOf(src.(*Droid).Friends), nil
			}),
			graphql.NewField("appearsIn", graphql.ListOut(graphql.NullableOut(EpisodeOut)), nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return appearsInValues(src.(*Droid).AppearsIn), nil
			}),
			graphql.NewField("primaryFunction", graphql.NullableOut(graphql.StringOut), nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return src.(*Droid).PrimaryFunction, nil
			}),
		}
	})

	asHuman = graphql.AddType(characterType, humanType)
	asDroid = graphql.AddType(characterType, droidType)

	reviewType = graphql.NewObject("Review", "A review for a movie", func(self *graphql.OutType) []*graphql.Field {
		return []*graphql.Field{
			graphql.NewField("stars", graphql.IntOut, nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return src.(*Review).Stars, nil
			}),
			graphql.NewField("commentary", graphql.NullableOut(graphql.StringOut), nil, func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				r := src.(*Review)
				if !r.HasComment {
					return nil, nil
				}
				return r.Commentary, nil
			}),
		}
	})

	reviewInputType = graphql.InputObject("ReviewInput", []graphql.InputField{
		{Name: "stars", Type: graphql.IntArg},
		{Name: "commentary", Type: graphql.Nullable(graphql.StringArg)},
	}, func(values []interface{}) (interface{}, error) {
		rev := &Review{Stars: values[0].(int64)}
		if values[1] != nil {
			rev.Commentary = values[1].(string)
			rev.HasComment = true
		}
		return rev, nil
	})
)

func resolveAbstractCharacter(id string) graphql.AbstractValue {
	if h, ok := humans[id]; ok {
		return asHuman(h)
	}
	return asDroid(droids[id])
}

// QueryType is the Query root object type.
var QueryType = graphql.NewObject("Query", "", func(self *graphql.OutType) []*graphql.Field {
	return []*graphql.Field{
		graphql.NewField("hero", graphql.NullableOut(characterType),
			graphql.ArgList{graphql.DefaultArg("episode", graphql.Nullable(EpisodeArg), NewHope)},
			func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				if graphql.ArgValue[Episode](args, "episode") == Empire {
					return asHuman(humans["1000"]), nil
				}
				return asDroid(droids["2001"]), nil
			}),
		graphql.NewField("human", graphql.NullableOut(humanType),
			graphql.ArgList{graphql.Arg("id", graphql.IDArg)},
			func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return humans[graphql.ArgValue[string](args, "id")], nil
			}),
		graphql.NewField("droid", graphql.NullableOut(droidType),
			graphql.ArgList{graphql.Arg("id", graphql.IDArg)},
			func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				return droids[graphql.ArgValue[string](args, "id")], nil
			}),
		graphql.NewField("character", graphql.NullableOut(characterType),
			graphql.ArgList{graphql.Arg("id", graphql.IDArg)},
			func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				id := graphql.ArgValue[string](args, "id")
				if id == "" {
					return nil, nil
				}
				if _, ok := humans[id]; !ok {
					if _, ok := droids[id]; !ok {
						return nil, nil
					}
				}
				return resolveAbstractCharacter(id), nil
			}),
	}
})

// MutationType is the Mutation root object type.
var MutationType = graphql.NewObject("Mutation", "", func(self *graphql.OutType) []*graphql.Field {
	return []*graphql.Field{
		graphql.NewField("createReview", graphql.NullableOut(reviewType),
			graphql.ArgList{
				graphql.Arg("episode", EpisodeArg),
				graphql.Arg("review", reviewInputType),
			},
			func(ctx *graphql.ExecutionContext, src interface{}, args graphql.Args) (interface{}, error) {
				ep := graphql.ArgValue[Episode](args, "episode")
				rev := graphql.ArgValue[*Review](args, "review")
				src.(*Root).addReview(ep, rev)
				return rev, nil
			}),
	}
})

// Schema assembles the Star Wars Query/Mutation schema.
func Schema() (*graphql.Schema, error) {
	return graphql.NewSchema(QueryType, MutationType)
}
