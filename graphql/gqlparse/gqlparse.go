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

// Package gqlparse turns GraphQL query text into the graphql.Document AST
// the execution engine consumes. The lexing and parsing themselves are
// delegated entirely to github.com/vektah/gqlparser/v2; this package's only
// job is reshaping that parser's *ast.QueryDocument into the graphql
// package's own AST shapes (graphql/ast.go), so that the engine never
// imports a parser package directly.
package gqlparse

import (
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/jrmdayn/reasongraphql/graphql"
)

// Parse lexes and parses a GraphQL request document, then converts it into
// a graphql.Document. name is used only to annotate parse error messages
// with a source name (e.g. the HTTP request path).
func Parse(name, source string) (*graphql.Document, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return convertDocument(doc), nil
}

func convertDocument(doc *ast.QueryDocument) *graphql.Document {
	defs := make([]graphql.Definition, 0, len(doc.Operations)+len(doc.Fragments))
	for _, op := range doc.Operations {
		defs = append(defs, graphql.Definition{Operation: convertOperation(op)})
	}
	for _, frag := range doc.Fragments {
		defs = append(defs, graphql.Definition{Fragment: convertFragment(frag)})
	}
	return &graphql.Document{Definitions: defs}
}

func convertOperation(op *ast.OperationDefinition) *graphql.OperationDefinition {
	return &graphql.OperationDefinition{
		Type:                convertOperationType(op.Operation),
		Name:                op.Name,
		VariableDefinitions: convertVariableDefinitions(op.VariableDefinitions),
		SelectionSet:        convertSelectionSet(op.SelectionSet),
	}
}

func convertOperationType(typ ast.Operation) graphql.OperationType {
	switch typ {
	case ast.Mutation:
		return graphql.MutationOperation
	case ast.Subscription:
		return graphql.SubscriptionOperation
	default:
		return graphql.QueryOperation
	}
}

func convertVariableDefinitions(defs ast.VariableDefinitionList) []graphql.VariableDefinition {
	if len(defs) == 0 {
		return nil
	}
	out := make([]graphql.VariableDefinition, len(defs))
	for i, d := range defs {
		vd := graphql.VariableDefinition{Name: d.Variable}
		if d.DefaultValue != nil {
			vd.HasDefault = true
			vd.DefaultValue = convertValue(d.DefaultValue)
		}
		out[i] = vd
	}
	return out
}

func convertFragment(f *ast.FragmentDefinition) *graphql.FragmentDefinition {
	return &graphql.FragmentDefinition{
		Name:          f.Name,
		TypeCondition: f.TypeCondition,
		SelectionSet:  convertSelectionSet(f.SelectionSet),
	}
}

func convertSelectionSet(set ast.SelectionSet) []graphql.Selection {
	if len(set) == 0 {
		return nil
	}
	out := make([]graphql.Selection, 0, len(set))
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			out = append(out, graphql.Selection{Field: convertField(s)})
		case *ast.FragmentSpread:
			out = append(out, graphql.Selection{
				FragmentSpread: &graphql.FragmentSpreadSelection{Name: s.Name},
			})
		case *ast.InlineFragment:
			out = append(out, graphql.Selection{
				InlineFragment: &graphql.InlineFragmentSelection{
					TypeCondition:    s.TypeCondition,
					HasTypeCondition: s.TypeCondition != "",
					SelectionSet:     convertSelectionSet(s.SelectionSet),
				},
			})
		}
	}
	return out
}

func convertField(f *ast.Field) *graphql.FieldSelection {
	fs := &graphql.FieldSelection{
		Name:         f.Name,
		SelectionSet: convertSelectionSet(f.SelectionSet),
	}
	if f.Alias != "" && f.Alias != f.Name {
		fs.Alias = f.Alias
		fs.HasAlias = true
	}
	if len(f.Arguments) > 0 {
		fs.Arguments = make([]graphql.Argument, len(f.Arguments))
		for i, arg := range f.Arguments {
			fs.Arguments[i] = graphql.Argument{Name: arg.Name, Value: convertValue(arg.Value)}
		}
	}
	return fs
}

func convertValue(v *ast.Value) graphql.AstValue {
	if v == nil {
		return graphql.AstNull()
	}
	switch v.Kind {
	case ast.Variable:
		return graphql.AstVariable(v.Raw)
	case ast.IntValue:
		i, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return graphql.AstNull()
		}
		return graphql.AstInt(i)
	case ast.FloatValue:
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return graphql.AstNull()
		}
		return graphql.AstFloat(f)
	case ast.StringValue, ast.BlockValue:
		return graphql.AstString(v.Raw)
	case ast.BooleanValue:
		return graphql.AstBoolean(v.Raw == "true")
	case ast.EnumValue:
		return graphql.AstEnum(v.Raw)
	case ast.NullValue:
		return graphql.AstNull()
	case ast.ListValue:
		items := make([]graphql.AstValue, len(v.Children))
		for i, c := range v.Children {
			items[i] = convertValue(c.Value)
		}
		return graphql.AstList(items...)
	case ast.ObjectValue:
		entries := make([]graphql.AstMapEntry, len(v.Children))
		for i, c := range v.Children {
			entries[i] = graphql.AstMapEntry{Key: c.Name, Value: convertValue(c.Value)}
		}
		return graphql.AstMap(entries...)
	default:
		return graphql.AstNull()
	}
}
