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

// CollectedField is one flattened field selection against a concrete object
// type, the output of collectFields (C7): fragment spreads and inline
// fragments have been expanded away, leaving only FieldSelections in the
// order they were encountered.
type CollectedField struct {
	ResponseKey string
	Selection   *FieldSelection
}

// collectFields flattens selections into a field list to resolve against
// objType, expanding every FragmentSpread and InlineFragment it contains
// (recursively, since a fragment's own selection set may itself spread other
// fragments). A spread or inline fragment whose type condition does not
// match objType - neither objType's own name nor the name of any
// interface/union objType has been registered into via AddType - is
// skipped entirely; this rule applies identically to named fragment
// spreads and to inline fragments, so `... on Droid { ... }` and
// `...DroidFields` (where DroidFields is `fragment DroidFields on Droid`)
// behave the same way against a non-Droid object.
//
// fragments must contain every fragment name collectFields, or code it
// calls, ever spreads; an unresolvable spread is a ValidationError.
func collectFields(selections []Selection, fragments map[string]*FragmentDefinition, objType *OutType) ([]CollectedField, error) {
	return collectFieldsVisiting(selections, fragments, objType, map[string]bool{})
}

func collectFieldsVisiting(selections []Selection, fragments map[string]*FragmentDefinition, objType *OutType, visiting map[string]bool) ([]CollectedField, error) {
	var out []CollectedField
	for _, sel := range selections {
		switch {
		case sel.Field != nil:
			out = append(out, CollectedField{
				ResponseKey: sel.Field.ResponseKey(),
				Selection:   sel.Field,
			})
		case sel.FragmentSpread != nil:
			name := sel.FragmentSpread.Name
			if visiting[name] {
				continue
			}
			frag, ok := fragments[name]
			if !ok {
				return nil, newValidationError("Unknown fragment `%s`", name)
			}
			if !typeConditionMatches(frag.TypeCondition, objType) {
				continue
			}
			visiting[name] = true
			sub, err := collectFieldsVisiting(frag.SelectionSet, fragments, objType, visiting)
			delete(visiting, name)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		case sel.InlineFragment != nil:
			frag := sel.InlineFragment
			if frag.HasTypeCondition && !typeConditionMatches(frag.TypeCondition, objType) {
				continue
			}
			sub, err := collectFieldsVisiting(frag.SelectionSet, fragments, objType, visiting)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
	}
	return out, nil
}

// typeConditionMatches reports whether a fragment's `on TypeName` condition
// admits objType: either TypeName names objType itself, or names an
// interface/union objType was registered into via AddType.
func typeConditionMatches(typeName string, objType *OutType) bool {
	if objType.kind != OutObjectKind {
		return false
	}
	if objType.obj.Name == typeName {
		return true
	}
	for _, a := range objType.obj.Abstracts() {
		if a.Name == typeName {
			return true
		}
	}
	return false
}
