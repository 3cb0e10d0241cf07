// Copyright 2023 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package accesspath normalizes AST expressions to {root, path} when the
// expression syntactically denotes an assignable location.
package accesspath

import (
	"github.com/google/go-taint-model/internal/pkg/lang"
	"github.com/google/go-taint-model/internal/pkg/root"
	"github.com/google/go-taint-model/internal/pkg/tree"
)

// AccessPath is the {root, path} pair extracted from an expression.
type AccessPath struct {
	Root root.Root
	Path tree.Path
}

// Of extracts the access path denoted by e, if e syntactically denotes an
// assignable location: a bare variable, or a chain of field accesses
// ending in a variable. Any other expression shape yields (AccessPath{},
// false) — no alias inference is performed.
func Of(e lang.Expression) (AccessPath, bool) {
	switch v := e.(type) {
	case lang.Identifier:
		return AccessPath{Root: root.Variable(v.Name)}, true
	case lang.Access:
		base, ok := Of(v.Receiver)
		if !ok {
			return AccessPath{}, false
		}
		path := make(tree.Path, len(base.Path)+1)
		copy(path, base.Path)
		path[len(base.Path)] = tree.Field(v.Member)
		return AccessPath{Root: base.Root, Path: path}, true
	default:
		return AccessPath{}, false
	}
}
