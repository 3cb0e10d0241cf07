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

// Package render produces DOT source for the two graphs worth looking
// at while debugging a run: a function's control-flow graph, and the
// shape of one access-path tree at a single program point.
package render

import (
	"fmt"
	"strings"

	"github.com/google/go-taint-model/internal/pkg/lattice"
	"github.com/google/go-taint-model/internal/pkg/tree"
)

// Tree produces DOT source for t: one node per tree position holding a
// non-bottom element or a non-bottom descendant, labelled with its path
// from root and stringify's rendering of its stored element. rootLabel
// names the root node, typically the root variable or LocalResult the
// tree was read from. An empty tree renders as its root node alone.
func Tree[E lattice.Element[E]](t tree.Tree[E], rootLabel string, stringify func(E) string) string {
	r := &treeRenderer{}
	r.writeHeader()
	if t.IsEmptyTree() {
		r.writeNode(rootLabel, stringify(t.Elem()))
	}
	label := func(path tree.Path) string {
		if len(path) == 0 {
			return rootLabel
		}
		return rootLabel + path.String()
	}
	t.Walk(func(path tree.Path, elem E) {
		r.writeNode(label(path), stringify(elem))
		if len(path) > 0 {
			r.writeEdge(label(path[:len(path)-1]), label(path))
		}
	})
	r.writeFooter()
	return r.String()
}

type treeRenderer struct {
	strings.Builder
}

func (r *treeRenderer) writeHeader() {
	_, _ = r.WriteString("digraph {\n")
}

func (r *treeRenderer) writeNode(label, elem string) {
	_, _ = r.WriteString(fmt.Sprintf("\t%q [label=%q];\n", label, fmt.Sprintf("%s\n%s", label, elem)))
}

func (r *treeRenderer) writeEdge(from, to string) {
	_, _ = r.WriteString(fmt.Sprintf("\t%q -> %q;\n", from, to))
}

func (r *treeRenderer) writeFooter() {
	_, _ = r.WriteString("}\n")
}
