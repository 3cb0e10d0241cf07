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

// Package state implements TaintState: a mapping from analysis roots to
// access-path trees, with every lattice operation lifted pointwise. A
// missing root is equivalent to the bottom tree.
package state

import (
	"github.com/google/go-taint-model/internal/pkg/lattice"
	"github.com/google/go-taint-model/internal/pkg/root"
	"github.com/google/go-taint-model/internal/pkg/tree"
)

// State is TaintState<E>: Root -> Tree<E>, persistent like Tree itself.
type State[E lattice.Element[E]] struct {
	trees map[root.Root]tree.Tree[E]
}

// Empty returns the state with every root mapped to the bottom tree.
func Empty[E lattice.Element[E]]() State[E] {
	return State[E]{}
}

// Get returns the tree stored at r, or the bottom tree if r is absent.
func (s State[E]) Get(r root.Root) tree.Tree[E] {
	t, ok := s.trees[r]
	if !ok {
		return tree.Empty[E]()
	}
	return t
}

func (s State[E]) clone() State[E] {
	out := State[E]{trees: make(map[root.Root]tree.Tree[E], len(s.trees))}
	for r, t := range s.trees {
		out.trees[r] = t
	}
	return out
}

func (s State[E]) with(r root.Root, t tree.Tree[E]) State[E] {
	out := s.clone()
	if t.IsEmptyTree() {
		delete(out.trees, r)
	} else {
		out.trees[r] = t
	}
	return out
}

// Assign performs a strong update: the tree at path under root r is
// replaced by sub.
func (s State[E]) Assign(r root.Root, path tree.Path, sub tree.Tree[E]) State[E] {
	return s.with(r, s.Get(r).Assign(path, sub))
}

// AssignWeak joins sub into the tree at path under root r.
func (s State[E]) AssignWeak(r root.Root, path tree.Path, sub tree.Tree[E]) State[E] {
	return s.with(r, s.Get(r).AssignWeak(path, sub))
}

// ReadAccessPath reads the tree at path under root r, with ancestor taint
// accumulated onto the returned subtree's root (see Tree.Read).
func (s State[E]) ReadAccessPath(r root.Root, path tree.Path) tree.Tree[E] {
	return s.Get(r).Read(path)
}

// Roots returns the roots with non-bottom trees, in no particular order.
func (s State[E]) Roots() []root.Root {
	out := make([]root.Root, 0, len(s.trees))
	for r := range s.trees {
		out = append(out, r)
	}
	return out
}

// Join returns the pointwise union of s and other.
func (s State[E]) Join(other State[E]) State[E] {
	out := State[E]{trees: make(map[root.Root]tree.Tree[E])}
	for _, r := range unionRoots(s, other) {
		t := s.Get(r).Join(other.Get(r))
		if !t.IsEmptyTree() {
			out.trees[r] = t
		}
	}
	return out
}

func unionRoots[E lattice.Element[E]](a, b State[E]) []root.Root {
	seen := map[root.Root]bool{}
	var out []root.Root
	for _, s := range []State[E]{a, b} {
		for r := range s.trees {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	return out
}

// LessOrEqual reports whether s is pointwise dominated by other.
func (s State[E]) LessOrEqual(other State[E]) bool {
	for r, t := range s.trees {
		if !t.LessOrEqual(other.Get(r)) {
			return false
		}
	}
	return true
}

// Equal reports semantic, pointwise equality.
func (s State[E]) Equal(other State[E]) bool {
	return s.LessOrEqual(other) && other.LessOrEqual(s)
}

// Widen accelerates convergence with other pointwise; see Tree.Widen for
// the depth-bounding contract applied once iteration reaches threshold.
func (s State[E]) Widen(other State[E], iteration, threshold, maxDepth int) State[E] {
	out := State[E]{trees: make(map[root.Root]tree.Tree[E])}
	for _, r := range unionRoots(s, other) {
		t := s.Get(r).Widen(other.Get(r), iteration, threshold, maxDepth)
		if !t.IsEmptyTree() {
			out.trees[r] = t
		}
	}
	return out
}
