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

package tree

import "github.com/google/go-taint-model/internal/pkg/lattice"

// node is the internal, immutable representation of one tree position.
// A nil *node always denotes the bottom tree: no taint here, no children.
// Trees are persistent: every mutating-looking operation returns a new
// Tree sharing unchanged substructure with its input.
type node[E lattice.Element[E]] struct {
	elem     E
	children map[Label]*node[E]
}

// Tree is the access-path tree (TaintTree<E>) here.
type Tree[E lattice.Element[E]] struct {
	root *node[E]
}

func zero[E lattice.Element[E]]() E {
	var e E
	return e
}

func elemOf[E lattice.Element[E]](n *node[E]) E {
	if n == nil {
		return zero[E]()
	}
	return n.elem
}

func childOf[E lattice.Element[E]](n *node[E], l Label) *node[E] {
	if n == nil {
		return nil
	}
	return n.children[l]
}

func cloneChildren[E lattice.Element[E]](m map[Label]*node[E]) map[Label]*node[E] {
	if len(m) == 0 {
		return nil
	}
	out := make(map[Label]*node[E], len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// prune collapses a structurally-empty node (bottom element, no children)
// to nil, so bottom is always represented canonically.
func prune[E lattice.Element[E]](n *node[E]) *node[E] {
	if n == nil {
		return nil
	}
	if n.elem.IsBottom() && len(n.children) == 0 {
		return nil
	}
	return n
}

// Empty returns the bottom tree.
func Empty[E lattice.Element[E]]() Tree[E] {
	return Tree[E]{}
}

// MakeLeaf returns a tree with only-root element e and no children.
func MakeLeaf[E lattice.Element[E]](e E) Tree[E] {
	return Tree[E]{root: prune(&node[E]{elem: e})}
}

// IsEmptyTree reports whether t is bottom everywhere.
func (t Tree[E]) IsEmptyTree() bool {
	return isEmptyNode(t.root)
}

func isEmptyNode[E lattice.Element[E]](n *node[E]) bool {
	if n == nil {
		return true
	}
	if !n.elem.IsBottom() {
		return false
	}
	for _, c := range n.children {
		if !isEmptyNode(c) {
			return false
		}
	}
	return true
}

// Elem returns the element stored exactly at the tree's root, ignoring
// children. Use Read to account for accumulated ancestor taint.
func (t Tree[E]) Elem() E {
	return elemOf(t.root)
}

// Read returns the subtree rooted at path, with the taint accumulated
// from every ancestor of path (including path's own node) collapsed onto
// the returned root. Descendants of path keep their own stored elements
// unchanged.
func (t Tree[E]) Read(path Path) Tree[E] {
	acc := zero[E]()
	cur := t.root
	for _, l := range path {
		if cur == nil {
			break
		}
		acc = acc.Join(cur.elem)
		cur = cur.children[l]
	}
	if cur != nil {
		acc = acc.Join(cur.elem)
	}
	out := &node[E]{elem: acc}
	if cur != nil {
		out.children = cur.children
	}
	return Tree[E]{root: prune(out)}
}

// Assign replaces the subtree at path with sub, a strong update: anything
// previously at or below path is discarded.
func (t Tree[E]) Assign(path Path, sub Tree[E]) Tree[E] {
	return Tree[E]{root: assignNode(t.root, path, sub.root)}
}

func assignNode[E lattice.Element[E]](cur *node[E], path Path, sub *node[E]) *node[E] {
	if len(path) == 0 {
		return prune(sub)
	}
	l, rest := path[0], path[1:]
	out := &node[E]{elem: elemOf(cur)}
	if cur != nil {
		out.children = cloneChildren(cur.children)
	}
	updated := assignNode(childOf(cur, l), rest, sub)
	if updated == nil {
		if out.children != nil {
			delete(out.children, l)
		}
	} else {
		if out.children == nil {
			out.children = map[Label]*node[E]{}
		}
		out.children[l] = updated
	}
	return prune(out)
}

// AssignWeak joins sub into the existing subtree at path. Monotone: the
// result is always >= the receiver.
func (t Tree[E]) AssignWeak(path Path, sub Tree[E]) Tree[E] {
	return Tree[E]{root: assignWeakNode(t.root, path, sub.root)}
}

func assignWeakNode[E lattice.Element[E]](cur *node[E], path Path, sub *node[E]) *node[E] {
	if len(path) == 0 {
		return joinNode(cur, sub)
	}
	l, rest := path[0], path[1:]
	out := &node[E]{elem: elemOf(cur)}
	if cur != nil {
		out.children = cloneChildren(cur.children)
	}
	updated := assignWeakNode(childOf(cur, l), rest, sub)
	if updated != nil {
		if out.children == nil {
			out.children = map[Label]*node[E]{}
		}
		out.children[l] = updated
	}
	return prune(out)
}

// Join returns the pointwise union of t and other.
func (t Tree[E]) Join(other Tree[E]) Tree[E] {
	return Tree[E]{root: joinNode(t.root, other.root)}
}

func joinNode[E lattice.Element[E]](a, b *node[E]) *node[E] {
	if a == nil && b == nil {
		return nil
	}
	out := &node[E]{elem: elemOf(a).Join(elemOf(b))}
	for l := range unionKeys(a, b) {
		if c := joinNode(childOf(a, l), childOf(b, l)); c != nil {
			if out.children == nil {
				out.children = map[Label]*node[E]{}
			}
			out.children[l] = c
		}
	}
	return prune(out)
}

func unionKeys[E lattice.Element[E]](a, b *node[E]) map[Label]bool {
	keys := map[Label]bool{}
	if a != nil {
		for l := range a.children {
			keys[l] = true
		}
	}
	if b != nil {
		for l := range b.children {
			keys[l] = true
		}
	}
	return keys
}

// LessOrEqual reports whether t is pointwise dominated by other.
func (t Tree[E]) LessOrEqual(other Tree[E]) bool {
	return leNode(t.root, other.root)
}

func leNode[E lattice.Element[E]](a, b *node[E]) bool {
	if !elemOf(a).LessOrEqual(elemOf(b)) {
		return false
	}
	if a == nil {
		return true
	}
	for l, ca := range a.children {
		if !leNode(ca, childOf(b, l)) {
			return false
		}
	}
	return true
}

// Equal reports semantic equality: t <= other && other <= t.
func (t Tree[E]) Equal(other Tree[E]) bool {
	return t.LessOrEqual(other) && other.LessOrEqual(t)
}

// Widen accelerates convergence with other, the tree computed in the next
// iteration. Before iteration k reaches the configured threshold, widen is
// plain join; afterwards, it also bounds the tree's depth to maxDepth so
// that an unbounded chain of nested field accesses cannot grow the tree
// forever.
func (t Tree[E]) Widen(other Tree[E], iteration, threshold, maxDepth int) Tree[E] {
	joined := t.Join(other)
	if iteration < threshold {
		return joined
	}
	return Tree[E]{root: boundDepth(joined.root, maxDepth)}
}

func boundDepth[E lattice.Element[E]](n *node[E], remaining int) *node[E] {
	if n == nil {
		return nil
	}
	if remaining <= 0 {
		return collapseNode(n)
	}
	out := &node[E]{elem: n.elem}
	for l, c := range n.children {
		if cc := boundDepth(c, remaining-1); cc != nil {
			if out.children == nil {
				out.children = map[Label]*node[E]{}
			}
			out.children[l] = cc
		}
	}
	return prune(out)
}

// Collapse joins every node of t into a single top-level element.
func (t Tree[E]) Collapse() Tree[E] {
	return Tree[E]{root: collapseNode(t.root)}
}

func collapseNode[E lattice.Element[E]](n *node[E]) *node[E] {
	if n == nil {
		return nil
	}
	acc := n.elem
	for _, c := range n.children {
		acc = acc.Join(elemOf(collapseNode(c)))
	}
	return prune(&node[E]{elem: acc})
}

// FilterMap applies f to the element stored at every existing node,
// preserving the tree's shape.
func (t Tree[E]) FilterMap(f func(E) E) Tree[E] {
	return Tree[E]{root: filterMapNode(t.root, f)}
}

func filterMapNode[E lattice.Element[E]](n *node[E], f func(E) E) *node[E] {
	if n == nil {
		return nil
	}
	out := &node[E]{elem: f(n.elem)}
	for l, c := range n.children {
		if fc := filterMapNode(c, f); fc != nil {
			if out.children == nil {
				out.children = map[Label]*node[E]{}
			}
			out.children[l] = fc
		}
	}
	return prune(out)
}

// Walk calls visit once for every node t stores an element at (including
// bottom-element nodes kept alive only because a descendant is
// non-bottom), in preorder, passing the path from the root to that node.
func (t Tree[E]) Walk(visit func(path Path, elem E)) {
	walkNode(t.root, nil, visit)
}

func walkNode[E lattice.Element[E]](n *node[E], path Path, visit func(path Path, elem E)) {
	if n == nil {
		return
	}
	visit(path, n.elem)
	for l, c := range n.children {
		walkNode(c, append(append(Path{}, path...), l), visit)
	}
}

// AssignTreePath places sub into base at path, replacing anything below
// path. It is the free-function spelling of Assign used by the transfer
// functions, matching the assign_tree_path(path, tree, subtree)
// naming.
func AssignTreePath[E lattice.Element[E]](path Path, base, sub Tree[E]) Tree[E] {
	return base.Assign(path, sub)
}
