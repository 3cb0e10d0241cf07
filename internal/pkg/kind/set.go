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

package kind

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/tools/container/intsets"
)

// Ordinal is satisfied by Source and Sink: any closed kind vocabulary
// whose members are small dense integers.
type Ordinal interface {
	~int
}

// Set is a finite set of kinds of a single Ordinal type (Source or Sink,
// never both). It is the taint element (TaintSet) : bottom is
// the empty set, join is union, less-or-equal is subset.
//
// Set is backed by intsets.Sparse, the compact integer set x/tools itself
// relies on; kind ordinals are exactly the small dense integers that type
// is built for.
type Set[K Ordinal] struct {
	bits intsets.Sparse
}

// Empty returns the bottom element.
func Empty[K Ordinal]() Set[K] {
	return Set[K]{}
}

// Singleton returns the set containing exactly k.
func Singleton[K Ordinal](k K) Set[K] {
	var s Set[K]
	s.bits.Insert(int(k))
	return s
}

func (s Set[K]) clone() Set[K] {
	var out Set[K]
	out.bits.Copy(&s.bits)
	return out
}

// Add returns a new set containing k and every element of s.
func (s Set[K]) Add(k K) Set[K] {
	out := s.clone()
	out.bits.Insert(int(k))
	return out
}

// Has reports whether k is a member of s.
func (s Set[K]) Has(k K) bool {
	return s.bits.Has(int(k))
}

// IsBottom reports whether s is the empty set.
func (s Set[K]) IsBottom() bool {
	return s.bits.IsEmpty()
}

// Join returns the union of s and other.
func (s Set[K]) Join(other Set[K]) Set[K] {
	out := s.clone()
	out.bits.UnionWith(&other.bits)
	return out
}

// LessOrEqual reports whether s is a subset of other.
func (s Set[K]) LessOrEqual(other Set[K]) bool {
	if s.bits.Len() > other.bits.Len() {
		return false
	}
	var diff intsets.Sparse
	diff.Copy(&s.bits)
	diff.DifferenceWith(&other.bits)
	return diff.IsEmpty()
}

// Filter returns the subset of s for which pred holds.
func (s Set[K]) Filter(pred func(K) bool) Set[K] {
	var out Set[K]
	for _, x := range s.bits.AppendTo(nil) {
		if pred(K(x)) {
			out.bits.Insert(x)
		}
	}
	return out
}

// Elements returns the members of s in ascending ordinal order.
func (s Set[K]) Elements() []K {
	xs := s.bits.AppendTo(nil)
	out := make([]K, len(xs))
	for i, x := range xs {
		out[i] = K(x)
	}
	return out
}

// Equal reports whether s and other contain exactly the same kinds. It
// lets go-cmp compare Sets structurally without exporting the backing
// intsets.Sparse.
func (s Set[K]) Equal(other Set[K]) bool {
	return s.bits.Equals(&other.bits)
}

// String renders the set as "{K1, K2}" for debugging and test failure
// messages.
func (s Set[K]) String() string {
	elems := s.Elements()
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = fmt.Sprint(e)
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}
