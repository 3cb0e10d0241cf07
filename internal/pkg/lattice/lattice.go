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

// Package lattice declares the constraint shared by every taint element
// used as the type parameter of TaintTree and State: a join-semilattice
// with a decidable order and a bottom element.
package lattice

// Element is satisfied by any taint element E that can be joined with
// itself, ordered, and tested for bottom-ness. kind.Set[Source] and
// kind.Set[Sink] both satisfy it.
type Element[E any] interface {
	Join(E) E
	LessOrEqual(E) bool
	IsBottom() bool
}
