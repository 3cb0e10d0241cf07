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

// Package typeresolve declares the type-resolution store collaborator
//: an external service, owned by the surrounding analyzer, that
// can answer "what is the static type of this name at this program
// point?" It is consulted only by method-call callee resolution, which
// the forward and backward transfer functions share.
package typeresolve

// Annotation is the resolved static type of one access at one program
// point. Primitive is set when the type is a nominal primitive type; an
// empty Primitive means the type did not resolve to one (e.g. it is a
// protocol, a union, or otherwise not a concrete callable target).
type Annotation struct {
	Primitive string
}

// ProgramPoint associates a program point (identified by Key, a value
// stable across the function's statements, e.g. "block3:stmt1") with the
// static types known to hold there, keyed by the accessed name.
type ProgramPoint struct {
	Key   string
	Types map[string]Annotation
}

// Store answers type-resolution queries for a named function.
type Store interface {
	// GetTypes returns the sequence of program points recorded for
	// functionName, or (nil, false) if the function is unknown to the
	// store.
	GetTypes(functionName string) ([]ProgramPoint, bool)
}

// Resolve looks up the Annotation for accessName at programPointKey
// within functionName's recorded program points. It returns
// (Annotation{}, false) if the function, the program point, or the name
// is not recorded — callers treat this as "no target".
func Resolve(store Store, functionName, programPointKey, accessName string) (Annotation, bool) {
	if store == nil {
		return Annotation{}, false
	}
	points, ok := store.GetTypes(functionName)
	if !ok {
		return Annotation{}, false
	}
	for _, pp := range points {
		if pp.Key != programPointKey {
			continue
		}
		ann, ok := pp.Types[accessName]
		return ann, ok
	}
	return Annotation{}, false
}
