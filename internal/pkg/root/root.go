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

// Package root defines the three shapes an analysis State can be keyed
// by. Roots partition the state: no cross-root aliasing is modeled.
package root

import "fmt"

// Kind distinguishes the three root shapes.
type Kind int

const (
	// LocalResultKind is the function's return value.
	LocalResultKind Kind = iota
	// ParameterKind is a formal parameter, identified by position.
	ParameterKind
	// VariableKind is a local variable, identified by name.
	VariableKind
)

// Root is LocalResult | Parameter{position} | Variable{name}.
type Root struct {
	kind     Kind
	position uint32
	name     string
}

// LocalResult is the root denoting the function's return value.
var LocalResult = Root{kind: LocalResultKind}

// Parameter constructs the root for the formal parameter at position.
func Parameter(position uint32) Root {
	return Root{kind: ParameterKind, position: position}
}

// Variable constructs the root for a named local variable.
func Variable(name string) Root {
	return Root{kind: VariableKind, name: name}
}

// Kind reports which of the three root shapes r is.
func (r Root) Kind() Kind {
	return r.kind
}

// Position is valid only when Kind() == ParameterKind.
func (r Root) Position() uint32 {
	return r.position
}

// Name is valid only when Kind() == VariableKind.
func (r Root) Name() string {
	return r.name
}

func (r Root) String() string {
	switch r.kind {
	case LocalResultKind:
		return "LocalResult"
	case ParameterKind:
		return fmt.Sprintf("Parameter{%d}", r.position)
	case VariableKind:
		return fmt.Sprintf("Variable(%s)", r.name)
	default:
		return "UnknownRoot"
	}
}
