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

// Package callable defines the opaque key used to look up a function's
// model in the model store.
package callable

import "strings"

// Callable is an opaque identity constructed from a fully-qualified
// access path, e.g. "mymodule.MyClass.method". Two Callables are equal
// iff their qualified names are equal, so Callable can key a map.
type Callable struct {
	qualifiedName string
}

// Of constructs a Callable from a dotted sequence of name components,
// e.g. Of("mymodule", "MyClass", "method").
func Of(components ...string) Callable {
	return Callable{qualifiedName: strings.Join(components, ".")}
}

// FromQualifiedName constructs a Callable directly from an
// already-dotted fully-qualified name.
func FromQualifiedName(name string) Callable {
	return Callable{qualifiedName: name}
}

// String returns the fully-qualified name.
func (c Callable) String() string {
	return c.qualifiedName
}
