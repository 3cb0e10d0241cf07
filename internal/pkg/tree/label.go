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

// Package tree implements the access-path tree (TaintTree): a prefix tree
// whose nodes each carry a taint element, with the taint at a path being
// the join of every node's element along that path from the root.
package tree

import "fmt"

type labelKind int

const (
	fieldLabel labelKind = iota
	anyLabel
)

// A Label names one step of an access path: either a named field access
// or the wildcard Any. Any is reserved for a future iteration
// and is never produced by access-path extraction in this core.
type Label struct {
	kind labelKind
	name string
}

// Field constructs the label for an attribute access ".name".
func Field(name string) Label {
	return Label{kind: fieldLabel, name: name}
}

// Any is the wildcard label. It is not materialized by this core.
var Any = Label{kind: anyLabel}

// Name returns the field name, or "" for Any.
func (l Label) Name() string {
	return l.name
}

// IsAny reports whether l is the wildcard label.
func (l Label) IsAny() bool {
	return l.kind == anyLabel
}

func (l Label) String() string {
	if l.kind == anyLabel {
		return "*"
	}
	return fmt.Sprintf(".%s", l.name)
}

// Path is an ordered sequence of labels denoting a syntactic location
// relative to a root, e.g. x.f.g is the path [Field("f"), Field("g")]
// relative to root x.
type Path []Label

func (p Path) String() string {
	s := ""
	for _, l := range p {
		s += l.String()
	}
	return s
}
