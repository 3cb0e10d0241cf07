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

package root

import "testing"

func TestRootsWithSameShapeAreEqual(t *testing.T) {
	if Variable("x") != Variable("x") {
		t.Error("Variable(\"x\") != Variable(\"x\"), want equal so Root can key a map")
	}
	if Parameter(0) != Parameter(0) {
		t.Error("Parameter(0) != Parameter(0)")
	}
	if LocalResult != LocalResult {
		t.Error("LocalResult != LocalResult")
	}
}

func TestRootsWithDifferentShapesAreDistinct(t *testing.T) {
	if Variable("x") == Parameter(0) {
		t.Error("Variable(\"x\") == Parameter(0), want distinct roots")
	}
	if Parameter(0) == Parameter(1) {
		t.Error("Parameter(0) == Parameter(1), want positions to distinguish roots")
	}
	if Variable("x") == LocalResult {
		t.Error("Variable(\"x\") == LocalResult, want distinct")
	}
}

func TestKindReportsShape(t *testing.T) {
	cases := []struct {
		name string
		r    Root
		want Kind
	}{
		{"local result", LocalResult, LocalResultKind},
		{"parameter", Parameter(2), ParameterKind},
		{"variable", Variable("y"), VariableKind},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.r.Kind(); got != c.want {
				t.Errorf("Kind() = %v, want %v", got, c.want)
			}
		})
	}
}
