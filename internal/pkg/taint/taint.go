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

// Package taint names the two concrete taint domains used throughout the
// analysis: forward over sources, backward over sinks.
package taint

import (
	"github.com/google/go-taint-model/internal/pkg/kind"
	"github.com/google/go-taint-model/internal/pkg/tree"
)

// Forward is the taint element used by the source-propagation analysis:
// the set of sources that may reach a location.
type Forward = kind.Set[kind.Source]

// Backward is the taint element used by the sink-propagation analysis:
// the set of sinks a location may reach, including the LocalReturn
// sentinel used for TITO extraction.
type Backward = kind.Set[kind.Sink]

// ForwardTree is an access-path tree of Forward elements.
type ForwardTree = tree.Tree[Forward]

// BackwardTree is an access-path tree of Backward elements.
type BackwardTree = tree.Tree[Backward]
