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

// Package model projects a function's fixed-point analysis state into
// the summary consumed by callers of that function (component G).
package model

import (
	"github.com/google/uuid"

	"github.com/google/go-taint-model/internal/pkg/kind"
	"github.com/google/go-taint-model/internal/pkg/lang"
	"github.com/google/go-taint-model/internal/pkg/root"
	"github.com/google/go-taint-model/internal/pkg/state"
	"github.com/google/go-taint-model/internal/pkg/taint"
)

// Forward is the source half of a function's model: the taint sources
// reaching the function's return value.
type Forward struct {
	SourceTaint taint.ForwardTree
}

// Backward is the sink/TITO half of a function's model, one entry per
// formal parameter position.
type Backward struct {
	// SinkTaint maps Parameter{i} to the sinks reachable from argument i.
	SinkTaint state.State[taint.Backward]
	// TaintInTaintOut maps Parameter{i} to the parts of argument i that
	// flow through to the function's return value.
	TaintInTaintOut state.State[taint.Backward]
}

// Summary is a function's complete model: both halves, plus RunID, the
// identity of the analysis run that produced it, so a caller correlating
// many per-function runs can distinguish distinct passes over the same
// function in logs. RunForward and RunBackward return only the two
// halves; nothing in this module sets RunID.
type Summary struct {
	Forward  Forward
	Backward Backward
	RunID    uuid.UUID
}

// ExtractForward projects the exit state's LocalResult tree onto the
// function's forward model, verbatim.
func ExtractForward(exitState state.State[taint.Forward]) Forward {
	return Forward{SourceTaint: exitState.Get(root.LocalResult)}
}

func isLocalReturn(k kind.Sink) bool { return k == kind.LocalReturn }

// ExtractBackward projects, for each formal parameter, the entry state's
// tree at Variable(name), split kind by kind at every node: LocalReturn
// goes to TaintInTaintOut, every other sink kind to SinkTaint.
func ExtractBackward(entryState state.State[taint.Backward], params []lang.Parameter) Backward {
	sinkTaint := state.Empty[taint.Backward]()
	tito := state.Empty[taint.Backward]()
	for i, p := range params {
		tree := entryState.Get(root.Variable(p.Name))

		titoTree := tree.FilterMap(func(s taint.Backward) taint.Backward {
			return s.Filter(isLocalReturn)
		})
		if !titoTree.IsEmptyTree() {
			tito = tito.Assign(root.Parameter(uint32(i)), nil, titoTree)
		}

		sinkTree := tree.FilterMap(func(s taint.Backward) taint.Backward {
			return s.Filter(func(k kind.Sink) bool { return !isLocalReturn(k) })
		})
		if !sinkTree.IsEmptyTree() {
			sinkTaint = sinkTaint.Assign(root.Parameter(uint32(i)), nil, sinkTree)
		}
	}
	return Backward{SinkTaint: sinkTaint, TaintInTaintOut: tito}
}
