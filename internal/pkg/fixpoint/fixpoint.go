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

// Package fixpoint wires a TaintState and the transfer functions of
// package transfer into a generic CFG fixed-point computation (component
// F): RunForward iterates from the entry block to the exit, RunBackward
// from the exit to the entry, each converging by join at block merges and
// widen after a bounded number of revisits per block.
package fixpoint

import (
	"context"
	"fmt"

	"github.com/eapache/queue"
	"golang.org/x/xerrors"

	"github.com/google/go-taint-model/internal/pkg/kind"
	"github.com/google/go-taint-model/internal/pkg/lang"
	"github.com/google/go-taint-model/internal/pkg/lattice"
	"github.com/google/go-taint-model/internal/pkg/model"
	"github.com/google/go-taint-model/internal/pkg/root"
	"github.com/google/go-taint-model/internal/pkg/state"
	"github.com/google/go-taint-model/internal/pkg/taint"
	"github.com/google/go-taint-model/internal/pkg/transfer"
	"github.com/google/go-taint-model/internal/pkg/tree"
)

// ErrWrongDirection is returned when the seed map handed to the
// fixed-point loop does not match its direction: a forward run takes no
// seed (nil), a backward run takes a non-nil seed map.
var ErrWrongDirection = fmt.Errorf("fixpoint: seed state does not match requested direction")

// Params configures one fixed-point run: the widening threshold K and the
// maximum tree depth D a widened tree is bounded to.
// Zero values fall back to the suggested defaults, K=3, D=4.
type Params struct {
	WidenThreshold int
	MaxTreeDepth   int
}

func (p Params) threshold() int {
	if p.WidenThreshold > 0 {
		return p.WidenThreshold
	}
	return 3
}

func (p Params) maxDepth() int {
	if p.MaxTreeDepth > 0 {
		return p.MaxTreeDepth
	}
	return 4
}

// direction selects which neighbor relation feeds a block's input state
// and in what order a block's own statements are folded.
type direction int

const (
	forward direction = iota
	backward
)

func applyStatements[E lattice.Element[E]](
	dir direction,
	stmts []lang.Statement,
	blockID int,
	in state.State[E],
	apply func(pp transfer.ProgramPoint, stmt lang.Statement, s state.State[E]) (state.State[E], error),
) (state.State[E], error) {
	s := in
	order := make([]int, len(stmts))
	for i := range stmts {
		order[i] = i
	}
	if dir == backward {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	for _, idx := range order {
		pp := transfer.ProgramPoint{BlockID: blockID, StmtIndex: idx}
		next, err := apply(pp, stmts[idx], s)
		if err != nil {
			return s, xerrors.Errorf("block %d, statement %d: %w", blockID, idx, err)
		}
		s = next
	}
	return s, nil
}

// inputNeighborsOf returns the blocks whose output feeds b's input: b's
// predecessors when propagating forward, its successors when propagating
// backward.
func inputNeighborsOf(dir direction, b lang.Block) []lang.Block {
	if dir == forward {
		return b.Predecessors()
	}
	return b.Successors()
}

// dependentsOf returns the blocks that must be re-enqueued when b's
// output changes: the mirror image of inputNeighborsOf.
func dependentsOf(dir direction, b lang.Block) []lang.Block {
	if dir == forward {
		return b.Successors()
	}
	return b.Predecessors()
}

// runGeneric is the direction-agnostic worklist fixed-point loop shared
// by RunForward and RunBackward. It is a standard dataflow worklist: seed
// the queue with every block, recompute a dequeued block's output from
// the join of its live input-neighbors' outputs, and — if that output
// changed — enqueue the block's dependents. A block is widened once it
// has been recomputed WidenThreshold times.
//
// Processing is capped at a number of dequeues proportional to the
// square of the block count — the same bound a CFG fixed-point loop
// needs in any language, to stop a non-monotone transfer function from
// looping forever.
func runGeneric[E lattice.Element[E]](
	ctx context.Context,
	dir direction,
	cfg lang.CFG,
	seed map[int]state.State[E],
	apply func(pp transfer.ProgramPoint, stmt lang.Statement, s state.State[E]) (state.State[E], error),
	params Params,
) (map[int]state.State[E], error) {
	if (dir == forward) != (seed == nil) {
		return nil, ErrWrongDirection
	}

	blocks := cfg.Blocks()
	byID := make(map[int]lang.Block, len(blocks))
	out := make(map[int]state.State[E], len(blocks))
	revisits := make(map[int]int, len(blocks))
	for _, b := range blocks {
		byID[b.ID()] = b
		if s, ok := seed[b.ID()]; ok {
			out[b.ID()] = s
		} else {
			out[b.ID()] = state.Empty[E]()
		}
	}

	q := queue.New()
	queued := make(map[int]bool, len(blocks))
	for _, b := range blocks {
		q.Add(b)
		queued[b.ID()] = true
	}

	maxDequeues := len(blocks)*len(blocks)*2 + 1
	for dequeues := 0; q.Length() > 0; dequeues++ {
		if dequeues > maxDequeues {
			break
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}

		b := q.Remove().(lang.Block)
		queued[b.ID()] = false

		in := state.Empty[E]()
		for _, n := range inputNeighborsOf(dir, b) {
			in = in.Join(out[n.ID()])
		}
		if s, ok := seed[b.ID()]; ok {
			in = in.Join(s)
		}

		next, err := applyStatements(dir, b.Statements(), b.ID(), in, apply)
		if err != nil {
			return out, err
		}

		prev := out[b.ID()]
		revisits[b.ID()]++
		merged := prev.Widen(next, revisits[b.ID()], params.threshold(), params.maxDepth())
		if merged.Equal(prev) {
			continue
		}
		out[b.ID()] = merged

		for _, d := range dependentsOf(dir, b) {
			if !queued[d.ID()] {
				q.Add(byID[d.ID()])
				queued[d.ID()] = true
			}
		}
	}
	return out, nil
}

// RunForward computes def's forward (source) model: the taint sources
// reaching the function's return value.
func RunForward(ctx context.Context, def lang.Definition, cfg transfer.Config, params Params) (model.Forward, error) {
	apply := func(pp transfer.ProgramPoint, stmt lang.Statement, s state.State[taint.Forward]) (state.State[taint.Forward], error) {
		return transfer.ForwardStatement(cfg, pp, stmt, s)
	}
	out, err := runGeneric[taint.Forward](ctx, forward, def.Graph, nil, apply, params)
	if err != nil {
		return model.Forward{}, err
	}
	exit := def.Graph.Exit()
	return model.ExtractForward(out[exit.ID()]), nil
}

// RunBackward computes def's backward (sink/TITO) model: for each formal
// parameter, the sinks it reaches and the parts of it that flow through
// to the return value.
func RunBackward(ctx context.Context, def lang.Definition, cfg transfer.Config, params Params) (model.Backward, error) {
	apply := func(pp transfer.ProgramPoint, stmt lang.Statement, s state.State[taint.Backward]) (state.State[taint.Backward], error) {
		return transfer.BackwardStatement(cfg, pp, stmt, s)
	}
	seedTree := tree.MakeLeaf(kind.Singleton(kind.LocalReturn))
	seedState := state.Empty[taint.Backward]().Assign(root.LocalResult, nil, seedTree)
	exit := def.Graph.Exit()
	seed := map[int]state.State[taint.Backward]{exit.ID(): seedState}

	out, err := runGeneric[taint.Backward](ctx, backward, def.Graph, seed, apply, params)
	if err != nil {
		return model.Backward{}, err
	}
	entry := def.Graph.Entry()
	return model.ExtractBackward(out[entry.ID()], def.Params), nil
}
