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

package fixpoint

import (
	"context"
	"testing"

	"github.com/google/go-taint-model/internal/pkg/callable"
	"github.com/google/go-taint-model/internal/pkg/kind"
	"github.com/google/go-taint-model/internal/pkg/lang"
	"github.com/google/go-taint-model/internal/pkg/model"
	"github.com/google/go-taint-model/internal/pkg/root"
	"github.com/google/go-taint-model/internal/pkg/transfer"
	"github.com/google/go-taint-model/internal/pkg/tree"
)

// block is a hand-wired lang.Block for tests: no external CFG builder is
// available in this module, so tests construct small graphs directly.
type block struct {
	id    int
	stmts []lang.Statement
	preds []*block
	succs []*block
}

func (b *block) ID() int                      { return b.id }
func (b *block) Statements() []lang.Statement { return b.stmts }

func (b *block) Predecessors() []lang.Block {
	out := make([]lang.Block, len(b.preds))
	for i, p := range b.preds {
		out[i] = p
	}
	return out
}

func (b *block) Successors() []lang.Block {
	out := make([]lang.Block, len(b.succs))
	for i, s := range b.succs {
		out[i] = s
	}
	return out
}

type fakeCFG struct {
	blocks      []*block
	entry, exit *block
}

func (g *fakeCFG) Blocks() []lang.Block {
	out := make([]lang.Block, len(g.blocks))
	for i, b := range g.blocks {
		out[i] = b
	}
	return out
}
func (g *fakeCFG) Entry() lang.Block { return g.entry }
func (g *fakeCFG) Exit() lang.Block  { return g.exit }

// linearCFG builds a single-block straight-line graph.
func linearCFG(stmts []lang.Statement) *fakeCFG {
	b := &block{id: 0, stmts: stmts}
	return &fakeCFG{blocks: []*block{b}, entry: b, exit: b}
}

// branchingCFG builds entry -> {left, right} -> exit, with stmts split
// per block by position in the slice.
func branchingCFG(entryStmts, leftStmts, rightStmts, exitStmts []lang.Statement) *fakeCFG {
	entry := &block{id: 0, stmts: entryStmts}
	left := &block{id: 1, stmts: leftStmts}
	right := &block{id: 2, stmts: rightStmts}
	exit := &block{id: 3, stmts: exitStmts}
	entry.succs = []*block{left, right}
	left.preds = []*block{entry}
	right.preds = []*block{entry}
	left.succs = []*block{exit}
	right.succs = []*block{exit}
	exit.preds = []*block{left, right}
	return &fakeCFG{blocks: []*block{entry, left, right, exit}, entry: entry, exit: exit}
}

type fakeModels map[callable.Callable]model.Summary

func (f fakeModels) GetModel(c callable.Callable) (model.Summary, bool) {
	s, ok := f[c]
	return s, ok
}

func TestRunForwardUntaintedChainYieldsNoTaint(t *testing.T) {
	stmts := []lang.Statement{
		lang.Assign{Target: lang.Identifier{Name: "x"}, Value: lang.Identifier{Name: "untainted"}},
		lang.Return{Value: lang.Identifier{Name: "x"}},
	}
	def := lang.Definition{Name: "f", Graph: linearCFG(stmts)}

	fwd, err := RunForward(context.Background(), def, transfer.Config{}, Params{})
	if err != nil {
		t.Fatalf("RunForward returned error: %v", err)
	}
	if !fwd.SourceTaint.IsEmptyTree() {
		t.Errorf("RunForward on an untainted chain should yield no source taint, got %v", fwd.SourceTaint)
	}
}

func TestRunForwardPropagatesKnownSourceCallToReturn(t *testing.T) {
	source := callable.FromQualifiedName("source")
	models := fakeModels{source: {Forward: model.Forward{SourceTaint: tree.MakeLeaf(kind.Singleton(kind.TestSource))}}}

	stmts := []lang.Statement{
		lang.Assign{Target: lang.Identifier{Name: "x"}, Value: lang.Call{Callee: lang.Identifier{Name: "source"}}},
		lang.Return{Value: lang.Identifier{Name: "x"}},
	}
	def := lang.Definition{Name: "f", Graph: linearCFG(stmts)}

	fwd, err := RunForward(context.Background(), def, transfer.Config{Models: models}, Params{})
	if err != nil {
		t.Fatalf("RunForward returned error: %v", err)
	}
	if !fwd.SourceTaint.Elem().Has(kind.TestSource) {
		t.Errorf("RunForward should propagate a known source call's taint to the return, got %v", fwd.SourceTaint.Elem())
	}
}

func TestRunForwardJoinsAcrossBranches(t *testing.T) {
	g := branchingCFG(
		nil,
		[]lang.Statement{lang.Assign{Target: lang.Identifier{Name: "result"}, Value: lang.Call{Callee: lang.Identifier{Name: "leftSource"}}}},
		[]lang.Statement{lang.Assign{Target: lang.Identifier{Name: "result"}, Value: lang.Call{Callee: lang.Identifier{Name: "rightSource"}}}},
		[]lang.Statement{lang.Return{Value: lang.Identifier{Name: "result"}}},
	)
	models := fakeModels{
		callable.FromQualifiedName("leftSource"):  {Forward: model.Forward{SourceTaint: tree.MakeLeaf(kind.Singleton(kind.TestSource))}},
		callable.FromQualifiedName("rightSource"): {Forward: model.Forward{SourceTaint: tree.MakeLeaf(kind.Singleton(kind.UserControlled))}},
	}
	def := lang.Definition{Name: "f", Graph: g}

	fwd, err := RunForward(context.Background(), def, transfer.Config{Models: models}, Params{})
	if err != nil {
		t.Fatalf("RunForward returned error: %v", err)
	}
	elem := fwd.SourceTaint.Elem()
	if !elem.Has(kind.TestSource) || !elem.Has(kind.UserControlled) {
		t.Errorf("RunForward should join taint flowing in from both branches, got %v", elem)
	}
}

func TestRunBackwardParameterReachesTestSink(t *testing.T) {
	stmts := []lang.Statement{
		lang.ExpressionStmt{Value: lang.Call{
			Callee: lang.Identifier{Name: "__testSink"},
			Args:   []lang.Expression{lang.Identifier{Name: "p"}},
		}},
	}
	def := lang.Definition{Name: "f", Params: []lang.Parameter{{Name: "p"}}, Graph: linearCFG(stmts)}

	back, err := RunBackward(context.Background(), def, transfer.Config{}, Params{})
	if err != nil {
		t.Fatalf("RunBackward returned error: %v", err)
	}
	if !back.SinkTaint.Get(root.Parameter(0)).Elem().Has(kind.TestSink) {
		t.Errorf("RunBackward should attribute TestSink to parameter 0, got %v", back.SinkTaint.Get(root.Parameter(0)).Elem())
	}
}

func TestRunBackwardDirectReturnIsTito(t *testing.T) {
	stmts := []lang.Statement{
		lang.Return{Value: lang.Identifier{Name: "p"}},
	}
	def := lang.Definition{Name: "f", Params: []lang.Parameter{{Name: "p"}}, Graph: linearCFG(stmts)}

	back, err := RunBackward(context.Background(), def, transfer.Config{}, Params{})
	if err != nil {
		t.Fatalf("RunBackward returned error: %v", err)
	}
	if !back.TaintInTaintOut.Get(root.Parameter(0)).Elem().Has(kind.LocalReturn) {
		t.Error("returning a parameter directly should mark it as TITO")
	}
}

func TestRunBackwardFieldTito(t *testing.T) {
	stmts := []lang.Statement{
		lang.Return{Value: lang.Access{Receiver: lang.Identifier{Name: "p"}, Member: "f"}},
	}
	def := lang.Definition{Name: "f", Params: []lang.Parameter{{Name: "p"}}, Graph: linearCFG(stmts)}

	back, err := RunBackward(context.Background(), def, transfer.Config{}, Params{})
	if err != nil {
		t.Fatalf("RunBackward returned error: %v", err)
	}
	atField := back.TaintInTaintOut.Get(root.Parameter(0)).Read(tree.Path{tree.Field("f")})
	if !atField.Elem().Has(kind.LocalReturn) {
		t.Error("returning p.f should mark parameter 0's field f as TITO, not the whole parameter")
	}
}

func TestRunBackwardRCEThroughFieldAccess(t *testing.T) {
	stmts := []lang.Statement{
		lang.ExpressionStmt{Value: lang.Call{
			Callee: lang.Identifier{Name: "__testRCESink"},
			Args:   []lang.Expression{lang.Access{Receiver: lang.Identifier{Name: "p"}, Member: "f"}},
		}},
	}
	def := lang.Definition{Name: "f", Params: []lang.Parameter{{Name: "p"}}, Graph: linearCFG(stmts)}

	back, err := RunBackward(context.Background(), def, transfer.Config{}, Params{})
	if err != nil {
		t.Fatalf("RunBackward returned error: %v", err)
	}
	atField := back.SinkTaint.Get(root.Parameter(0)).Read(tree.Path{tree.Field("f")})
	if !atField.Elem().Has(kind.RemoteCodeExecution) {
		t.Errorf("RCE sink reached through p.f should attribute RemoteCodeExecution to parameter 0's field f, got %v", atField.Elem())
	}
}

func TestRunBackwardUnknownCalleePropagatesResultTaintToArguments(t *testing.T) {
	stmts := []lang.Statement{
		lang.Assign{Target: lang.Identifier{Name: "y"}, Value: lang.Call{
			Callee: lang.Identifier{Name: "unknownFunc"},
			Args:   []lang.Expression{lang.Identifier{Name: "p"}},
		}},
		lang.ExpressionStmt{Value: lang.Call{
			Callee: lang.Identifier{Name: "__testSink"},
			Args:   []lang.Expression{lang.Identifier{Name: "y"}},
		}},
	}
	def := lang.Definition{Name: "f", Params: []lang.Parameter{{Name: "p"}}, Graph: linearCFG(stmts)}

	back, err := RunBackward(context.Background(), def, transfer.Config{}, Params{})
	if err != nil {
		t.Fatalf("RunBackward returned error: %v", err)
	}
	// unknownFunc has no model: its result's sink taint (TestSink, from
	// the later call to __testSink(y)) is conservatively assumed to flow
	// from every one of its arguments.
	if got := back.SinkTaint.Get(root.Parameter(0)).Elem(); !got.Has(kind.TestSink) {
		t.Errorf("an unknown callee should conservatively propagate its result's sink taint to its arguments, got %v", got)
	}
}

func TestRunBackwardUnknownCalleeDiscardedResultDoesNotTaintArguments(t *testing.T) {
	stmts := []lang.Statement{
		lang.ExpressionStmt{Value: lang.Call{
			Callee: lang.Identifier{Name: "unknownFunc"},
			Args:   []lang.Expression{lang.Identifier{Name: "p"}},
		}},
	}
	def := lang.Definition{Name: "f", Params: []lang.Parameter{{Name: "p"}}, Graph: linearCFG(stmts)}

	back, err := RunBackward(context.Background(), def, transfer.Config{}, Params{})
	if err != nil {
		t.Fatalf("RunBackward returned error: %v", err)
	}
	if got := back.SinkTaint.Get(root.Parameter(0)).Elem(); !got.IsBottom() {
		t.Errorf("an unknown callee whose result is discarded should not taint its arguments, got %v", got)
	}
}

func TestRunForwardSurfacesTransferErrors(t *testing.T) {
	stmts := []lang.Statement{lang.Define{Name: "nested"}}
	def := lang.Definition{Name: "f", Graph: linearCFG(stmts)}

	_, err := RunForward(context.Background(), def, transfer.Config{}, Params{})
	if err == nil {
		t.Error("RunForward should surface the nested-define error from the transfer function")
	}
}

func TestRunForwardRespectsCancellation(t *testing.T) {
	stmts := []lang.Statement{lang.Return{Value: lang.Identifier{Name: "x"}}}
	def := lang.Definition{Name: "f", Graph: linearCFG(stmts)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunForward(ctx, def, transfer.Config{}, Params{})
	if err == nil {
		t.Error("RunForward should return the context's error once cancelled")
	}
}

func TestParamsDefaults(t *testing.T) {
	var p Params
	if p.threshold() != 3 {
		t.Errorf("zero-value Params.threshold() = %d, want 3", p.threshold())
	}
	if p.maxDepth() != 4 {
		t.Errorf("zero-value Params.maxDepth() = %d, want 4", p.maxDepth())
	}
}
