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

// Package transfer implements the statement- and expression-level
// updates to the analysis state (component E): one family for the
// forward (source-propagation) direction, one for the backward
// (sink/TITO-propagation) direction. Both share the same recursion
// structure over lang.Expression/lang.Statement but differ in what they
// accumulate and in which updates are strong versus weak.
package transfer

import (
	"fmt"
	"os"

	"github.com/google/go-taint-model/internal/pkg/accesspath"
	"github.com/google/go-taint-model/internal/pkg/callable"
	"github.com/google/go-taint-model/internal/pkg/kind"
	"github.com/google/go-taint-model/internal/pkg/lang"
	"github.com/google/go-taint-model/internal/pkg/modelstore"
	"github.com/google/go-taint-model/internal/pkg/root"
	"github.com/google/go-taint-model/internal/pkg/state"
	"github.com/google/go-taint-model/internal/pkg/taint"
	"github.com/google/go-taint-model/internal/pkg/tree"
	"github.com/google/go-taint-model/internal/pkg/typeresolve"
)

// ErrNestedDefine is the fatal error surfaced when a nested function
// definition is encountered while analyzing a statement: the
// core does not support analyzing nested defines in the current
// iteration, so analysis of the enclosing function aborts.
var ErrNestedDefine = fmt.Errorf("nested function definitions are not supported")

const (
	defaultTestSinkName    = "__testSink"
	defaultTestRCESinkName = "__testRCESink"
)

// Config carries the pieces of analysis context a transfer function needs
// beyond the state it is folding over: which function is being analyzed
// (for type-resolution queries), the two external lookup collaborators,
// and the configurable intrinsic sink call names.
type Config struct {
	FunctionName string
	Types        typeresolve.Store
	Models       modelstore.Store

	// TestSinkName and TestRCESinkName override the built-in intrinsic
	// names; left empty they default to "__testSink"/"__testRCESink".
	TestSinkName    string
	TestRCESinkName string
}

func (c Config) testSinkName() string {
	if c.TestSinkName != "" {
		return c.TestSinkName
	}
	return defaultTestSinkName
}

func (c Config) testRCESinkName() string {
	if c.TestRCESinkName != "" {
		return c.TestRCESinkName
	}
	return defaultTestRCESinkName
}

// ProgramPoint identifies the statement currently being analyzed, for
// type-resolution queries.
type ProgramPoint struct {
	BlockID   int
	StmtIndex int
}

// Key is the stable string the type-resolution store indexes program
// points by.
func (p ProgramPoint) Key() string {
	return fmt.Sprintf("block%d:stmt%d", p.BlockID, p.StmtIndex)
}

// resolveCallee implements the general callee-resolution rule shared by
// both directions: a bare identifier names a callable
// directly; a single-level method access resolves the receiver's static
// type through the external type-resolution store; anything else yields
// no target.
func resolveCallee(cfg Config, pp ProgramPoint, callee lang.Expression) (callable.Callable, bool) {
	switch v := callee.(type) {
	case lang.Identifier:
		return callable.FromQualifiedName(v.Name), true
	case lang.Access:
		recv, ok := v.Receiver.(lang.Identifier)
		if !ok {
			return callable.Callable{}, false
		}
		ann, ok := typeresolve.Resolve(cfg.Types, cfg.FunctionName, pp.Key(), recv.Name)
		if !ok || ann.Primitive == "" {
			return callable.Callable{}, false
		}
		return callable.Of(ann.Primitive, v.Member), true
	default:
		return callable.Callable{}, false
	}
}

// intrinsicSinkKind reports the sink kind of a backward-mode intrinsic
// call by its callee name, if any.
func intrinsicSinkKind(cfg Config, name string) (kind.Sink, bool) {
	switch name {
	case cfg.testSinkName():
		return kind.TestSink, true
	case cfg.testRCESinkName():
		return kind.RemoteCodeExecution, true
	}
	return 0, false
}

// AnalyzeExpressionForward computes the taint reaching the value e
// evaluates to, given the current state.
func AnalyzeExpressionForward(cfg Config, pp ProgramPoint, e lang.Expression, s state.State[taint.Forward]) taint.ForwardTree {
	switch v := e.(type) {
	case lang.Access:
		t := AnalyzeExpressionForward(cfg, pp, v.Receiver, s)
		return tree.AssignTreePath(tree.Path{tree.Field(v.Member)}, tree.Empty[taint.Forward](), t)
	case lang.Identifier:
		return s.ReadAccessPath(root.Variable(v.Name), nil)
	case lang.Call:
		return forwardCall(cfg, pp, v, s)
	case lang.Literal, lang.Comprehension, lang.Lambda, lang.Comparison,
		lang.Await, lang.Yield, lang.Starred, lang.Ternary, lang.Tuple,
		lang.List, lang.SetLiteral, lang.Dict, lang.UnaryOp, lang.BoolOp,
		lang.ComplexOp, lang.Ellipsis:
		// Deliberate under-approximation: none of these shapes introduce
		// taint of their own in this core's current analysis.
		return tree.Empty[taint.Forward]()
	}
	panic(fmt.Sprintf("transfer: unhandled expression type %T", e))
}

// forwardCall resolves call's callee and joins the source taint it
// contributes: a known callee's model.Forward.SourceTaint verbatim, or
// the join of its arguments' own taint when no model is available. When
// the callee's model is known, its arguments are not re-analyzed.
func forwardCall(cfg Config, pp ProgramPoint, call lang.Call, s state.State[taint.Forward]) taint.ForwardTree {
	target, resolved := resolveCallee(cfg, pp, call.Callee)
	summary, known := modelstore.Lookup(cfg.Models, target, resolved)

	var result taint.ForwardTree
	if known {
		result = summary.Forward.SourceTaint
	} else {
		result = tree.Empty[taint.Forward]()
		for _, a := range call.Args {
			result = result.Join(AnalyzeExpressionForward(cfg, pp, a, s))
		}
	}

	if access, ok := call.Callee.(lang.Access); ok {
		AnalyzeExpressionForward(cfg, pp, access.Receiver, s)
	}
	return result
}

// ForwardStatement applies the forward transfer to one statement.
// Assignment targets that fail access-path extraction are dropped
// (recoverable), not an error.
func ForwardStatement(cfg Config, pp ProgramPoint, stmt lang.Statement, s state.State[taint.Forward]) (state.State[taint.Forward], error) {
	switch v := stmt.(type) {
	case lang.Assign:
		t := AnalyzeExpressionForward(cfg, pp, v.Value, s)
		ap, ok := accesspath.Of(v.Target)
		if !ok {
			fmt.Fprintf(os.Stderr, "transfer: dropping assignment at %s, target is not an access path\n", pp.Key())
			return s, nil
		}
		return s.Assign(ap.Root, ap.Path, t), nil
	case lang.Return:
		if v.Value == nil {
			return s, nil
		}
		t := AnalyzeExpressionForward(cfg, pp, v.Value, s)
		return s.Assign(root.LocalResult, nil, t), nil
	case lang.Define:
		return s, fmt.Errorf("statement at %s: %w", pp.Key(), ErrNestedDefine)
	case lang.ExpressionStmt, lang.Assert, lang.Break, lang.Class, lang.Continue,
		lang.Delete, lang.For, lang.Global, lang.If, lang.Import, lang.Nonlocal,
		lang.Pass, lang.Raise, lang.Try, lang.With, lang.While,
		lang.YieldStmt, lang.YieldFromStmt:
		// None of these shapes assign a value this core tracks.
		return s, nil
	}
	panic(fmt.Sprintf("transfer: unhandled statement type %T", stmt))
}

// AnalyzeExpressionBackward pushes incoming, the taint flowing out of e,
// down into the locations e reads from.
func AnalyzeExpressionBackward(cfg Config, pp ProgramPoint, incoming taint.BackwardTree, e lang.Expression, s state.State[taint.Backward]) state.State[taint.Backward] {
	switch v := e.(type) {
	case lang.Identifier:
		return s.AssignWeak(root.Variable(v.Name), nil, incoming)
	case lang.Access:
		wrapped := tree.AssignTreePath(tree.Path{tree.Field(v.Member)}, tree.Empty[taint.Backward](), incoming)
		return AnalyzeExpressionBackward(cfg, pp, wrapped, v.Receiver, s)
	case lang.Call:
		return backwardCall(cfg, pp, incoming, v, s)
	case lang.Literal, lang.Comprehension, lang.Lambda, lang.Comparison,
		lang.Await, lang.Yield, lang.Starred, lang.Ternary, lang.Tuple,
		lang.List, lang.SetLiteral, lang.Dict, lang.UnaryOp, lang.BoolOp,
		lang.ComplexOp, lang.Ellipsis:
		// None of these shapes name a location incoming could flow into.
		return s
	}
	panic(fmt.Sprintf("transfer: unhandled expression type %T", e))
}

// backwardCall resolves call's callee, checking the intrinsic test sinks
// first and falling back to general resolution with the model-known/
// model-unknown default policies. Arguments are walked in natural order;
// the combined state update is commutative under join.
func backwardCall(cfg Config, pp ProgramPoint, incoming taint.BackwardTree, call lang.Call, s state.State[taint.Backward]) state.State[taint.Backward] {
	if id, ok := call.Callee.(lang.Identifier); ok {
		if sinkKind, isIntrinsic := intrinsicSinkKind(cfg, id.Name); isIntrinsic {
			sinkTree := tree.MakeLeaf(kind.Singleton(sinkKind))
			for _, a := range call.Args {
				s = AnalyzeExpressionBackward(cfg, pp, sinkTree, a, s)
			}
			return s
		}
	}

	target, resolved := resolveCallee(cfg, pp, call.Callee)
	summary, known := modelstore.Lookup(cfg.Models, target, resolved)

	collapsedIncoming := incoming.Collapse().Elem()
	for i, a := range call.Args {
		argTaint := incoming
		if known {
			sinkTaint := summary.Backward.SinkTaint.Get(root.Parameter(uint32(i)))
			tito := summary.Backward.TaintInTaintOut.Get(root.Parameter(uint32(i)))
			titoCollapsed := tito.FilterMap(func(taint.Backward) taint.Backward { return collapsedIncoming })
			argTaint = sinkTaint.Join(titoCollapsed)
		}
		s = AnalyzeExpressionBackward(cfg, pp, argTaint, a, s)
	}

	if access, ok := call.Callee.(lang.Access); ok {
		s = AnalyzeExpressionBackward(cfg, pp, incoming, access.Receiver, s)
	}
	return s
}

// BackwardStatement applies the backward transfer to one statement.
func BackwardStatement(cfg Config, pp ProgramPoint, stmt lang.Statement, s state.State[taint.Backward]) (state.State[taint.Backward], error) {
	switch v := stmt.(type) {
	case lang.Assign:
		t := tree.Empty[taint.Backward]()
		if ap, ok := accesspath.Of(v.Target); ok {
			t = s.ReadAccessPath(ap.Root, ap.Path)
		}
		return AnalyzeExpressionBackward(cfg, pp, t, v.Value, s), nil
	case lang.Return:
		if v.Value == nil {
			return s, nil
		}
		t := s.ReadAccessPath(root.LocalResult, nil)
		return AnalyzeExpressionBackward(cfg, pp, t, v.Value, s), nil
	case lang.ExpressionStmt:
		return AnalyzeExpressionBackward(cfg, pp, tree.Empty[taint.Backward](), v.Value, s), nil
	case lang.Define:
		return s, fmt.Errorf("statement at %s: %w", pp.Key(), ErrNestedDefine)
	case lang.Assert, lang.Break, lang.Class, lang.Continue, lang.Delete,
		lang.For, lang.Global, lang.If, lang.Import, lang.Nonlocal,
		lang.Pass, lang.Raise, lang.Try, lang.With, lang.While,
		lang.YieldStmt, lang.YieldFromStmt:
		// None of these shapes read a value this core tracks.
		return s, nil
	}
	panic(fmt.Sprintf("statement at %s: unhandled statement type %T", pp.Key(), stmt))
}
