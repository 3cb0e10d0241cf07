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

// Package lang declares the tagged-variant AST and CFG shapes the core
// consumes from its external parser/CFG-construction collaborators. They
// are deliberately minimal: just enough structure for the transfer
// functions in package transfer to dispatch on.
package lang

// Expression is any syntactic value-producing construct. The set of
// concrete variants is closed and enumerated below; adding a new one
// requires updating every switch that dispatches on Expression, by
// design (see package transfer).
type Expression interface {
	isExpression()
}

// Identifier is a bare name reference, e.g. "x".
type Identifier struct {
	Name string
}

// Access is an attribute access, e.g. "x.f". Receiver is itself an
// Expression so chains like "x.f.g" nest naturally.
type Access struct {
	Receiver Expression
	Member   string
}

// Call is a function or method call.
type Call struct {
	Callee Expression
	Args   []Expression
}

// Literal is any constant (number, string, bool, None/null, ...). This
// core does not distinguish literal subtypes: they are all opaque,
// untainted values.
type Literal struct{}

// Comprehension is a list/set/dict/generator comprehension. Analyzed as
// an opaque, no-taint expression in this iteration.
type Comprehension struct{}

// Lambda is an inline anonymous function. Analyzed as opaque.
type Lambda struct{}

// Comparison is a chained comparison, e.g. "a < b <= c".
type Comparison struct {
	Operands []Expression
}

// Await unwraps an awaitable expression.
type Await struct {
	Value Expression
}

// Yield is a "yield value" used in expression position, e.g. "x = yield v".
type Yield struct {
	Value Expression
}

// Starred is a starred unpacking expression, e.g. "*xs" in a call or
// tuple literal.
type Starred struct {
	Value Expression
}

// Ternary is a conditional expression, e.g. "a if cond else b".
type Ternary struct {
	Condition Expression
	IfTrue    Expression
	IfFalse   Expression
}

// Tuple is a tuple literal.
type Tuple struct {
	Elements []Expression
}

// List is a list literal.
type List struct {
	Elements []Expression
}

// SetLiteral is a set literal.
type SetLiteral struct {
	Elements []Expression
}

// Dict is a dictionary literal.
type Dict struct {
	Keys   []Expression
	Values []Expression
}

// UnaryOp is a unary operator expression, e.g. "-x", "not x".
type UnaryOp struct {
	Op    string
	Value Expression
}

// BoolOp is a short-circuiting boolean operator chain, e.g. "a and b or c".
type BoolOp struct {
	Op       string
	Operands []Expression
}

// ComplexOp is a binary arithmetic/bitwise operator expression, e.g.
// "a + b". Named for the "complex ops" catch-all.
type ComplexOp struct {
	Op          string
	Left, Right Expression
}

// Ellipsis is the "..." placeholder expression.
type Ellipsis struct{}

func (Identifier) isExpression()    {}
func (Access) isExpression()        {}
func (Call) isExpression()          {}
func (Literal) isExpression()       {}
func (Comprehension) isExpression() {}
func (Lambda) isExpression()        {}
func (Comparison) isExpression()    {}
func (Await) isExpression()         {}
func (Yield) isExpression()         {}
func (Starred) isExpression()       {}
func (Ternary) isExpression()       {}
func (Tuple) isExpression()         {}
func (List) isExpression()          {}
func (SetLiteral) isExpression()    {}
func (Dict) isExpression()          {}
func (UnaryOp) isExpression()       {}
func (BoolOp) isExpression()        {}
func (ComplexOp) isExpression()     {}
func (Ellipsis) isExpression()      {}
