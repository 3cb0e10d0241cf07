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

package render

import (
	"fmt"
	"strings"

	"github.com/google/go-taint-model/internal/pkg/lang"
)

// CFG renders DOT source for g's control-flow graph: one node per block,
// labelled with its ID and statement count, and one edge per successor
// relationship.
func CFG(g lang.CFG) string {
	var b strings.Builder
	b.WriteString("digraph {\n")
	for _, block := range g.Blocks() {
		b.WriteString(fmt.Sprintf("\t%q\n", blockLabel(block)))
		for _, succ := range block.Successors() {
			b.WriteString(fmt.Sprintf("\t%q -> %q;\n", blockLabel(block), blockLabel(succ)))
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func blockLabel(b lang.Block) string {
	return fmt.Sprintf("%d (%d stmts)", b.ID(), len(b.Statements()))
}
