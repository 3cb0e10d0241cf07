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

// Package dump writes a function's CFG and its computed forward model as
// DOT source to a directory, for inspecting one run's output by hand.
package dump

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-taint-model/internal/pkg/debug/render"
	"github.com/google/go-taint-model/internal/pkg/lang"
	"github.com/google/go-taint-model/internal/pkg/model"
	"github.com/google/go-taint-model/internal/pkg/taint"
)

// CFG writes def's control-flow graph as DOT source to dir.
func CFG(dir string, def lang.Definition) {
	save(dir, def.Name, "cfg", render.CFG(def.Graph))
}

// Forward writes def's computed forward model's source-taint tree as DOT
// source to dir.
func Forward(dir string, def lang.Definition, fwd model.Forward) {
	dot := render.Tree(fwd.SourceTaint, "return", func(e taint.Forward) string { return e.String() })
	save(dir, def.Name, "forward", dot)
}

func save(dir, funcName, kind, contents string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "dump: could not create %s: %v\n", dir, err)
		return
	}
	outFile := filepath.Join(dir, fmt.Sprintf("%s_%s.dot", funcName, kind))
	if err := os.WriteFile(outFile, []byte(contents), 0666); err != nil {
		fmt.Fprintf(os.Stderr, "dump: could not write %s: %v\n", outFile, err)
	}
}
