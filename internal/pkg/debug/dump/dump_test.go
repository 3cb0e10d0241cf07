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

package dump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-taint-model/internal/pkg/kind"
	"github.com/google/go-taint-model/internal/pkg/lang"
	"github.com/google/go-taint-model/internal/pkg/model"
	"github.com/google/go-taint-model/internal/pkg/tree"
)

type emptyCFG struct{}

func (emptyCFG) Blocks() []lang.Block { return nil }
func (emptyCFG) Entry() lang.Block    { return nil }
func (emptyCFG) Exit() lang.Block     { return nil }

func TestCFGWritesDotFileNamedAfterFunction(t *testing.T) {
	dir := t.TempDir()
	def := lang.Definition{Name: "myFunc", Graph: emptyCFG{}}

	CFG(dir, def)

	contents, err := os.ReadFile(filepath.Join(dir, "myFunc_cfg.dot"))
	if err != nil {
		t.Fatalf("CFG did not write the expected file: %v", err)
	}
	if len(contents) == 0 {
		t.Error("CFG wrote an empty file")
	}
}

func TestForwardWritesDotFileNamedAfterFunction(t *testing.T) {
	dir := t.TempDir()
	def := lang.Definition{Name: "myFunc", Graph: emptyCFG{}}
	fwd := model.Forward{SourceTaint: tree.MakeLeaf(kind.Singleton(kind.TestSource))}

	Forward(dir, def, fwd)

	contents, err := os.ReadFile(filepath.Join(dir, "myFunc_forward.dot"))
	if err != nil {
		t.Fatalf("Forward did not write the expected file: %v", err)
	}
	if len(contents) == 0 {
		t.Error("Forward wrote an empty file")
	}
}

func TestSaveReportsUnwritableDirectoryWithoutPanicking(t *testing.T) {
	// A path nested under a file (not a directory) cannot be MkdirAll'd into.
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("could not set up blocking file: %v", err)
	}
	save(filepath.Join(blocker, "nested"), "f", "cfg", "digraph {}\n")
}
