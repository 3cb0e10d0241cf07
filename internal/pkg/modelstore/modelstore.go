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

// Package modelstore declares the callee-model lookup adapter (component
// H): the interface through which the core reads another function's
// already-computed model, plus the default propagation policy applied
// whenever no model is available.
//
// The store itself is owned by the interprocedural fixed-point driver
//; it is read-only from the core's point of view during any
// one function's analysis.
package modelstore

import (
	"fmt"
	"os"

	"github.com/google/go-taint-model/internal/pkg/callable"
	"github.com/google/go-taint-model/internal/pkg/model"
)

// Store answers "what is c's current summary?". A miss is recoverable
//: callers fall back to the default propagation policy, never
// to an error.
type Store interface {
	GetModel(c callable.Callable) (model.Summary, bool)
}

// Lookup consults store for target, logging a miss as a recoverable
// condition rather than surfacing it. An unresolved target (resolved is
// false: no callee could be resolved) is also logged and treated as a
// miss.
func Lookup(store Store, target callable.Callable, resolved bool) (model.Summary, bool) {
	if !resolved {
		fmt.Fprintf(os.Stderr, "modelstore: callee could not be resolved, applying default propagation policy\n")
		return model.Summary{}, false
	}
	if store == nil {
		return model.Summary{}, false
	}
	summary, ok := store.GetModel(target)
	if !ok {
		fmt.Fprintf(os.Stderr, "modelstore: no model for callable %q, applying default propagation policy\n", target)
		return model.Summary{}, false
	}
	return summary, true
}
