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

// Package taintmodel is the public entry point a host program imports to
// compute per-function taint models: it re-exports the pieces of the
// internal core a caller needs and nothing else.
package taintmodel

import (
	"github.com/google/go-taint-model/internal/pkg/config"
	"github.com/google/go-taint-model/internal/pkg/fixpoint"
	"github.com/google/go-taint-model/internal/pkg/lang"
	"github.com/google/go-taint-model/internal/pkg/model"
	"github.com/google/go-taint-model/internal/pkg/modelstore"
	"github.com/google/go-taint-model/internal/pkg/transfer"
	"github.com/google/go-taint-model/internal/pkg/typeresolve"
)

// RunForward computes def's forward (source) model.
var RunForward = fixpoint.RunForward

// RunBackward computes def's backward (sink/TITO) model.
var RunBackward = fixpoint.RunBackward

// Config configures one function's transfer functions: its name, its
// type-resolution and model-lookup collaborators, and its intrinsic test
// sink names.
type Config = transfer.Config

// Params configures one fixed-point run's widening behavior.
type Params = fixpoint.Params

// Definition is the function definition a host program builds from its
// own source language and CFG construction.
type Definition = lang.Definition

// Summary is one function's complete computed model.
type Summary = model.Summary

// TypeStore resolves receiver types at call sites, for method-call
// resolution during transfer.
type TypeStore = typeresolve.Store

// ModelStore answers "what is this callable's current model?" during
// interprocedural analysis.
type ModelStore = modelstore.Store

// ReadConfig loads the analysis configuration registered on
// config.FlagSet, applying its source/sink extensions as a side effect.
func ReadConfig() (config.Config, error) {
	c, err := config.Read()
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyKindExtensions(c)
	return c, nil
}
