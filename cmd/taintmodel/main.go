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

// Command taintmodel loads an analysis configuration, registers its
// source/sink extensions, and prints a summary of the loaded settings.
// It runs no analysis: a host program that builds lang.CFG values from
// its own source language drives fixpoint.RunForward/RunBackward per
// function itself. This binary owns config parsing only: no parser or
// CFG builder ships in this module, so there is no source file to
// analyze directly.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/go-taint-model/internal/pkg/config"
)

func main() {
	config.FlagSet.VisitAll(func(f *flag.Flag) {
		flag.Var(f.Value, f.Name, f.Usage)
	})
	flag.Parse()

	cfg, err := config.Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "taintmodel: %v\n", err)
		os.Exit(1)
	}
	config.ApplyKindExtensions(cfg)

	fmt.Printf("taintmodel: loaded configuration (widen threshold=%d, max depth=%d, %d extra sources, %d extra sinks)\n",
		cfg.Widen.Threshold, cfg.Widen.MaxDepth, len(cfg.ExtraSources), len(cfg.ExtraSinks))
}
