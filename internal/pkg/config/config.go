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

// Package config loads the analysis's tunable parameters: the widening
// threshold and max tree depth, any deployment-specific
// source/sink kind extensions, and the intrinsic
// sink call names. It mirrors the -config flag and
// strict-YAML-unmarshal pattern of the matcher configuration this
// analyzer's ancestor loads.
package config

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"sigs.k8s.io/yaml"

	"github.com/google/go-taint-model/internal/pkg/kind"
)

// FlagSet should be embedded by a binary's own flag.FlagSet so every
// entry point shares the same -config flag.
var FlagSet flag.FlagSet

var configPath string

func init() {
	FlagSet.StringVar(&configPath, "config", "config.yaml", "path to analysis configuration file")
}

// Widen carries the widening parameters: how many times a block is
// revisited before join gives way to widen, and how deep a widened tree
// may grow.
type Widen struct {
	// Threshold is K: the per-block revisit count after which join is
	// replaced by widen.
	Threshold int `json:"threshold,omitempty"`
	// MaxDepth is D: the tree depth a widened tree is bounded to.
	MaxDepth int `json:"maxDepth,omitempty"`
}

// Intrinsics names the backward-mode intrinsic sink calls,
// overridable so a deployment can rename them without recompiling.
type Intrinsics struct {
	TestSink    string `json:"testSink,omitempty"`
	TestRCESink string `json:"testRCESink,omitempty"`
}

// Config is the full set of tunables a deployment may override.
type Config struct {
	// SchemaVersion is an optional semver string validated against
	// golang.org/x/mod/semver; absent means "no check requested".
	SchemaVersion string `json:"schemaVersion,omitempty"`

	Widen      Widen      `json:"widen,omitempty"`
	Intrinsics Intrinsics `json:"intrinsics,omitempty"`

	// ExtraSources and ExtraSinks name additional kinds beyond the
	// built-ins (kind.TestSource/UserControlled, kind.TestSink/
	// RemoteCodeExecution), registered via kind.RegisterSource/
	// RegisterSink when the config is applied.
	ExtraSources []string `json:"extraSources,omitempty"`
	ExtraSinks   []string `json:"extraSinks,omitempty"`
}

// Default returns the built-in defaults applied
// when no config file is supplied.
func Default() Config {
	return Config{
		Widen: Widen{Threshold: 3, MaxDepth: 4},
		Intrinsics: Intrinsics{
			TestSink:    "__testSink",
			TestRCESink: "__testRCESink",
		},
	}
}

// Read loads the config file named by the -config flag (default
// config.yaml), strictly (unknown keys are an error). A missing file is
// not an error: it is logged and the defaults are returned, the same
// "recoverable, fall back" posture applied elsewhere in this analyzer.
func Read() (Config, error) {
	return ReadFile(configPath)
}

// ReadFile loads and validates the config at path.
func ReadFile(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "config: %s not found, using defaults\n", path)
			return c, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(bytes, &c); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if c.SchemaVersion != "" && !semver.IsValid(c.SchemaVersion) {
		return Config{}, fmt.Errorf("config: %s: schemaVersion %q is not a valid semantic version", path, c.SchemaVersion)
	}
	return c, nil
}

// ApplyKindExtensions registers every extra source/sink kind name c
// declares, so later Source/Sink String() calls and future config
// references to the same names resolve to the same ordinal.
func ApplyKindExtensions(c Config) {
	for _, name := range c.ExtraSources {
		kind.RegisterSource(name)
	}
	for _, name := range c.ExtraSinks {
		kind.RegisterSink(name)
	}
}
