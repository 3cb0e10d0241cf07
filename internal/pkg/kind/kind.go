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

// Package kind defines the closed vocabularies of taint kinds and the
// finite-set lattice element (TaintSet) built over them. There are two
// parallel domains, sources and sinks; they are never mixed within a
// single Set.
package kind

// Source identifies a kind of taint origin.
type Source int

// The built-in source kinds. Extensible via config.
const (
	TestSource Source = iota
	UserControlled
	numBuiltinSources
)

func (s Source) String() string {
	switch s {
	case TestSource:
		return "TestSource"
	case UserControlled:
		return "UserControlled"
	default:
		return extensionName(int(s), sourceNames)
	}
}

// Sink identifies a kind of taint destination.
//
// LocalReturn is a sentinel: it never denotes a "real" sink, only that
// the tainted value flows into the function's return. It is kept in the
// same lattice as the real sinks (TestSink, RemoteCodeExecution) because
// the backward analysis propagates it through the exact same join/widen
// machinery; model extraction later filters it out (see package model).
const (
	LocalReturn Sink = iota
	TestSink
	RemoteCodeExecution
	numBuiltinSinks
)

// Sink identifies a kind of taint destination.
type Sink int

func (s Sink) String() string {
	switch s {
	case LocalReturn:
		return "LocalReturn"
	case TestSink:
		return "TestSink"
	case RemoteCodeExecution:
		return "RemoteCodeExecution"
	default:
		return extensionName(int(s), sinkNames)
	}
}

// extension registries let a deployment's config add named kinds beyond
// the built-ins without recompiling. See package config.
var (
	sourceNames = map[int]string{}
	sinkNames   = map[int]string{}
	nextSource  = int(numBuiltinSources)
	nextSink    = int(numBuiltinSinks)
)

func extensionName(ordinal int, reg map[int]string) string {
	if name, ok := reg[ordinal]; ok {
		return name
	}
	return "UnknownKind"
}

// RegisterSource reserves a new Source ordinal for the given name, or
// returns the existing one if the name was already registered.
func RegisterSource(name string) Source {
	for ord, n := range sourceNames {
		if n == name {
			return Source(ord)
		}
	}
	ord := nextSource
	nextSource++
	sourceNames[ord] = name
	return Source(ord)
}

// RegisterSink reserves a new Sink ordinal for the given name, or returns
// the existing one if the name was already registered.
func RegisterSink(name string) Sink {
	for ord, n := range sinkNames {
		if n == name {
			return Sink(ord)
		}
	}
	ord := nextSink
	nextSink++
	sinkNames[ord] = name
	return Sink(ord)
}
