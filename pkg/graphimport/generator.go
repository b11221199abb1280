// Package graphimport defines the LLM-assisted graph-generation collaborator
// as an interface only. Implementing an actual model integration is
// explicitly out of scope (spec §1, §9); this package exists so
// pkg/compileservice has a seam to call through once a caller wires one in.
package graphimport

import (
	"context"
	"encoding/json"
)

// Request is a natural-language description of the shader a caller wants,
// mirroring the shape the original ai.py/glsl_import.py accepted.
type Request struct {
	// Prompt describes the desired shader in plain language.
	Prompt string `json:"prompt"`

	// ExistingGraph, when non-empty, is a graph document the generator
	// should treat as a starting point to revise rather than replace.
	ExistingGraph json.RawMessage `json:"existing_graph,omitempty"`
}

// Response is the generator's raw graph document output. It is untyped JSON
// deliberately: a Generator's output is not trusted input — a caller must
// decode it through pkg/intake.Decode and the structural validator exactly
// like any other client-submitted graph, never construct a types.Graph from
// it directly.
type Response struct {
	Graph json.RawMessage `json:"graph"`

	// Explanation is optional prose describing what the generator built.
	Explanation string `json:"explanation,omitempty"`
}

// Generator produces a shader graph document from a natural-language
// request. No implementation ships with this module; a caller supplies one
// backed by whatever model-serving stack their deployment uses.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}
