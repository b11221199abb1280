// Package graph implements the scheduling stage of the shader compiler
// pipeline: Kahn's algorithm over the reverse-dependency relation of a node
// graph, with deterministic tie-breaking by node insertion order.
//
// # Overview
//
// The compiler package builds a Graph once structural validation has
// confirmed every edge endpoint exists and identifiers are unique, then
// calls Schedule to get the linear order the type inferencer and emitter
// walk. A graph that cannot be fully scheduled contains a cycle; the
// unscheduled remainder is returned as the offending node set.
//
// # Determinism
//
// Two graphs with the same nodes, edges, and insertion order always produce
// the same schedule, which is what makes the compiler's output byte-
// identical across runs (spec §8, "Determinism").
package graph
