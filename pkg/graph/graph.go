// Package graph provides the scheduling step of the shader compiler: given a
// set of nodes and directed edges, it produces the deterministic execution
// order the emitter walks, or reports a cycle.
package graph

import (
	"github.com/shaderforge/compiler/pkg/types"
)

// Graph is a thin, read-only view over a node/edge list used purely for
// scheduling and adjacency lookups. The compiler package owns validation;
// by the time a Graph reaches here every edge endpoint is known to exist.
type Graph struct {
	nodes []types.Node
	edges []types.Edge
}

// New creates a Graph from nodes and edges, preserving their input order.
func New(nodes []types.Node, edges []types.Edge) *Graph {
	return &Graph{nodes: nodes, edges: edges}
}

// Schedule performs topological sorting using Kahn's algorithm over the
// reverse-dependency relation, producing the node order the emitter walks.
//
// Two rules make the result deterministic and spec-exact (spec §4.2):
//
//  1. A node's in-degree counts distinct source nodes feeding any of its
//     input ports, not raw edge count — a node wired to two different ports
//     of the same consumer only has to be scheduled once before it.
//  2. All ties (the initial ready set, and nodes that become ready at the
//     same step) are broken by the node's position in the input's node
//     list, never by sorting IDs. This is what makes compile(g) byte-
//     identical across runs for the same g.
//
// If fewer nodes are scheduled than exist, the remainder — the nodes stuck
// with positive in-degree, which are the cycle members plus every node fed
// (directly or transitively) by one — is returned via a CompileError of kind
// cycle_detected.
func (g *Graph) Schedule() ([]string, error) {
	numNodes := len(g.nodes)
	if numNodes == 0 {
		return []string{}, nil
	}

	nodeIDs := make([]string, numNodes)
	nodeIndex := make(map[string]int, numNodes)
	for i := range g.nodes {
		nodeIDs[i] = g.nodes[i].ID
		nodeIndex[g.nodes[i].ID] = i
	}

	// dependencies[i] holds the distinct set of source node IDs that feed
	// some input port of nodeIDs[i]. Using a set here (rather than counting
	// edges) is what implements the "counts once" in-degree rule.
	dependencies := make([]map[string]struct{}, numNodes)
	for i := range dependencies {
		dependencies[i] = make(map[string]struct{})
	}
	for i := range g.edges {
		edge := &g.edges[i]
		targetIdx, ok := nodeIndex[edge.Target]
		if !ok {
			continue // dangling edges are rejected by the validator before scheduling
		}
		dependencies[targetIdx][edge.Source] = struct{}{}
	}

	inDegree := make([]int, numNodes)
	for i := range dependencies {
		inDegree[i] = len(dependencies[i])
	}

	// Ready queue seeded in node-list order, then drained in the same
	// order new arrivals are discovered.
	queue := make([]string, 0, numNodes)
	for i, id := range nodeIDs {
		if inDegree[i] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, numNodes)
	queueStart := 0
	for queueStart < len(queue) {
		current := queue[queueStart]
		queueStart++
		order = append(order, current)

		// Discover newly-ready consumers by walking nodes in their original
		// order, not edge order — this is the tie-break the spec requires.
		for i, id := range nodeIDs {
			if _, fed := dependencies[i][current]; fed {
				delete(dependencies[i], current)
				inDegree[i]--
				if inDegree[i] == 0 {
					queue = append(queue, id)
				}
			}
		}
	}

	if len(order) != numNodes {
		stuck := make([]string, 0, numNodes-len(order))
		for i, id := range nodeIDs {
			if inDegree[i] > 0 {
				stuck = append(stuck, id)
			}
		}
		return nil, types.NewCompileError(types.ErrKindCycleDetected, "node graph contains a cycle", stuck...)
	}

	return order, nil
}

// GetNodeInputEdges returns all edges where the given node is the target.
func (g *Graph) GetNodeInputEdges(nodeID string) []types.Edge {
	var edges []types.Edge
	for _, edge := range g.edges {
		if edge.Target == nodeID {
			edges = append(edges, edge)
		}
	}
	return edges
}

// GetTerminalNodes returns all nodes that have no outgoing edges.
func (g *Graph) GetTerminalNodes() []string {
	terminal := make(map[string]bool, len(g.nodes))
	for _, node := range g.nodes {
		terminal[node.ID] = true
	}
	for _, edge := range g.edges {
		terminal[edge.Source] = false
	}

	result := make([]string, 0)
	for _, node := range g.nodes {
		if terminal[node.ID] {
			result = append(result, node.ID)
		}
	}
	return result
}
