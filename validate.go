package compiler

import (
	"fmt"

	"github.com/shaderforge/compiler/pkg/config"
	"github.com/shaderforge/compiler/pkg/types"
)

// validateGraph runs the structural validator (spec §4.1): the ordered,
// short-circuiting fatal checks 2–6, with the sanitized-identifier collision
// check required by the §3 invariants run right after the uniqueness check
// (3) and before the output-node check (4). On success it also
// computes the non-fatal warnings (§4.1, unreachable nodes and shadowed
// input ports).
func validateGraph(g types.Graph, cfg *config.Config) ([]string, error) {
	nodeByID := make(map[string]types.Node, len(g.Nodes))
	order := make([]string, 0, len(g.Nodes))
	var duplicates []string
	var outputNodes []string

	// Check 2: every node has a non-empty id and a recognized kind.
	for _, n := range g.Nodes {
		if n.ID == "" {
			return nil, types.NewCompileError(types.ErrKindMalformed, "node is missing an identifier")
		}
		if _, ok := LookupOperator(n.Kind); !ok {
			return nil, types.NewCompileError(
				types.ErrKindUnknownKind,
				fmt.Sprintf("node %q has unknown kind %q", n.ID, n.Kind),
				n.ID,
			)
		}
		if _, ok := nodeByID[n.ID]; ok {
			duplicates = append(duplicates, n.ID)
		} else {
			order = append(order, n.ID)
		}
		nodeByID[n.ID] = n
		if n.Kind == types.KindFragmentOutput {
			outputNodes = append(outputNodes, n.ID)
		}
	}

	// Check 3: identifiers are unique.
	if len(duplicates) > 0 {
		return nil, types.NewCompileError(types.ErrKindDuplicateID, "duplicate node identifiers", duplicates...)
	}

	// §3 invariant: sanitized identifiers must not collide.
	if collided := detectSanitizedCollisions(order); len(collided) > 0 {
		return nil, types.NewCompileError(
			types.ErrKindSanitizedIDCollision,
			"two or more node ids sanitize to the same GLSL identifier",
			collided...,
		)
	}

	// Check 4: exactly one fragment_output node.
	switch len(outputNodes) {
	case 0:
		return nil, types.NewCompileError(types.ErrKindMissingOutput, "graph has no fragment_output node")
	case 1:
		// ok
	default:
		return nil, types.NewCompileError(types.ErrKindMultipleOutputs, "graph has more than one fragment_output node", outputNodes...)
	}

	// Check 5: every edge's endpoints resolve to known identifiers.
	var dangling []string
	for _, e := range g.Edges {
		if _, ok := nodeByID[e.Source]; !ok {
			dangling = append(dangling, e.Source)
		}
		if _, ok := nodeByID[e.Target]; !ok {
			dangling = append(dangling, e.Target)
		}
	}
	if len(dangling) > 0 {
		return nil, types.NewCompileError(types.ErrKindDanglingEdge, "edge refers to an unknown node id", dangling...)
	}

	// Check 6: size limits.
	if cfg != nil {
		if cfg.MaxNodes > 0 && len(g.Nodes) > cfg.MaxNodes {
			return nil, types.NewCompileError(
				types.ErrKindTooLarge,
				fmt.Sprintf("graph has %d nodes, exceeding the configured limit of %d", len(g.Nodes), cfg.MaxNodes),
			)
		}
		if cfg.MaxEdges > 0 && len(g.Edges) > cfg.MaxEdges {
			return nil, types.NewCompileError(
				types.ErrKindTooLarge,
				fmt.Sprintf("graph has %d edges, exceeding the configured limit of %d", len(g.Edges), cfg.MaxEdges),
			)
		}
	}

	return collectWarnings(g, order, outputNodes[0]), nil
}

type portKey struct {
	target string
	port   string
}

// collectWarnings computes the non-fatal diagnostics §4.1 calls out:
// multiple incoming edges landing on the same (target, target_port), and
// nodes unreachable from the terminal sink.
func collectWarnings(g types.Graph, order []string, terminalID string) []string {
	var warnings []string

	counts := make(map[portKey]int)
	keyOrder := make([]portKey, 0)
	for _, e := range g.Edges {
		k := portKey{target: e.Target, port: e.TargetPortName()}
		if counts[k] == 0 {
			keyOrder = append(keyOrder, k)
		}
		counts[k]++
	}
	for _, k := range keyOrder {
		if counts[k] > 1 {
			warnings = append(warnings, fmt.Sprintf(
				"node %q port %q receives %d incoming edges; the last one wins",
				k.target, k.port, counts[k],
			))
		}
	}

	reachable := reachableFrom(terminalID, g.Edges)
	for _, id := range order {
		if id == terminalID {
			continue
		}
		if !reachable[id] {
			warnings = append(warnings, fmt.Sprintf("node %q is unreachable from the terminal output", id))
		}
	}

	return warnings
}

// reachableFrom walks edges backward from the terminal sink to find every
// node whose output can reach it.
func reachableFrom(terminalID string, edges []types.Edge) map[string]bool {
	incoming := make(map[string][]string)
	for _, e := range edges {
		incoming[e.Target] = append(incoming[e.Target], e.Source)
	}
	visited := map[string]bool{terminalID: true}
	queue := []string{terminalID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, src := range incoming[cur] {
			if !visited[src] {
				visited[src] = true
				queue = append(queue, src)
			}
		}
	}
	return visited
}
