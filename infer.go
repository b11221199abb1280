package compiler

import (
	"fmt"
	"strconv"

	"github.com/shaderforge/compiler/pkg/config"
	"github.com/shaderforge/compiler/pkg/types"
)

// portNameForIndex returns the canonical port name for the i'th (0-indexed)
// data-input port: "input", "input1", "input2", ... (spec §3, fixing the
// convention the source repo applied inconsistently — see spec §9 Open
// Questions).
func portNameForIndex(i int) string {
	if i == 0 {
		return types.DefaultTargetPort
	}
	return types.DefaultTargetPort + strconv.Itoa(i)
}

// effectiveEdgeType returns the type an edge actually delivers: a
// component-selector source_port (x/y/z/w), as produced by a split_vecN
// node, always delivers a float regardless of the vector it was split from.
func effectiveEdgeType(e types.Edge, outputTypes map[string]types.GLSLType) types.GLSLType {
	switch e.SourcePort {
	case "x", "y", "z", "w":
		return types.TypeFloat
	default:
		return outputTypes[e.Source]
	}
}

// inferTypes assigns a concrete GLSL type to every node's output (spec
// §4.3), walking the scheduled order so that a polymorphic node's inputs
// have already been resolved by the time it is visited. In strict mode
// (cfg.StrictTypes) a polymorphic node whose connected inputs disagree on
// type is rejected as type_mismatch; otherwise mismatches are silently
// tolerated, matching the reference compiler's permissive behavior.
func inferTypes(
	order []string,
	nodeByID map[string]types.Node,
	inputEdgesByTarget map[string][]types.Edge,
	cfg *config.Config,
) (map[string]types.GLSLType, error) {
	outputTypes := make(map[string]types.GLSLType, len(order))

	for _, id := range order {
		node := nodeByID[id]

		if node.Kind == types.KindCustomCode {
			outputTypes[id] = customCodeReturnType(node)
			continue
		}

		desc, ok := LookupOperator(node.Kind)
		if !ok {
			// Unreachable: the structural validator already rejected unknown
			// kinds before scheduling.
			continue
		}

		if desc.OutputType != types.TypePolymorphic {
			outputTypes[id] = desc.OutputType
			continue
		}

		resolved, mismatch := resolvePolymorphicType(id, desc, inputEdgesByTarget[id], outputTypes)
		if mismatch != "" && cfg != nil && cfg.StrictTypes {
			return nil, types.NewCompileError(
				types.ErrKindTypeMismatch,
				fmt.Sprintf("node %q has inputs of conflicting types: %s", id, mismatch),
				id,
			)
		}
		outputTypes[id] = resolved
	}

	return outputTypes, nil
}

// resolvePolymorphicType resolves a polymorphic node's output type from its
// first connected input port, in port priority order (input, input1, ...),
// falling back to float when no input is connected (spec §4.3). It also
// reports a human-readable mismatch description when other connected
// inputs disagree with the resolved type, for strict-mode rejection.
func resolvePolymorphicType(
	nodeID string,
	desc OperatorDescriptor,
	edges []types.Edge,
	outputTypes map[string]types.GLSLType,
) (resolved types.GLSLType, mismatch string) {
	byPort := make(map[string]types.Edge, len(edges))
	for _, e := range edges {
		byPort[e.TargetPortName()] = e
	}

	resolved = types.TypeFloat
	haveResolved := false
	for i := 0; i < desc.Arity; i++ {
		port := portNameForIndex(i)
		e, ok := byPort[port]
		if !ok {
			continue
		}
		t := effectiveEdgeType(e, outputTypes)
		if !haveResolved {
			resolved = t
			haveResolved = true
			continue
		}
		if t != resolved {
			mismatch = fmt.Sprintf("port %q resolves to %s but an earlier port resolved to %s", port, t, resolved)
		}
	}
	_ = nodeID
	return resolved, mismatch
}

// customCodeReturnType reads a custom_code node's declared return type from
// its "return_type" parameter, defaulting to float (spec §6).
func customCodeReturnType(node types.Node) types.GLSLType {
	if v, ok := node.Parameters["return_type"]; ok {
		if s, ok := v.(string); ok && s != "" {
			return types.GLSLType(s)
		}
	}
	return types.TypeFloat
}
