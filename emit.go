package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shaderforge/compiler/pkg/config"
	"github.com/shaderforge/compiler/pkg/types"
)

// terminalCoercion is the §4.4 coercion table: how the terminal sink's
// single connected input, given its inferred type, becomes the vec4
// fragColor assigns.
var terminalCoercion = map[types.GLSLType]string{
	types.TypeFloat: "vec4(vec3(%s), 1.0)",
	types.TypeVec2:  "vec4(%s, 0.0, 1.0)",
	types.TypeVec3:  "vec4(%s, 1.0)",
	types.TypeVec4:  "%s",
}

// emitResult is the accumulated output of walking the scheduled node order.
type emitResult struct {
	statements []string
	uniforms   []Uniform
	helpers    []string
}

// emitAll produces one GLSL statement per scheduled node (spec §4.4),
// threading the per-call accumulators (output-variable bindings, required
// uniforms, required helpers) that the spec's concurrency model (§5)
// requires to be local to a single compile call.
func emitAll(
	order []string,
	nodeByID map[string]types.Node,
	inputEdgesByTarget map[string][]types.Edge,
	outputTypes map[string]types.GLSLType,
	cfg *config.Config,
) (*emitResult, error) {
	nodeOutputVar := make(map[string]string, len(order))
	requiredUniforms := make(map[string]bool)
	requiredHelperSet := make(map[string]bool)
	var helperOrder []string
	var statements []string

	for _, id := range order {
		node := nodeByID[id]
		edgesByPort := portMap(inputEdgesByTarget[id])

		switch node.Kind {
		case types.KindFragmentOutput:
			stmt, err := emitTerminal(node, edgesByPort, nodeOutputVar, outputTypes)
			if err != nil {
				return nil, err
			}
			statements = append(statements, stmt)
			continue

		case types.KindCustomCode:
			outVar := sanitizeIdentifier(id)
			nodeOutputVar[id] = outVar
			statements = append(statements, emitCustomCode(node, outVar))

			uniforms, helpers, err := customCodeDependencies(node, cfg)
			if err != nil {
				return nil, err
			}
			for _, u := range uniforms {
				requiredUniforms[u] = true
			}
			for _, h := range helpers {
				if !requiredHelperSet[h] {
					requiredHelperSet[h] = true
					helperOrder = append(helperOrder, h)
				}
			}
			continue

		case types.KindSplitVec2, types.KindSplitVec3, types.KindSplitVec4:
			desc := operatorTable[node.Kind]
			expectedType := desc.InputTypes[0]
			nodeOutputVar[id] = resolveExprForPort(types.DefaultTargetPort, node, edgesByPort, nodeOutputVar, expectedType)
			continue
		}

		desc, ok := LookupOperator(node.Kind)
		if !ok {
			return nil, types.NewCompileError(types.ErrKindUnknownKind, fmt.Sprintf("node %q has unknown kind %q", id, node.Kind), id)
		}

		outVar := sanitizeIdentifier(id)
		nodeOutputVar[id] = outVar

		for _, u := range desc.Uniforms {
			requiredUniforms[u] = true
		}
		for _, h := range desc.Helpers {
			if !requiredHelperSet[h] {
				requiredHelperSet[h] = true
				helperOrder = append(helperOrder, h)
			}
		}

		resolvedType := outputTypes[id]
		stmt := desc.Template
		stmt = strings.ReplaceAll(stmt, "{output}", outVar)
		stmt = strings.ReplaceAll(stmt, "{type}", string(resolvedType))

		for i := 0; i < desc.Arity; i++ {
			port := portNameForIndex(i)
			placeholder := fmt.Sprintf("{input%d}", i+1)
			expectedType := expectedInputType(desc, i, resolvedType)
			expr := resolveExprForPort(port, node, edgesByPort, nodeOutputVar, expectedType)
			stmt = strings.ReplaceAll(stmt, placeholder, expr)
		}

		stmt = substituteParamPlaceholders(stmt, node.Parameters)
		statements = append(statements, stmt)
	}

	uniformNames := make([]string, 0, len(requiredUniforms))
	for u := range requiredUniforms {
		uniformNames = append(uniformNames, u)
	}
	sort.Strings(uniformNames)

	uniforms := make([]Uniform, 0, len(uniformNames))
	for _, u := range uniformNames {
		uniforms = append(uniforms, Uniform{Name: u, Type: uniformGLSLType(u)})
	}

	return &emitResult{statements: statements, uniforms: uniforms, helpers: helperOrder}, nil
}

// emitTerminal emits the fragment_output node's assignment, coercing its
// single connected input to vec4 according to its inferred type (spec §4.4
// terminal coercion table). The data-input port on the terminal sink is
// named "color", not "input" (spec §3).
func emitTerminal(
	node types.Node,
	edgesByPort map[string]types.Edge,
	nodeOutputVar map[string]string,
	outputTypes map[string]types.GLSLType,
) (string, error) {
	inputType := types.TypeFloat
	var inputExpr string
	if e, ok := edgesByPort[types.TerminalInputPort]; ok {
		inputExpr = resolveSourceExpr(e, nodeOutputVar)
		inputType = effectiveEdgeType(e, outputTypes)
	} else {
		inputExpr = defaultLiteralForType(types.TypeFloat)
	}

	pattern, ok := terminalCoercion[inputType]
	if !ok {
		pattern = terminalCoercion[types.TypeFloat]
	}
	return "fragColor = " + fmt.Sprintf(pattern, inputExpr) + ";", nil
}

// emitCustomCode splices a custom_code node's "code" parameter verbatim,
// declaring it under the node's sanitized output variable when the code is
// a bare expression (the common case); a literal statement block is
// spliced as-is.
func emitCustomCode(node types.Node, outVar string) string {
	code, _ := node.Parameters["code"].(string)
	returnType := string(customCodeReturnType(node))
	if strings.Contains(code, ";") {
		// A statement block: trust the author declared outVar themselves.
		return code
	}
	return fmt.Sprintf("%s %s = %s;", returnType, outVar, code)
}

// customCodeDependencies resolves the uniforms and helpers a custom_code
// node requires (spec §9 Open Questions), gated by
// cfg.RequireExplicitCustomUniforms:
//
//   - true: the node's declared "uniforms"/"helpers" parameters are the only
//     source of truth. A known uniform token appearing in the literal code
//     but missing from the declared "uniforms" list is rejected as
//     malformed, since an undeclared uniform reference would otherwise
//     silently compile to a use of an undeclared GLSL variable.
//   - false: the literal code is scanned for known uniform tokens as a
//     best-effort fallback and unioned with any explicitly declared
//     uniforms; "helpers", when declared, is always honored.
func customCodeDependencies(node types.Node, cfg *config.Config) (uniforms []string, helpers []string, err error) {
	declaredUniforms := stringListParam(node.Parameters, "uniforms")
	helpers = stringListParam(node.Parameters, "helpers")
	code, _ := node.Parameters["code"].(string)

	if cfg != nil && cfg.RequireExplicitCustomUniforms {
		for _, name := range sortedKnownUniformNames() {
			if strings.Contains(code, name) && !containsString(declaredUniforms, name) {
				return nil, nil, types.NewCompileError(
					types.ErrKindMalformed,
					fmt.Sprintf("custom_code node %q references uniform %q without declaring it in \"uniforms\"", node.ID, name),
					node.ID,
				)
			}
		}
		return declaredUniforms, helpers, nil
	}

	uniforms = declaredUniforms
	for _, name := range sortedKnownUniformNames() {
		if strings.Contains(code, name) && !containsString(uniforms, name) {
			uniforms = append(uniforms, name)
		}
	}
	return uniforms, helpers, nil
}

// stringListParam reads a node parameter expected to be a JSON array of
// strings, tolerating its absence or a malformed shape by returning nil.
func stringListParam(parameters map[string]interface{}, name string) []string {
	raw, ok := parameters[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// resolveExprForPort resolves the expression feeding a data-input port, in
// priority order: connected edge, named parameter, type-appropriate default
// (spec §4.4 step 5).
func resolveExprForPort(
	port string,
	node types.Node,
	edgesByPort map[string]types.Edge,
	nodeOutputVar map[string]string,
	expectedType types.GLSLType,
) string {
	if e, ok := edgesByPort[port]; ok {
		return resolveSourceExpr(e, nodeOutputVar)
	}
	if v, ok := node.Parameters[port]; ok {
		return paramLiteral(v)
	}
	return defaultLiteralForType(expectedType)
}

// resolveSourceExpr resolves an edge's source to the expression that now
// holds its value: the source node's output variable, or that variable's
// component selector when source_port names one (x/y/z/w) — the mechanism
// that lets split_vecN nodes feed a single channel downstream without
// materializing a statement of their own (spec §9).
func resolveSourceExpr(e types.Edge, nodeOutputVar map[string]string) string {
	v := nodeOutputVar[e.Source]
	switch e.SourcePort {
	case "x", "y", "z", "w":
		return v + "." + e.SourcePort
	default:
		return v
	}
}

// expectedInputType determines the type used to pick a default literal for
// an unconnected, unparameterized input port (spec §4.4 step 5c).
func expectedInputType(desc OperatorDescriptor, i int, resolvedOutput types.GLSLType) types.GLSLType {
	if i < len(desc.InputTypes) {
		return desc.InputTypes[i]
	}
	if desc.OutputType == types.TypePolymorphic {
		return resolvedOutput
	}
	if desc.OutputType == types.TypeVoid {
		return types.TypeFloat
	}
	return desc.OutputType
}

// substituteParamPlaceholders replaces any remaining {paramName} tokens in a
// template with the node's parameter values, formatted as GLSL literals
// (spec §4.4 step 6).
func substituteParamPlaceholders(stmt string, parameters map[string]interface{}) string {
	for name, value := range parameters {
		placeholder := "{" + name + "}"
		if strings.Contains(stmt, placeholder) {
			stmt = strings.ReplaceAll(stmt, placeholder, paramLiteral(value))
		}
	}
	return stmt
}

// portMap indexes a node's input edges by target port, preserving "last
// edge wins" for a port fed more than once (spec §4.1 non-fatal warning).
func portMap(edges []types.Edge) map[string]types.Edge {
	m := make(map[string]types.Edge, len(edges))
	for _, e := range edges {
		m[e.TargetPortName()] = e
	}
	return m
}
