package compiler

import "github.com/shaderforge/compiler/pkg/types"

// OperatorDescriptor is the static record describing one node kind: how many
// data inputs it consumes, what GLSL type its output carries (or the
// polymorphic sentinel), the GLSL statement template used to emit it, and
// the uniforms/helper functions the template transitively requires.
//
// Dispatch over operator kind is entirely data-directed — a lookup into
// operatorTable — rather than a type hierarchy or Strategy-pattern registry.
// Adding an operator is one table entry (plus, if needed, one helper
// registration in helpers.go); nothing else in the compiler changes.
type OperatorDescriptor struct {
	// Template is a GLSL statement with {output}, {type}, {input1}..{inputN}
	// and any node-specific parameter placeholders (e.g. {value}, {x}).
	// Empty for nodes the emitter handles structurally instead of by
	// substitution (fragment_output's terminal coercion, custom_code's
	// literal splice).
	Template string

	// Arity is the number of data-input ports the node consumes. Ports are
	// named "input" for the first, "input1", "input2", ... for the rest;
	// template placeholders are always 1-indexed ({input1}, {input2}, ...).
	Arity int

	// OutputType is the node's output type, or TypePolymorphic when the
	// type must be resolved from the first connected input (spec §4.3).
	OutputType types.GLSLType

	// InputTypes names the expected type of each input port, for ports
	// whose type is not simply "whatever the resolved output type is" (the
	// common case for polymorphic and scalar-math operators, which need no
	// entry here). It only matters when a port has neither an incoming
	// edge nor a parameter value and the emitter must fall back to a
	// type-appropriate default literal (spec §4.4 step 5c).
	InputTypes []types.GLSLType

	// Uniforms and Helpers are the GLSL globals and functions this node's
	// template references; they are unioned into the compile result's
	// closure when the node is scheduled (spec §4.4 step 2).
	Uniforms []string
	Helpers  []string
}

// operatorTable is the process-wide, immutable mapping from operator tag to
// descriptor. It is never mutated after package init, so concurrent compile
// calls share it safely without synchronization (spec §5).
var operatorTable = map[types.NodeKind]OperatorDescriptor{
	// -- Inputs -----------------------------------------------------------
	types.KindUVInput: {
		Template:   "vec2 {output} = fragCoord / iResolution.xy;",
		Arity:      0,
		OutputType: types.TypeVec2,
		Uniforms:   []string{"iResolution"},
	},
	types.KindTimeInput: {
		Template:   "float {output} = iTime;",
		Arity:      0,
		OutputType: types.TypeFloat,
		Uniforms:   []string{"iTime"},
	},
	types.KindMouseInput: {
		// iMouse is declared "uniform float iMouse;" by knownUniformTypes
		// (helpers.go) per spec §4.5's "all other known uniforms -> float"
		// rule, while this template accesses it as .xy — a contradiction
		// inherited from the reference compiler (it has the same mismatch).
		// Faithful to spec rather than "fixed" here; knownUniformTypes would
		// need an iMouse -> vec2 special case for this template to produce
		// GLSL that actually compiles downstream.
		Template:   "vec2 {output} = iMouse.xy;",
		Arity:      0,
		OutputType: types.TypeVec2,
		Uniforms:   []string{"iMouse"},
	},
	types.KindResolutionInput: {
		Template:   "vec3 {output} = vec3(iResolution, 0.0);",
		Arity:      0,
		OutputType: types.TypeVec3,
		Uniforms:   []string{"iResolution"},
	},
	types.KindFloatConstant: {
		Template:   "float {output} = {value};",
		Arity:      0,
		OutputType: types.TypeFloat,
	},
	types.KindVec2Constant: {
		Template:   "vec2 {output} = vec2({x}, {y});",
		Arity:      0,
		OutputType: types.TypeVec2,
	},
	types.KindVec3Constant: {
		Template:   "vec3 {output} = vec3({x}, {y}, {z});",
		Arity:      0,
		OutputType: types.TypeVec3,
	},

	// -- Arithmetic (polymorphic, arity 2) ---------------------------------
	types.KindAdd: {
		Template:   "{type} {output} = {input1} + {input2};",
		Arity:      2,
		OutputType: types.TypePolymorphic,
	},
	types.KindSubtract: {
		Template:   "{type} {output} = {input1} - {input2};",
		Arity:      2,
		OutputType: types.TypePolymorphic,
	},
	types.KindMultiply: {
		Template:   "{type} {output} = {input1} * {input2};",
		Arity:      2,
		OutputType: types.TypePolymorphic,
	},
	types.KindDivide: {
		Template:   "{type} {output} = {input1} / {input2};",
		Arity:      2,
		OutputType: types.TypePolymorphic,
	},

	// -- Scalar math (arity 1, -> float) ------------------------------------
	types.KindSqrt:  {Template: "float {output} = sqrt({input1});", Arity: 1, OutputType: types.TypeFloat},
	types.KindAbs:   {Template: "float {output} = abs({input1});", Arity: 1, OutputType: types.TypeFloat},
	types.KindSin:   {Template: "float {output} = sin({input1});", Arity: 1, OutputType: types.TypeFloat},
	types.KindCos:   {Template: "float {output} = cos({input1});", Arity: 1, OutputType: types.TypeFloat},
	types.KindTan:   {Template: "float {output} = tan({input1});", Arity: 1, OutputType: types.TypeFloat},
	types.KindFloor: {Template: "float {output} = floor({input1});", Arity: 1, OutputType: types.TypeFloat},
	types.KindCeil:  {Template: "float {output} = ceil({input1});", Arity: 1, OutputType: types.TypeFloat},
	types.KindFract: {Template: "float {output} = fract({input1});", Arity: 1, OutputType: types.TypeFloat},

	// -- Clamping family (polymorphic, arity 3) ----------------------------
	types.KindClamp: {
		Template:   "{type} {output} = clamp({input1}, {input2}, {input3});",
		Arity:      3,
		OutputType: types.TypePolymorphic,
	},
	types.KindMix: {
		Template:   "{type} {output} = mix({input1}, {input2}, {input3});",
		Arity:      3,
		OutputType: types.TypePolymorphic,
	},
	types.KindLerp: {
		Template:   "{type} {output} = mix({input1}, {input2}, {input3});",
		Arity:      3,
		OutputType: types.TypePolymorphic,
	},
	types.KindSmoothstep: {
		Template:   "{type} {output} = smoothstep({input1}, {input2}, {input3});",
		Arity:      3,
		OutputType: types.TypePolymorphic,
	},
	types.KindStep: {
		// Arity 3 to match the clamping family's shape (spec §6); the third
		// port is accepted but unused by GLSL's two-argument step().
		Template:   "{type} {output} = step({input1}, {input2});",
		Arity:      3,
		OutputType: types.TypePolymorphic,
	},

	// -- Vector ops ---------------------------------------------------------
	types.KindDot: {
		Template:   "float {output} = dot({input1}, {input2});",
		Arity:      2,
		OutputType: types.TypeFloat,
		InputTypes: []types.GLSLType{types.TypeVec3, types.TypeVec3},
	},
	types.KindCross: {
		Template:   "vec3 {output} = cross({input1}, {input2});",
		Arity:      2,
		OutputType: types.TypeVec3,
		InputTypes: []types.GLSLType{types.TypeVec3, types.TypeVec3},
	},
	types.KindNormalize: {
		Template:   "{type} {output} = normalize({input1});",
		Arity:      1,
		OutputType: types.TypePolymorphic,
	},
	types.KindLength: {
		Template:   "float {output} = length({input1});",
		Arity:      1,
		OutputType: types.TypeFloat,
		InputTypes: []types.GLSLType{types.TypeVec3},
	},
	types.KindDistance: {
		Template:   "float {output} = distance({input1}, {input2});",
		Arity:      2,
		OutputType: types.TypeFloat,
		InputTypes: []types.GLSLType{types.TypeVec3, types.TypeVec3},
	},
	types.KindReflect: {
		Template:   "{type} {output} = reflect({input1}, {input2});",
		Arity:      2,
		OutputType: types.TypePolymorphic,
	},

	// -- Constructors and promotions ------------------------------------
	types.KindVec2Construct: {
		Template:   "vec2 {output} = vec2({input1}, {input2});",
		Arity:      2,
		OutputType: types.TypeVec2,
		InputTypes: []types.GLSLType{types.TypeFloat, types.TypeFloat},
	},
	types.KindVec3Construct: {
		Template:   "vec3 {output} = vec3({input1}, {input2}, {input3});",
		Arity:      3,
		OutputType: types.TypeVec3,
		InputTypes: []types.GLSLType{types.TypeFloat, types.TypeFloat, types.TypeFloat},
	},
	types.KindVec4Construct: {
		Template:   "vec4 {output} = vec4({input1}, {input2}, {input3}, {input4});",
		Arity:      4,
		OutputType: types.TypeVec4,
		InputTypes: []types.GLSLType{types.TypeFloat, types.TypeFloat, types.TypeFloat, types.TypeFloat},
	},
	types.KindFloatToVec2: {
		Template:   "vec2 {output} = vec2({input1});",
		Arity:      1,
		OutputType: types.TypeVec2,
		InputTypes: []types.GLSLType{types.TypeFloat},
	},
	types.KindFloatToVec3: {
		Template:   "vec3 {output} = vec3({input1});",
		Arity:      1,
		OutputType: types.TypeVec3,
		InputTypes: []types.GLSLType{types.TypeFloat},
	},
	types.KindFloatToVec4: {
		Template:   "vec4 {output} = vec4({input1});",
		Arity:      1,
		OutputType: types.TypeVec4,
		InputTypes: []types.GLSLType{types.TypeFloat},
	},
	types.KindVec2ToVec3: {
		Template:   "vec3 {output} = vec3({input1}, 0.0);",
		Arity:      1,
		OutputType: types.TypeVec3,
		InputTypes: []types.GLSLType{types.TypeVec2},
	},

	// -- Destructors (multi-output, handled structurally by the emitter) --
	// These have no statement of their own: the emitter aliases their
	// output to the already-evaluated input expression, and a downstream
	// edge selecting source_port x/y/z/w appends ".x"/".y"/".z"/".w" to
	// that alias (spec §9, "Polymorphism without inheritance").
	types.KindSplitVec2: {Template: "", Arity: 1, OutputType: types.TypePolymorphic, InputTypes: []types.GLSLType{types.TypeVec2}},
	types.KindSplitVec3: {Template: "", Arity: 1, OutputType: types.TypePolymorphic, InputTypes: []types.GLSLType{types.TypeVec3}},
	types.KindSplitVec4: {Template: "", Arity: 1, OutputType: types.TypePolymorphic, InputTypes: []types.GLSLType{types.TypeVec4}},

	// -- Generators (arity 1, -> float) ---------------------------------
	types.KindPerlinNoise: {
		Template:   "float {output} = perlin({input1});",
		Arity:      1,
		OutputType: types.TypeFloat,
		Helpers:    []string{"perlin"},
	},
	types.KindSimplexNoise: {
		Template:   "float {output} = simplex({input1});",
		Arity:      1,
		OutputType: types.TypeFloat,
		Helpers:    []string{"simplex"},
	},

	// -- SDF primitives (-> float) ----------------------------------------
	types.KindSDFSphere: {
		// p (vec3), radius (float): surface distance to a sphere at the origin.
		Template:   "float {output} = length({input1}) - {input2};",
		Arity:      2,
		OutputType: types.TypeFloat,
		InputTypes: []types.GLSLType{types.TypeVec3, types.TypeFloat},
	},
	types.KindSDFBox: {
		// p (vec3), half-extents (vec3): surface-distance approximation (no
		// interior min term), matching the compiler's informal, non-exact
		// SDF support — see spec §1 Non-goals.
		Template:   "float {output} = length(max(abs({input1}) - {input2}, vec3(0.0)));",
		Arity:      2,
		OutputType: types.TypeFloat,
		InputTypes: []types.GLSLType{types.TypeVec3, types.TypeVec3},
	},
	types.KindSDFTorus: {
		// p (vec3), t (vec2: major/minor radius): the standard torus SDF.
		Template:   "float {output} = length(vec2(length(({input1}).xz) - ({input2}).x, ({input1}).y)) - ({input2}).y;",
		Arity:      2,
		OutputType: types.TypeFloat,
		InputTypes: []types.GLSLType{types.TypeVec3, types.TypeVec2},
	},

	// -- Escape hatch -------------------------------------------------------
	// custom_code's statement is the node's own "code" parameter, spliced
	// verbatim; the emitter special-cases this kind rather than reading
	// Template. OutputType is resolved from the "return_type" parameter by
	// the type inferencer, not from a connected input.
	types.KindCustomCode: {
		Template:   "",
		Arity:      0,
		OutputType: types.TypeFloat,
	},

	// -- Terminal -----------------------------------------------------------
	// fragment_output's coercion table (spec §4.4) is structural, handled
	// directly by the emitter; Template is unused.
	types.KindFragmentOutput: {
		Template:   "",
		Arity:      1,
		OutputType: types.TypeVoid,
	},
}

// LookupOperator returns the descriptor for kind, and whether it is known.
func LookupOperator(kind types.NodeKind) (OperatorDescriptor, bool) {
	d, ok := operatorTable[kind]
	return d, ok
}

// IsPolymorphic reports whether a node kind's output type must be inferred
// from its first connected input.
func IsPolymorphic(kind types.NodeKind) bool {
	d, ok := operatorTable[kind]
	return ok && d.OutputType == types.TypePolymorphic
}
