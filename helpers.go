package compiler

import "sort"

// helperFunctions is the process-wide registry of GLSL helper function
// bodies a node's template may require (spec §4.4 step 2). Like
// operatorTable, it is a plain immutable map rather than a plugin registry:
// a node descriptor names the helpers it needs by key, and the assembler
// pulls in exactly the ones actually reachable from the scheduled graph.
//
// perlin and simplex are transcribed verbatim from the reference
// implementation's helper bodies; their exact text is part of the compiler's
// output contract, not a detail to be reformatted.
var helperFunctions = map[string]string{
	"perlin": `float perlin(vec2 p) {
    vec2 i = floor(p);
    vec2 f = fract(p);
    f = f * f * (3.0 - 2.0 * f);

    float a = sin(i.x * 12.9898 + i.y * 78.233) * 43758.5453;
    float b = sin((i.x + 1.0) * 12.9898 + i.y * 78.233) * 43758.5453;
    float c = sin(i.x * 12.9898 + (i.y + 1.0) * 78.233) * 43758.5453;
    float d = sin((i.x + 1.0) * 12.9898 + (i.y + 1.0) * 78.233) * 43758.5453;

    a = fract(a);
    b = fract(b);
    c = fract(c);
    d = fract(d);

    float ab = mix(a, b, f.x);
    float cd = mix(c, d, f.x);
    return mix(ab, cd, f.y);
}`,
	"simplex": `float simplex(vec2 p) {
    return sin(p.x * 12.9898 + sin(p.y * 78.233) * 43758.5453);
}`,
}

// knownUniformTypes maps the built-in ShaderToy-style uniform names this
// compiler is aware of to their GLSL declaration type. iResolution is the
// one two-component exception; every other known uniform declares as float
// (spec §4.5).
var knownUniformTypes = map[string]string{
	"iResolution": "vec2",
	"iTime":       "float",
	"iMouse":      "float",
}

func uniformGLSLType(name string) string {
	if t, ok := knownUniformTypes[name]; ok {
		return t
	}
	return "float"
}

// sortedKnownUniformNames returns the known uniform names in a fixed order,
// so scanning custom_code literal text for them (emit.go) doesn't depend on
// map iteration order (spec §4.2 determinism).
func sortedKnownUniformNames() []string {
	names := make([]string, 0, len(knownUniformTypes))
	for name := range knownUniformTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
