package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shaderforge/compiler/pkg/types"
)

// formatFloatLiteral renders f as a GLSL float literal, which always
// carries a decimal point (spec §4.4 step 6): 2 becomes "2.0", 0.5 stays
// "0.5", 1e+06 becomes "1.0e+06".
func formatFloatLiteral(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		return s[:i] + ".0" + s[i:]
	}
	return s + ".0"
}

// paramLiteral stringifies a node parameter value for template
// substitution. Numeric JSON values (decoded as float64) become GLSL float
// literals; everything else (strings, the custom_code "code" blob, bools)
// is stringified as-is.
func paramLiteral(v interface{}) string {
	switch t := v.(type) {
	case float64:
		return formatFloatLiteral(t)
	case int:
		return formatFloatLiteral(float64(t))
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// defaultLiteralForType is the type-appropriate default used when a data
// input port has neither an incoming edge nor a parameter value (spec §4.4
// step 5c).
func defaultLiteralForType(t types.GLSLType) string {
	switch t {
	case types.TypeFloat:
		return "0.0"
	case types.TypeVec2:
		return "vec2(0.0)"
	case types.TypeVec3:
		return "vec3(0.0)"
	case types.TypeVec4:
		return "vec4(0.0)"
	default:
		return "0.0"
	}
}
