package compiler

import "strings"

// assemble concatenates the uniform declarations, helper function bodies,
// and mainImage body into the final GLSL source (spec §4.5). The file ends
// with a single trailing newline.
func assemble(statements []string, uniforms []Uniform, helperNames []string) string {
	var parts []string

	if len(uniforms) > 0 {
		lines := make([]string, 0, len(uniforms))
		for _, u := range uniforms {
			lines = append(lines, "uniform "+u.Type+" "+u.Name+";")
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	if len(helperNames) > 0 {
		bodies := make([]string, 0, len(helperNames))
		for _, name := range helperNames {
			if body, ok := helperFunctions[name]; ok {
				bodies = append(bodies, body)
			}
		}
		parts = append(parts, strings.Join(bodies, "\n\n"))
	}

	body := strings.Join(statements, "\n  ")
	mainImage := "void mainImage(out vec4 fragColor, in vec2 fragCoord) {\n  " + body + "\n}"
	parts = append(parts, mainImage)

	return strings.TrimRight(strings.Join(parts, "\n\n"), " \t\n") + "\n"
}
