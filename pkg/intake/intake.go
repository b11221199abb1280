// Package intake is the graph compiler's JSON boundary: it validates a raw
// `{nodes, edges}` document against a gojsonschema schema and decodes it
// into the typed pkg/types.Graph IR the compiler operates on. A schema
// failure is reported as types.ErrMalformed, matching spec §4.1 check 1 —
// everything past Decode operates on the typed IR and never touches JSON
// again.
package intake

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/shaderforge/compiler/pkg/types"
)

var schemaLoader = gojsonschema.NewStringLoader(graphSchema)

// Decode validates raw against the graph document schema and, on success,
// unmarshals it into a types.Graph. Node and edge order in the returned
// Graph matches their order in raw, which matters for scheduling (spec
// §4.2) and first-connected-input type inference (spec §4.3).
func Decode(raw []byte) (types.Graph, error) {
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return types.Graph{}, types.NewCompileError(types.ErrKindMalformed,
			fmt.Sprintf("graph document is not valid JSON: %v", err))
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return types.Graph{}, types.NewCompileError(types.ErrKindMalformed,
			fmt.Sprintf("graph document failed schema validation: %s", strings.Join(msgs, "; ")))
	}

	var g types.Graph
	if err := json.Unmarshal(raw, &g); err != nil {
		return types.Graph{}, types.NewCompileError(types.ErrKindMalformed,
			fmt.Sprintf("graph document could not be decoded: %v", err))
	}

	return g, nil
}
