package intake

// graphSchema is the JSON Schema for the raw `{nodes, edges}` document,
// the compiler's only JSON-Schema-shaped input boundary (spec §4.1 check 1).
// Field-level semantics (unknown kind, duplicate ID, dangling edge, and so
// on) are the structural validator's job, not this schema's — this schema
// only enforces the document's shape.
const graphSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["nodes"],
  "properties": {
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "kind"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "kind": {"type": "string", "minLength": 1},
          "parameters": {"type": "object"}
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["source", "target"],
        "properties": {
          "source": {"type": "string", "minLength": 1},
          "target": {"type": "string", "minLength": 1},
          "source_port": {"type": "string"},
          "target_port": {"type": "string"}
        }
      }
    }
  }
}`
