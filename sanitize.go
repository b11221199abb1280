package compiler

import "strings"

// sanitizeIdentifier derives a GLSL-safe variable name from a node id:
// every character outside [A-Za-z0-9_] becomes '_', and the result is
// prefixed with "v_" (spec §3, "Emitted GLSL variable names..."). Two
// distinct node ids that sanitize to the same name must be rejected by the
// caller (see detectSanitizedCollisions) — sanitizeIdentifier itself is a
// pure, non-failing transform.
func sanitizeIdentifier(id string) string {
	var b strings.Builder
	b.Grow(len(id) + 2)
	b.WriteString("v_")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// detectSanitizedCollisions returns the set of node ids (in nodeIDs order)
// that collide with at least one other node id after sanitization. An empty
// result means every node id sanitizes to a distinct variable name.
func detectSanitizedCollisions(nodeIDs []string) []string {
	bySanitized := make(map[string][]string, len(nodeIDs))
	for _, id := range nodeIDs {
		s := sanitizeIdentifier(id)
		bySanitized[s] = append(bySanitized[s], id)
	}
	var collided []string
	for _, id := range nodeIDs {
		if group := bySanitized[sanitizeIdentifier(id)]; len(group) > 1 {
			collided = append(collided, id)
		}
	}
	return collided
}
