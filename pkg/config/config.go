// Package config centralizes the shader compiler's configuration: size
// limits enforced by the structural validator and feature switches for the
// optional strict-mode checks.
package config

// Config holds shader compiler configuration. Every compile call is given a
// Config explicitly; there is no global mutable configuration singleton.
type Config struct {
	// Resource limits (spec §4.1 check 6)
	MaxNodes int // maximum number of nodes accepted in one graph
	MaxEdges int // maximum number of edges accepted in one graph

	// StrictTypes enables the optional type_mismatch rejection (spec §4.3,
	// §7): a polymorphic operator whose connected inputs disagree on
	// resolved type is rejected instead of silently emitting a statement
	// the downstream GLSL compiler would reject.
	StrictTypes bool

	// RequireExplicitCustomUniforms governs how custom_code nodes declare
	// the uniforms/helpers they reference (spec §9, Open Questions): when
	// true, a custom_code node's "uniforms"/"helpers" parameters are the
	// only source of truth and are required if the literal code mentions a
	// known uniform token; when false, the literal code is scanned for
	// known uniform tokens as a best-effort fallback.
	RequireExplicitCustomUniforms bool
}

// Default returns the configuration used when a caller does not override
// any limits: generous enough for hand-authored graphs, small enough to
// bound a single compile call's cost.
func Default() *Config {
	return &Config{
		MaxNodes:                      200,
		MaxEdges:                      500,
		StrictTypes:                   false,
		RequireExplicitCustomUniforms: false,
	}
}

// Strict returns a configuration with type_mismatch rejection and explicit
// custom_code uniform declarations both turned on, for callers that would
// rather fail a compile than emit code a downstream GLSL compiler rejects.
func Strict() *Config {
	cfg := Default()
	cfg.StrictTypes = true
	cfg.RequireExplicitCustomUniforms = true
	return cfg
}

// Testing returns a configuration with small limits, suitable for unit
// tests that want size-limit rejections to trigger on small fixtures.
func Testing() *Config {
	return &Config{
		MaxNodes:                      50,
		MaxEdges:                      100,
		StrictTypes:                   false,
		RequireExplicitCustomUniforms: false,
	}
}

// Validate checks that the configuration's limits are usable.
func (c *Config) Validate() error {
	if c.MaxNodes < 0 {
		return ErrInvalidMaxNodes
	}
	if c.MaxEdges < 0 {
		return ErrInvalidMaxEdges
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
