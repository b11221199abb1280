// Package config centralizes configuration for the shader compiler: the
// size caps the structural validator enforces (spec §4.1 check 6) and the
// switches for the optional strict-mode checks (spec §4.3, §7, §9).
//
// # Basic usage
//
//	cfg := config.Default()
//	result := compiler.Compile(graph, cfg)
//
// # Profiles
//
//   - Default: generous limits, permissive type inference, best-effort
//     custom_code uniform scanning.
//   - Strict: rejects type_mismatch and requires custom_code nodes to
//     declare their uniforms/helpers explicitly.
//   - Testing: small limits, useful for exercising too_large rejections
//     against small fixtures.
//
// Config values are passed explicitly into each compile call; there is no
// process-global configuration, matching the compiler's pure-function
// contract (spec §5).
package config
