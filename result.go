package compiler

// Uniform is one declared GLSL uniform in a compile result.
type Uniform struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Result is the single outcome of a compile call, mirroring the
// transport-agnostic response shape of spec §6: on success Code is the
// complete GLSL source and Error is empty; on failure Code is always empty
// and Error names the violated invariant. The compiler never partially
// emits code (spec §7).
type Result struct {
	Success   bool      `json:"success"`
	Code      string    `json:"code"`
	Uniforms  []Uniform `json:"uniforms"`
	Functions []string  `json:"functions"`
	Warnings  []string  `json:"warnings"`
	Error     string    `json:"error,omitempty"`

	// err carries the underlying structured error (types.CompileError) for
	// callers that want errors.Is/errors.As instead of the string form.
	err error
}

// Err returns the underlying error for a failed result, or nil on success.
// Use errors.Is/errors.As against it to inspect the error kind (spec §7).
func (r *Result) Err() error {
	return r.err
}

func failResult(err error) *Result {
	return &Result{Success: false, Error: err.Error(), err: err}
}

// FailureResult builds a failed Result from an error that arose outside the
// Compile pipeline itself — e.g. pkg/intake's schema/decode rejection, which
// happens before a Graph exists to pass to Compile. It is the same shape
// Compile returns on a validate/schedule/infer/emit failure.
func FailureResult(err error) *Result {
	return failResult(err)
}
