// Package compiler turns a declarative node/edge graph (pkg/types.Graph)
// into a compilable GLSL fragment-shader source string. It is a pure,
// synchronous function of its inputs: no I/O, no package-level mutable
// state beyond the immutable operator and helper tables, safe to call
// concurrently from independent goroutines without synchronization.
//
// Compile is the single entry point; everything else in this package
// (validation, scheduling, type inference, emission, assembly) is an
// internal stage reachable only through it.
package compiler

import (
	"github.com/shaderforge/compiler/pkg/config"
	"github.com/shaderforge/compiler/pkg/graph"
	"github.com/shaderforge/compiler/pkg/types"
)

// Stage names, shared with pkg/observer's StageXxx constants so a caller's
// hooks and its observer events agree on vocabulary without importing
// pkg/observer from this package.
const (
	StageValidate = "validate"
	StageSchedule = "schedule"
	StageInfer    = "infer"
	StageEmit     = "emit"
	StageAssemble = "assemble"
)

// StageHooks lets a caller observe each internal pipeline stage without the
// compiler package depending on logging, telemetry, or any other I/O —
// hooks are plain function values supplied by the caller (pkg/compileservice
// is the only intended caller). A zero StageHooks is a valid no-op.
type StageHooks struct {
	OnStageStart    func(stage string)
	OnStageComplete func(stage string, err error)
}

func (h StageHooks) start(stage string) {
	if h.OnStageStart != nil {
		h.OnStageStart(stage)
	}
}

func (h StageHooks) complete(stage string, err error) {
	if h.OnStageComplete != nil {
		h.OnStageComplete(stage, err)
	}
}

// Compile lowers g into GLSL source. cfg may be nil, in which case
// config.Default() is used. The result is always non-nil: on failure
// Success is false, Code is empty, and Error names the violated invariant;
// on success Code holds the complete shader source.
func Compile(g types.Graph, cfg *config.Config) *Result {
	return CompileWithHooks(g, cfg, StageHooks{})
}

// CompileWithHooks is Compile with stage-boundary observability. It has
// identical compile semantics; hooks fire around each of the five internal
// stages (graph intake happens in pkg/intake, before this function is
// called) purely as a notification mechanism.
func CompileWithHooks(g types.Graph, cfg *config.Config, hooks StageHooks) *Result {
	if cfg == nil {
		cfg = config.Default()
	}

	hooks.start(StageValidate)
	warnings, err := validateGraph(g, cfg)
	hooks.complete(StageValidate, err)
	if err != nil {
		return failResult(err)
	}

	nodeByID := make(map[string]types.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		nodeByID[n.ID] = n
	}

	hooks.start(StageSchedule)
	gr := graph.New(g.Nodes, g.Edges)
	order, err := gr.Schedule()
	hooks.complete(StageSchedule, err)
	if err != nil {
		return failResult(err)
	}

	inputEdgesByTarget := make(map[string][]types.Edge, len(g.Nodes))
	for _, id := range order {
		inputEdgesByTarget[id] = gr.GetNodeInputEdges(id)
	}

	hooks.start(StageInfer)
	outputTypes, err := inferTypes(order, nodeByID, inputEdgesByTarget, cfg)
	hooks.complete(StageInfer, err)
	if err != nil {
		return failResult(err)
	}

	hooks.start(StageEmit)
	emitted, err := emitAll(order, nodeByID, inputEdgesByTarget, outputTypes, cfg)
	hooks.complete(StageEmit, err)
	if err != nil {
		return failResult(err)
	}

	hooks.start(StageAssemble)
	code := assemble(emitted.statements, emitted.uniforms, emitted.helpers)
	hooks.complete(StageAssemble, nil)

	return &Result{
		Success:   true,
		Code:      code,
		Uniforms:  emitted.uniforms,
		Functions: emitted.helpers,
		Warnings:  warnings,
	}
}
