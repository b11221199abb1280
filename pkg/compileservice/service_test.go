package compileservice

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/shaderforge/compiler/pkg/observer"
	"github.com/shaderforge/compiler/pkg/types"
)

// recordingObserver collects every event it is notified of. observer.Manager
// dispatches each event to each observer on its own goroutine, so ordering
// across events is not guaranteed; callers use ExpectEvents/Wait to know
// when the expected count has arrived before inspecting the set.
type recordingObserver struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	expected int
	events   []observer.Event
}

func (o *recordingObserver) OnEvent(ctx context.Context, event observer.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	if o.expected > 0 {
		o.wg.Done()
		o.expected--
	}
}

func (o *recordingObserver) ExpectEvents(count int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.expected += count
	o.wg.Add(count)
}

func (o *recordingObserver) Wait() {
	o.wg.Wait()
}

func (o *recordingObserver) stageStartSet() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	var names []string
	for _, e := range o.events {
		if e.Type == observer.EventStageStart {
			names = append(names, e.StageName)
		}
	}
	sort.Strings(names)
	return names
}

func (o *recordingObserver) eventsByType(t observer.EventType) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, e := range o.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func validGraphJSON() []byte {
	return []byte(`{
		"nodes": [
			{"id": "uv", "kind": "uv_input"},
			{"id": "out", "kind": "fragment_output"}
		],
		"edges": [
			{"source": "uv", "target": "out", "target_port": "color"}
		]
	}`)
}

// A successful compile fires: 1 compile-start, 1 compile-end, and a
// start+end pair for each of the six stages (intake, validate, schedule,
// infer, emit, assemble) = 14 events total.
const successEventCount = 14

func TestService_CompileJSON_Success(t *testing.T) {
	obs := &recordingObserver{}
	obs.ExpectEvents(successEventCount)
	svc := New()
	svc.RegisterObserver(obs)

	resp := svc.CompileJSON(context.Background(), validGraphJSON())
	if resp.RequestID == "" {
		t.Fatal("expected a non-empty request ID")
	}
	if !resp.Success {
		t.Fatalf("expected success, got error: %s", resp.Error)
	}
	if !strings.Contains(resp.Code, "void mainImage") {
		t.Fatalf("expected emitted GLSL, got: %s", resp.Code)
	}

	obs.Wait()

	want := []string{
		observer.StageAssemble,
		observer.StageEmit,
		observer.StageInfer,
		observer.StageIntake,
		observer.StageSchedule,
		observer.StageValidate,
	}
	got := obs.stageStartSet()
	if len(got) != len(want) {
		t.Fatalf("got stage starts %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage %d: got %q, want %q", i, got[i], want[i])
		}
	}
	if n := obs.eventsByType(observer.EventCompileEnd); n != 1 {
		t.Errorf("expected exactly one compile-end event, got %d", n)
	}
}

func TestService_CompileJSON_IntakeRejection(t *testing.T) {
	// compile-start, intake start+fail, compile-end.
	obs := &recordingObserver{}
	obs.ExpectEvents(4)
	svc := New()
	svc.RegisterObserver(obs)

	resp := svc.CompileJSON(context.Background(), []byte(`{not json`))
	if resp.Success {
		t.Fatal("expected failure for malformed input")
	}
	if resp.RequestID == "" {
		t.Fatal("expected a request ID even on rejection")
	}

	obs.Wait()

	got := obs.stageStartSet()
	if len(got) != 1 || got[0] != observer.StageIntake {
		t.Fatalf("expected only the intake stage to start, got %v", got)
	}
	if n := obs.eventsByType(observer.EventStageFailure); n != 1 {
		t.Errorf("expected exactly one stage-failure event, got %d", n)
	}
}

func TestService_CompileJSON_CompileRejection(t *testing.T) {
	svc := New()

	// No fragment_output node: passes intake, fails structural validation.
	raw := []byte(`{"nodes": [{"id": "uv", "kind": "uv_input"}]}`)
	resp := svc.CompileJSON(context.Background(), raw)
	if resp.Success {
		t.Fatal("expected failure for a graph with no fragment_output")
	}
	if resp.Err() == nil {
		t.Fatal("expected a non-nil underlying error")
	}
}

func TestService_Compile_AcceptsDecodedGraph(t *testing.T) {
	svc := New()
	g := types.Graph{
		Nodes: []types.Node{
			{ID: "uv", Kind: types.KindUVInput},
			{ID: "out", Kind: types.KindFragmentOutput},
		},
		Edges: []types.Edge{
			{Source: "uv", Target: "out", TargetPort: types.TerminalInputPort},
		},
	}

	resp := svc.Compile(context.Background(), g)
	if !resp.Success {
		t.Fatalf("expected success, got error: %s", resp.Error)
	}
}

func TestService_DistinctRequestIDsPerCall(t *testing.T) {
	svc := New()
	first := svc.CompileJSON(context.Background(), validGraphJSON())
	second := svc.CompileJSON(context.Background(), validGraphJSON())

	if first.RequestID == second.RequestID {
		t.Fatal("expected distinct request IDs across calls")
	}
}
