// Package observer implements an event-driven observer pattern for the
// compile service's pipeline.
//
// # Overview
//
// pkg/compileservice emits one CompileStart/CompileEnd pair per Compile
// call, and one StageStart/StageSuccess|StageFailure pair for each of the
// six pipeline stages: intake, validate, schedule, infer, emit, assemble.
// Observers can log these events, feed them to telemetry (pkg/telemetry's
// CompileObserver), or stream them to an external system, without the
// compile service depending on any particular sink.
//
// # Basic usage
//
//	mgr := observer.NewManager()
//	mgr.Register(observer.NewConsoleObserver())
//	mgr.Notify(ctx, observer.Event{
//	    Type:      observer.EventCompileStart,
//	    Status:    observer.StatusStarted,
//	    RequestID: reqID,
//	})
//
// # Built-in observers
//
// NoOpObserver discards all events. ConsoleObserver logs them through a
// Logger (NewDefaultLogger by default). Manager fans a single Notify call
// out to every registered observer concurrently, recovering from any
// observer panic so one misbehaving observer cannot affect another or the
// compile call itself.
//
// # Thread safety
//
// Manager.Notify dispatches to each observer in its own goroutine.
// Observer implementations must be safe for concurrent use.
package observer
