// Package fblock builds named, reusable jobs out of typed processing steps.
//
// # Overview
//
// A job is a chain of components. Each component turns one typed value into
// another, and the output type of every component is checked at compile time
// against the input type of the next one. All components of one run share an
// execution context: a short-lived, string-keyed store that lets steps pass
// values outside of the typed data flow.
//
// # Core Concepts
//
//   - Component[In, Out]: the unit of work, Process(*Context, In) (Out, error)
//   - Job[In, Out]: a named chain, run with Run(ctx, input)
//   - Context: the per-run store, with typed Get and Lookup accessors
//   - Builder: Start, Then and End assemble a chain with type checking
//
// # Adapter Functions
//
// Adapters wrap plain functions as components:
//
//   - Transform: conversions that cannot fail
//   - Apply: operations that may fail
//   - Effect: side effects, passing the input through
//   - Mutate: conditional changes
//   - Enrich: best-effort enhancements
//
// # Usage Example
//
//	const dummyValue = "DUMMY_VALUE"
//
//	store := fblock.Apply("store", func(jc *fblock.Context, s string) (string, error) {
//	    jc.Set(dummyValue, 1337)
//	    return jc.Job().Name(), nil
//	})
//	load := fblock.Transform("load", func(jc *fblock.Context, _ string) int {
//	    return fblock.Get[int](jc, dummyValue)
//	})
//	format := fblock.Transform("format", func(_ *fblock.Context, n int) string {
//	    return strconv.Itoa(n)
//	})
//
//	job := fblock.NewJob[string, string]("My job")
//	fblock.Then(fblock.Start(job, store), load).End(format)
//
//	out, err := job.Run(context.Background(), "")
//	// out: "1337"
//
// # Execution Model
//
// Stages run one after another on the caller's goroutine. The first error
// stops the run and is returned unchanged; a panicking component is reported
// as a *PanicError. The Go context given to Run travels with the execution
// context and is never checked between stages: cancellation is up to the
// components.
//
// Each run gets its own Context, so a job made of stateless components can be
// run from several goroutines at once. Components holding mutable state are
// not protected by the framework.
//
// # Nesting
//
// Job implements Component, so a job can be a step of another job. The inner
// job then runs with the outer job's Context.
package fblock
