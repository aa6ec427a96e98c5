package fblock

// Processor is a named component built from a plain function.
// It is created by the adapter functions Transform, Apply, Effect, Mutate
// and Enrich, and is the quickest way to turn existing code into a step.
//
// The name appears in span tags, hook events, log records and job
// drawings, so it should say what the step does:
//   - Use descriptive, action-oriented names ("read_orders", not "orders")
//   - Keep names concise but meaningful
type Processor[In, Out any] struct {
	fn   func(*Context, In) (Out, error)
	name Name
}

// Process implements the Component interface.
func (p Processor[In, Out]) Process(jc *Context, input In) (Out, error) {
	return p.fn(jc, input)
}

// Name returns the name of the processor.
func (p Processor[In, Out]) Name() Name {
	return p.name
}
