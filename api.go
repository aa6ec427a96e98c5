package fblock

// Component defines the contract for a single typed processing step.
// A component consumes one value of type In together with the execution
// context of the current run, and produces one value of type Out.
//
// Component is the foundation of fblock - every step registered on a job
// implements this interface, and so does Job itself, which lets a whole job
// be nested as one step of a larger job.
//
// Key design principles:
//   - Type safety through generics (no interface{} at the call site)
//   - Error propagation for fail-fast behavior
//   - Side effects, including context mutation, belong to the component
//   - Named components for debugging and monitoring
//
// Components may carry state fixed at construction. The framework never
// synchronizes access to that state: a job whose components mutate their
// own fields is not safe to run from several goroutines at once.
type Component[In, Out any] interface {
	Process(*Context, In) (Out, error)
	Name() Name
}

// Name is a type alias for job and component names.
// Using this type encourages storing names as constants rather than
// using inline strings throughout your code.
//
// Example:
//
//	const (
//	    ReadOrdersName  fblock.Name = "read-orders"
//	    PriceOrdersName fblock.Name = "price-orders"
//	)
type Name = string

// Owner is the read-only view of a job that execution contexts expose to
// components. Components use it when they need the identity of the job
// they are running in.
type Owner interface {
	Name() Name
}
