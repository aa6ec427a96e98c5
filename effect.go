package fblock

// Effect creates a Processor that performs a side effect and passes its
// input through unchanged. Writing to the execution context, logging and
// notifications are typical effects. A returned error stops the job.
//
// Example:
//
//	remember := fblock.Effect("remember_input", func(jc *fblock.Context, s string) error {
//	    jc.Set("input", s)
//	    return nil
//	})
func Effect[T any](name Name, fn func(*Context, T) error) Processor[T, T] {
	return Processor[T, T]{
		name: name,
		fn: func(jc *Context, value T) (T, error) {
			if err := fn(jc, value); err != nil {
				var zero T
				return zero, err
			}
			return value, nil
		},
	}
}
