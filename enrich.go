package fblock

// Enrich creates a Processor that attempts to enhance a value. If fn
// fails, the original value continues down the chain and the job does not
// stop. Use it for optional data; use Apply when the data is required.
//
// The failure is recorded in the execution context under EnrichErrorKey
// so that later steps can still inspect it.
func Enrich[T any](name Name, fn func(*Context, T) (T, error)) Processor[T, T] {
	return Processor[T, T]{
		name: name,
		fn: func(jc *Context, value T) (T, error) {
			enriched, err := fn(jc, value)
			if err != nil {
				jc.Set(EnrichErrorKey(name), err)
				return value, nil
			}
			return enriched, nil
		},
	}
}

// EnrichErrorKey returns the context key under which Enrich stores the
// error of the named processor.
func EnrichErrorKey(name Name) string {
	return "fblock.enrich." + name + ".error"
}
