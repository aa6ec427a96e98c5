package fblock

// Mutate creates a Processor that applies transformer only when condition
// holds. Otherwise the value passes through unchanged.
//
// Example:
//
//	clamp := fblock.Mutate("clamp",
//	    func(_ *fblock.Context, n int) int { return 100 },
//	    func(_ *fblock.Context, n int) bool { return n > 100 },
//	)
func Mutate[T any](name Name, transformer func(*Context, T) T, condition func(*Context, T) bool) Processor[T, T] {
	return Processor[T, T]{
		name: name,
		fn: func(jc *Context, value T) (T, error) {
			if condition(jc, value) {
				return transformer(jc, value), nil
			}
			return value, nil
		},
	}
}
