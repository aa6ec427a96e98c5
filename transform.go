package fblock

// Transform creates a Processor from a function that cannot fail.
// Use it for formatting, conversions and computed values.
//
// If the conversion might fail, use Apply instead.
//
// Example:
//
//	toUpper := fblock.Transform("to_upper", func(_ *fblock.Context, n int) string {
//	    return strings.ToUpper(strconv.Itoa(n))
//	})
func Transform[In, Out any](name Name, fn func(*Context, In) Out) Processor[In, Out] {
	return Processor[In, Out]{
		name: name,
		fn: func(jc *Context, input In) (Out, error) {
			return fn(jc, input), nil
		},
	}
}
