package fblock

// Apply creates a Processor from a function that may fail.
// Apply is the workhorse adapter: parsing, lookups and calls to external
// systems. The returned error stops the job and reaches the caller as is.
//
// Example:
//
//	parse := fblock.Apply("parse_count", func(_ *fblock.Context, s string) (int, error) {
//	    return strconv.Atoi(s)
//	})
func Apply[In, Out any](name Name, fn func(*Context, In) (Out, error)) Processor[In, Out] {
	return Processor[In, Out]{
		name: name,
		fn:   fn,
	}
}
