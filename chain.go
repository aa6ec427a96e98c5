package fblock

// link is the type-erased view of a chain node. It lets nodes of different
// input and output types sit in one singly linked sequence.
type link interface {
	invoke(jc *Context, in any) (any, error)
	successor() link
	setSuccessor(next link)
	name() Name
}

// node binds one component to an optional successor.
type node[In, Out any] struct {
	component Component[In, Out]
	next      link
}

func bind[In, Out any](component Component[In, Out]) *node[In, Out] {
	return &node[In, Out]{component: component}
}

func (n *node[In, Out]) invoke(jc *Context, in any) (any, error) {
	// The builder only links a node after one producing In, so the
	// assertion holds. The comma-ok form covers In being an interface
	// type and the previous stage returning nil.
	v, _ := in.(In)
	return n.component.Process(jc, v)
}

func (n *node[In, Out]) successor() link {
	return n.next
}

func (n *node[In, Out]) setSuccessor(next link) {
	n.next = next
}

func (n *node[In, Out]) name() Name {
	if n.component == nil {
		return ""
	}
	return n.component.Name()
}

// Builder appends components to a job's chain. Cur is the output type of
// the last component appended, which is the input type the next component
// must accept.
//
// Go methods cannot declare their own type parameters, so a step that
// changes the data type is appended with the Then function. Steps keeping
// the current type can use the Then method, and End closes the chain with
// a component producing the job's output type.
//
//	job := fblock.NewJob[string, string]("pipeline")
//	fblock.Then(fblock.Start(job, readCount), double).End(format)
type Builder[In, Out, Cur any] struct {
	job  *Job[In, Out]
	tail link
}

// Start registers component as the head of job's chain and returns a
// builder to append the following steps. Calling Start again replaces the
// whole chain.
func Start[In, Out, Cur any](job *Job[In, Out], component Component[In, Cur]) *Builder[In, Out, Cur] {
	n := bind(component)
	job.setHead(n)
	return &Builder[In, Out, Cur]{job: job, tail: n}
}

// Then appends component after the builder's last step. The component
// must consume the builder's current type; a mismatch is a compile error.
//
// Calling Then twice on the same builder replaces the successor set by the
// first call.
func Then[In, Out, Cur, Next any](b *Builder[In, Out, Cur], component Component[Cur, Next]) *Builder[In, Out, Next] {
	n := bind(component)
	b.job.attach(b.tail, n)
	return &Builder[In, Out, Next]{job: b.job, tail: n}
}

// Then appends a component that keeps the current type.
func (b *Builder[In, Out, Cur]) Then(component Component[Cur, Cur]) *Builder[In, Out, Cur] {
	return Then(b, component)
}

// End appends the last component of the chain. Its output type must be the
// job's output type. End returns the job so that declaration and assembly
// can be written as one expression.
func (b *Builder[In, Out, Cur]) End(component Component[Cur, Out]) *Job[In, Out] {
	Then(b, component)
	return b.job
}
