package fblock

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// Context is the per-run store shared by every component of a job.
// A fresh Context is created for each call to Job.Run and dropped when the
// call returns, so values written by one run are never visible to another.
//
// Use it to pass values between components that are not part of the typed
// data flow, and use it sparingly: every key is an implicit dependency
// between two steps.
//
// Context is not safe for concurrent use. Steps of a run execute one after
// another, which is the only access pattern the framework produces.
type Context struct {
	id     uuid.UUID
	values map[string]any
	owner  Owner
	ctx    context.Context
}

// NewContext creates an empty execution context bound to owner.
// A nil ctx is replaced by context.Background().
//
// Job.Run calls NewContext itself; call it directly only when driving
// Job.Process by hand, for example to seed values before a run.
func NewContext(ctx context.Context, owner Owner) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		id:     uuid.New(),
		values: make(map[string]any),
		owner:  owner,
		ctx:    ctx,
	}
}

// ID identifies the run. It appears in log records, spans and events.
func (c *Context) ID() uuid.UUID {
	return c.id
}

// Job returns the job this context was created for.
func (c *Context) Job() Owner {
	return c.owner
}

// Context returns the Go context of the run. While a stage executes it
// carries that stage's span.
func (c *Context) Context() context.Context {
	return c.ctx
}

// withContext swaps the Go context and returns the previous one.
func (c *Context) withContext(ctx context.Context) context.Context {
	prev := c.ctx
	c.ctx = ctx
	return prev
}

// Set stores value under key, replacing any previous value.
func (c *Context) Set(key string, value any) {
	c.values[key] = value
}

// Has reports whether a value is stored under key.
func (c *Context) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Delete removes the value stored under key, if any.
func (c *Context) Delete(key string) {
	delete(c.values, key)
}

// Len returns the number of stored values.
func (c *Context) Len() int {
	return len(c.values)
}

// Keys returns the stored keys in lexical order.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key as a T.
//
// Get never fails: a missing key, or a value of another type, yields the
// zero value of T. This means "not set yet" cannot be told apart from a
// stored zero through Get, which can hide ordering bugs between steps.
// Use Lookup when the difference matters.
func Get[T any](c *Context, key string) T {
	v, _ := Lookup[T](c, key)
	return v
}

// Lookup returns the value stored under key as a T and whether such a
// value exists. The boolean is false when the key is absent or holds a
// value of another type.
func Lookup[T any](c *Context, key string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	raw, ok := c.values[key]
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
