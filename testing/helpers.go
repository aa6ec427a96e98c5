// Package testing provides test utilities and helpers for fblock jobs.
//
// This package includes mock components, context recorders and assertion
// helpers to make testing job chains easier.
//
// Example usage:
//
//	func TestMyJob(t *testing.T) {
//		mock := fbtest.NewMockComponent[string, int](t, "mock-component")
//		mock.WithReturn(42, nil)
//
//		job := fblock.NewJob[string, int]("test-job").StartAndEnd(mock)
//		result, err := job.Run(context.Background(), "input")
//
//		require.NoError(t, err)
//		assert.Equal(t, 42, result)
//		fbtest.AssertProcessed(t, mock, 1)
//	}
package testing

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	fblock "github.com/YuukanOO/FBlock"
)

// MockComponent provides a configurable mock implementation of
// fblock.Component[In, Out]. It tracks calls, allows configuring return
// values and panics, and records the execution context of every call.
type MockComponent[In, Out any] struct { //nolint:govet // fieldalignment: Test helper struct optimized for functionality over memory efficiency
	t           *testing.T
	name        string
	callCount   int64
	lastInput   In
	returnVal   Out
	returnErr   error
	fn          func(*fblock.Context, In) (Out, error)
	panicMsg    string
	mu          sync.RWMutex
	callHistory []MockCall[In]
	maxHistory  int
}

// MockCall represents a single call to the mock component.
type MockCall[In any] struct {
	Input     In
	Timestamp time.Time
	Context   *fblock.Context
}

// NewMockComponent creates a new mock component for testing.
func NewMockComponent[In, Out any](t *testing.T, name string) *MockComponent[In, Out] {
	return &MockComponent[In, Out]{
		t:          t,
		name:       name,
		maxHistory: 100, // Keep last 100 calls by default
	}
}

// WithReturn configures the mock to return specific values.
func (m *MockComponent[In, Out]) WithReturn(val Out, err error) *MockComponent[In, Out] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returnVal = val
	m.returnErr = err
	return m
}

// WithFunc configures the mock to delegate to fn. It takes precedence over
// WithReturn.
func (m *MockComponent[In, Out]) WithFunc(fn func(*fblock.Context, In) (Out, error)) *MockComponent[In, Out] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	return m
}

// WithPanic configures the mock to panic with a specific message.
func (m *MockComponent[In, Out]) WithPanic(msg string) *MockComponent[In, Out] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicMsg = msg
	return m
}

// WithHistorySize configures how many calls to keep in history.
// Set to 0 to disable history tracking.
func (m *MockComponent[In, Out]) WithHistorySize(size int) *MockComponent[In, Out] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxHistory = size
	if size == 0 {
		m.callHistory = nil
	} else if len(m.callHistory) > size {
		m.callHistory = m.callHistory[len(m.callHistory)-size:]
	}
	return m
}

// Name returns the name of the mock component.
func (m *MockComponent[In, Out]) Name() fblock.Name {
	return fblock.Name(m.name)
}

// Process implements fblock.Component. It records the call and returns the
// configured values.
func (m *MockComponent[In, Out]) Process(jc *fblock.Context, input In) (Out, error) {
	atomic.AddInt64(&m.callCount, 1)

	m.mu.Lock()
	m.lastInput = input
	if m.maxHistory > 0 {
		m.callHistory = append(m.callHistory, MockCall[In]{
			Input:     input,
			Timestamp: time.Now(),
			Context:   jc,
		})
		if len(m.callHistory) > m.maxHistory {
			m.callHistory = m.callHistory[1:] // Remove oldest
		}
	}
	fn := m.fn
	returnVal := m.returnVal
	returnErr := m.returnErr
	panicMsg := m.panicMsg
	m.mu.Unlock()

	if panicMsg != "" {
		panic(panicMsg)
	}
	if fn != nil {
		return fn(jc, input)
	}
	return returnVal, returnErr
}

// CallCount returns the number of times Process has been called.
func (m *MockComponent[In, Out]) CallCount() int {
	return int(atomic.LoadInt64(&m.callCount))
}

// LastInput returns the input from the most recent call.
func (m *MockComponent[In, Out]) LastInput() In {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastInput
}

// CallHistory returns a copy of all recorded calls.
func (m *MockComponent[In, Out]) CallHistory() []MockCall[In] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.maxHistory == 0 {
		return nil
	}
	history := make([]MockCall[In], len(m.callHistory))
	copy(history, m.callHistory)
	return history
}

// Reset clears all call tracking.
func (m *MockComponent[In, Out]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.StoreInt64(&m.callCount, 0)
	m.lastInput = *new(In)
	m.callHistory = nil
}

// Recorder is a pass-through component that snapshots the execution
// context each time it runs. Put it between two steps to check what the
// earlier steps stored.
type Recorder[T any] struct {
	name      string
	mu        sync.Mutex
	snapshots []map[string]any
}

// NewRecorder creates a recorder component.
func NewRecorder[T any](name string) *Recorder[T] {
	return &Recorder[T]{name: name}
}

// Name returns the name of the recorder.
func (r *Recorder[T]) Name() fblock.Name {
	return fblock.Name(r.name)
}

// Process implements fblock.Component.
func (r *Recorder[T]) Process(jc *fblock.Context, input T) (T, error) {
	snapshot := make(map[string]any, jc.Len())
	for _, key := range jc.Keys() {
		v, _ := fblock.Lookup[any](jc, key)
		snapshot[key] = v
	}

	r.mu.Lock()
	r.snapshots = append(r.snapshots, snapshot)
	r.mu.Unlock()
	return input, nil
}

// Snapshots returns the recorded context contents, one map per run.
func (r *Recorder[T]) Snapshots() []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]map[string]any, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}

// Assertion Helpers

// AssertProcessed verifies that a mock component was called exactly n times.
func AssertProcessed[In, Out any](t *testing.T, mock *MockComponent[In, Out], expectedCalls int) {
	t.Helper()
	actualCalls := mock.CallCount()
	if actualCalls != expectedCalls {
		t.Errorf("expected mock component %s to be called %d times, but was called %d times",
			mock.name, expectedCalls, actualCalls)
	}
}

// AssertNotProcessed verifies that a mock component was never called.
func AssertNotProcessed[In, Out any](t *testing.T, mock *MockComponent[In, Out]) {
	t.Helper()
	AssertProcessed(t, mock, 0)
}

// AssertProcessedWith verifies that a mock component was last called with
// a specific input.
func AssertProcessedWith[In comparable, Out any](t *testing.T, mock *MockComponent[In, Out], expectedInput In) {
	t.Helper()
	if mock.CallCount() == 0 {
		t.Errorf("expected mock component %s to be called with input %v, but it was never called",
			mock.name, expectedInput)
		return
	}

	actualInput := mock.LastInput()
	if actualInput != expectedInput {
		t.Errorf("expected mock component %s to be called with input %v, but was called with %v",
			mock.name, expectedInput, actualInput)
	}
}

// AssertContextValue verifies that jc holds expected under key.
func AssertContextValue[T comparable](t *testing.T, jc *fblock.Context, key string, expected T) {
	t.Helper()
	actual, ok := fblock.Lookup[T](jc, key)
	if !ok {
		t.Errorf("expected context key %q to hold %v, but it is absent or of another type", key, expected)
		return
	}
	if actual != expected {
		t.Errorf("expected context key %q to hold %v, got %v", key, expected, actual)
	}
}

// AssertSharedContext verifies that all the given calls ran with the same
// execution context.
func AssertSharedContext[In any](t *testing.T, calls ...MockCall[In]) {
	t.Helper()
	for i := 1; i < len(calls); i++ {
		if calls[i].Context != calls[0].Context {
			t.Errorf("call %d ran with a different execution context", i)
		}
	}
}

// ParallelTest runs testFunc in multiple goroutines and waits for all of them.
func ParallelTest(t *testing.T, goroutines int, testFunc func(int)) {
	t.Helper()
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			testFunc(id)
		}(i)
	}
	wg.Wait()
}
