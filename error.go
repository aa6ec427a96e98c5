package fblock

import (
	"errors"
	"fmt"
)

// Job execution errors.
var (
	// ErrNotInitialized is returned when a job runs before a start
	// component was registered.
	ErrNotInitialized = errors.New("job start component not defined")

	// ErrUnterminatedChain is returned when the last stage of a chain does
	// not produce the job's output type. Chains closed with End cannot
	// produce it.
	ErrUnterminatedChain = errors.New("job chain does not produce the job output type")
)

// PanicError reports a component that panicked during a run.
// The panic is recovered at the stage boundary and surfaces as an error
// from Run, like any other component failure.
type PanicError struct {
	Value any
	Job   Name
	Stage Name
	Index int
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("job %q: stage %q (%d) panicked: %v", e.Job, e.Stage, e.Index, e.Value)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func recoverFromPanic(err *error, job Name, stage Name, index int) {
	if r := recover(); r != nil {
		*err = &PanicError{
			Value: r,
			Job:   job,
			Stage: stage,
			Index: index,
		}
	}
}
