package fblock

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Observability constants for jobs.
const (
	// Metrics.
	JobProcessedTotal  = metricz.Key("job.processed.total")
	JobSuccessesTotal  = metricz.Key("job.successes.total")
	JobFailuresTotal   = metricz.Key("job.failures.total")
	JobStagesCompleted = metricz.Key("job.stages.completed")
	JobStagesTotal     = metricz.Key("job.stages.total")
	JobDurationMs      = metricz.Key("job.duration.ms")

	// Spans.
	JobProcessSpan = tracez.Key("job.process")
	JobStageSpan   = tracez.Key("job.stage")

	// Tags.
	JobTagName        = tracez.Tag("job.name")
	JobTagRunID       = tracez.Tag("job.run_id")
	JobTagStageCount  = tracez.Tag("job.stage_count")
	JobTagStageNumber = tracez.Tag("job.stage_number")
	JobTagStageName   = tracez.Tag("job.stage_name")
	JobTagSuccess     = tracez.Tag("job.success")
	JobTagError       = tracez.Tag("job.error")

	// Hook event keys.
	JobEventStageComplete = hookz.Key("job.stage_complete")
	JobEventComplete      = hookz.Key("job.complete")
	JobEventFailed        = hookz.Key("job.failed")
)

// State describes whether a job can run.
type State int

const (
	// StateUninitialized is the state of a job with no start component.
	StateUninitialized State = iota
	// StateReady is the state of a job with a registered chain.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// JobEvent is emitted via hookz as stages finish and when a run ends.
type JobEvent struct {
	Job             Name          // Job name
	RunID           uuid.UUID     // Execution context ID
	Stage           Name          // Stage component name (stage events only)
	StageNumber     int           // Stage number, 1-based (stage events only)
	TotalStages     int           // Number of stages in the chain
	Success         bool          // Whether the stage or run succeeded
	Error           error         // Error if the stage or run failed
	Duration        time.Duration // Stage duration (stage events only)
	CompletedStages int           // Stages completed so far
	TotalDuration   time.Duration // Run duration (run events only)
	Timestamp       time.Time     // When the event occurred
}

// Job is a named, reusable pipeline turning an In into an Out through a
// chain of components. The chain is assembled once with Start, Then and
// End (or StartAndEnd for a single step) and can then be run any number
// of times.
//
// Each call to Run creates a fresh Context that all stages of that run
// share, and that no other run sees. The stages execute one after another
// on the caller's goroutine; the first error stops the run and is returned
// to the caller unchanged.
//
// Job itself implements Component[In, Out], so a job can be embedded as a
// step of a larger job. It then runs with the outer job's Context.
//
// # Observability
//
// Metrics:
//   - job.processed.total: Counter of runs
//   - job.successes.total: Counter of successful runs
//   - job.failures.total: Counter of failed runs
//   - job.stages.total: Gauge of stages in the chain
//   - job.stages.completed: Gauge of stages completed by the last run
//   - job.duration.ms: Gauge of the last run duration
//
// Traces:
//   - job.process: Parent span for a run, tagged with the run ID
//   - job.stage: Child span for each stage
//
// Events (via hooks):
//   - job.stage_complete: Fired as each stage finishes, successful or not
//   - job.complete: Fired when a run succeeds
//   - job.failed: Fired when a run fails
//
// Example:
//
//	job := fblock.NewJob[string, string]("My job")
//	fblock.Then(fblock.Start(job, parse), total).End(format)
//
//	out, err := job.Run(ctx, "input")
type Job[In, Out any] struct {
	name    Name
	head    link
	mu      sync.RWMutex
	clock   clockz.Clock
	logger  *slog.Logger
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[JobEvent]

	closeOnce sync.Once
	closeErr  error
}

// NewJob creates an uninitialized job. An empty name is replaced by the
// job's type identity, for example "Job[string,int]".
func NewJob[In, Out any](name Name) *Job[In, Out] {
	if name == "" {
		name = fmt.Sprintf("Job[%v,%v]", reflect.TypeFor[In](), reflect.TypeFor[Out]())
	}

	// Initialize observability
	metrics := metricz.New()
	metrics.Counter(JobProcessedTotal)
	metrics.Counter(JobSuccessesTotal)
	metrics.Counter(JobFailuresTotal)
	metrics.Gauge(JobStagesCompleted)
	metrics.Gauge(JobStagesTotal)
	metrics.Gauge(JobDurationMs)

	return &Job[In, Out]{
		name:    name,
		metrics: metrics,
		tracer:  tracez.New(),
		hooks:   hookz.New[JobEvent](),
	}
}

// Name returns the job name.
func (j *Job[In, Out]) Name() Name {
	return j.name
}

// StartAndEnd registers a single component as the whole chain. It is
// Start for a component that already produces the job's output type.
func (j *Job[In, Out]) StartAndEnd(component Component[In, Out]) *Job[In, Out] {
	Start(j, component)
	return j
}

// State reports whether a start component was registered.
func (j *Job[In, Out]) State() State {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.head == nil {
		return StateUninitialized
	}
	return StateReady
}

// Len returns the number of stages in the chain.
func (j *Job[In, Out]) Len() int {
	return len(j.snapshot())
}

// Names returns the stage names from head to tail.
func (j *Job[In, Out]) Names() []Name {
	stages := j.snapshot()
	names := make([]Name, len(stages))
	for i, stage := range stages {
		names[i] = stage.name()
	}
	return names
}

// Run executes the job on input with a fresh execution context.
// It returns ErrNotInitialized if no start component was registered.
func (j *Job[In, Out]) Run(ctx context.Context, input In) (Out, error) {
	return j.Process(NewContext(ctx, j), input)
}

// Process executes the job on input with the given execution context.
// This is the entry point used when the job is a step of another job: the
// outer context, including its owner, is shared with every stage. A nil jc
// gets a fresh context, as with Run.
func (j *Job[In, Out]) Process(jc *Context, input In) (result Out, err error) {
	stages := j.snapshot()
	if len(stages) == 0 {
		return result, ErrNotInitialized
	}
	if jc == nil {
		jc = NewContext(context.Background(), j)
	}

	clock := j.getClock()
	logger := j.getLogger()

	// Track metrics
	j.metrics.Counter(JobProcessedTotal).Inc()
	j.metrics.Gauge(JobStagesTotal).Set(float64(len(stages)))
	j.metrics.Gauge(JobStagesCompleted).Set(0)
	start := clock.Now()

	// Start main span
	ctx, span := j.tracer.StartSpan(jc.Context(), JobProcessSpan)
	span.SetTag(JobTagName, j.name)
	span.SetTag(JobTagRunID, jc.ID().String())
	span.SetTag(JobTagStageCount, strconv.Itoa(len(stages)))
	outer := jc.withContext(ctx)

	completed := 0
	defer func() {
		jc.withContext(outer)
		elapsed := clock.Since(start)
		j.metrics.Gauge(JobDurationMs).Set(float64(elapsed.Milliseconds()))

		event := JobEvent{
			Job:             j.name,
			RunID:           jc.ID(),
			TotalStages:     len(stages),
			CompletedStages: completed,
			TotalDuration:   elapsed,
			Success:         err == nil,
			Error:           err,
			Timestamp:       clock.Now(),
		}
		if err == nil {
			span.SetTag(JobTagSuccess, "true")
			j.metrics.Counter(JobSuccessesTotal).Inc()
			_ = j.hooks.Emit(ctx, JobEventComplete, event) //nolint:errcheck
		} else {
			span.SetTag(JobTagSuccess, "false")
			span.SetTag(JobTagError, err.Error())
			j.metrics.Counter(JobFailuresTotal).Inc()
			_ = j.hooks.Emit(ctx, JobEventFailed, event) //nolint:errcheck
			logger.WarnContext(ctx, "job failed",
				"job", j.name,
				"run", jc.ID(),
				"completed", completed,
				"stages", len(stages),
				"error", err,
			)
		}
		span.Finish()
	}()

	var value any = input
	for i, stage := range stages {
		value, err = j.activate(jc, ctx, stage, i, len(stages), value)
		if err != nil {
			return result, err
		}
		completed++
		j.metrics.Gauge(JobStagesCompleted).Set(float64(completed))
	}

	out, ok := value.(Out)
	if !ok && (value != nil || reflect.TypeFor[Out]().Kind() != reflect.Interface) {
		return result, ErrUnterminatedChain
	}
	return out, nil
}

// activate runs one stage with its own span, panic recovery, event and
// log record.
func (j *Job[In, Out]) activate(jc *Context, ctx context.Context, stage link, index, total int, in any) (out any, err error) {
	clock := j.getClock()
	name := stage.name()

	stageCtx, span := j.tracer.StartSpan(ctx, JobStageSpan)
	span.SetTag(JobTagStageNumber, strconv.Itoa(index+1))
	span.SetTag(JobTagStageName, name)
	prev := jc.withContext(stageCtx)
	start := clock.Now()

	defer func() {
		jc.withContext(prev)
		duration := clock.Since(start)
		if err != nil {
			span.SetTag(JobTagError, err.Error())
		}
		span.Finish()

		_ = j.hooks.Emit(ctx, JobEventStageComplete, JobEvent{ //nolint:errcheck
			Job:         j.name,
			RunID:       jc.ID(),
			Stage:       name,
			StageNumber: index + 1,
			TotalStages: total,
			Success:     err == nil,
			Error:       err,
			Duration:    duration,
			Timestamp:   clock.Now(),
		})
		j.getLogger().DebugContext(ctx, "stage complete",
			"job", j.name,
			"run", jc.ID(),
			"stage", name,
			"index", index+1,
			"duration", duration,
			"success", err == nil,
		)
	}()
	defer recoverFromPanic(&err, j.name, name, index+1)

	return stage.invoke(jc, in)
}

// snapshot copies the chain into a slice so a run never observes a chain
// being rebuilt concurrently.
func (j *Job[In, Out]) snapshot() []link {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var stages []link
	for l := j.head; l != nil; l = l.successor() {
		stages = append(stages, l)
	}
	return stages
}

func (j *Job[In, Out]) setHead(head link) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.head = head
}

func (j *Job[In, Out]) attach(prev, next link) {
	j.mu.Lock()
	defer j.mu.Unlock()
	prev.setSuccessor(next)
}

// WithClock sets a custom clock for testing.
func (j *Job[In, Out]) WithClock(clock clockz.Clock) *Job[In, Out] {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.clock = clock
	return j
}

// WithLogger sets the logger receiving stage and failure records.
func (j *Job[In, Out]) WithLogger(logger *slog.Logger) *Job[In, Out] {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.logger = logger
	return j
}

// getClock returns the clock to use.
func (j *Job[In, Out]) getClock() clockz.Clock {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.clock == nil {
		return clockz.RealClock
	}
	return j.clock
}

func (j *Job[In, Out]) getLogger() *slog.Logger {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.logger == nil {
		return slog.Default()
	}
	return j.logger
}

// Metrics returns the metrics registry for this job.
func (j *Job[In, Out]) Metrics() *metricz.Registry {
	return j.metrics
}

// Tracer returns the tracer for this job.
func (j *Job[In, Out]) Tracer() *tracez.Tracer {
	return j.tracer
}

// Close gracefully shuts down observability components. It waits for the
// hook handlers of queued events to return. Calls after the first one
// return the first result.
func (j *Job[In, Out]) Close() error {
	j.closeOnce.Do(func() {
		if j.tracer != nil {
			j.tracer.Close()
		}
		j.closeErr = j.hooks.Close()
	})
	return j.closeErr
}

// OnStageComplete registers a handler called asynchronously each time a
// stage finishes, whether it succeeds or fails.
func (j *Job[In, Out]) OnStageComplete(handler func(context.Context, JobEvent) error) error {
	_, err := j.hooks.Hook(JobEventStageComplete, handler)
	return err
}

// OnComplete registers a handler called asynchronously after a successful run.
func (j *Job[In, Out]) OnComplete(handler func(context.Context, JobEvent) error) error {
	_, err := j.hooks.Hook(JobEventComplete, handler)
	return err
}

// OnFailure registers a handler called asynchronously after a failed run.
func (j *Job[In, Out]) OnFailure(handler func(context.Context, JobEvent) error) error {
	_, err := j.hooks.Hook(JobEventFailed, handler)
	return err
}
