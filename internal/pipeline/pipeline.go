package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/facultyscan/internal/dom"
	"github.com/nao1215/facultyscan/internal/model"
)

// Run carries the state of one pipeline execution between steps.
// Report is what the user sees; Page and Document are the working copy of
// the page being extracted and are not serialized.
type Run struct {
	// Report accumulates the outcome of every step.
	Report *model.Report

	// Page is the page records are extracted from, once a step found it.
	Page *model.Page

	// Document is Page parsed.
	Document *dom.Document
}

// NewRun creates a Run with a fresh report.
func NewRun(seedURL string) *Run {
	return &Run{Report: model.NewReport(seedURL)}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, each receiving the run as left by the
// previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and debugging
// 3. Tests can substitute any step with a fake
type Step interface {
	// Do executes the pipeline step.
	// Returns an error only for failures that make later steps pointless;
	// per-page and per-record problems are logged instead.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. Failed steps are logged and the last error is
// recorded in the report.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given steps and options.
func New(steps []Step, opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: append(make([]Step, 0, len(steps)), steps...),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// Execute runs all pipeline steps in sequence.
//
// Design decision: We check the context before each step rather than
// during, because steps handle their own cancellation. A cancelled run
// is flagged in the report.
//
// Returns the first error encountered if continueOnError is false.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	defer func() {
		run.Report.FinishedAt = time.Now()
	}()

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			run.Report.TimedOut = true
			p.recordError(run, err)
			return err
		}

		p.logger.Info("executing step", "step", step.Name())

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"error", err,
			)
			p.recordError(run, err)
			if ctx.Err() != nil {
				run.Report.TimedOut = true
			}
			if !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("step completed", "step", step.Name())
		}

		run.Report.PerformedSteps = append(run.Report.PerformedSteps, step.Name())
	}

	return nil
}

func (p *Pipeline) recordError(run *Run, err error) {
	run.Report.Error = err
	run.Report.ErrorMessage = err.Error()
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
