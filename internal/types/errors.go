package types

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter marks bad configuration values, caught before any I/O.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrCompressionUnavailable reports that the gifsicle binary is not
// installed. The pipeline degrades to the uncompressed artifact instead of
// failing the run.
var ErrCompressionUnavailable = errors.New("gifsicle not available")

// Stage names the pipeline step a failure happened in.
type Stage string

const (
	StagePlanning    Stage = "planning"
	StageSampling    Stage = "sampling"
	StageCompositing Stage = "compositing"
	StageEncoding    Stage = "encoding"
	StageCompressing Stage = "compressing"
)

// CoordinationError reports that the parallel sampling mechanism itself
// broke (worker panic, lost result), as opposed to a single clip failing to
// decode. The coordinator retries the plan sequentially exactly once.
type CoordinationError struct {
	Cause error
}

func (e *CoordinationError) Error() string {
	return fmt.Sprintf("parallel coordination failed: %v", e.Cause)
}

func (e *CoordinationError) Unwrap() error { return e.Cause }

// PipelineError is a terminal run failure carrying the stage it happened in.
type PipelineError struct {
	Stage Stage
	Cause error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline failed during %s: %v", e.Stage, e.Cause)
}

func (e *PipelineError) Unwrap() error { return e.Cause }
