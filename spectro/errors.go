package spectro

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable = errors.New("frame source not ready")
	ErrFrameReadFailed   = errors.New("frame could not be read")
	ErrDegenerateSeries  = errors.New("intensity series is all zero")
	ErrWriteFailed       = errors.New("snapshot could not be written")
)

const (
	STAGE_CAPTURE  = "capture"
	STAGE_SNAPSHOT = "snapshot"
	STAGE_PUBLISH  = "publish"
)

// StageError reports which stage of a cycle failed and with what kind.
// errors.Is matches both the kind and the underlying cause.
type StageError struct {
	Stage string
	Kind  error
	Err   error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func stageError(stage string, kind, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Err: err}
}
