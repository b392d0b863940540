package sandbox

import (
	"errors"
	"fmt"
)

// ErrEngineExecution classifies every failure inside the analyzer context.
var ErrEngineExecution = errors.New("analyzer execution failed")

// Stage names the protocol step that failed.
type Stage string

const (
	StageLoad    Stage = "load"
	StageBind    Stage = "bind"
	StageEval    Stage = "eval"
	StageCollect Stage = "collect"
)

// ExecutionError is returned for script exceptions, syntax errors,
// interrupts and protocol violations.
type ExecutionError struct {
	Stage   Stage
	Message string
	Err     error // underlying cause, e.g. context.DeadlineExceeded
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("analyzer execution failed during %s: %s", e.Stage, e.Message)
}

func (e *ExecutionError) Is(target error) bool { return target == ErrEngineExecution }

func (e *ExecutionError) Unwrap() error { return e.Err }

func execErr(stage Stage, err error) *ExecutionError {
	return &ExecutionError{Stage: stage, Message: err.Error(), Err: err}
}

// TooManyRecordsError is the collect-stage cause when the analyzer reports
// an errors array longer than the limit.
type TooManyRecordsError struct {
	Length int64
	Max    int
}

func (e *TooManyRecordsError) Error() string {
	return fmt.Sprintf("analyzer reported %d records, limit is %d", e.Length, e.Max)
}
