package entities

import (
	"errors"
	"fmt"
)

// ErrUnknownAutoReqMode reports an auto-req mode string that names neither a
// known mode nor an existing script path.
var ErrUnknownAutoReqMode = errors.New("unknown auto-req mode")

// ProcessError reports a failure to spawn or communicate with an external
// program. It aborts the current discovery call; per-file soft failures are
// never wrapped in it.
type ProcessError struct {
	Program string
	Err     error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Program, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
