package executor

import (
	"errors"
	"fmt"

	"github.com/danieljhkim/sbplan/internal/backend"
	"github.com/danieljhkim/sbplan/internal/planner"
)

var (
	// ErrBackendMissing indicates the package manager tool is not installed.
	ErrBackendMissing = errors.New("package manager not found")

	// ErrAborted indicates the run stopped before every included entry was attempted.
	ErrAborted = errors.New("execution aborted")

	// ErrOperationFailed matches every *OperationFailedError.
	ErrOperationFailed = errors.New("operation failed")
)

// OperationFailedError reports a backend operation that exited non-zero.
type OperationFailedError struct {
	Package string
	Action  planner.Action
	Status  backend.ExitStatus
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("%s %s failed with exit status %d", e.Action, e.Package, e.Status)
}

func (e *OperationFailedError) Unwrap() error {
	return ErrOperationFailed
}
