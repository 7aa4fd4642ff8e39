package fonts

import (
	"context"
	"errors"
)

// ErrUnavailable reports that an external font tool could not be run or
// exited with an error. Callers that enumerate treat it as "no fonts"
// after logging it, so a missing tool never aborts an operation.
var ErrUnavailable = errors.New("font source unavailable")

// Source produces raw font family names from some catalogue, typically
// by running an external command.
type Source interface {
	List(ctx context.Context) ([]string, error)
}
