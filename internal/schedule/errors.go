package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimestamp is returned for a row time outside the supported
	// calendar range.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrBuildFailed matches every *BuildError.
	ErrBuildFailed = errors.New("schedule build failed")

	// ErrEmptyResult is returned when no row survived enrichment. An empty
	// index has no maximum key, so tier scans would have no bound.
	ErrEmptyResult = errors.New("schedule build produced no entries")
)

// BuildError reports the row that aborted a build. Row is the 1-based input
// record number, counting a skipped CSV header, or 0 when the input could not
// be read at all.
type BuildError struct {
	Row int
	Err error
}

func (e *BuildError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%v: %v", ErrBuildFailed, e.Err)
	}
	return fmt.Sprintf("%v: row %d: %v", ErrBuildFailed, e.Row, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBuildFailed) true for any BuildError.
func (e *BuildError) Is(target error) bool {
	return target == ErrBuildFailed
}
