package analysis

import (
	"fmt"
	"strings"
)

// ValidationReason identifies which date-range rule rejected a request.
type ValidationReason string

const (
	ReasonWindowTooShort ValidationReason = "window_too_short"
	ReasonStartInFuture  ValidationReason = "start_in_future"
	ReasonEndInFuture    ValidationReason = "end_in_future"
	ReasonIdenticalDates ValidationReason = "identical_dates"
	ReasonEndBeforeStart ValidationReason = "end_before_start"
)

// IncompleteInputError means one or more required fields were unset at
// submission. It is reported before any date-range rule runs.
type IncompleteInputError struct {
	Missing []string
}

func (e *IncompleteInputError) Error() string {
	return fmt.Sprintf("please fill in all input fields (missing: %s)", strings.Join(e.Missing, ", "))
}

// ValidationError is a date-range rule violation. Message is the
// user-visible explanation; Reason is stable for logs and metrics.
type ValidationError struct {
	Reason  ValidationReason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// FetchError means an external source was unreachable or returned a
// non-success status. The whole analysis run is abandoned when either
// fetcher fails; partial results are never displayed.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s data: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FormatError means a sentiment timestamp did not match the compact
// YYYYMMDDTHHMMSS format. The normalizer surfaces it; the pipeline decides
// whether to degrade to an empty series or propagate.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed time_published %q: %v", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
