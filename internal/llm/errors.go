package llm

import (
	"errors"
	"fmt"
)

var errNoPayload = errors.New("no JSON payload found in model output")

// ServiceError means the remote call failed at the transport or HTTP-status
// level. It is surfaced immediately; the adapter never retries.
type ServiceError struct {
	Status int // 0 when the request never completed
	Cause  error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("extraction service: non-2xx status %d: %v", e.Status, e.Cause)
	}
	return fmt.Sprintf("extraction service: %v", e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

// ParseError means the remote call succeeded but no valid JSON could be
// recovered from its content. Output carries the raw offending text for
// diagnosis; callers must not parse it programmatically.
type ParseError struct {
	Output string
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model did not return valid JSON: %v\noutput was:\n%s", e.Cause, e.Output)
}

func (e *ParseError) Unwrap() error { return e.Cause }
