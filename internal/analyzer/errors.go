package analyzer

import "fmt"

// ExternalCallError reports a failed call to one of the vendor services,
// scraping or generation.
type ExternalCallError struct {
	Service string
	Err     error
}

func (e *ExternalCallError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Service, e.Err)
}

func (e *ExternalCallError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports model output that could not be used as a
// verdict: not JSON at all, or JSON missing required fields.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed verdict: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed verdict: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
