package dataset

import "fmt"

// ShapeMessage is reported when a document lacks the top-level levels mapping.
const ShapeMessage = "Unexpected JSON structure. Expected top-level { levels: { ... } }."

// LoadError reports a failed fetch: transport failure, a non-success status
// or an unreadable file.
type LoadError struct {
	Source string
	Status string // HTTP status line, empty for transport and file errors
	Err    error
}

func (e *LoadError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("Failed to load JSON: %s", e.Status)
	}
	return fmt.Sprintf("Failed to load JSON from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ShapeError reports a fetched document without the required structure.
type ShapeError struct {
	Source string
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Reason, e.Source, e.Err)
	}
	return e.Reason
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
