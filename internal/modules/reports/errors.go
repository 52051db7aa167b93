package reports

import "fmt"

// ReportError is a report the API failed to produce, either as a non-2xx
// answer or as {"success": false}.
type ReportError struct {
	Status int
	Msg    string
	Err    error
}

func (e *ReportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("report failed (%d): %s", e.Status, e.Msg)
	}
	return "report failed: " + e.Msg
}

func (e *ReportError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Msg }
