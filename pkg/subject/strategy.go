package subject

import "fmt"

// Recorder is a FailureStrategy that collects failure messages instead of
// aborting. Tests use it to assert which checks fired.
type Recorder struct {
	Failures []string
}

// Fail appends the message to the recorded failures.
func (r *Recorder) Fail(message string) {
	r.Failures = append(r.Failures, message)
}

// FailComparing appends a formatted comparison failure.
func (r *Recorder) FailComparing(message string, expected, actual interface{}) {
	r.Failures = append(r.Failures, fmt.Sprintf("%s: expected %v, got %v", message, expected, actual))
}

// Empty reports whether no failures were recorded.
func (r *Recorder) Empty() bool {
	return len(r.Failures) == 0
}

// PanicStrategy is a FailureStrategy that panics on the first failure.
type PanicStrategy struct{}

// Fail panics with the failure message.
func (PanicStrategy) Fail(message string) {
	panic("check failed: " + message)
}

// FailComparing panics with a formatted comparison failure.
func (PanicStrategy) FailComparing(message string, expected, actual interface{}) {
	panic(fmt.Sprintf("check failed: %s: expected %v, got %v", message, expected, actual))
}
