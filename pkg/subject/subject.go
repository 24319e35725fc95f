// Package subject holds the narrow runtime contracts that generated
// iterating wrappers compile against: the failure strategy, the subject
// factory, and the generic base type every concrete subject embeds.
package subject

import (
	"fmt"
	"iter"
)

// ImportPath is the canonical import path of this package. The generator
// emits it as one of the two fixed imports of every wrapper file, and the
// introspector uses it to recognize the base embed.
const ImportPath = "github.com/proofkit/iterwrap/pkg/subject"

// FailureStrategy decides what happens when a check fails. Implementations
// may panic, record, or report to a testing.T; subjects never decide.
type FailureStrategy interface {
	// Fail reports a failed check.
	Fail(message string)

	// FailComparing reports a failed comparison between an expected and an
	// actual value.
	FailComparing(message string, expected, actual interface{})
}

// Factory builds a concrete subject around a single element. Generated
// wrappers call it once per element of the wrapped sequence and assert the
// result back to the concrete subject type.
type Factory interface {
	NewSubject(strategy FailureStrategy, element interface{}) interface{}
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc func(strategy FailureStrategy, element interface{}) interface{}

// NewSubject calls f.
func (f FactoryFunc) NewSubject(strategy FailureStrategy, element interface{}) interface{} {
	return f(strategy, element)
}

// Subject is the base type every concrete subject embeds, directly or
// through intermediate subject types. S is the concrete subject type and T
// is the target element type; the generator resolves T from type-argument
// slot 1 of this embed.
type Subject[S any, T any] struct {
	strategy FailureStrategy
	actual   T
	name     string
}

// New builds a base subject around one actual value.
func New[S any, T any](strategy FailureStrategy, actual T) Subject[S, T] {
	return Subject[S, T]{strategy: strategy, actual: actual}
}

// Actual returns the value under test.
func (s *Subject[S, T]) Actual() T {
	return s.actual
}

// Named attaches a display name used in failure messages.
func (s *Subject[S, T]) Named(name string) {
	s.name = name
}

// Name returns the display name, or the empty string if none was set.
func (s *Subject[S, T]) Name() string {
	return s.name
}

// Strategy returns the failure strategy the subject reports through.
func (s *Subject[S, T]) Strategy() FailureStrategy {
	return s.strategy
}

// Fail reports a failed check through the configured strategy, prefixing
// the subject name when one was set.
func (s *Subject[S, T]) Fail(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if s.name != "" {
		message = s.name + ": " + message
	}
	s.strategy.Fail(message)
}

// Of builds a sequence from a fixed set of elements. It is a convenience
// for feeding literal values to a generated wrapper constructor.
func Of[T any](elements ...T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range elements {
			if !yield(e) {
				return
			}
		}
	}
}
