// Package annotations parses //iterwrap:: directives from Go doc comments.
// Directives are the only way a subject author influences generation:
// marking a type for wrapping, flagging method modifiers the Go syntax
// cannot carry, and attaching ordered parameter annotations.
package annotations

import (
	"fmt"

	"github.com/proofkit/iterwrap/internal/errors"
)

// AnnotationType identifies the kind of directive.
type AnnotationType int

const (
	// AnnotationSubject marks a struct type for wrapper generation.
	// Usage: //iterwrap::subject
	AnnotationSubject AnnotationType = iota

	// AnnotationFinal marks a method as final: never wrapped.
	// Usage: //iterwrap::final
	AnnotationFinal

	// AnnotationStatic marks a method as static: never wrapped.
	// Usage: //iterwrap::static
	AnnotationStatic

	// AnnotationPrivate marks a method as private: never wrapped.
	// Usage: //iterwrap::private
	AnnotationPrivate

	// AnnotationParam attaches ordered annotation names to one parameter.
	// Usage: //iterwrap::param 0 @nonNil @trimmed
	AnnotationParam
)

// String returns the directive keyword for the annotation type.
func (t AnnotationType) String() string {
	switch t {
	case AnnotationSubject:
		return "subject"
	case AnnotationFinal:
		return "final"
	case AnnotationStatic:
		return "static"
	case AnnotationPrivate:
		return "private"
	case AnnotationParam:
		return "param"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts a directive keyword into an AnnotationType.
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "subject":
		return AnnotationSubject, nil
	case "final":
		return AnnotationFinal, nil
	case "static":
		return AnnotationStatic, nil
	case "private":
		return AnnotationPrivate, nil
	case "param":
		return AnnotationParam, nil
	default:
		return AnnotationSubject, fmt.Errorf("unknown annotation type %q", s)
	}
}

// ParsedAnnotation is one successfully parsed directive.
type ParsedAnnotation struct {
	Type AnnotationType

	// Target names the declaration the directive was attached to, in
	// "Type" or "Type.Method" form.
	Target string

	// ParamIndex is the zero-based parameter index of a param directive.
	ParamIndex int

	// Names holds the ordered @-annotation names of a param directive,
	// repetition preserved.
	Names []string

	Location errors.SourceLocation

	// Raw is the original comment text, kept for error reporting.
	Raw string
}
