package errors

import "fmt"

// NewDescriptorError reports that a subject type could not be described.
func NewDescriptorError(subjectType, reason string) *BaseError {
	return Newf(DescriptorErrorCode, "cannot describe %s: %s", subjectType, reason).
		WithSuggestion("ensure the type embeds subject.Subject[S, T] with both type arguments").
		WithSuggestion("check that //iterwrap:: directives reference existing parameters")
}

// NewEmissionError reports a structurally incomplete descriptor. No partial
// output is ever produced for one.
func NewEmissionError(subjectType, reason string) *BaseError {
	return Newf(EmissionErrorCode, "cannot emit wrapper for %s: %s", subjectType, reason)
}

// NewSyntaxError reports a malformed directive at a source location.
func NewSyntaxError(loc SourceLocation, format string, args ...interface{}) *BaseError {
	return Newf(SyntaxErrorCode, format, args...).WithLocation(loc)
}

// NewCollisionError reports two subjects whose generated wrappers would land
// on the same output file.
func NewCollisionError(path, first, second string) *BaseError {
	return New(ValidationErrorCode,
		fmt.Sprintf("generated file collision at %s: %s and %s produce the same wrapper name", path, first, second)).
		WithSuggestion("rename one of the subject types or generate from separate packages")
}
