package models

// WrapperSuffix is appended to the subject's simple name to form the
// generated wrapper's type name.
const WrapperSuffix = "IteratingWrapper"

// GeneratedClass is the terminal output of one build: a complete Go
// compilation unit plus enough bookkeeping for the CLI to place it. It is
// never mutated after creation.
type GeneratedClass struct {
	// ClassName is the wrapper type name, <SubjectName>IteratingWrapper.
	ClassName string

	// PackageName the unit was generated into.
	PackageName string

	// FilePath is the suggested output location, next to the subject's
	// source file. Empty when the descriptor had no source anchor.
	FilePath string

	// Source is the full text of the compilation unit.
	Source string

	// WrappedMethods counts the methods that passed the eligibility filter.
	WrappedMethods int
}
