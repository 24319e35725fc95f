// Package models holds the immutable data passed between the introspector,
// the member filter, and the emitter. Descriptors are built once per
// generation run and never mutated afterwards.
package models

// SubjectDescriptor is the introspected view of one subject type. The
// method list is ordered exactly as the methods were declared in source;
// that order is also the emission order.
type SubjectDescriptor struct {
	// PackageName is the Go package the subject (and thus the wrapper)
	// lives in.
	PackageName string

	// PackagePath is the directory the subject's source was read from.
	// Empty for descriptors built from manifests or by hand.
	PackagePath string

	// Name is the simple type name, e.g. "FooSubject".
	Name string

	// ElementType is the target element type as written at the base embed,
	// e.g. "bar.Bar" or "string". Resolved exactly once per build from
	// type-argument slot 1 of the subject.Subject embed.
	ElementType string

	// ElementImport is the import path backing ElementType's qualifier,
	// or empty when the element type needs no import.
	ElementImport string

	// BaseName is the name under which the base type appears in the
	// hierarchy, e.g. "subject.Subject".
	BaseName string

	// Hierarchy lists the subject hierarchy from the subject itself down to
	// BaseName, inclusive. Methods declared by any entry except the last
	// are wrap candidates; everything else is foreign to the hierarchy.
	Hierarchy []string

	// Methods in introspected declaration order.
	Methods []MethodDescriptor

	// FileImports are the imports of the source files that declare the
	// hierarchy, used to resolve qualifiers in wrapped signatures.
	FileImports []ImportSpec

	// SourceFile is the file declaring the subject type, used to anchor the
	// generated file next to it. Empty for manifest-built descriptors.
	SourceFile string
}

// WrappableTypes returns the hierarchy entries whose declared methods may be
// wrapped, i.e. everything above the base type.
func (d *SubjectDescriptor) WrappableTypes() []string {
	if len(d.Hierarchy) == 0 {
		return nil
	}
	return d.Hierarchy[:len(d.Hierarchy)-1]
}

// MethodDescriptor describes one candidate method of a subject type.
type MethodDescriptor struct {
	Name       string
	Visibility Visibility

	// Results holds the result type names in order; empty means the method
	// returns nothing.
	Results []string

	Params []ParameterDescriptor

	// DeclaredBy is the name of the hierarchy (or foreign embed) type that
	// declares the method. The filter uses it to exclude base-declared and
	// foreign-embed methods.
	DeclaredBy string

	// Modifier flags. None of these can be expressed by Go method syntax;
	// they come from //iterwrap:: directives or from manifests.
	Final   bool
	Private bool
	Static  bool
}

// ParameterDescriptor describes one parameter of a candidate method.
type ParameterDescriptor struct {
	// Type as written in source, e.g. "string" or "*bar.Bar".
	Type string

	// Variadic marks the final ...T parameter of a variadic method.
	Variadic bool

	// Annotations holds the ordered annotation names attached to the
	// parameter, with repetition preserved exactly as declared.
	Annotations []string
}

// ImportSpec is a single import of a subject source file.
type ImportSpec struct {
	// Alias is the local name the import is bound to; for unaliased imports
	// it is the trailing path element.
	Alias string
	Path  string
}
