package annotations

import (
	"fmt"

	"github.com/proofkit/iterwrap/internal/errors"
)

// TargetKind says which declarations a directive may be attached to.
type TargetKind int

const (
	TargetType TargetKind = iota
	TargetMethod
)

// Schema describes the shape of one directive kind.
type Schema struct {
	Kind       AnnotationType
	AppliesTo  TargetKind
	WantsIndex bool
	WantsNames bool
}

// SchemaRegistry holds the schemas of all known directive kinds.
type SchemaRegistry struct {
	schemas map[AnnotationType]Schema
}

// NewSchemaRegistry builds a registry with every built-in directive
// registered.
func NewSchemaRegistry() *SchemaRegistry {
	r := &SchemaRegistry{schemas: make(map[AnnotationType]Schema)}

	r.register(Schema{Kind: AnnotationSubject, AppliesTo: TargetType})
	r.register(Schema{Kind: AnnotationFinal, AppliesTo: TargetMethod})
	r.register(Schema{Kind: AnnotationStatic, AppliesTo: TargetMethod})
	r.register(Schema{Kind: AnnotationPrivate, AppliesTo: TargetMethod})
	r.register(Schema{Kind: AnnotationParam, AppliesTo: TargetMethod, WantsIndex: true, WantsNames: true})

	return r
}

func (r *SchemaRegistry) register(s Schema) {
	r.schemas[s.Kind] = s
}

// Get retrieves the schema for an annotation type.
func (r *SchemaRegistry) Get(t AnnotationType) (Schema, bool) {
	s, ok := r.schemas[t]
	return s, ok
}

// Validate checks a parsed directive against its schema.
func (r *SchemaRegistry) Validate(a *ParsedAnnotation, hasIndex bool) error {
	schema, ok := r.Get(a.Type)
	if !ok {
		return errors.NewSyntaxError(a.Location, "no schema registered for directive %q", a.Type)
	}

	if schema.WantsIndex && !hasIndex {
		return errors.NewSyntaxError(a.Location, "%s directive requires a parameter index", a.Type).
			WithSuggestion(fmt.Sprintf("write //iterwrap::%s <index> @Name", a.Type))
	}
	if !schema.WantsIndex && hasIndex {
		return errors.NewSyntaxError(a.Location, "%s directive takes no parameter index", a.Type)
	}
	if schema.WantsNames && len(a.Names) == 0 {
		return errors.NewSyntaxError(a.Location, "%s directive requires at least one @-annotation", a.Type)
	}
	if !schema.WantsNames && len(a.Names) > 0 {
		return errors.NewSyntaxError(a.Location, "%s directive takes no @-annotations", a.Type)
	}

	return nil
}
