// Package generator turns descriptors into wrapper source. It filters the
// introspected method list down to the wrappable set and emits one complete
// compilation unit per subject, byte-identical across runs for the same
// descriptor.
package generator

import (
	"github.com/samber/lo"

	"github.com/proofkit/iterwrap/internal/models"
)

// Eligible reports whether a single method survives the wrap filter. A
// method is wrapped unless it is final, private or static, or is declared
// by the base type or by an embed outside the subject hierarchy.
func Eligible(d *models.SubjectDescriptor, m models.MethodDescriptor) bool {
	if m.Final || m.Private || m.Static {
		return false
	}
	if m.DeclaredBy == d.BaseName {
		return false
	}
	return lo.Contains(d.WrappableTypes(), m.DeclaredBy)
}

// FilterMethods returns the wrappable methods in their original
// declaration order. A subject with no wrappable methods filters down to
// an empty list, not an error.
func FilterMethods(d *models.SubjectDescriptor) []models.MethodDescriptor {
	return lo.Filter(d.Methods, func(m models.MethodDescriptor, _ int) bool {
		return Eligible(d, m)
	})
}
