package models

import "fmt"

// Visibility represents the declared visibility of a subject method.
type Visibility int

const (
	// VisibilityPublic marks an exported method.
	VisibilityPublic Visibility = iota

	// VisibilityProtected is only expressible through manifests; Go source
	// introspection never produces it.
	VisibilityProtected

	// VisibilityPackage marks an unexported method, visible inside the
	// subject's package only. The wrapper is generated into that same
	// package, which is what makes wrapping such methods legal.
	VisibilityPackage
)

// String returns the visibility name.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPackage:
		return "package"
	default:
		return "unknown"
	}
}

// Token returns the rendered visibility marker: "public", "protected", or
// the empty string for package visibility.
func (v Visibility) Token() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	default:
		return ""
	}
}

// ParseVisibility converts a manifest string into a Visibility.
func ParseVisibility(s string) (Visibility, error) {
	switch s {
	case "public":
		return VisibilityPublic, nil
	case "protected":
		return VisibilityProtected, nil
	case "package", "":
		return VisibilityPackage, nil
	default:
		return VisibilityPublic, fmt.Errorf("unknown visibility %q (want public, protected, or package)", s)
	}
}
