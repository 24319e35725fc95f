package templates

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/proofkit/iterwrap/internal/models"
	"github.com/proofkit/iterwrap/pkg/subject"
)

// ImportManager accumulates the imports of one generated file and renders
// them as a gofmt-shaped block: standard library first, everything else
// second, each group sorted by path.
type ImportManager struct {
	byPath map[string]string // path -> alias ("" for the default name)
}

// NewImportManager creates an import manager pre-loaded with the imports
// every wrapper file needs.
func NewImportManager() *ImportManager {
	im := &ImportManager{byPath: make(map[string]string)}
	im.AddImport("iter")
	im.AddImport(subject.ImportPath)
	return im
}

// AddImport adds an unaliased import.
func (im *ImportManager) AddImport(importPath string) {
	if importPath == "" {
		return
	}
	if _, exists := im.byPath[importPath]; !exists {
		im.byPath[importPath] = ""
	}
}

// AddPackageImport adds an import bound to an explicit alias. An alias that
// matches the default package name is recorded as unaliased.
func (im *ImportManager) AddPackageImport(alias, path string) {
	if path == "" {
		return
	}
	if alias == "" || alias == pathTail(path) {
		im.AddImport(path)
		return
	}
	im.byPath[path] = alias
}

// AddSignatureImports adds the subset of a source file's imports whose
// local name actually qualifies a type in one of the given signatures.
// Imports the wrapped signatures never reference stay out of the
// generated file.
func (im *ImportManager) AddSignatureImports(imports []models.ImportSpec, signatures []string) {
	for _, imp := range imports {
		if imp.Path == subject.ImportPath {
			continue
		}
		for _, sig := range signatures {
			if usesQualifier(sig, imp.Alias) {
				im.AddPackageImport(imp.Alias, imp.Path)
				break
			}
		}
	}
}

// GenerateImports renders the import block, trailing newline included.
func (im *ImportManager) GenerateImports() string {
	if len(im.byPath) == 0 {
		return ""
	}

	var std, rest []string
	for path := range im.byPath {
		if isStandardLibrary(path) {
			std = append(std, path)
		} else {
			rest = append(rest, path)
		}
	}
	sort.Strings(std)
	sort.Strings(rest)

	var result strings.Builder
	result.WriteString("import (\n")
	for _, path := range std {
		result.WriteString("\t" + im.renderImport(path) + "\n")
	}
	if len(std) > 0 && len(rest) > 0 {
		result.WriteString("\n")
	}
	for _, path := range rest {
		result.WriteString("\t" + im.renderImport(path) + "\n")
	}
	result.WriteString(")\n")

	return result.String()
}

// renderImport renders one import line body.
func (im *ImportManager) renderImport(path string) string {
	if alias := im.byPath[path]; alias != "" {
		return fmt.Sprintf(`%s "%s"`, alias, path)
	}
	return fmt.Sprintf(`"%s"`, path)
}

// usesQualifier reports whether the signature text references types through
// the given package qualifier.
func usesQualifier(signature, qualifier string) bool {
	if qualifier == "" {
		return false
	}
	pattern := `(?:^|[^.\w])` + regexp.QuoteMeta(qualifier) + `\.`
	matched, err := regexp.MatchString(pattern, signature)
	return err == nil && matched
}

// isStandardLibrary treats any path without a dotted first element as part
// of the standard library, the same heuristic gofmt grouping relies on.
func isStandardLibrary(path string) bool {
	first := path
	if idx := strings.Index(path, "/"); idx >= 0 {
		first = path[:idx]
	}
	return !strings.Contains(first, ".")
}

// pathTail returns the last element of an import path, the default local
// name of the package.
func pathTail(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
