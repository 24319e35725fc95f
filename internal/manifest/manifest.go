// Package manifest loads subject descriptors from TOML files. Manifests
// exist for subjects that cannot be introspected from source: hand-written
// descriptors, descriptors imported from other tools, and methods whose
// modifiers (protected visibility in particular) have no Go spelling.
package manifest

import (
	"go/token"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/proofkit/iterwrap/internal/errors"
	"github.com/proofkit/iterwrap/internal/models"
)

// File is the top-level manifest document.
type File struct {
	Package     string    `toml:"package"`
	PackagePath string    `toml:"package-path"`
	Imports     []Import  `toml:"import"`
	Subjects    []Subject `toml:"subject"`
}

// Import mirrors one import of the subject's source files.
type Import struct {
	Alias string `toml:"alias"`
	Path  string `toml:"path"`
}

// Subject declares one subject type.
type Subject struct {
	Name          string   `toml:"name"`
	Element       string   `toml:"element"`
	ElementImport string   `toml:"element-import"`
	Base          string   `toml:"base"`
	Intermediates []string `toml:"intermediates"`
	Methods       []Method `toml:"method"`
}

// Method declares one candidate method of a subject.
type Method struct {
	Name       string   `toml:"name"`
	Visibility string   `toml:"visibility"`
	DeclaredBy string   `toml:"declared-by"`
	Results    []string `toml:"results"`
	Params     []Param  `toml:"param"`
	Final      bool     `toml:"final"`
	Private    bool     `toml:"private"`
	Static     bool     `toml:"static"`
}

// Param declares one parameter of a manifest method.
type Param struct {
	Type        string   `toml:"type"`
	Variadic    bool     `toml:"variadic"`
	Annotations []string `toml:"annotations"`
}

// defaultBase is assumed when a subject omits its base name.
const defaultBase = "subject.Subject"

// Load reads a manifest file and converts it into descriptors, one per
// declared subject, in document order.
func Load(path string) ([]*models.SubjectDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to read manifest %s", path)
	}
	return Parse(path, string(data))
}

// Parse converts manifest text into descriptors. The path is used for
// error locations and to anchor generated files.
func Parse(path, text string) ([]*models.SubjectDescriptor, error) {
	var file File
	meta, err := toml.Decode(text, &file)
	if err != nil {
		return nil, errors.Wrapf(errors.DescriptorErrorCode, err, "malformed manifest %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf(errors.DescriptorErrorCode,
			"manifest %s has unknown key %s", path, undecoded[0].String())
	}
	if file.Package == "" {
		return nil, errors.Newf(errors.DescriptorErrorCode, "manifest %s declares no package", path)
	}

	packagePath := file.PackagePath
	if packagePath == "" {
		packagePath = filepath.Dir(path)
	}

	imports := make([]models.ImportSpec, 0, len(file.Imports))
	for _, imp := range file.Imports {
		imports = append(imports, models.ImportSpec{Alias: imp.Alias, Path: imp.Path})
	}

	var descriptors []*models.SubjectDescriptor
	for _, s := range file.Subjects {
		d, err := buildDescriptor(path, file.Package, packagePath, imports, s)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

func buildDescriptor(path, pkg, pkgPath string, imports []models.ImportSpec, s Subject) (*models.SubjectDescriptor, error) {
	if s.Name == "" {
		return nil, errors.Newf(errors.DescriptorErrorCode, "manifest %s declares a subject with no name", path)
	}
	if s.Element == "" {
		return nil, errors.NewDescriptorError(s.Name, "manifest declares no target element type")
	}

	base := s.Base
	if base == "" {
		base = defaultBase
	}
	hierarchy := append([]string{s.Name}, s.Intermediates...)
	hierarchy = append(hierarchy, base)

	methods := make([]models.MethodDescriptor, 0, len(s.Methods))
	for _, m := range s.Methods {
		md, err := buildMethod(s.Name, m)
		if err != nil {
			return nil, err
		}
		methods = append(methods, md)
	}

	return &models.SubjectDescriptor{
		PackageName:   pkg,
		PackagePath:   pkgPath,
		Name:          s.Name,
		ElementType:   s.Element,
		ElementImport: s.ElementImport,
		BaseName:      base,
		Hierarchy:     hierarchy,
		Methods:       methods,
		FileImports:   imports,
	}, nil
}

func buildMethod(subjectName string, m Method) (models.MethodDescriptor, error) {
	if m.Name == "" {
		return models.MethodDescriptor{}, errors.NewDescriptorError(subjectName,
			"manifest declares a method with no name")
	}

	visibility, err := parseVisibility(m)
	if err != nil {
		return models.MethodDescriptor{}, errors.NewDescriptorError(
			subjectName+"."+m.Name, err.Error())
	}

	declaredBy := m.DeclaredBy
	if declaredBy == "" {
		declaredBy = subjectName
	}

	params := make([]models.ParameterDescriptor, 0, len(m.Params))
	for n, p := range m.Params {
		if p.Type == "" {
			return models.MethodDescriptor{}, errors.NewDescriptorError(
				subjectName+"."+m.Name, "manifest parameter "+strconv.Itoa(n)+" has no type")
		}
		if p.Variadic && n != len(m.Params)-1 {
			return models.MethodDescriptor{}, errors.NewDescriptorError(
				subjectName+"."+m.Name, "only the last parameter may be variadic")
		}
		params = append(params, models.ParameterDescriptor{
			Type:        p.Type,
			Variadic:    p.Variadic,
			Annotations: p.Annotations,
		})
	}

	return models.MethodDescriptor{
		Name:       m.Name,
		Visibility: visibility,
		Results:    m.Results,
		Params:     params,
		DeclaredBy: declaredBy,
		Final:      m.Final,
		Private:    m.Private,
		Static:     m.Static,
	}, nil
}

// parseVisibility honors an explicit visibility and falls back to the
// method name's export case.
func parseVisibility(m Method) (models.Visibility, error) {
	if m.Visibility != "" {
		return models.ParseVisibility(m.Visibility)
	}
	if token.IsExported(m.Name) {
		return models.VisibilityPublic, nil
	}
	return models.VisibilityPackage, nil
}
