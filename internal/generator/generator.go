package generator

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/proofkit/iterwrap/internal/errors"
	"github.com/proofkit/iterwrap/internal/models"
	"github.com/proofkit/iterwrap/internal/templates"
)

// Emitter renders wrapper compilation units from descriptors.
type Emitter struct {
	engine *templates.Engine
}

// NewEmitter creates an emitter over the default templates.
func NewEmitter() *Emitter {
	return &Emitter{engine: templates.NewEngine()}
}

// Emit builds the complete wrapper unit for one subject. The descriptor is
// validated up front; a structurally incomplete one yields an EmissionError
// and no output at all. Emission is deterministic: the same descriptor
// always produces the same bytes.
func (e *Emitter) Emit(d *models.SubjectDescriptor) (*models.GeneratedClass, error) {
	if err := validate(d); err != nil {
		return nil, err
	}

	wrapperName := d.Name + models.WrapperSuffix
	methods := FilterMethods(d)

	im := templates.NewImportManager()
	im.AddSignatureImports(d.FileImports, signatureTypes(d, methods))
	if d.ElementImport != "" {
		im.AddImport(d.ElementImport)
	}

	methodData := make([]templates.MethodData, 0, len(methods))
	for _, m := range methods {
		methodData = append(methodData, templates.BuildMethodData(wrapperName, d.Name, m))
	}

	source, err := e.engine.RenderFile(&templates.FileData{
		PackageName:     d.PackageName,
		Imports:         im.GenerateImports(),
		WrapperName:     wrapperName,
		ConstructorName: templates.ConstructorName(wrapperName),
		SubjectName:     d.Name,
		ElementType:     d.ElementType,
		Methods:         methodData,
	})
	if err != nil {
		return nil, errors.NewEmissionError(d.Name, err.Error())
	}

	return &models.GeneratedClass{
		ClassName:      wrapperName,
		PackageName:    d.PackageName,
		FilePath:       outputPath(d),
		Source:         source,
		WrappedMethods: len(methods),
	}, nil
}

// validate rejects descriptors the templates cannot render into valid Go.
func validate(d *models.SubjectDescriptor) error {
	switch {
	case d.Name == "":
		return errors.NewEmissionError("<anonymous>", "descriptor has no subject name")
	case d.PackageName == "":
		return errors.NewEmissionError(d.Name, "descriptor has no package name")
	case d.ElementType == "":
		return errors.NewEmissionError(d.Name, "descriptor has no target element type")
	}

	for _, m := range d.Methods {
		if m.Name == "" {
			return errors.NewEmissionError(d.Name, "descriptor contains a method with no name")
		}
		for n, p := range m.Params {
			if p.Type == "" {
				return errors.NewEmissionError(d.Name,
					"method "+m.Name+" has an untyped parameter at position "+strconv.Itoa(n))
			}
		}
		for n, r := range m.Results {
			if r == "" {
				return errors.NewEmissionError(d.Name,
					"method "+m.Name+" has an untyped result at position "+strconv.Itoa(n))
			}
		}
	}
	return nil
}

// signatureTypes collects every type name the generated file will mention,
// for import filtering.
func signatureTypes(d *models.SubjectDescriptor, methods []models.MethodDescriptor) []string {
	types := []string{d.ElementType}
	for _, m := range methods {
		for _, p := range m.Params {
			types = append(types, p.Type)
		}
		types = append(types, m.Results...)
	}
	return types
}

// outputPath anchors the generated file next to the subject's source.
func outputPath(d *models.SubjectDescriptor) string {
	name := toSnakeCase(d.Name) + "_iterwrap.go"
	if d.SourceFile != "" {
		return filepath.Join(filepath.Dir(d.SourceFile), name)
	}
	if d.PackagePath != "" {
		return filepath.Join(d.PackagePath, name)
	}
	return ""
}

// toSnakeCase converts a Go type name to its snake_case file stem.
func toSnakeCase(name string) string {
	var b strings.Builder
	for n, r := range name {
		if unicode.IsUpper(r) {
			if n > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
