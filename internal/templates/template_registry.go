// Package templates renders wrapper source from descriptors. Rendering is
// pure string work: every field a template consumes is precomputed by the
// render helpers, so identical descriptors always produce identical bytes.
package templates

// Header is the first line of every generated file. The cleaner refuses to
// delete files that do not start with it.
const Header = "// Code generated by iterwrap; DO NOT EDIT."

// TemplateRegistry provides a centralized way to access all templates.
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates.
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerWrapperTemplates()

	return registry
}

// Get retrieves a template by name.
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found.
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// registerWrapperTemplates registers the wrapper file and method templates.
func (tr *TemplateRegistry) registerWrapperTemplates() {
	// Whole generated file. Imports and the method bodies arrive
	// pre-rendered; the wrapper embeds the subject type so it satisfies
	// everything the subject satisfies.
	tr.templates["wrapper-file"] = Header + `

package {{.PackageName}}

{{.Imports}}
// {{.WrapperName}} applies every {{.SubjectName}} check to each element of
// a sequence in turn.
type {{.WrapperName}} struct {
	{{.SubjectName}}

	strategy subject.FailureStrategy
	factory  subject.Factory
	data     iter.Seq[{{.ElementType}}]
}

// {{.ConstructorName}} returns a wrapper whose checks run once per element
// of data.
func {{.ConstructorName}}(strategy subject.FailureStrategy, factory subject.Factory, data iter.Seq[{{.ElementType}}]) *{{.WrapperName}} {
	return &{{.WrapperName}}{
		strategy: strategy,
		factory:  factory,
		data:     data,
	}
}
{{range .Methods}}
{{template "wrapper-method" .}}
{{end}}`

	// One wrapped method. A fresh subject is built per element so failure
	// messages name the element, not the sequence.
	tr.templates["wrapper-method"] = `{{.Doc}}
func (w *{{.WrapperName}}) {{.Name}}({{.Params}}){{.ResultDecl}} {
	for item := range w.data {
		s := w.factory.NewSubject(w.strategy, item).({{.SubjectRef}})
		{{.Call}}
	}{{.Tail}}
}`
}

// DefaultTemplateRegistry is the global template registry instance.
var DefaultTemplateRegistry = NewTemplateRegistry()
