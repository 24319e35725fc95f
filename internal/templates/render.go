package templates

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/proofkit/iterwrap/internal/models"
)

// FileData is everything the wrapper-file template consumes.
type FileData struct {
	PackageName     string
	Imports         string
	WrapperName     string
	ConstructorName string
	SubjectName     string
	ElementType     string
	Methods         []MethodData
}

// MethodData is everything the wrapper-method template consumes.
type MethodData struct {
	WrapperName string
	SubjectRef  string
	Name        string
	Doc         string
	Params      string
	ResultDecl  string
	Call        string
	Tail        string
}

// Engine parses the registered templates once and renders files from them.
type Engine struct {
	tmpl *template.Template
}

// NewEngine creates an engine over the default template registry.
func NewEngine() *Engine {
	registry := DefaultTemplateRegistry
	tmpl := template.Must(template.New("wrapper-file").Parse(registry.MustGet("wrapper-file")))
	template.Must(tmpl.New("wrapper-method").Parse(registry.MustGet("wrapper-method")))
	return &Engine{tmpl: tmpl}
}

// RenderFile renders a complete wrapper file.
func (e *Engine) RenderFile(data *FileData) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render wrapper file: %w", err)
	}
	return buf.String(), nil
}

// ConstructorName derives the constructor name from the wrapper name,
// preserving the wrapper's export case.
func ConstructorName(wrapperName string) string {
	first, _ := utf8.DecodeRuneInString(wrapperName)
	if unicode.IsUpper(first) {
		return "New" + wrapperName
	}
	return "new" + strings.ToUpper(wrapperName[:1]) + wrapperName[1:]
}

// MethodDoc renders the one-line doc of a wrapped method: the wrapped
// method's qualified name, plus the visibility token when it has one.
func MethodDoc(subjectName string, m models.MethodDescriptor) string {
	token := m.Visibility.Token()
	if token == "" {
		return fmt.Sprintf("// wraps %s.%s", subjectName, m.Name)
	}
	return fmt.Sprintf("// wraps %s.%s (%s)", subjectName, m.Name, token)
}

// RenderParams renders a parameter list with positional argN names.
// Parameter annotations survive as a comment ahead of the name, in
// declaration order with repetition preserved. When the first parameter
// carries annotations the list starts with a blank, matching how gofmt
// separates an opening parenthesis from a comment.
func RenderParams(params []models.ParameterDescriptor) string {
	rendered := lo.Map(params, func(p models.ParameterDescriptor, n int) string {
		var b strings.Builder
		if len(p.Annotations) > 0 {
			b.WriteString("/* ")
			for _, a := range p.Annotations {
				b.WriteString("@" + a + " ")
			}
			b.WriteString("*/ ")
		}
		fmt.Fprintf(&b, "arg%d ", n)
		if p.Variadic {
			b.WriteString("...")
		}
		b.WriteString(p.Type)
		return b.String()
	})
	joined := strings.Join(rendered, ", ")
	if len(params) > 0 && len(params[0].Annotations) > 0 {
		joined = " " + joined
	}
	return joined
}

// RenderArgs renders the forwarding argument list matching RenderParams,
// re-spreading a variadic tail.
func RenderArgs(params []models.ParameterDescriptor) string {
	rendered := lo.Map(params, func(p models.ParameterDescriptor, n int) string {
		if p.Variadic {
			return fmt.Sprintf("arg%d...", n)
		}
		return fmt.Sprintf("arg%d", n)
	})
	return strings.Join(rendered, ", ")
}

// RenderResults renders the named result declaration and the matching
// assignment targets for a method's results. Both are empty for a method
// that returns nothing.
func RenderResults(results []string) (decl, names string) {
	if len(results) == 0 {
		return "", ""
	}

	declared := lo.Map(results, func(typ string, n int) string {
		return fmt.Sprintf("ret%d %s", n, typ)
	})
	targets := lo.Map(results, func(_ string, n int) string {
		return fmt.Sprintf("ret%d", n)
	})
	return " (" + strings.Join(declared, ", ") + ")", strings.Join(targets, ", ")
}

// BuildMethodData precomputes one method's template fields.
func BuildMethodData(wrapperName, subjectName string, m models.MethodDescriptor) MethodData {
	resultDecl, resultNames := RenderResults(m.Results)

	call := fmt.Sprintf("s.%s(%s)", m.Name, RenderArgs(m.Params))
	tail := ""
	if resultNames != "" {
		// The wrapped call runs once per element; only the last element's
		// results survive.
		call = resultNames + " = " + call
		tail = "\n\treturn"
	}

	return MethodData{
		WrapperName: wrapperName,
		SubjectRef:  "*" + subjectName,
		Name:        m.Name,
		Doc:         MethodDoc(subjectName, m),
		Params:      RenderParams(m.Params),
		ResultDecl:  resultDecl,
		Call:        call,
		Tail:        tail,
	}
}
