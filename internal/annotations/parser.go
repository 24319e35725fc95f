package annotations

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/spf13/cast"

	"github.com/proofkit/iterwrap/internal/errors"
)

// Prefix is the directive marker inside a doc comment.
const Prefix = "iterwrap::"

// directive is the participle grammar for a single //iterwrap:: comment.
type directive struct {
	Kind  string   `parser:"Comment Tool Separator @Ident"`
	Index *string  `parser:"@Int?"`
	Names []string `parser:"(At @Ident)*"`
}

// Parser parses //iterwrap:: directives using alecthomas/participle.
type Parser struct {
	parser   *participle.Parser[directive]
	registry *SchemaRegistry
}

// NewParser builds a directive parser with the built-in schema registry.
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Tool", Pattern: `iterwrap`},
		{Name: "Separator", Pattern: `::`},
		{Name: "At", Pattern: `@`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[directive](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
	)

	return &Parser{
		parser:   parser,
		registry: NewSchemaRegistry(),
	}
}

// IsDirective reports whether a comment line is an iterwrap directive.
func IsDirective(comment string) bool {
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	return strings.HasPrefix(text, Prefix)
}

// Parse parses one directive comment attached to target. Non-directive
// comments are the caller's responsibility to filter out with IsDirective.
func (p *Parser) Parse(comment, target string, loc errors.SourceLocation) (*ParsedAnnotation, error) {
	if !IsDirective(comment) {
		return nil, errors.NewSyntaxError(loc, "not an iterwrap directive: %s", comment)
	}

	d, err := p.parser.ParseString("", strings.TrimSpace(comment))
	if err != nil {
		return nil, errors.NewSyntaxError(loc, "malformed directive %q", comment).WithCause(err)
	}

	kind, err := ParseAnnotationType(d.Kind)
	if err != nil {
		return nil, errors.NewSyntaxError(loc, "unknown directive %q", d.Kind).
			WithSuggestion("known directives: subject, final, static, private, param")
	}

	parsed := &ParsedAnnotation{
		Type:     kind,
		Target:   target,
		Names:    d.Names,
		Location: loc,
		Raw:      comment,
	}

	if d.Index != nil {
		index, err := cast.ToIntE(*d.Index)
		if err != nil {
			return nil, errors.NewSyntaxError(loc, "invalid parameter index %q", *d.Index).WithCause(err)
		}
		parsed.ParamIndex = index
	}

	if err := p.registry.Validate(parsed, d.Index != nil); err != nil {
		return nil, err
	}

	return parsed, nil
}
