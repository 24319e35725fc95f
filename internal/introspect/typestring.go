package introspect

import (
	"fmt"
	"go/ast"
	"regexp"
	"strings"
)

// typeString renders an AST type expression back to source form. The
// generator re-emits these strings verbatim inside the wrapper's package,
// so qualifiers are kept exactly as written. Expressions with no faithful
// textual rendering (non-empty anonymous structs and interfaces) are
// rejected rather than degraded: a lossy placeholder would emit a wrapper
// that does not compile against the wrapped signature.
func typeString(expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name, nil
	case *ast.StarExpr:
		inner, err := typeString(e.X)
		if err != nil {
			return "", err
		}
		return "*" + inner, nil
	case *ast.SelectorExpr:
		base, err := typeString(e.X)
		if err != nil {
			return "", err
		}
		return base + "." + e.Sel.Name, nil
	case *ast.ArrayType:
		elt, err := typeString(e.Elt)
		if err != nil {
			return "", err
		}
		if e.Len == nil {
			return "[]" + elt, nil
		}
		length, err := typeString(e.Len)
		if err != nil {
			return "", err
		}
		return "[" + length + "]" + elt, nil
	case *ast.MapType:
		key, err := typeString(e.Key)
		if err != nil {
			return "", err
		}
		value, err := typeString(e.Value)
		if err != nil {
			return "", err
		}
		return "map[" + key + "]" + value, nil
	case *ast.ChanType:
		value, err := typeString(e.Value)
		if err != nil {
			return "", err
		}
		switch e.Dir {
		case ast.SEND:
			return "chan<- " + value, nil
		case ast.RECV:
			return "<-chan " + value, nil
		default:
			return "chan " + value, nil
		}
	case *ast.FuncType:
		return funcTypeString(e)
	case *ast.InterfaceType:
		if e.Methods == nil || len(e.Methods.List) == 0 {
			return "any", nil
		}
		return "", fmt.Errorf("anonymous interface types cannot be rendered")
	case *ast.StructType:
		if e.Fields == nil || len(e.Fields.List) == 0 {
			return "struct{}", nil
		}
		return "", fmt.Errorf("anonymous struct types cannot be rendered")
	case *ast.Ellipsis:
		elt, err := typeString(e.Elt)
		if err != nil {
			return "", err
		}
		return "..." + elt, nil
	case *ast.BasicLit:
		return e.Value, nil
	case *ast.IndexExpr:
		base, err := typeString(e.X)
		if err != nil {
			return "", err
		}
		index, err := typeString(e.Index)
		if err != nil {
			return "", err
		}
		return base + "[" + index + "]", nil
	case *ast.IndexListExpr:
		base, err := typeString(e.X)
		if err != nil {
			return "", err
		}
		indices := make([]string, 0, len(e.Indices))
		for _, idx := range e.Indices {
			s, err := typeString(idx)
			if err != nil {
				return "", err
			}
			indices = append(indices, s)
		}
		return base + "[" + strings.Join(indices, ", ") + "]", nil
	case *ast.ParenExpr:
		inner, err := typeString(e.X)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	default:
		return "", fmt.Errorf("unsupported type expression %T", expr)
	}
}

func funcTypeString(ft *ast.FuncType) (string, error) {
	var params []string
	if ft.Params != nil {
		for _, p := range ft.Params.List {
			typeStr, err := typeString(p.Type)
			if err != nil {
				return "", err
			}
			if len(p.Names) == 0 {
				params = append(params, typeStr)
			} else {
				for range p.Names {
					params = append(params, typeStr)
				}
			}
		}
	}

	var results []string
	if ft.Results != nil {
		for _, r := range ft.Results.List {
			typeStr, err := typeString(r.Type)
			if err != nil {
				return "", err
			}
			if len(r.Names) == 0 {
				results = append(results, typeStr)
			} else {
				for range r.Names {
					results = append(results, typeStr)
				}
			}
		}
	}

	out := "func(" + strings.Join(params, ", ") + ")"
	if len(results) == 1 {
		out += " " + results[0]
	} else if len(results) > 1 {
		out += " (" + strings.Join(results, ", ") + ")"
	}
	return out, nil
}

var qualifierPattern = regexp.MustCompile(`(?:^|[^.\w])([a-zA-Z_][a-zA-Z0-9_]*)\.`)

// qualifiers extracts the package qualifiers referenced by a rendered type
// string, e.g. "map[bar.Key]*baz.Value" yields ["bar", "baz"].
func qualifiers(typeStr string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range qualifierPattern.FindAllStringSubmatch(typeStr, -1) {
		q := m[1]
		if !seen[q] {
			seen[q] = true
			out = append(out, q)
		}
	}
	return out
}
