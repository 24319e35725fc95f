package utils

import (
	"fmt"
	"go/format"
	"go/parser"
	"go/token"

	"golang.org/x/tools/imports"
)

// FormatGoCodeString formats generated Go source. The imports-aware
// formatter runs first so a stray or missing import in generated code gets
// repaired; plain gofmt is the fallback when it cannot.
func FormatGoCodeString(filename, source string) (string, error) {
	formatted, err := imports.Process(filename, []byte(source), nil)
	if err == nil {
		return string(formatted), nil
	}

	fallback, fmtErr := format.Source([]byte(source))
	if fmtErr == nil {
		return string(fallback), nil
	}

	// Neither formatter accepted it; report whether it is even valid Go.
	fset := token.NewFileSet()
	if _, parseErr := parser.ParseFile(fset, filename, source, parser.ParseComments); parseErr != nil {
		return source, fmt.Errorf("invalid Go syntax: %w (format error: %v)", parseErr, err)
	}
	return source, err
}

