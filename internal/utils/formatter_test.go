package utils

import (
	"strings"
	"testing"
)

func TestFormatGoCodeString(t *testing.T) {
	messy := "package words\n\nfunc   Check( ) {\n}\n"

	formatted, err := FormatGoCodeString("check.go", messy)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if !strings.Contains(formatted, "func Check() {\n}") {
		t.Errorf("unexpected formatter output:\n%s", formatted)
	}
}

func TestFormatGoCodeStringRejectsInvalidSyntax(t *testing.T) {
	_, err := FormatGoCodeString("broken.go", "package words\n\nfunc {")
	if err == nil {
		t.Fatal("expected an error for invalid Go")
	}
	if !strings.Contains(err.Error(), "invalid Go syntax") {
		t.Errorf("unexpected error: %v", err)
	}
}
