package models

import "testing"

func TestVisibilityToken(t *testing.T) {
	tests := []struct {
		vis  Visibility
		want string
	}{
		{VisibilityPublic, "public"},
		{VisibilityProtected, "protected"},
		{VisibilityPackage, ""},
	}

	for _, tt := range tests {
		if got := tt.vis.Token(); got != tt.want {
			t.Errorf("Token(%s) = %q, want %q", tt.vis, got, tt.want)
		}
	}
}

func TestParseVisibility(t *testing.T) {
	for _, s := range []string{"public", "protected", "package"} {
		vis, err := ParseVisibility(s)
		if err != nil {
			t.Fatalf("ParseVisibility(%q) returned error: %v", s, err)
		}
		if vis.String() != s {
			t.Errorf("ParseVisibility(%q).String() = %q", s, vis.String())
		}
	}

	if _, err := ParseVisibility("friendly"); err == nil {
		t.Error("expected error for unknown visibility")
	}
}

func TestWrappableTypes(t *testing.T) {
	d := &SubjectDescriptor{
		Name:      "FooSubject",
		BaseName:  "subject.Subject",
		Hierarchy: []string{"FooSubject", "BaseFooSubject", "subject.Subject"},
	}

	got := d.WrappableTypes()
	if len(got) != 2 || got[0] != "FooSubject" || got[1] != "BaseFooSubject" {
		t.Errorf("WrappableTypes() = %v", got)
	}

	empty := &SubjectDescriptor{}
	if empty.WrappableTypes() != nil {
		t.Error("expected nil for empty hierarchy")
	}
}
