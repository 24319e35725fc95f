package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDirectoriesWithGoFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "words", "subject.go"), "package words\n")
	writeFile(t, filepath.Join(root, "words", "subject_test.go"), "package words\n")
	writeFile(t, filepath.Join(root, "empty", "notes.txt"), "nothing")
	writeFile(t, filepath.Join(root, "vendor", "dep", "dep.go"), "package dep\n")
	writeFile(t, filepath.Join(root, "gen", "foo_subject_iterwrap.go"), "package gen\n")

	fp := NewFileProcessor()
	dirs, err := fp.ScanDirectoriesWithGoFiles([]string{root})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if len(dirs) != 1 || dirs[0] != filepath.Join(root, "words") {
		t.Errorf("expected only the words package, got %v", dirs)
	}
}

func TestSourceGoFileFilterExcludesGeneratedAndTests(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "subject.go"), "package p\n")
	writeFile(t, filepath.Join(root, "subject_test.go"), "package p\n")
	writeFile(t, filepath.Join(root, "foo_subject_iterwrap.go"), "package p\n")

	filter := SourceGoFileFilter()
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}

	var kept []string
	for _, entry := range entries {
		if filter(filepath.Join(root, entry.Name()), entry) {
			kept = append(kept, entry.Name())
		}
	}

	if len(kept) != 1 || kept[0] != "subject.go" {
		t.Errorf("expected only subject.go, got %v", kept)
	}
}

func TestListGeneratedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "words", "subject.go"), "package words\n")
	writeFile(t, filepath.Join(root, "words", "foo_subject_iterwrap.go"), "package words\n")
	writeFile(t, filepath.Join(root, "chain", "int_subject_iterwrap.go"), "package chain\n")

	fp := NewFileProcessor()
	generated, err := fp.ListGeneratedFiles([]string{root})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(generated) != 2 {
		t.Fatalf("expected 2 generated files, got %v", generated)
	}
}
