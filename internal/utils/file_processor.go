package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GeneratedFileSuffix marks output files written by the generator.
const GeneratedFileSuffix = "_iterwrap.go"

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// FileFilter decides whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter decides whether a directory should be descended into
type DirectoryFilter func(path string, info os.DirEntry) bool

// SourceGoFileFilter matches .go files that can declare subjects: tests and
// previously generated wrapper files are excluded.
func SourceGoFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := info.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!strings.HasSuffix(name, GeneratedFileSuffix)
	}
}

// GeneratedGoFileFilter matches files the generator wrote.
func GeneratedGoFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		return strings.HasSuffix(info.Name(), GeneratedFileSuffix)
	}
}

// DefaultDirectoryFilter skips common directories that never hold subject
// sources.
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		".git":         true,
		".svn":         true,
		".hg":          true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		return !skipDirs[name]
	}
}

// ScanDirectoriesWithGoFiles scans directory trees and returns every
// directory that holds at least one non-generated Go source file.
func (fp *FileProcessor) ScanDirectoriesWithGoFiles(rootDirs []string) ([]string, error) {
	var packageDirs []string
	visited := make(map[string]bool)

	for _, rootDir := range rootDirs {
		dirs, err := fp.scanDirectoryRecursive(rootDir, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, dirs...)
	}

	return packageDirs, nil
}

// scanDirectoryRecursive recursively scans a directory for Go files
func (fp *FileProcessor) scanDirectoryRecursive(dir string, visited map[string]bool) ([]string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, WrapProcessError(fmt.Sprintf("path resolution %s", dir), err)
	}
	if visited[absDir] {
		return nil, nil
	}
	visited[absDir] = true

	var packageDirs []string

	hasGoFiles, err := fp.HasGoFiles(dir)
	if err != nil {
		return nil, WrapProcessError(fmt.Sprintf("Go file check in %s", dir), err)
	}
	if hasGoFiles {
		packageDirs = append(packageDirs, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, WrapProcessError(fmt.Sprintf("directory read %s", dir), err)
	}

	directoryFilter := DefaultDirectoryFilter()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		entryPath := filepath.Join(dir, entry.Name())
		if !directoryFilter(entryPath, entry) {
			continue
		}

		subDirs, err := fp.scanDirectoryRecursive(entryPath, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, subDirs...)
	}

	return packageDirs, nil
}

// HasGoFiles checks if a directory contains any processable .go files
func (fp *FileProcessor) HasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}

	fileFilter := SourceGoFileFilter()
	for _, entry := range entries {
		if fileFilter(filepath.Join(dir, entry.Name()), entry) {
			return true, nil
		}
	}
	return false, nil
}

// ListGeneratedFiles returns the generated wrapper files under the given
// directory trees.
func (fp *FileProcessor) ListGeneratedFiles(rootDirs []string) ([]string, error) {
	var generated []string
	fileFilter := GeneratedGoFileFilter()
	directoryFilter := DefaultDirectoryFilter()

	for _, rootDir := range rootDirs {
		err := filepath.WalkDir(rootDir, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if entry.IsDir() {
				if !directoryFilter(path, entry) {
					return filepath.SkipDir
				}
				return nil
			}
			if fileFilter(path, entry) {
				generated = append(generated, path)
			}
			return nil
		})
		if err != nil {
			return generated, WrapProcessError(fmt.Sprintf("directory walk %s", rootDir), err)
		}
	}

	return generated, nil
}
