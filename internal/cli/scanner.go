package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/proofkit/iterwrap/internal/utils"
)

// DirectoryScanner handles recursive directory scanning for Go packages
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// ScanDirectories recursively scans the provided directories for Go
// packages and returns every directory holding processable Go files.
// Go-style patterns like "./..." are accepted.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	cleanDirs, err := NormalizeRoots(rootDirs)
	if err != nil {
		return nil, err
	}
	return s.fileProcessor.ScanDirectoriesWithGoFiles(cleanDirs)
}

// NormalizeRoots resolves scan roots to absolute paths, stripping any
// trailing "/..." pattern.
func NormalizeRoots(rootDirs []string) ([]string, error) {
	var cleanDirs []string
	for _, rootDir := range rootDirs {
		baseDir := rootDir
		if strings.HasSuffix(rootDir, "/...") {
			baseDir = strings.TrimSuffix(rootDir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
		}

		cleanPath, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, utils.WrapProcessError(fmt.Sprintf("path resolution %s", baseDir), err)
		}
		cleanDirs = append(cleanDirs, cleanPath)
	}
	return cleanDirs, nil
}
