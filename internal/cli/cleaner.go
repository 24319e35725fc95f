package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/proofkit/iterwrap/internal/templates"
	"github.com/proofkit/iterwrap/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes generated wrapper files from the specified
// directory trees and returns the paths it removed. A file matching the
// generated name pattern but missing the generated-code header is left
// alone.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	cleanDirs, err := NormalizeRoots(directories)
	if err != nil {
		return nil, err
	}

	candidates, err := c.fileProcessor.ListGeneratedFiles(cleanDirs)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, path := range candidates {
		generated, err := c.isGeneratedFile(path)
		if err != nil {
			return removed, err
		}
		if !generated {
			continue
		}

		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove file %s: %w", path, err)
		}
		removed = append(removed, path)
	}

	return removed, nil
}

// isGeneratedFile verifies the generated-code header before anything is
// deleted.
func (c *Cleaner) isGeneratedFile(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to check file %s: %w", path, err)
	}

	firstLine, _, _ := strings.Cut(string(content), "\n")
	return strings.TrimSpace(firstLine) == templates.Header, nil
}
