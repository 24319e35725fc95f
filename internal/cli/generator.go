package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/proofkit/iterwrap/internal/errors"
	"github.com/proofkit/iterwrap/internal/generator"
	"github.com/proofkit/iterwrap/internal/introspect"
	"github.com/proofkit/iterwrap/internal/manifest"
	"github.com/proofkit/iterwrap/internal/models"
	"github.com/proofkit/iterwrap/internal/utils"
)

// GenerationSummary collects run statistics for the final report.
type GenerationSummary struct {
	PackagesProcessed int
	SubjectsFound     int
	FilesGenerated    int
	MethodsWrapped    int
	GeneratedFiles    []string
}

// Generator coordinates the whole run: scan, describe, filter, emit,
// format, write.
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	emitter        *generator.Emitter
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a CLI generator reporting through the given
// diagnostic system.
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		emitter:        generator.NewEmitter(),
		diagnostics:    diagnostics,
		summary:        GenerationSummary{GeneratedFiles: make([]string, 0)},
	}
}

// GetSummary returns the generation summary of the last run.
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	g.diagnostics.Verbose("Starting wrapper generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Scanning directories: %v", config.Directories)

	moduleName, err := g.moduleResolver.ResolveModuleName(config.ModuleName)
	if err != nil {
		g.diagnostics.Error("Failed to resolve module name: %v", err)
		return errors.Wrap(errors.ValidationErrorCode, "failed to resolve module name", err).
			WithSuggestion("check that go.mod exists and is valid").
			WithSuggestion("run from inside the module or pass -module explicitly")
	}
	g.diagnostics.Debug("Resolved module name: %s", moduleName)

	descriptors, err := g.collectDescriptors(config, moduleName)
	if err != nil {
		return err
	}
	if len(descriptors) == 0 {
		g.diagnostics.Warn("No subject types found; nothing to generate")
		return nil
	}
	g.summary.SubjectsFound = len(descriptors)

	generated, err := g.emitAll(descriptors)
	if err != nil {
		return err
	}

	g.diagnostics.PhaseHeader("Generating wrappers")
	for _, unit := range generated {
		if err := g.writeOne(unit); err != nil {
			return err
		}
	}

	g.diagnostics.Verbose("Generation completed in %v", time.Since(startTime))
	g.diagnostics.GenerationComplete()
	return nil
}

// collectDescriptors gathers descriptors from scanned source packages and
// from explicit manifests, in that order.
func (g *Generator) collectDescriptors(config Config, moduleName string) ([]*models.SubjectDescriptor, error) {
	var descriptors []*models.SubjectDescriptor

	if len(config.Directories) > 0 {
		packageDirs, err := g.scanner.ScanDirectories(config.Directories)
		if err != nil {
			g.diagnostics.Error("Failed to scan directories: %v", err)
			return nil, errors.Wrap(errors.FileSystemErrorCode, "failed to scan directories", err).
				WithSuggestion("check that the specified directories exist and are readable")
		}
		g.diagnostics.Info("Found %d packages to process", len(packageDirs))
		g.summary.PackagesProcessed = len(packageDirs)

		for _, packageDir := range packageDirs {
			importPath, err := g.moduleResolver.BuildPackagePath(moduleName, packageDir)
			if err != nil {
				// Outside the module tree; fall back to the directory.
				importPath = packageDir
			}
			g.diagnostics.Verbose("Describing package %s (%s)", importPath, packageDir)

			introspector := introspect.NewIntrospector()
			found, err := introspector.DescribePackage(packageDir)
			if err != nil {
				g.diagnostics.Error("Failed to describe package %s: %v", packageDir, err)
				return nil, err
			}
			descriptors = append(descriptors, found...)
		}
	}

	for _, manifestPath := range config.ManifestPaths {
		g.diagnostics.Verbose("Loading manifest %s", manifestPath)
		loaded, err := manifest.Load(manifestPath)
		if err != nil {
			g.diagnostics.Error("Failed to load manifest %s: %v", manifestPath, err)
			return nil, err
		}
		descriptors = append(descriptors, loaded...)
	}

	for _, d := range descriptors {
		g.diagnostics.Debug("Descriptor for %s:\n%s", d.Name, spew.Sdump(d))
	}
	return descriptors, nil
}

// emitAll emits every descriptor up front so that output collisions and
// emission failures are caught before a single file is written.
func (g *Generator) emitAll(descriptors []*models.SubjectDescriptor) ([]*models.GeneratedClass, error) {
	generated := make([]*models.GeneratedClass, 0, len(descriptors))
	seen := make(map[string]string)

	for _, d := range descriptors {
		unit, err := g.emitter.Emit(d)
		if err != nil {
			g.diagnostics.Error("Failed to generate wrapper for %s: %v", d.Name, err)
			return nil, err
		}
		if unit.FilePath == "" {
			return nil, errors.NewEmissionError(d.Name, "descriptor has no output location")
		}
		if first, exists := seen[unit.FilePath]; exists {
			return nil, errors.NewCollisionError(unit.FilePath, first, d.Name)
		}
		seen[unit.FilePath] = d.Name
		generated = append(generated, unit)
	}
	return generated, nil
}

// writeOne formats and writes a single wrapper file.
func (g *Generator) writeOne(unit *models.GeneratedClass) error {
	formatted, err := utils.FormatGoCodeString(unit.FilePath, unit.Source)
	if err != nil {
		return errors.NewEmissionError(unit.ClassName, "generated source failed formatting: "+err.Error())
	}

	if err := os.WriteFile(unit.FilePath, []byte(formatted), 0644); err != nil {
		g.diagnostics.Error("Failed to write %s: %v", unit.FilePath, err)
		return utils.WrapWriteError(unit.FilePath, err)
	}

	g.diagnostics.PhaseProgress(fmt.Sprintf("Writing %s", unit.FilePath))
	g.diagnostics.PhaseItem(fmt.Sprintf("%s: %d methods wrapped", unit.ClassName, unit.WrappedMethods))

	g.summary.FilesGenerated++
	g.summary.MethodsWrapped += unit.WrappedMethods
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, unit.FilePath)
	return nil
}

// ReportSuccess prints the final summary.
func (g *Generator) ReportSuccess() {
	g.diagnostics.Summary("Generation summary", map[string]interface{}{
		"packages processed": g.summary.PackagesProcessed,
		"subjects found":     g.summary.SubjectsFound,
		"files generated":    g.summary.FilesGenerated,
		"methods wrapped":    g.summary.MethodsWrapped,
	})
}
