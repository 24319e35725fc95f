package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/proofkit/iterwrap/internal/cli"
	"github.com/proofkit/iterwrap/internal/utils"
)

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func main() {
	var manifests stringList
	var (
		moduleFlag  = flag.String("module", "", "Custom module name (defaults to go.mod module)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		debugFlag   = flag.Bool("debug", false, "Enable debug output, including full descriptor dumps")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flag.Bool("clean", false, "Delete all generated *_iterwrap.go files from the specified directories")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)
	flag.Var(&manifests, "manifest", "TOML manifest with subject descriptors (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "iterwrap - Iterating Wrapper Generator\n")
		fmt.Fprintf(os.Stderr, "Recursively scans directories for subject types carrying iterwrap:: directives\n")
		fmt.Fprintf(os.Stderr, "and generates a wrapper per subject that applies every check to each element\n")
		fmt.Fprintf(os.Stderr, "of a sequence.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for subject types\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                  # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./internal/...                         # Scan internal directory recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -manifest subjects.toml ./...          # Add manifest-declared subjects\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -module github.com/myorg/myapp ./...   # Specify custom module name\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -clean ./...                           # Delete all generated wrapper files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	// Debug output includes everything verbose output does.
	if *debugFlag {
		*verboseFlag = true
	}

	args := flag.Args()
	if len(args) == 0 && len(manifests) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path or -manifest is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *debugFlag:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticDebug)
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	if *cleanFlag {
		diagnostics.ToolHeader("cleaning generated wrapper files")

		removed, err := cli.NewCleaner().CleanGeneratedFiles(args)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			os.Exit(1)
		}
		for _, path := range removed {
			diagnostics.PhaseItem(path)
		}
		diagnostics.Success("Removed %d generated file(s)", len(removed))
		return
	}

	diagnostics.ToolHeader("generating iterating wrappers")
	if *verboseFlag {
		diagnostics.Verbose("Target directories: %s", strings.Join(args, ", "))
		if len(manifests) > 0 {
			diagnostics.Verbose("Manifests: %s", manifests.String())
		}
		if *moduleFlag != "" {
			diagnostics.Verbose("Custom module: %s", *moduleFlag)
		}
	}

	generator := cli.NewGenerator(diagnostics)
	err := generator.Run(cli.Config{
		Directories:   args,
		ManifestPaths: manifests,
		ModuleName:    *moduleFlag,
		Verbose:       *verboseFlag,
	})
	if err != nil {
		diagnostics.Error("Generation failed: %v", err)
		os.Exit(1)
	}

	generator.ReportSuccess()

	summary := generator.GetSummary()
	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		for _, file := range summary.GeneratedFiles {
			diagnostics.Verbose("generated %s", file)
		}
	}
}
