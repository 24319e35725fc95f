package cli

// Config holds the configuration for one generator run
type Config struct {
	// Directories is the list of directories to scan for subject types.
	// Go-style "./..." patterns are supported.
	Directories []string

	// ManifestPaths lists TOML manifests to load descriptors from, in
	// addition to whatever source introspection finds.
	ManifestPaths []string

	// ModuleName is the custom module name for diagnostics and path
	// resolution. If empty, it is determined from go.mod.
	ModuleName string

	// Verbose enables detailed logging and error reporting
	Verbose bool
}
