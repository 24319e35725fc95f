package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofkit/iterwrap/internal/templates"
	"github.com/proofkit/iterwrap/internal/utils"
)

const wordsPackage = `package words

import "github.com/proofkit/iterwrap/pkg/subject"

//iterwrap::subject
type FooSubject struct {
	subject.Subject[FooSubject, Bar]
}

type Bar struct{}

func (s *FooSubject) EndsWith(suffix string) {}

func (s *FooSubject) HasLength(length int) {}
`

func writeWordsPackage(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "words")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subject.go"), []byte(wordsPackage), 0644))
	return dir
}

func quietGenerator() *Generator {
	return NewGenerator(utils.NewQuietDiagnostics())
}

func TestRunGeneratesWrapperFile(t *testing.T) {
	dir := writeWordsPackage(t)

	g := quietGenerator()
	err := g.Run(Config{
		Directories: []string{dir},
		ModuleName:  "example.com/app",
	})
	require.NoError(t, err)

	outPath := filepath.Join(dir, "foo_subject_iterwrap.go")
	content, err := os.ReadFile(outPath)
	require.NoError(t, err)

	source := string(content)
	assert.True(t, strings.HasPrefix(source, templates.Header))
	assert.Contains(t, source, "type FooSubjectIteratingWrapper struct {")
	assert.Contains(t, source, "func (w *FooSubjectIteratingWrapper) EndsWith(arg0 string) {")
	assert.Contains(t, source, "func (w *FooSubjectIteratingWrapper) HasLength(arg0 int) {")

	summary := g.GetSummary()
	assert.Equal(t, 1, summary.SubjectsFound)
	assert.Equal(t, 1, summary.FilesGenerated)
	assert.Equal(t, 2, summary.MethodsWrapped)
	assert.Equal(t, []string{outPath}, summary.GeneratedFiles)
}

func TestRunIsIdempotent(t *testing.T) {
	dir := writeWordsPackage(t)
	config := Config{Directories: []string{dir}, ModuleName: "example.com/app"}

	require.NoError(t, quietGenerator().Run(config))
	first, err := os.ReadFile(filepath.Join(dir, "foo_subject_iterwrap.go"))
	require.NoError(t, err)

	// A second run must ignore the generated file and rewrite it unchanged.
	g := quietGenerator()
	require.NoError(t, g.Run(config))
	second, err := os.ReadFile(filepath.Join(dir, "foo_subject_iterwrap.go"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, 1, g.GetSummary().SubjectsFound)
}

func TestRunFromManifest(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "iterwrap.toml")
	manifestText := `
package = "words"
package-path = "` + dir + `"

[[subject]]
name = "FooSubject"
element = "string"

[[subject.method]]
name = "EndsWith"

[[subject.method.param]]
type = "string"
`
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestText), 0644))

	g := quietGenerator()
	err := g.Run(Config{
		ManifestPaths: []string{manifestPath},
		ModuleName:    "example.com/app",
	})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "foo_subject_iterwrap.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "func (w *FooSubjectIteratingWrapper) EndsWith(arg0 string) {")
}

func TestRunRejectsOutputCollisions(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "iterwrap.toml")
	manifestText := `
package = "words"
package-path = "` + dir + `"

[[subject]]
name = "FooSubject"
element = "string"

[[subject]]
name = "FooSubject"
element = "int"
`
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestText), 0644))

	g := quietGenerator()
	err := g.Run(Config{
		ManifestPaths: []string{manifestPath},
		ModuleName:    "example.com/app",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision")

	// Nothing may be written when the run is rejected.
	_, statErr := os.Stat(filepath.Join(dir, "foo_subject_iterwrap.go"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunSurfacesDescriptorErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "broken")
	require.NoError(t, os.MkdirAll(dir, 0755))
	source := `package broken

import "github.com/proofkit/iterwrap/pkg/subject"

//iterwrap::subject
type RawSubject struct {
	subject.Subject[RawSubject]
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subject.go"), []byte(source), 0644))

	err := quietGenerator().Run(Config{
		Directories: []string{dir},
		ModuleName:  "example.com/app",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DescriptorError")
}
