package generator

import (
	"go/format"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofkit/iterwrap/internal/errors"
	"github.com/proofkit/iterwrap/internal/introspect"
	"github.com/proofkit/iterwrap/internal/models"
)

const wordsSource = `package words

import "github.com/proofkit/iterwrap/pkg/subject"

//iterwrap::subject
type FooSubject struct {
	subject.Subject[FooSubject, Bar]
}

type Bar struct{}

func (s *FooSubject) EndsWith(suffix string) {}
`

func emitSource(t *testing.T, source, typeName string) *models.GeneratedClass {
	t.Helper()
	d, err := introspect.NewIntrospector().DescribeSource("fixture.go", source, typeName)
	require.NoError(t, err)
	g, err := NewEmitter().Emit(d)
	require.NoError(t, err)
	return g
}

func TestEmitCompleteWrapperFile(t *testing.T) {
	g := emitSource(t, wordsSource, "FooSubject")

	want := `// Code generated by iterwrap; DO NOT EDIT.

package words

import (
	"iter"

	"github.com/proofkit/iterwrap/pkg/subject"
)

// FooSubjectIteratingWrapper applies every FooSubject check to each element of
// a sequence in turn.
type FooSubjectIteratingWrapper struct {
	FooSubject

	strategy subject.FailureStrategy
	factory  subject.Factory
	data     iter.Seq[Bar]
}

// NewFooSubjectIteratingWrapper returns a wrapper whose checks run once per element
// of data.
func NewFooSubjectIteratingWrapper(strategy subject.FailureStrategy, factory subject.Factory, data iter.Seq[Bar]) *FooSubjectIteratingWrapper {
	return &FooSubjectIteratingWrapper{
		strategy: strategy,
		factory:  factory,
		data:     data,
	}
}

// wraps FooSubject.EndsWith (public)
func (w *FooSubjectIteratingWrapper) EndsWith(arg0 string) {
	for item := range w.data {
		s := w.factory.NewSubject(w.strategy, item).(*FooSubject)
		s.EndsWith(arg0)
	}
}
`

	assert.Equal(t, want, g.Source)
	assert.Equal(t, "FooSubjectIteratingWrapper", g.ClassName)
	assert.Equal(t, "words", g.PackageName)
	assert.Equal(t, "foo_subject_iterwrap.go", g.FilePath)
	assert.Equal(t, 1, g.WrappedMethods)
}

func TestEmitIsByteIdentical(t *testing.T) {
	d, err := introspect.NewIntrospector().DescribeSource("fixture.go", wordsSource, "FooSubject")
	require.NoError(t, err)

	emitter := NewEmitter()
	first, err := emitter.Emit(d)
	require.NoError(t, err)
	second, err := emitter.Emit(d)
	require.NoError(t, err)

	assert.Equal(t, first.Source, second.Source)
}

func TestEmitOutputIsGofmtClean(t *testing.T) {
	g := emitSource(t, wordsSource, "FooSubject")

	formatted, err := format.Source([]byte(g.Source))
	require.NoError(t, err, "generated source must parse")
	assert.Equal(t, g.Source, string(formatted), "generated source must already be gofmt-shaped")
}

func TestEmitEmptyMethodRegion(t *testing.T) {
	source := `package words

import "github.com/proofkit/iterwrap/pkg/subject"

//iterwrap::subject
type BareSubject struct {
	subject.Subject[BareSubject, string]
}

//iterwrap::final
func (s *BareSubject) Frozen() {}
`
	g := emitSource(t, source, "BareSubject")

	assert.Equal(t, 0, g.WrappedMethods)
	assert.Contains(t, g.Source, "type BareSubjectIteratingWrapper struct {")
	assert.Contains(t, g.Source, "func NewBareSubjectIteratingWrapper(")
	assert.NotContains(t, g.Source, "func (w *BareSubjectIteratingWrapper)")

	_, err := format.Source([]byte(g.Source))
	assert.NoError(t, err)
}

func TestEmitParameterAnnotationsAndForwarding(t *testing.T) {
	source := `package words

import "github.com/proofkit/iterwrap/pkg/subject"

//iterwrap::subject
type TextSubject struct {
	subject.Subject[TextSubject, string]
}

//iterwrap::param 0 @Nullable
func (s *TextSubject) Matches(pattern string, count int) {}
`
	g := emitSource(t, source, "TextSubject")

	assert.Contains(t, g.Source, "Matches( /* @Nullable */ arg0 string, arg1 int)")
	assert.Contains(t, g.Source, "s.Matches(arg0, arg1)")

	_, err := format.Source([]byte(g.Source))
	assert.NoError(t, err)
}

func TestEmitVariadicForwarding(t *testing.T) {
	source := `package words

import "github.com/proofkit/iterwrap/pkg/subject"

//iterwrap::subject
type SetSubject struct {
	subject.Subject[SetSubject, string]
}

func (s *SetSubject) ContainsAnyOf(first string, rest ...string) {}
`
	g := emitSource(t, source, "SetSubject")

	assert.Contains(t, g.Source, "ContainsAnyOf(arg0 string, arg1 ...string)")
	assert.Contains(t, g.Source, "s.ContainsAnyOf(arg0, arg1...)")
}

func TestEmitReturnsLastElementResults(t *testing.T) {
	// A wrapped method with results runs once per element; the wrapper
	// keeps only the results of the final run.
	source := `package words

import "github.com/proofkit/iterwrap/pkg/subject"

//iterwrap::subject
type CountSubject struct {
	subject.Subject[CountSubject, int]
}

func (s *CountSubject) Count(of int) (int, error) { return 0, nil }
`
	g := emitSource(t, source, "CountSubject")

	assert.Contains(t, g.Source, "Count(arg0 int) (ret0 int, ret1 error) {")
	assert.Contains(t, g.Source, "ret0, ret1 = s.Count(arg0)")
	assert.Contains(t, g.Source, "\t}\n\treturn\n}")

	_, err := format.Source([]byte(g.Source))
	assert.NoError(t, err)
}

func TestEmitUnexportedSubjectKeepsExportCase(t *testing.T) {
	source := `package words

import "github.com/proofkit/iterwrap/pkg/subject"

//iterwrap::subject
type runeSubject struct {
	subject.Subject[runeSubject, rune]
}

func (s *runeSubject) isLetter() {}
`
	g := emitSource(t, source, "runeSubject")

	assert.Equal(t, "runeSubjectIteratingWrapper", g.ClassName)
	assert.Contains(t, g.Source, "func newRuneSubjectIteratingWrapper(")
	// Package visibility carries no token in the method doc.
	assert.Contains(t, g.Source, "// wraps runeSubject.isLetter\nfunc")
	assert.Equal(t, "rune_subject_iterwrap.go", g.FilePath)
}

func TestEmitFiltersUnusedImports(t *testing.T) {
	source := `package words

import (
	"time"

	"github.com/proofkit/iterwrap/pkg/subject"
)

//iterwrap::subject
type PairSubject struct {
	subject.Subject[PairSubject, string]
}

func (s *PairSubject) IsBefore(other time.Time) {}

var _ = time.Now
`
	g := emitSource(t, source, "PairSubject")
	assert.Contains(t, g.Source, "\t\"time\"\n")

	bare := `package words

import (
	"time"

	"github.com/proofkit/iterwrap/pkg/subject"
)

//iterwrap::subject
type LoneSubject struct {
	subject.Subject[LoneSubject, string]
}

func (s *LoneSubject) IsEmpty() {}

var _ = time.Now
`
	g = emitSource(t, bare, "LoneSubject")
	assert.NotContains(t, g.Source, "\"time\"")
}

func TestEmitRejectsIncompleteDescriptors(t *testing.T) {
	cases := []struct {
		name string
		d    *models.SubjectDescriptor
	}{
		{"no subject name", &models.SubjectDescriptor{PackageName: "p", ElementType: "T"}},
		{"no package name", &models.SubjectDescriptor{Name: "S", ElementType: "T"}},
		{"no element type", &models.SubjectDescriptor{Name: "S", PackageName: "p"}},
		{"unnamed method", &models.SubjectDescriptor{
			Name: "S", PackageName: "p", ElementType: "T",
			Methods: []models.MethodDescriptor{{DeclaredBy: "S"}},
		}},
		{"untyped parameter", &models.SubjectDescriptor{
			Name: "S", PackageName: "p", ElementType: "T",
			Methods: []models.MethodDescriptor{{
				Name: "Check", DeclaredBy: "S",
				Params: []models.ParameterDescriptor{{}},
			}},
		}},
	}

	emitter := NewEmitter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := emitter.Emit(tc.d)
			require.Error(t, err)
			assert.Nil(t, g, "no partial output on emission failure")
			assert.True(t, errors.IsEmissionError(err), "want EmissionError, got %v", err)
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"FooSubject":    "foo_subject",
		"runeSubject":   "rune_subject",
		"HTTPSubject":   "h_t_t_p_subject",
		"IntSubject":    "int_subject",
		"StringSubject": "string_subject",
	}
	for in, want := range cases {
		assert.Equal(t, want, toSnakeCase(in), in)
	}
}

func TestEmitHierarchyEndToEnd(t *testing.T) {
	source := `package chain

import "github.com/proofkit/iterwrap/pkg/subject"

type comparableSubject struct {
	subject.Subject[comparableSubject, int]
}

func (s *comparableSubject) IsGreaterThan(other int) {}

//iterwrap::subject
type IntSubject struct {
	comparableSubject
}

func (s *IntSubject) IsZero() {}
`
	g := emitSource(t, source, "IntSubject")

	assert.Equal(t, 2, g.WrappedMethods)
	// Subject-declared methods come before inherited ones.
	zero := strings.Index(g.Source, "func (w *IntSubjectIteratingWrapper) IsZero(")
	greater := strings.Index(g.Source, "func (w *IntSubjectIteratingWrapper) IsGreaterThan(")
	require.True(t, zero >= 0 && greater >= 0)
	assert.Less(t, zero, greater)
	// Every wrapped call targets the subject type, never an intermediate.
	assert.NotContains(t, g.Source, "(*comparableSubject)")
}

func TestEmitExcludesForeignEmbedMethods(t *testing.T) {
	source := `package mixed

import "github.com/proofkit/iterwrap/pkg/subject"

type reporting struct{}

func (r *reporting) Describe() {}

//iterwrap::subject
type ItemSubject struct {
	reporting
	subject.Subject[ItemSubject, string]
}

func (s *ItemSubject) IsEmpty() {}
`
	g := emitSource(t, source, "ItemSubject")

	assert.Equal(t, 1, g.WrappedMethods)
	assert.Contains(t, g.Source, "func (w *ItemSubjectIteratingWrapper) IsEmpty() {")
	assert.NotContains(t, g.Source, "Describe")
}
