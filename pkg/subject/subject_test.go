package subject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intSubject struct {
	Subject[*intSubject, int]
}

func TestSubjectActual(t *testing.T) {
	rec := &Recorder{}
	s := &intSubject{Subject: New[*intSubject, int](rec, 42)}

	assert.Equal(t, 42, s.Actual())
	assert.Equal(t, rec, s.Strategy())
}

func TestSubjectFailUsesName(t *testing.T) {
	rec := &Recorder{}
	s := &intSubject{Subject: New[*intSubject, int](rec, 7)}

	s.Fail("expected even, got %d", 7)
	require.Len(t, rec.Failures, 1)
	assert.Equal(t, "expected even, got 7", rec.Failures[0])

	s.Named("count")
	s.Fail("expected even, got %d", 7)
	require.Len(t, rec.Failures, 2)
	assert.Equal(t, "count: expected even, got 7", rec.Failures[1])
}

func TestFactoryFunc(t *testing.T) {
	rec := &Recorder{}
	factory := FactoryFunc(func(strategy FailureStrategy, element interface{}) interface{} {
		return &intSubject{Subject: New[*intSubject, int](strategy, element.(int))}
	})

	got := factory.NewSubject(rec, 3)
	s, ok := got.(*intSubject)
	require.True(t, ok)
	assert.Equal(t, 3, s.Actual())
}

func TestOfYieldsInOrder(t *testing.T) {
	var got []string
	for v := range Of("a", "b", "c") {
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestOfStopsWhenYieldReturnsFalse(t *testing.T) {
	count := 0
	Of(1, 2, 3)(func(int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	assert.True(t, rec.Empty())

	rec.FailComparing("size", 2, 5)
	require.False(t, rec.Empty())
	assert.Equal(t, "size: expected 2, got 5", rec.Failures[0])
}
