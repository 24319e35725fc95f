package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capturedDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer) {
	d := NewDiagnosticSystem(level)
	buf := &bytes.Buffer{}
	d.output = buf
	d.errorOut = buf
	return d, buf
}

func TestDebugEmittedAtDebugLevel(t *testing.T) {
	d, buf := capturedDiagnostics(DiagnosticDebug)

	d.Debug("descriptor dump for %s", "WordSubject")

	assert.Contains(t, buf.String(), "[DEBUG]")
	assert.Contains(t, buf.String(), "descriptor dump for WordSubject")
}

func TestDebugSuppressedBelowDebugLevel(t *testing.T) {
	for _, level := range []DiagnosticLevel{DiagnosticVerbose, DiagnosticInfo, DiagnosticError} {
		d, buf := capturedDiagnostics(level)
		d.Debug("should not appear")
		assert.Empty(t, buf.String())
	}
}

func TestVerboseEmittedAtDebugLevel(t *testing.T) {
	d, buf := capturedDiagnostics(DiagnosticDebug)

	d.Verbose("resolved package path")

	assert.Contains(t, buf.String(), "[VERBOSE]")
	assert.Contains(t, buf.String(), "resolved package path")
}

func TestQuietDiagnosticsOnlyShowErrors(t *testing.T) {
	d, buf := capturedDiagnostics(DiagnosticError)

	d.Info("hidden")
	d.Warn("hidden")
	assert.Empty(t, buf.String())

	d.Error("boom: %v", "bad input")
	assert.Contains(t, buf.String(), "[ERROR]")
	assert.Contains(t, buf.String(), "boom: bad input")
}
