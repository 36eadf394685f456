package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Strings(t *testing.T) {
	tests := []struct {
		status Status
		name   string
		symbol string
	}{
		{StatusPending, "pending", "⏸"},
		{StatusRunning, "running", "⣾"},
		{StatusSuccess, "success", "✓"},
		{StatusWarning, "warning", "⚠"},
		{StatusError, "error", "✗"},
		{StatusSkipped, "skipped", "⊘"},
		{Status(99), "unknown", "?"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.status.String())
		assert.Equal(t, tt.symbol, tt.status.Symbol())
	}
}

func TestStatus_LabelWithoutColor(t *testing.T) {
	DisableColor()
	t.Cleanup(EnableColor)

	assert.Equal(t, "✓ ready", StatusSuccess.Label("ready"))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(nil))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f), "regular files are not terminals")
	assert.IsType(t, NoopProgress{}, NewProgress(f))

	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf), "buffers are not terminals")
	assert.IsType(t, NoopProgress{}, NewProgress(&buf))

	var nilFile *os.File
	assert.False(t, IsTerminal(nilFile))
}

func TestNoopProgress(t *testing.T) {
	var p Progress = NoopProgress{}
	p.Start("scanning")
	p.Success("done")
	p.Fail("failed")
	assert.True(t, strings.HasPrefix(SeparatorLight, "─"))
}
