package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, GetDisplayWidth("Alpha"))
	assert.Equal(t, 6, GetDisplayWidth("Støtte"))
	assert.Equal(t, 4, GetDisplayWidth("日本"))
}

func TestPadString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		width     int
		leftAlign bool
		expected  string
	}{
		{"left align", "ab", 5, true, "ab   "},
		{"right align", "ab", 5, false, "   ab"},
		{"already wide enough", "abcdef", 3, true, "abcdef"},
		{"norwegian letters count once", "Æøå", 5, true, "Æøå  "},
		{"wide runes count twice", "日本", 6, false, "  日本"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PadString(tt.input, tt.width, tt.leftAlign))
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "Intern", TruncateToWidth("Intern", 10))
	assert.Equal(t, "Kunde…", TruncateToWidth("Kundeprosjekt", 6))
	assert.Equal(t, "", TruncateToWidth("Kundeprosjekt", 0))
}

func TestTerminalWidthFallback(t *testing.T) {
	assert.Equal(t, defaultTerminalWidth, TerminalWidth(nil))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, defaultTerminalWidth, TerminalWidth(f))
}
