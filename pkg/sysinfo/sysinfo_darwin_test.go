package sysinfo

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSystemVersion(t *testing.T) {
	tests := []struct {
		name string
		dict string
		want string
	}{
		{"complete", `<key>ProductName</key><string>macOS</string>
			<key>ProductVersion</key><string>15.3.1</string>
			<key>ProductBuildVersion</key><string>24D70</string>`,
			"macOS 15.3.1 (Build 24D70)"},
		{"no product name", `<key>ProductVersion</key><string>15.3.1</string>
			<key>ProductBuildVersion</key><string>24D70</string>`,
			"macOS 15.3.1 (Build 24D70)"},
		{"only product name", `<key>ProductName</key><string>macOS Custom</string>`, "macOS Custom"},
		{"empty", ``, "macOS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlist(t, `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict>`+tt.dict+`</dict></plist>`)

			result, err := readSystemVersion(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestReadSystemVersionInvalidXML(t *testing.T) {
	_, err := readSystemVersion(writePlist(t, "INVALID_XML_DATA"))
	assert.Error(t, err)
}

func TestReadSystemVersionFileNotFound(t *testing.T) {
	_, err := readSystemVersion(filepath.Join(t.TempDir(), "nonexistent.plist"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func writePlist(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "SystemVersion.plist")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
