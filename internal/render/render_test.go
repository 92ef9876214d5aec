package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/pplus-installer/internal/drive"
	"github.com/conn-castle/pplus-installer/internal/eligibility"
)

func sampleRows() []DriveRow {
	return []DriveRow{
		{
			Facts:   drive.Facts{Path: "/media/sd", TotalBytes: 16 << 30, FreeBytes: 8 << 30, Filesystem: "vfat", Removable: true},
			Verdict: eligibility.Eligible,
		},
		{
			Facts:   drive.Facts{Path: "/", TotalBytes: 500 << 30, FreeBytes: 100 << 30, Filesystem: "ext4"},
			Verdict: eligibility.Rejected(eligibility.TooLarge),
		},
	}
}

func TestDriveTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DriveTable(&buf, sampleRows()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Drive")
	assert.Contains(t, lines[0], "Verdict")
	assert.Contains(t, lines[1], "/media/sd")
	assert.Contains(t, lines[1], "16.0 GB")
	assert.Contains(t, lines[1], "yes")
	assert.Contains(t, lines[1], "ok")
	assert.Contains(t, lines[2], "too large")
	assert.Contains(t, lines[2], "no")
}

func TestDriveTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DriveTable(&buf, nil))
	assert.Equal(t, "No mounted drives were found.\n", buf.String())
}

func TestDriveJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DriveJSON(&buf, sampleRows()))

	var decoded []struct {
		Facts struct {
			Path      string `json:"path"`
			Removable bool   `json:"removable"`
		} `json:"facts"`
		Verdict struct {
			Eligible bool   `json:"eligible"`
			Reason   string `json:"reason"`
		} `json:"verdict"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "/media/sd", decoded[0].Facts.Path)
	assert.True(t, decoded[0].Verdict.Eligible)
	assert.Equal(t, "too large", decoded[1].Verdict.Reason)
}

func TestDriveJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DriveJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestBanner(t *testing.T) {
	out := Banner("Installation complete", "Launch Project+ from the Homebrew Channel.")
	assert.Contains(t, out, "Installation complete")
	assert.Contains(t, out, "Homebrew")
}

func TestErrorAndWarn(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, "Drive not selected")
	Warn(&buf, "update check failed: %s\n", "offline")
	assert.Contains(t, buf.String(), "Error: Drive not selected")
	assert.Contains(t, buf.String(), "update check failed: offline")
}
