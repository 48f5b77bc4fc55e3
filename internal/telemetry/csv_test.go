package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "telemetry.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "timestamp,qw,qx,qy,qz\n0.0,1,0,0,0\n0.1,0.9,0.1,0,0\n")

	series, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
	assert.True(t, series.HasTimestamps)
	assert.Equal(t, 0.1, series.Samples[1].Timestamp)
	assert.Equal(t, 0.9, series.Samples[1].QW)
	assert.Equal(t, 0.1, series.Samples[1].QX)
}

func TestLoadCSVColumnOrderAndExtras(t *testing.T) {
	// The rig CSV carries extra rate columns; order is whatever the
	// firmware emitted.
	path := writeFile(t, "qx,qy,qz,qw,wx\n0.1,0.2,0.3,0.9,42\n")

	series, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 1, series.Len())
	assert.False(t, series.HasTimestamps)
	assert.Equal(t, 0.9, series.Samples[0].QW)
	assert.Equal(t, 0.3, series.Samples[0].QZ)
}

func TestLoadCSVMissingColumn(t *testing.T) {
	path := writeFile(t, "qw,qx,qy\n1,0,0\n")

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qz")
}

func TestLoadCSVBadValue(t *testing.T) {
	path := writeFile(t, "qw,qx,qy,qz\n1,0,oops,0\n")

	_, err := LoadCSV(path)
	require.Error(t, err)
}

func TestWriteThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "telemetry.csv")
	series := Series{
		HasTimestamps: true,
		Samples: []Sample{
			{Timestamp: 0, QW: 1},
			{Timestamp: 0.05, QW: 0.997, QX: 0.05, QY: -0.02, QZ: 0.01},
		},
	}

	require.NoError(t, WriteCSV(path, series))
	got, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, series.Len(), got.Len())
	assert.InDelta(t, 0.997, got.Samples[1].QW, 1e-9)
	assert.InDelta(t, -0.02, got.Samples[1].QY, 1e-9)
}
