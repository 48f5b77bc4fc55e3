package telemetry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministicForSeed(t *testing.T) {
	a := Generate(DomainRobot, 100, 20, rand.New(rand.NewSource(7)))
	b := Generate(DomainRobot, 100, 20, rand.New(rand.NewSource(7)))
	require.Equal(t, a, b)
}

func TestGenerateUnitQuaternions(t *testing.T) {
	series := Generate(DomainBooster, 200, 20, rand.New(rand.NewSource(0)))
	require.Equal(t, 200, series.Len())
	assert.True(t, series.HasTimestamps)

	for i, s := range series.Samples {
		n := math.Sqrt(s.QW*s.QW + s.QX*s.QX + s.QY*s.QY + s.QZ*s.QZ)
		require.InDelta(t, 1.0, n, 1e-9, "sample %d", i)
	}
}

func TestGenerateTimestamps(t *testing.T) {
	series := Generate(DomainSpacecraft, 10, 20, rand.New(rand.NewSource(0)))
	assert.Equal(t, 0.0, series.Samples[0].Timestamp)
	assert.InDelta(t, 0.05, series.Samples[1].Timestamp, 1e-12)
}

func TestGenerateGravityRigNearStatic(t *testing.T) {
	series := Generate(DomainGravityRig, 300, 20, rand.New(rand.NewSource(3)))

	// The bench rig profile is noise-only; the trace must stay close to
	// its starting orientation.
	last := series.Samples[len(series.Samples)-1]
	assert.Greater(t, math.Abs(last.QW), 0.99)
}

func TestParseDomain(t *testing.T) {
	for _, name := range []string{"robot", "spacecraft", "booster", "gravity_rig"} {
		d, err := ParseDomain(name)
		require.NoError(t, err)
		assert.Equal(t, Domain(name), d)
	}

	_, err := ParseDomain("submarine")
	assert.Error(t, err)
}
