package reset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStreamCapacity(t *testing.T) {
	assert.Equal(t, 40, NewStream(0.2, 0.005).Cap())
	assert.Equal(t, 100, NewStream(1.0, 0.01).Cap())
	// Degenerate windows still get one slot.
	assert.Equal(t, 1, NewStream(0.001, 1).Cap())
	assert.Equal(t, 1, NewStream(1, 0).Cap())
}

func TestStreamPushRejectsDegenerate(t *testing.T) {
	s := NewStream(1, 0.1)

	s.Push([3]float64{0, 0, 0}, 0.5)      // zero axis
	s.Push([3]float64{1e-13, 0, 0}, 0.5)  // below axis epsilon
	s.Push([3]float64{0, 0, 1}, 0)        // zero angle
	s.Push([3]float64{0, 0, 1}, 1e-13)    // below angle epsilon

	assert.Zero(t, s.Len())
}

func TestStreamPushNormalizesAxis(t *testing.T) {
	s := NewStream(1, 0.1)
	s.Push([3]float64{0, 0, 4}, 0.3)

	seq := s.Sequence()
	require.Len(t, seq, 1)
	assert.InDelta(t, 1.0, seq[0].Axis[2], 1e-12)
	assert.InDelta(t, 0.3, seq[0].Angle, 1e-15)
}

func TestStreamEvictsOldestAtCapacity(t *testing.T) {
	s := NewStream(0.3, 0.1) // capacity 3

	for i := 1; i <= 5; i++ {
		s.Push([3]float64{0, 0, 1}, float64(i)*0.1)
	}

	require.Equal(t, 3, s.Len())
	seq := s.Sequence()
	assert.InDelta(t, 0.3, seq[0].Angle, 1e-12)
	assert.InDelta(t, 0.4, seq[1].Angle, 1e-12)
	assert.InDelta(t, 0.5, seq[2].Angle, 1e-12)
}

func TestStreamEstimateEmpty(t *testing.T) {
	s := NewStream(0.2, 0.005)
	lambda, r, thetaNet := s.Estimate()

	assert.Equal(t, 1.0, lambda)
	assert.Equal(t, 1.0, r)
	assert.Equal(t, 0.0, thetaNet)
}

func TestStreamEstimateMatchesBatch(t *testing.T) {
	s := NewStream(1, 0.1)
	seq := Sequence{
		{Axis: [3]float64{1, 0, 0}, Angle: 0.2},
		{Axis: [3]float64{0, 1, 0}, Angle: 0.3},
	}
	for _, inc := range seq {
		s.Push(inc.Axis, inc.Angle)
	}

	l1, r1, t1 := s.Estimate()
	l2, r2, t2 := Estimate(seq)
	assert.Equal(t, l2, l1)
	assert.Equal(t, r2, r1)
	assert.Equal(t, t2, t1)
}

func TestStreamScaledTwice(t *testing.T) {
	s := NewStream(1, 0.5) // capacity 2
	s.Push([3]float64{0, 0, 1}, 0.1)
	s.Push([3]float64{0, 0, 1}, 0.2)

	cmd := s.ScaledTwice(3)
	require.Len(t, cmd, 4)
	assert.InDelta(t, 0.3, cmd[0].Angle, 1e-12)
	assert.InDelta(t, 0.6, cmd[1].Angle, 1e-12)
	assert.InDelta(t, 0.3, cmd[2].Angle, 1e-12)
	assert.InDelta(t, 0.6, cmd[3].Angle, 1e-12)
}
